package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.Status
		wantErr bool
	}{
		{name: "confirmed is cancellable", status: domain.StatusConfirmed},
		{name: "cancelled is final", status: domain.StatusCancelled, wantErr: true},
		{name: "completed is final", status: domain.StatusCompleted, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CanCancel(tt.status)
			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	now := time.Now()

	b := &models.Booking{
		Status: string(domain.StatusConfirmed),
		Slot:   models.TimeSlot{IsAvailable: false},
	}

	require.NoError(t, domain.Cancel(b, now))

	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.True(t, b.Slot.IsAvailable)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)

	// a second cancel is rejected and changes nothing
	err := domain.Cancel(b, now.Add(time.Minute))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, now, *b.CancelledAt)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, domain.StatusConfirmed, domain.InitialStatus())
}
