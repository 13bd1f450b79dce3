package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
)

func TestValidateSlotTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantCode string
	}{
		{
			name:  "future slot",
			start: now.Add(time.Hour),
			end:   now.Add(90 * time.Minute),
		},
		{
			name:     "start in the past",
			start:    now.Add(-time.Minute),
			end:      now.Add(time.Hour),
			wantCode: "start_in_past",
		},
		{
			name:     "end before start",
			start:    now.Add(2 * time.Hour),
			end:      now.Add(time.Hour),
			wantCode: "start_after_end",
		},
		{
			name:     "zero-length slot",
			start:    now.Add(time.Hour),
			end:      now.Add(time.Hour),
			wantCode: "start_after_end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlotTimes(tt.start, tt.end, now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, tt.wantCode))
			}
		})
	}
}

func TestIsAvailableFilterOn(t *testing.T) {
	assert.True(t, isAvailableFilterOn("true"))
	assert.True(t, isAvailableFilterOn("True"))
	assert.True(t, isAvailableFilterOn("1"))

	assert.False(t, isAvailableFilterOn(""))
	assert.False(t, isAvailableFilterOn("false"))
	assert.False(t, isAvailableFilterOn("TRUE"))
	assert.False(t, isAvailableFilterOn("yes"))
}
