package booking

import (
	"time"

	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves a confirmed booking to cancelled and releases its slot.
func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.Slot.IsAvailable = true
	return nil
}
