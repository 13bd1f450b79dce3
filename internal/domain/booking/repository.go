package booking

import (
	"context"

	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

type Repository interface {
	// -------- Slot --------
	GetSlotByID(
		ctx context.Context,
		id uint,
	) (*models.TimeSlot, error)

	// -------- Booking (create / claim) --------

	// CreateBooking claims the referenced slot and persists the booking
	// in a single transaction. The claim is a conditional update on
	// is_available; when another booking already holds the slot the
	// whole operation fails with a slot_unavailable business error and
	// nothing is written.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// UpdateBooking persists the booking together with its slot, so a
	// cancellation releases the slot atomically.
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListForTeacher(
		ctx context.Context,
		teacherID uint,
	) ([]models.Booking, error)

	ListForStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.Booking, error)
}
