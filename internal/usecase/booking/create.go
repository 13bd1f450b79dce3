package booking

import (
	"context"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudentID uint
	SlotID    uint

	Purpose     string
	MeetingMode string
	MeetingLink string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	slot, err := uc.repo.GetSlotByID(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	// Fast-path rejection; the conditional claim inside CreateBooking
	// remains the actual guarantee under concurrency.
	if !slot.IsAvailable {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	mode := in.MeetingMode
	if mode == "" {
		mode = "online"
	}

	b := &models.Booking{
		StudentID:   in.StudentID,
		SlotID:      slot.ID,
		Purpose:     in.Purpose,
		MeetingMode: mode,
		MeetingLink: in.MeetingLink,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StudentID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// Reload with student and slot for the response shape.
	return uc.repo.GetBookingByID(ctx, b.ID)
}
