package booking

import (
	"context"

	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns the caller's visible set: teachers see bookings on
// their own slots, students their own bookings, anyone else nothing.
func (uc *ListBookings) Execute(
	ctx context.Context,
	caller policy.Identity,
) ([]models.Booking, error) {

	switch caller.Role {
	case user.RoleTeacher:
		return uc.repo.ListForTeacher(ctx, caller.UserID)
	case user.RoleStudent:
		return uc.repo.ListForStudent(ctx, caller.UserID)
	}

	return []models.Booking{}, nil
}
