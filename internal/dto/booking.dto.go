package dto

import (
	"time"

	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

type BookingDTO struct {
	ID            uint      `json:"id"`
	Student       UserDTO   `json:"student"`
	Slot          SlotDTO   `json:"slot"`
	Purpose       string    `json:"purpose"`
	AttachmentKey string    `json:"attachment_key,omitempty"`
	MeetingMode   string    `json:"meeting_mode"`
	MeetingLink   string    `json:"meeting_link"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID,
		Student:       FromUser(&b.Student),
		Slot:          FromSlot(&b.Slot),
		Purpose:       b.Purpose,
		AttachmentKey: b.AttachmentKey,
		MeetingMode:   b.MeetingMode,
		MeetingLink:   b.MeetingLink,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func FromBookings(bookings []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, FromBooking(&bookings[i]))
	}
	return out
}
