package dto

import (
	"time"

	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

type SlotDTO struct {
	ID              uint      `json:"id"`
	Teacher         UserDTO   `json:"teacher"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	Topic           string    `json:"topic"`
	MeetingLink     string    `json:"meeting_link"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromSlot(s *models.TimeSlot) SlotDTO {
	return SlotDTO{
		ID:              s.ID,
		Teacher:         FromUser(&s.Teacher),
		Start:           s.Start,
		End:             s.End,
		DurationMinutes: s.DurationMinutes,
		Topic:           s.Topic,
		MeetingLink:     s.MeetingLink,
		IsAvailable:     s.IsAvailable,
		CreatedAt:       s.CreatedAt,
	}
}

func FromSlots(slots []models.TimeSlot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for i := range slots {
		out = append(out, FromSlot(&slots[i]))
	}
	return out
}
