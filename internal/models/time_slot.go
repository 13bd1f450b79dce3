package models

import "time"

type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherID uint `gorm:"index;not null" json:"teacher_id"`
	Teacher   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"teacher"`

	Start time.Time `gorm:"index;not null" json:"start"`
	End   time.Time `gorm:"not null" json:"end"`

	DurationMinutes int    `gorm:"default:30" json:"duration_minutes"`
	Topic           string `gorm:"size:255" json:"topic"`
	MeetingLink     string `gorm:"size:255" json:"meeting_link"`

	// Flipped to false by the booking claim, back to true on cancellation.
	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
