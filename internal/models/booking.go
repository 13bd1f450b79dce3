package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint `gorm:"index;not null" json:"student_id"`
	Student   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"student"`

	SlotID uint     `gorm:"index;not null" json:"slot_id"`
	Slot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slot"`

	Purpose       string `gorm:"type:text" json:"purpose"`
	AttachmentKey string `gorm:"size:255" json:"attachment_key"`
	MeetingMode   string `gorm:"size:50;default:'online'" json:"meeting_mode"`
	MeetingLink   string `gorm:"size:255" json:"meeting_link"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
