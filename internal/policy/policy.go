package policy

import (
	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

// Identity is the authenticated caller as extracted from the access token.
type Identity struct {
	UserID uint
	Role   user.Role
}

// Slot create/update/destroy and forced unavailability are teacher actions.
func CanManageSlots(id Identity) bool {
	switch id.Role {
	case user.RoleTeacher:
		return true
	case user.RoleStudent, user.RoleAdmin:
		return false
	}
	return false
}

// Only students claim slots.
func CanCreateBooking(id Identity) bool {
	switch id.Role {
	case user.RoleStudent:
		return true
	case user.RoleTeacher, user.RoleAdmin:
		return false
	}
	return false
}

// A booking is cancellable by the student who made it or the teacher
// owning the slot. Booking must be loaded with its slot.
func CanCancelBooking(id Identity, b *models.Booking) bool {
	return id.UserID == b.StudentID || id.UserID == b.Slot.TeacherID
}

// CanViewBooking mirrors the list filters: a booking outside the
// caller's visible set reads as not found, never as forbidden.
func CanViewBooking(id Identity, b *models.Booking) bool {
	switch id.Role {
	case user.RoleTeacher:
		return b.Slot.TeacherID == id.UserID
	case user.RoleStudent:
		return b.StudentID == id.UserID
	}
	return false
}

// Attachments belong to the booking's student.
func CanAttachToBooking(id Identity, b *models.Booking) bool {
	return id.UserID == b.StudentID
}

func CanViewAuditLogs(id Identity) bool {
	return id.Role == user.RoleAdmin
}
