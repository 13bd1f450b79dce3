package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
)

func ident(id uint, role user.Role) policy.Identity {
	return policy.Identity{UserID: id, Role: role}
}

func TestCanManageSlots(t *testing.T) {
	assert.True(t, policy.CanManageSlots(ident(1, user.RoleTeacher)))
	assert.False(t, policy.CanManageSlots(ident(1, user.RoleStudent)))
	assert.False(t, policy.CanManageSlots(ident(1, user.RoleAdmin)))
	assert.False(t, policy.CanManageSlots(ident(1, user.Role("other"))))
}

func TestCanCreateBooking(t *testing.T) {
	assert.True(t, policy.CanCreateBooking(ident(1, user.RoleStudent)))
	assert.False(t, policy.CanCreateBooking(ident(1, user.RoleTeacher)))
	assert.False(t, policy.CanCreateBooking(ident(1, user.RoleAdmin)))
}

func TestCanCancelBooking(t *testing.T) {
	b := &models.Booking{
		StudentID: 10,
		Slot:      models.TimeSlot{TeacherID: 20},
	}

	assert.True(t, policy.CanCancelBooking(ident(10, user.RoleStudent), b), "booking's student")
	assert.True(t, policy.CanCancelBooking(ident(20, user.RoleTeacher), b), "slot's teacher")
	assert.False(t, policy.CanCancelBooking(ident(11, user.RoleStudent), b), "another student")
	assert.False(t, policy.CanCancelBooking(ident(21, user.RoleTeacher), b), "another teacher")
}

func TestCanViewBooking(t *testing.T) {
	b := &models.Booking{
		StudentID: 10,
		Slot:      models.TimeSlot{TeacherID: 20},
	}

	assert.True(t, policy.CanViewBooking(ident(10, user.RoleStudent), b))
	assert.True(t, policy.CanViewBooking(ident(20, user.RoleTeacher), b))
	assert.False(t, policy.CanViewBooking(ident(11, user.RoleStudent), b))
	assert.False(t, policy.CanViewBooking(ident(21, user.RoleTeacher), b))
	assert.False(t, policy.CanViewBooking(ident(10, user.RoleAdmin), b), "admins get no booking visibility")
}

func TestCanAttachToBooking(t *testing.T) {
	b := &models.Booking{
		StudentID: 10,
		Slot:      models.TimeSlot{TeacherID: 20},
	}

	assert.True(t, policy.CanAttachToBooking(ident(10, user.RoleStudent), b))
	assert.False(t, policy.CanAttachToBooking(ident(20, user.RoleTeacher), b))
}

func TestCanViewAuditLogs(t *testing.T) {
	assert.True(t, policy.CanViewAuditLogs(ident(1, user.RoleAdmin)))
	assert.False(t, policy.CanViewAuditLogs(ident(1, user.RoleTeacher)))
	assert.False(t, policy.CanViewAuditLogs(ident(1, user.RoleStudent)))
}
