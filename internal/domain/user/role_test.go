package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
)

func TestIsRegistrable(t *testing.T) {
	assert.True(t, user.IsRegistrable(user.RoleStudent))
	assert.True(t, user.IsRegistrable(user.RoleTeacher))
	assert.False(t, user.IsRegistrable(user.RoleAdmin))
	assert.False(t, user.IsRegistrable(user.Role("principal")))
	assert.False(t, user.IsRegistrable(user.Role("")))
}

func TestIsValid(t *testing.T) {
	assert.True(t, user.IsValid(user.RoleStudent))
	assert.True(t, user.IsValid(user.RoleTeacher))
	assert.True(t, user.IsValid(user.RoleAdmin))
	assert.False(t, user.IsValid(user.Role("owner")))
}
