package user

// ===============================
// Account Role
// ===============================

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Registration only ever hands out student or teacher; admin accounts
// come from the bootstrap command.
func IsRegistrable(r Role) bool {
	return r == RoleStudent || r == RoleTeacher
}

func IsValid(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
