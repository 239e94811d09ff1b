package domain

import "strings"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole accepts only the exact upper-case role names.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// NormalizeRole upper-cases and trims s before parsing. Used where input
// comes from humans (registration forms, admin requests).
func NormalizeRole(s string) (Role, error) {
	return ParseRole(strings.ToUpper(strings.TrimSpace(s)))
}

// SelfRegistrable reports whether a user may pick this role at sign-up.
func (r Role) SelfRegistrable() bool {
	return r == RoleTeacher || r == RoleStudent
}
