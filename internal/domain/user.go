package domain

import (
	"strings"
	"time"
)

// Role classifies what a user may do across the platform.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleAdmin    Role = "ADMIN"
	RoleGuardian Role = "GUARDIAN"
)

// ParseRole normalizes a role string to one of the known variants.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleGuardian:
		return RoleGuardian, true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
