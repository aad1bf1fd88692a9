package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`
	UniversityID string    `json:"university_id" db:"university_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterInput struct {
	UniversityID string `json:"university_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
}

type LoginInput struct {
	// UserID accepts either a university ID or an email address.
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleStudent   UserRole = "student"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleStudent:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role.
// Admin satisfies moderator; every role satisfies student.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == RoleAdmin
	case "moderator":
		return u.Role == RoleAdmin || u.Role == RoleModerator
	case "student":
		return u.Role == RoleAdmin || u.Role == RoleModerator || u.Role == RoleStudent
	default:
		return false
	}
}

// Format: Year/Course/RegNo, e.g. 2021/ICT/075.
var universityIDPattern = regexp.MustCompile(`^\d{4}/[A-Za-z]{1,4}/[A-Za-z0-9]{1,3}$`)

func IsValidUniversityID(id string) bool {
	return universityIDPattern.MatchString(id)
}
