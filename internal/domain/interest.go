package domain

import (
	"time"

	"github.com/google/uuid"
)

type Interest struct {
	ID        uuid.UUID    `json:"id" db:"interest_id"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	NoticeID  uuid.UUID    `json:"notice_id" db:"notice_id"`
	Type      InterestType `json:"type" db:"type"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// InterestFollower is an interest row joined with the holder's email,
// the shape the update fan-out consumes.
type InterestFollower struct {
	UserID uuid.UUID    `json:"user_id" db:"user_id"`
	Email  string       `json:"email" db:"email"`
	Type   InterestType `json:"type" db:"type"`
}

type ToggleResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

type InterestType string

const (
	InterestInterested InterestType = "interested"
	InterestRemindMe   InterestType = "remind_me"
)

func (t InterestType) IsValid() bool {
	return t == InterestInterested || t == InterestRemindMe
}
