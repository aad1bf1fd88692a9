package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateInterest    = errors.New("interest already exists")
)

// ValidationError carries every violation found in one pass, so the caller
// sees the full list instead of the first failure.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}
