package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"notification_id"`
	RecipientID uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	Message     string           `json:"message" db:"message"`
	Link        string           `json:"link" db:"link"`
	Type        NotificationType `json:"type" db:"type"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	NoticeID    *uuid.UUID       `json:"notice_id,omitempty" db:"notice_id"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// NotificationFeed is the listing payload: the latest notifications for a
// recipient plus their unread total.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
}

type NotificationType string

const (
	NotifImportant NotificationType = "important"
	NotifInterest  NotificationType = "interest"
	NotifReminder  NotificationType = "reminder"
	NotifSystem    NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifImportant, NotifInterest, NotifReminder, NotifSystem:
		return true
	default:
		return false
	}
}
