package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notice struct {
	ID        uuid.UUID      `json:"id" db:"notice_id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Category  NoticeCategory `json:"category" db:"category"`
	Date      time.Time      `json:"date" db:"date"`
	Status    NoticeStatus   `json:"status" db:"status"`
	AuthorID  uuid.UUID      `json:"author_id" db:"author_id"`
	Author    *NoticeAuthor  `json:"author,omitempty" db:"-"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// NoticeAuthor is the author projection joined onto notice reads.
type NoticeAuthor struct {
	ID           uuid.UUID `json:"id"`
	UniversityID string    `json:"university_id"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
}

type CreateNoticeInput struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Category string     `json:"category"`
	Date     *time.Time `json:"date"`
}

type UpdateNoticeInput struct {
	Title    *string    `json:"title,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Category *string    `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

type UpdateNoticeStatusInput struct {
	Status string `json:"status"`
}

// NoticeFilter is the predicate the visibility rules compile down to.
// OwnerOrPublished widens a status constraint to "published OR authored by",
// which is the moderator default when no explicit status was requested.
type NoticeFilter struct {
	Category         *NoticeCategory
	Status           *NoticeStatus
	OwnerOrPublished *uuid.UUID
}

type NoticeStatus string

const (
	StatusPending   NoticeStatus = "pending"
	StatusPublished NoticeStatus = "published"
	StatusRejected  NoticeStatus = "rejected"
)

func (s NoticeStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPublished, StatusRejected:
		return true
	default:
		return false
	}
}

// IsReviewOutcome reports whether the status is a valid target for an
// admin review transition.
func (s NoticeStatus) IsReviewOutcome() bool {
	return s == StatusPublished || s == StatusRejected
}

type NoticeCategory string

const (
	CategoryAcademic    NoticeCategory = "Academic"
	CategorySports      NoticeCategory = "Sports"
	CategoryClubs       NoticeCategory = "Clubs & Societies"
	CategoryWelfare     NoticeCategory = "Welfare & Student Services"
	CategoryMarketplace NoticeCategory = "Marketplace"
	CategoryLostFound   NoticeCategory = "Lost & Found"
	CategoryDonations   NoticeCategory = "Donations"
	CategoryHostel      NoticeCategory = "Hostel & Accommodation"
)

func (c NoticeCategory) IsValid() bool {
	switch c {
	case CategoryAcademic, CategorySports, CategoryClubs, CategoryWelfare,
		CategoryMarketplace, CategoryLostFound, CategoryDonations, CategoryHostel:
		return true
	default:
		return false
	}
}

func NoticeCategories() []NoticeCategory {
	return []NoticeCategory{
		CategoryAcademic, CategorySports, CategoryClubs, CategoryWelfare,
		CategoryMarketplace, CategoryLostFound, CategoryDonations, CategoryHostel,
	}
}
