package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Notice       NoticeRepository
	Interest     InterestRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Notice:       NewNoticeRepository(db),
		Interest:     NewInterestRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
