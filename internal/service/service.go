package service

import (
	"github.com/redis/go-redis/v9"

	"notice-board/internal/config"
	"notice-board/internal/repository"
	"notice-board/internal/service/auth"
	"notice-board/internal/service/email"
	"notice-board/internal/service/interest"
	"notice-board/internal/service/notice"
	"notice-board/internal/service/notification"
)

type Services struct {
	Auth         auth.Service
	Notice       notice.Service
	Interest     interest.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, producer notice.FanoutProducer, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.Interest, repos.Notice, emailService)
	noticeService := notice.NewService(repos.Notice, rdb, producer)
	interestService := interest.NewService(repos.Interest, repos.Notice, repos.Notification, emailService)

	return &Services{
		Auth:         authService,
		Notice:       noticeService,
		Interest:     interestService,
		Notification: notificationService,
		Email:        emailService,
	}
}
