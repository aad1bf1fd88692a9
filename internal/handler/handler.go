package handler

import "notice-board/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Notice       *NoticeHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Notice:       NewNoticeHandler(services.Notice, services.Interest),
		Notification: NewNotificationHandler(services.Notification),
	}
}
