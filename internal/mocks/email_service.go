package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notice-board/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNoticePublished(ctx context.Context, to []string, notice *domain.Notice) error {
	args := m.Called(ctx, to, notice)
	return args.Error(0)
}

func (m *EmailService) SendNoticeUpdated(ctx context.Context, to []string, notice *domain.Notice) error {
	args := m.Called(ctx, to, notice)
	return args.Error(0)
}

func (m *EmailService) SendReminderConfirmation(ctx context.Context, to string, notice *domain.Notice) error {
	args := m.Called(ctx, to, notice)
	return args.Error(0)
}
