package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type FanoutProducer struct {
	mock.Mock
}

func (m *FanoutProducer) EnqueuePublish(ctx context.Context, noticeID uuid.UUID) error {
	args := m.Called(ctx, noticeID)
	return args.Error(0)
}

func (m *FanoutProducer) EnqueueUpdate(ctx context.Context, noticeID uuid.UUID) error {
	args := m.Called(ctx, noticeID)
	return args.Error(0)
}
