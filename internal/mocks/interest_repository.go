package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"notice-board/internal/domain"
)

type InterestRepository struct {
	mock.Mock
}

func (m *InterestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}

func (m *InterestRepository) Get(ctx context.Context, userID, noticeID uuid.UUID, interestType domain.InterestType) (*domain.Interest, error) {
	args := m.Called(ctx, userID, noticeID, interestType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interest), args.Error(1)
}

func (m *InterestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *InterestRepository) ListFollowers(ctx context.Context, noticeID uuid.UUID) ([]domain.InterestFollower, error) {
	args := m.Called(ctx, noticeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestFollower), args.Error(1)
}
