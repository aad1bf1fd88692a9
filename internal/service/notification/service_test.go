package notification_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notice-board/internal/domain"
	"notice-board/internal/mocks"
	"notice-board/internal/service/notification"
)

type fanoutMocks struct {
	notifRepo    *mocks.NotificationRepository
	userRepo     *mocks.UserRepository
	interestRepo *mocks.InterestRepository
	noticeRepo   *mocks.NoticeRepository
	emailSvc     *mocks.EmailService
}

func newFanoutService() (notification.Service, *fanoutMocks) {
	m := &fanoutMocks{
		notifRepo:    new(mocks.NotificationRepository),
		userRepo:     new(mocks.UserRepository),
		interestRepo: new(mocks.InterestRepository),
		noticeRepo:   new(mocks.NoticeRepository),
		emailSvc:     new(mocks.EmailService),
	}
	svc := notification.NewService(m.notifRepo, m.userRepo, m.interestRepo, m.noticeRepo, m.emailSvc)
	return svc, m
}

func publishedNotice() *domain.Notice {
	return &domain.Notice{
		ID:       uuid.New(),
		Title:    "Sports Day",
		Content:  "Annual sports day is on Friday.",
		Category: domain.CategorySports,
		Date:     time.Now(),
		Status:   domain.StatusPublished,
		AuthorID: uuid.New(),
	}
}

func TestFanoutPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("One Notification Per Student And One Email Call", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()
		students := []domain.User{
			{ID: uuid.New(), Email: "a@uni.edu", Role: domain.RoleStudent},
			{ID: uuid.New(), Email: "b@uni.edu", Role: domain.RoleStudent},
			{ID: uuid.New(), Email: "c@uni.edu", Role: domain.RoleStudent},
		}

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.userRepo.On("ListByRole", ctx, domain.RoleStudent).Return(students, nil).Once()
		m.notifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			if len(notifs) != len(students) {
				return false
			}
			for i, notif := range notifs {
				if notif.RecipientID != students[i].ID ||
					notif.Message != fmt.Sprintf("New Notice: %s", n.Title) ||
					notif.Type != domain.NotifImportant ||
					notif.NoticeID == nil || *notif.NoticeID != n.ID {
					return false
				}
			}
			return true
		})).Return(nil).Once()
		m.emailSvc.On("SendNoticePublished", ctx, []string{"a@uni.edu", "b@uni.edu", "c@uni.edu"}, n).
			Return(nil).Once()

		err := svc.FanoutPublish(ctx, n.ID)

		require.NoError(t, err)
		m.notifRepo.AssertExpectations(t)
		m.emailSvc.AssertExpectations(t)
		m.emailSvc.AssertNumberOfCalls(t, "SendNoticePublished", 1)
	})

	t.Run("No Students Means No Work", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.userRepo.On("ListByRole", ctx, domain.RoleStudent).Return([]domain.User{}, nil).Once()

		err := svc.FanoutPublish(ctx, n.ID)

		require.NoError(t, err)
		m.notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		m.emailSvc.AssertNotCalled(t, "SendNoticePublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Email Failure Is Swallowed", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()
		students := []domain.User{{ID: uuid.New(), Email: "a@uni.edu", Role: domain.RoleStudent}}

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.userRepo.On("ListByRole", ctx, domain.RoleStudent).Return(students, nil).Once()
		m.notifRepo.On("CreateBatch", ctx, mock.Anything).Return(nil).Once()
		m.emailSvc.On("SendNoticePublished", ctx, mock.Anything, n).
			Return(assert.AnError).Once()

		err := svc.FanoutPublish(ctx, n.ID)

		assert.NoError(t, err)
	})
}

func TestFanoutUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Reminder Holders Get Reminder Type And Email", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()
		interested := domain.InterestFollower{UserID: uuid.New(), Email: "casual@uni.edu", Type: domain.InterestInterested}
		reminded := domain.InterestFollower{UserID: uuid.New(), Email: "keen@uni.edu", Type: domain.InterestRemindMe}

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.interestRepo.On("ListFollowers", ctx, n.ID).
			Return([]domain.InterestFollower{interested, reminded}, nil).Once()
		m.notifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			if len(notifs) != 2 {
				return false
			}
			expectedMsg := fmt.Sprintf("Update: The notice %q has been updated.", n.Title)
			return notifs[0].RecipientID == interested.UserID &&
				notifs[0].Type == domain.NotifInterest &&
				notifs[0].Message == expectedMsg &&
				notifs[1].RecipientID == reminded.UserID &&
				notifs[1].Type == domain.NotifReminder
		})).Return(nil).Once()
		m.emailSvc.On("SendNoticeUpdated", ctx, []string{"keen@uni.edu"}, n).Return(nil).Once()

		err := svc.FanoutUpdate(ctx, n.ID)

		require.NoError(t, err)
		m.notifRepo.AssertExpectations(t)
		m.emailSvc.AssertExpectations(t)
	})

	t.Run("No Followers Means No Work", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.interestRepo.On("ListFollowers", ctx, n.ID).Return([]domain.InterestFollower{}, nil).Once()

		err := svc.FanoutUpdate(ctx, n.ID)

		require.NoError(t, err)
		m.notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		m.emailSvc.AssertNotCalled(t, "SendNoticeUpdated", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Batch Insert Failure Propagates", func(t *testing.T) {
		svc, m := newFanoutService()
		n := publishedNotice()
		follower := domain.InterestFollower{UserID: uuid.New(), Email: "x@uni.edu", Type: domain.InterestInterested}

		m.noticeRepo.On("GetByID", ctx, n.ID).Return(n, nil).Once()
		m.interestRepo.On("ListFollowers", ctx, n.ID).Return([]domain.InterestFollower{follower}, nil).Once()
		m.notifRepo.On("CreateBatch", ctx, mock.Anything).Return(assert.AnError).Once()

		err := svc.FanoutUpdate(ctx, n.ID)

		assert.Error(t, err)
		m.emailSvc.AssertNotCalled(t, "SendNoticeUpdated", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Feed(t *testing.T) {
	ctx := context.Background()

	t.Run("List Returns Latest With Unread Count", func(t *testing.T) {
		svc, m := newFanoutService()
		recipientID := uuid.New()
		entries := []domain.Notification{
			{ID: uuid.New(), RecipientID: recipientID, Message: "New Notice: Sports Day"},
		}

		m.notifRepo.On("ListByRecipient", ctx, recipientID, 20).Return(entries, nil).Once()
		m.notifRepo.On("CountUnread", ctx, recipientID).Return(int64(5), nil).Once()

		feed, err := svc.List(ctx, recipientID)

		require.NoError(t, err)
		assert.Len(t, feed.Notifications, 1)
		assert.Equal(t, int64(5), feed.UnreadCount)
	})

	t.Run("MarkAsRead Scoped To Recipient", func(t *testing.T) {
		svc, m := newFanoutService()
		recipientID := uuid.New()
		notifID := uuid.New()

		m.notifRepo.On("MarkAsRead", ctx, notifID, recipientID).
			Return(nil, domain.ErrNotificationNotFound).Once()

		_, err := svc.MarkAsRead(ctx, notifID, recipientID)

		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})

	t.Run("MarkAllAsRead Succeeds With Zero Rows", func(t *testing.T) {
		svc, m := newFanoutService()
		recipientID := uuid.New()

		m.notifRepo.On("MarkAllAsRead", ctx, recipientID).Return(nil).Once()

		err := svc.MarkAllAsRead(ctx, recipientID)

		assert.NoError(t, err)
	})
}
