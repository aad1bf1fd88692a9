package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"notice-board/internal/domain"
	"notice-board/internal/repository"
	"notice-board/internal/service/email"
)

// feedLimit caps the notification listing to the latest entries.
const feedLimit = 20

type Service interface {
	List(ctx context.Context, recipientID uuid.UUID) (*domain.NotificationFeed, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error

	// FanoutPublish broadcasts a published notice to every student.
	FanoutPublish(ctx context.Context, noticeID uuid.UUID) error
	// FanoutUpdate notifies every interest holder of an edited notice.
	FanoutUpdate(ctx context.Context, noticeID uuid.UUID) error
}

type service struct {
	notifRepo    repository.NotificationRepository
	userRepo     repository.UserRepository
	interestRepo repository.InterestRepository
	noticeRepo   repository.NoticeRepository
	emailSvc     email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	interestRepo repository.InterestRepository,
	noticeRepo repository.NoticeRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo:    notifRepo,
		userRepo:     userRepo,
		interestRepo: interestRepo,
		noticeRepo:   noticeRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID) (*domain.NotificationFeed, error) {
	notifications, err := s.notifRepo.ListByRecipient(ctx, recipientID, feedLimit)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationFeed{
		Notifications: notifications,
		UnreadCount:   unreadCount,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error) {
	return s.notifRepo.MarkAsRead(ctx, id, recipientID)
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, recipientID)
}

func (s *service) FanoutPublish(ctx context.Context, noticeID uuid.UUID) error {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("failed to load notice %s: %w", noticeID, err)
	}
	if notice == nil {
		return fmt.Errorf("notice %s no longer exists", noticeID)
	}

	students, err := s.userRepo.ListByRole(ctx, domain.RoleStudent)
	if err != nil {
		return fmt.Errorf("failed to fetch students for notice %s: %w", noticeID, err)
	}
	if len(students) == 0 {
		return nil
	}

	notifications := make([]domain.Notification, len(students))
	emails := make([]string, 0, len(students))
	for i, student := range students {
		notifications[i] = domain.Notification{
			ID:          uuid.New(),
			RecipientID: student.ID,
			Message:     fmt.Sprintf("New Notice: %s", notice.Title),
			Link:        "/",
			Type:        domain.NotifImportant,
			NoticeID:    &notice.ID,
		}
		if student.Email != "" {
			emails = append(emails, student.Email)
		}
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to insert notifications for notice %s: %w", noticeID, err)
	}

	if err := s.emailSvc.SendNoticePublished(ctx, emails, notice); err != nil {
		log.Printf("Failed to send publish emails for notice %s: %v", noticeID, err)
	}

	return nil
}

func (s *service) FanoutUpdate(ctx context.Context, noticeID uuid.UUID) error {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("failed to load notice %s: %w", noticeID, err)
	}
	if notice == nil {
		return fmt.Errorf("notice %s no longer exists", noticeID)
	}

	followers, err := s.interestRepo.ListFollowers(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("failed to fetch followers for notice %s: %w", noticeID, err)
	}
	if len(followers) == 0 {
		return nil
	}

	notifications := make([]domain.Notification, len(followers))
	reminderEmails := []string{}
	for i, follower := range followers {
		notifType := domain.NotifInterest
		if follower.Type == domain.InterestRemindMe {
			notifType = domain.NotifReminder
			if follower.Email != "" {
				reminderEmails = append(reminderEmails, follower.Email)
			}
		}
		notifications[i] = domain.Notification{
			ID:          uuid.New(),
			RecipientID: follower.UserID,
			Message:     fmt.Sprintf("Update: The notice %q has been updated.", notice.Title),
			Link:        "/",
			Type:        notifType,
			NoticeID:    &notice.ID,
		}
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to insert notifications for notice %s: %w", noticeID, err)
	}

	if err := s.emailSvc.SendNoticeUpdated(ctx, reminderEmails, notice); err != nil {
		log.Printf("Failed to send update emails for notice %s: %v", noticeID, err)
	}

	return nil
}
