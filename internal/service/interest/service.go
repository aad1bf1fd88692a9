package interest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"notice-board/internal/domain"
	"notice-board/internal/repository"
	"notice-board/internal/service/email"
)

type Service interface {
	// Toggle flips the requester's flag of the given type on a notice:
	// an existing row is removed, a missing one created.
	Toggle(ctx context.Context, requester *domain.User, noticeID uuid.UUID, interestType domain.InterestType) (*domain.ToggleResult, error)
}

type service struct {
	interestRepo repository.InterestRepository
	noticeRepo   repository.NoticeRepository
	notifRepo    repository.NotificationRepository
	emailSvc     email.Service
}

func NewService(
	interestRepo repository.InterestRepository,
	noticeRepo repository.NoticeRepository,
	notifRepo repository.NotificationRepository,
	emailSvc email.Service,
) Service {
	return &service{
		interestRepo: interestRepo,
		noticeRepo:   noticeRepo,
		notifRepo:    notifRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) Toggle(ctx context.Context, requester *domain.User, noticeID uuid.UUID, interestType domain.InterestType) (*domain.ToggleResult, error) {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, domain.ErrNoticeNotFound
	}

	existing, err := s.interestRepo.Get(ctx, requester.ID, noticeID, interestType)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.interestRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &domain.ToggleResult{
			Message: removedMessage(interestType),
			Status:  domain.ToggleRemoved,
		}, nil
	}

	interest := &domain.Interest{
		ID:       uuid.New(),
		UserID:   requester.ID,
		NoticeID: noticeID,
		Type:     interestType,
	}
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: requester.ID,
		Message:     confirmationMessage(interestType, notice.Title),
		Link:        "/",
		Type:        notificationType(interestType),
		NoticeID:    &notice.ID,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create toggle confirmation for notice %s: %v", noticeID, err)
	}

	if interestType == domain.InterestRemindMe {
		go func(toEmail string, notice *domain.Notice) {
			if err := s.emailSvc.SendReminderConfirmation(context.Background(), toEmail, notice); err != nil {
				log.Printf("Failed to send reminder confirmation for notice %s: %v", notice.ID, err)
			}
		}(requester.Email, notice)
	}

	return &domain.ToggleResult{
		Message: addedMessage(interestType),
		Status:  domain.ToggleAdded,
	}, nil
}

func notificationType(t domain.InterestType) domain.NotificationType {
	if t == domain.InterestRemindMe {
		return domain.NotifReminder
	}
	return domain.NotifInterest
}

func confirmationMessage(t domain.InterestType, title string) string {
	if t == domain.InterestRemindMe {
		return fmt.Sprintf("Reminder set for %q. We'll alert you of updates.", title)
	}
	return fmt.Sprintf("You marked %q as interested.", title)
}

func addedMessage(t domain.InterestType) string {
	if t == domain.InterestRemindMe {
		return "Reminder set successfully"
	}
	return "Added to interests"
}

func removedMessage(t domain.InterestType) string {
	if t == domain.InterestRemindMe {
		return "Reminder removed"
	}
	return "Removed from interests"
}
