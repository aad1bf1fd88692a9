package notice

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"notice-board/internal/domain"
	"notice-board/internal/repository"
)

var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status must be published or rejected")
	ErrNotAuthor         = errors.New("only the author or an admin may modify this notice")
	ErrPublishedLocked   = errors.New("published notices cannot be modified by non-admins")
	ErrAccessDenied      = errors.New("access denied")
)

const (
	publishedCacheKey = "notices:published"
	publishedCacheTTL = 5 * time.Minute
)

// FanoutProducer hands fan-out side effects to the work queue. Enqueue
// failures are logged and never surfaced to the requester.
type FanoutProducer interface {
	EnqueuePublish(ctx context.Context, noticeID uuid.UUID) error
	EnqueueUpdate(ctx context.Context, noticeID uuid.UUID) error
}

// ListQuery carries the raw category/status query parameters; the service
// decides what the requester's role lets them mean.
type ListQuery struct {
	Category string
	Status   string
}

type Service interface {
	List(ctx context.Context, requester *domain.User, query ListQuery) ([]domain.Notice, error)
	GetByID(ctx context.Context, requester *domain.User, id uuid.UUID) (*domain.Notice, error)
	Create(ctx context.Context, requester *domain.User, input domain.CreateNoticeInput) (*domain.Notice, error)
	Update(ctx context.Context, requester *domain.User, id uuid.UUID, input domain.UpdateNoticeInput) (*domain.Notice, error)
	UpdateStatus(ctx context.Context, requester *domain.User, id uuid.UUID, status string) (*domain.Notice, error)
	Delete(ctx context.Context, requester *domain.User, id uuid.UUID) error
}

type service struct {
	noticeRepo repository.NoticeRepository
	redis      *redis.Client
	producer   FanoutProducer
}

func NewService(noticeRepo repository.NoticeRepository, redis *redis.Client, producer FanoutProducer) Service {
	return &service{
		noticeRepo: noticeRepo,
		redis:      redis,
		producer:   producer,
	}
}

// buildFilter compiles the visibility rules into a store predicate.
// Precedence: explicit category, then explicit status (admin/moderator
// only; students' status requests are silently ignored), then the
// role default.
func buildFilter(requester *domain.User, query ListQuery) (domain.NoticeFilter, error) {
	var filter domain.NoticeFilter

	if query.Category != "" {
		category := domain.NoticeCategory(query.Category)
		if !category.IsValid() {
			return filter, ErrInvalidCategory
		}
		filter.Category = &category
	}

	statusRequested := false
	if query.Status != "" && requester.HasRole("moderator") {
		status := domain.NoticeStatus(query.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
		statusRequested = true
	}

	switch requester.Role {
	case domain.RoleStudent:
		published := domain.StatusPublished
		filter.Status = &published
	case domain.RoleModerator:
		if !statusRequested {
			ownerID := requester.ID
			filter.OwnerOrPublished = &ownerID
		}
	case domain.RoleAdmin:
		// Full visibility.
	}

	return filter, nil
}

func (s *service) List(ctx context.Context, requester *domain.User, query ListQuery) ([]domain.Notice, error) {
	filter, err := buildFilter(requester, query)
	if err != nil {
		return nil, err
	}

	// The published-only listing with no category narrowing is the hot
	// path (every student's default view); serve it through the cache.
	cacheable := filter.Category == nil && filter.OwnerOrPublished == nil &&
		filter.Status != nil && *filter.Status == domain.StatusPublished

	if cacheable && s.redis != nil {
		if cached, err := s.redis.Get(ctx, publishedCacheKey).Result(); err == nil {
			var notices []domain.Notice
			if json.Unmarshal([]byte(cached), &notices) == nil {
				return notices, nil
			}
		}
	}

	notices, err := s.noticeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable && s.redis != nil {
		if payload, err := json.Marshal(notices); err == nil {
			_ = s.redis.Set(ctx, publishedCacheKey, payload, publishedCacheTTL).Err()
		}
	}

	return notices, nil
}

func (s *service) GetByID(ctx context.Context, requester *domain.User, id uuid.UUID) (*domain.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, domain.ErrNoticeNotFound
	}

	// Access denied, not 404: students may learn the notice exists but
	// never its content before publication.
	if requester.Role == domain.RoleStudent && notice.Status != domain.StatusPublished {
		return nil, ErrAccessDenied
	}

	return notice, nil
}

func validateCreate(input domain.CreateNoticeInput) error {
	var violations []string
	if input.Title == "" {
		violations = append(violations, "Title is required")
	} else if len(input.Title) > 200 {
		violations = append(violations, "Title cannot exceed 200 characters")
	}
	if input.Content == "" {
		violations = append(violations, "Content is required")
	}
	if input.Category == "" {
		violations = append(violations, "Category is required")
	} else if !domain.NoticeCategory(input.Category).IsValid() {
		violations = append(violations, "Category is not a recognized notice category")
	}
	if input.Date == nil {
		violations = append(violations, "Date is required")
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func (s *service) Create(ctx context.Context, requester *domain.User, input domain.CreateNoticeInput) (*domain.Notice, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if requester.Role == domain.RoleAdmin {
		status = domain.StatusPublished
	}

	notice := &domain.Notice{
		ID:       uuid.New(),
		Title:    input.Title,
		Content:  input.Content,
		Category: domain.NoticeCategory(input.Category),
		Date:     *input.Date,
		Status:   status,
		AuthorID: requester.ID,
	}

	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if status == domain.StatusPublished {
		if err := s.producer.EnqueuePublish(ctx, notice.ID); err != nil {
			log.Printf("Failed to enqueue publish fan-out for notice %s: %v", notice.ID, err)
		}
	}

	return s.noticeRepo.GetByID(ctx, notice.ID)
}

func (s *service) Update(ctx context.Context, requester *domain.User, id uuid.UUID, input domain.UpdateNoticeInput) (*domain.Notice, error) {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, domain.ErrNoticeNotFound
	}

	isAdmin := requester.Role == domain.RoleAdmin
	if !isAdmin && notice.AuthorID != requester.ID {
		return nil, ErrNotAuthor
	}
	if !isAdmin && notice.Status == domain.StatusPublished {
		return nil, ErrPublishedLocked
	}

	var violations []string
	if input.Title != nil {
		if *input.Title == "" {
			violations = append(violations, "Title cannot be empty")
		} else if len(*input.Title) > 200 {
			violations = append(violations, "Title cannot exceed 200 characters")
		} else {
			notice.Title = *input.Title
		}
	}
	if input.Content != nil {
		if *input.Content == "" {
			violations = append(violations, "Content cannot be empty")
		} else {
			notice.Content = *input.Content
		}
	}
	if input.Category != nil {
		category := domain.NoticeCategory(*input.Category)
		if !category.IsValid() {
			violations = append(violations, "Category is not a recognized notice category")
		} else {
			notice.Category = category
		}
	}
	if input.Date != nil {
		notice.Date = *input.Date
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	// Any non-admin edit goes back through review, even when nothing
	// status-relevant changed.
	if !isAdmin {
		notice.Status = domain.StatusPending
	}

	if err := s.noticeRepo.Update(ctx, notice); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if err := s.producer.EnqueueUpdate(ctx, notice.ID); err != nil {
		log.Printf("Failed to enqueue update fan-out for notice %s: %v", notice.ID, err)
	}

	return s.noticeRepo.GetByID(ctx, notice.ID)
}

func (s *service) UpdateStatus(ctx context.Context, requester *domain.User, id uuid.UUID, status string) (*domain.Notice, error) {
	target := domain.NoticeStatus(status)
	if !target.IsReviewOutcome() {
		return nil, ErrInvalidTransition
	}

	notice, err := s.noticeRepo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	// Republishing broadcasts again; first publish and re-publish are
	// deliberately not distinguished.
	if target == domain.StatusPublished {
		if err := s.producer.EnqueuePublish(ctx, notice.ID); err != nil {
			log.Printf("Failed to enqueue publish fan-out for notice %s: %v", notice.ID, err)
		}
	}

	return notice, nil
}

func (s *service) Delete(ctx context.Context, requester *domain.User, id uuid.UUID) error {
	notice, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notice == nil {
		return domain.ErrNoticeNotFound
	}

	isAdmin := requester.Role == domain.RoleAdmin
	if !isAdmin && notice.AuthorID != requester.ID {
		return ErrNotAuthor
	}
	if !isAdmin && notice.Status == domain.StatusPublished {
		return ErrPublishedLocked
	}

	if err := s.noticeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		if err := s.redis.Del(ctx, publishedCacheKey).Err(); err != nil {
			log.Printf("Failed to invalidate notice cache: %v", err)
		}
	}
}
