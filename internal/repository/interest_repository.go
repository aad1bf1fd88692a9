package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"notice-board/internal/domain"
)

type InterestRepository interface {
	Create(ctx context.Context, interest *domain.Interest) error
	Get(ctx context.Context, userID, noticeID uuid.UUID, interestType domain.InterestType) (*domain.Interest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListFollowers(ctx context.Context, noticeID uuid.UUID) ([]domain.InterestFollower, error)
}

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	query := `
		INSERT INTO interests (interest_id, user_id, notice_id, type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		interest.ID, interest.UserID, interest.NoticeID, interest.Type,
	).Scan(&interest.CreatedAt)

	// A racing duplicate toggle trips the (user_id, notice_id, type)
	// unique index; surface it as a conflict.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateInterest
	}
	return err
}

func (r *interestRepository) Get(ctx context.Context, userID, noticeID uuid.UUID, interestType domain.InterestType) (*domain.Interest, error) {
	var interest domain.Interest
	query := `SELECT * FROM interests WHERE user_id = $1 AND notice_id = $2 AND type = $3`

	err := r.db.GetContext(ctx, &interest, query, userID, noticeID, interestType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM interests WHERE interest_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ListFollowers returns every interest holder on a notice, of either type,
// joined with their email for the update fan-out.
func (r *interestRepository) ListFollowers(ctx context.Context, noticeID uuid.UUID) ([]domain.InterestFollower, error) {
	var followers []domain.InterestFollower
	query := `
		SELECT i.user_id, u.email, i.type
		FROM interests i
		INNER JOIN users u ON i.user_id = u.user_id
		WHERE i.notice_id = $1
		ORDER BY i.created_at`

	err := r.db.SelectContext(ctx, &followers, query, noticeID)
	return followers, err
}
