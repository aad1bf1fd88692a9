package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"notice-board/internal/domain"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error)
	List(ctx context.Context, filter domain.NoticeFilter) ([]domain.Notice, error)
	Update(ctx context.Context, notice *domain.Notice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NoticeStatus) (*domain.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepository(db *sqlx.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

const noticeColumns = `
	n.notice_id, n.title, n.content, n.category, n.date, n.status, n.author_id,
	n.created_at, n.updated_at,
	u.user_id, u.university_id, u.name, u.role`

func scanNotice(rows interface {
	Scan(dest ...interface{}) error
}) (*domain.Notice, error) {
	var n domain.Notice
	var author domain.NoticeAuthor
	err := rows.Scan(
		&n.ID, &n.Title, &n.Content, &n.Category, &n.Date, &n.Status, &n.AuthorID,
		&n.CreatedAt, &n.UpdatedAt,
		&author.ID, &author.UniversityID, &author.Name, &author.Role,
	)
	if err != nil {
		return nil, err
	}
	n.Author = &author
	return &n, nil
}

func (r *noticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	query := `
		INSERT INTO notices (notice_id, title, content, category, date, status, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		notice.ID, notice.Title, notice.Content, notice.Category,
		notice.Date, notice.Status, notice.AuthorID,
	).Scan(&notice.CreatedAt, &notice.UpdatedAt)
}

func (r *noticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM notices n
		INNER JOIN users u ON n.author_id = u.user_id
		WHERE n.notice_id = $1`, noticeColumns)

	row := r.db.QueryRowxContext(ctx, query, id)
	notice, err := scanNotice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return notice, nil
}

// List translates a visibility filter into SQL. Results are newest first
// by creation time.
func (r *noticeRepository) List(ctx context.Context, filter domain.NoticeFilter) ([]domain.Notice, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("n.category = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("n.status = $%d", len(args)))
	}
	if filter.OwnerOrPublished != nil {
		args = append(args, domain.StatusPublished, *filter.OwnerOrPublished)
		conditions = append(conditions, fmt.Sprintf("(n.status = $%d OR n.author_id = $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM notices n
		INNER JOIN users u ON n.author_id = u.user_id`, noticeColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY n.created_at DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := []domain.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *notice)
	}

	return notices, rows.Err()
}

func (r *noticeRepository) Update(ctx context.Context, notice *domain.Notice) error {
	query := `
		UPDATE notices
		SET title = $2, content = $3, category = $4, date = $5, status = $6, updated_at = NOW()
		WHERE notice_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		notice.ID, notice.Title, notice.Content, notice.Category, notice.Date, notice.Status,
	).Scan(&notice.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNoticeNotFound
	}
	return err
}

func (r *noticeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NoticeStatus) (*domain.Notice, error) {
	query := `
		UPDATE notices
		SET status = $2, updated_at = NOW()
		WHERE notice_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNoticeNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notices WHERE notice_id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNoticeNotFound
	}
	return nil
}
