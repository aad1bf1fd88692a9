package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"notice-board/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	CreateBatch(ctx context.Context, notifs []domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const insertNotification = `
	INSERT INTO notifications (notification_id, recipient_id, message, link, type, notice_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at`

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	return r.db.QueryRowxContext(ctx, insertNotification,
		notif.ID, notif.RecipientID, notif.Message, notif.Link, notif.Type, notif.NoticeID,
	).Scan(&notif.CreatedAt)
}

// CreateBatch inserts all rows of one fan-out in a single transaction, so a
// partial fan-out never leaves a half-notified recipient set behind.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifs []domain.Notification) error {
	if len(notifs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range notifs {
		n := &notifs[i]
		err := tx.QueryRowxContext(ctx, insertNotification,
			n.ID, n.RecipientID, n.Message, n.Link, n.Type, n.NoticeID,
		).Scan(&n.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &notifications, query, recipientID, limit)
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}

// MarkAsRead only touches rows owned by the recipient. Marking an
// already-read notification succeeds and returns the row unchanged.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE notification_id = $1 AND recipient_id = $2
		RETURNING *`

	err := r.db.GetContext(ctx, &notif, query, id, recipientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}
