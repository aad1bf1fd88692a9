package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"notice-board/internal/config"
)

// Producer enqueues fan-out tasks. Enqueue errors are the caller's to log;
// they must never fail the notice write that triggered them.
type Producer struct {
	client *asynq.Client
}

func redisConnOpt(cfg *config.Config) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{
		Addr:     opt.Addr,
		Username: opt.Username,
		Password: opt.Password,
		DB:       opt.DB,
	}, nil
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	connOpt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &Producer{client: asynq.NewClient(connOpt)}, nil
}

func (p *Producer) EnqueuePublish(ctx context.Context, noticeID uuid.UUID) error {
	return p.enqueue(ctx, TaskNoticePublish, noticeID)
}

func (p *Producer) EnqueueUpdate(ctx context.Context, noticeID uuid.UUID) error {
	return p.enqueue(ctx, TaskNoticeUpdate, noticeID)
}

func (p *Producer) enqueue(ctx context.Context, taskType string, noticeID uuid.UUID) error {
	payload, err := json.Marshal(NoticeEventPayload{NoticeID: noticeID})
	if err != nil {
		return err
	}

	// No retries: the notification batch insert is transactional, but a
	// retry after a partial email send would duplicate deliveries.
	task := asynq.NewTask(taskType, payload, asynq.MaxRetry(0))
	_, err = p.client.EnqueueContext(ctx, task)
	return err
}

func (p *Producer) Close() error {
	return p.client.Close()
}
