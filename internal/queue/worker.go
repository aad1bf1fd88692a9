package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"notice-board/internal/config"
	"notice-board/internal/service/notification"
)

// Worker drains fan-out tasks with bounded concurrency, keeping email and
// notification side effects off the request path.
type Worker struct {
	srv      *asynq.Server
	mux      *asynq.ServeMux
	notifSvc notification.Service
}

func NewWorker(cfg *config.Config, notifSvc notification.Service) (*Worker, error) {
	connOpt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, err
	}

	srv := asynq.NewServer(connOpt, asynq.Config{
		Concurrency: cfg.FanoutConcurrency,
	})

	w := &Worker{
		srv:      srv,
		mux:      asynq.NewServeMux(),
		notifSvc: notifSvc,
	}
	w.mux.HandleFunc(TaskNoticePublish, w.handlePublish)
	w.mux.HandleFunc(TaskNoticeUpdate, w.handleUpdate)

	return w, nil
}

func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handlePublish(ctx context.Context, task *asynq.Task) error {
	var payload NoticeEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := w.notifSvc.FanoutPublish(ctx, payload.NoticeID); err != nil {
		log.Printf("Publish fan-out failed for notice %s: %v", payload.NoticeID, err)
	}
	return nil
}

func (w *Worker) handleUpdate(ctx context.Context, task *asynq.Task) error {
	var payload NoticeEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := w.notifSvc.FanoutUpdate(ctx, payload.NoticeID); err != nil {
		log.Printf("Update fan-out failed for notice %s: %v", payload.NoticeID, err)
	}
	return nil
}
