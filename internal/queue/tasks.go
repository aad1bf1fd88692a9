package queue

import (
	"github.com/google/uuid"
)

const (
	TaskNoticePublish = "notice:publish"
	TaskNoticeUpdate  = "notice:update"
)

// NoticeEventPayload is the task body for both fan-out kinds; the worker
// re-reads the notice so the fan-out always sees the committed row.
type NoticeEventPayload struct {
	NoticeID uuid.UUID `json:"notice_id"`
}
