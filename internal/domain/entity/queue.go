package entity

import "time"

// QueueStatus is the lifecycle state of a QueueItem.
type QueueStatus string

const (
	QueueStatusQueued     QueueStatus = "queued"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusFailed     QueueStatus = "failed"
)

// QueueItem represents one article's position in the processing queue.
// Exactly one transition from queued to processing may occur per queue_id;
// the Store's claim operation is the sole enforcer of that invariant.
type QueueItem struct {
	ID           int64
	ArticleID    int64
	Priority     int
	Status       QueueStatus
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage string
}
