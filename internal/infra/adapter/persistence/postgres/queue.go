package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
)

func (s *Store) Enqueue(ctx context.Context, articleID int64, priority int) (int64, error) {
	const query = `
INSERT INTO processing_queue (article_id, priority)
VALUES ($1, $2)
RETURNING id`
	var id int64
	if err := s.db.QueryRowContext(ctx, query, articleID, priority).Scan(&id); err != nil {
		return 0, fmt.Errorf("Enqueue: %w", err)
	}
	return id, nil
}

// ClaimNextQueueItem claims the oldest highest-priority queued row using
// SELECT ... FOR UPDATE SKIP LOCKED so concurrent processors never claim the
// same row twice.
func (s *Store) ClaimNextQueueItem(ctx context.Context) (*entity.QueueItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ClaimNextQueueItem: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const selectQuery = `
SELECT id, article_id, priority, status, created_at, started_at, completed_at, error_message
FROM processing_queue
WHERE status = 'queued'
ORDER BY priority DESC, created_at ASC
LIMIT 1
FOR UPDATE SKIP LOCKED`

	var item entity.QueueItem
	err = tx.QueryRowContext(ctx, selectQuery).Scan(&item.ID, &item.ArticleID, &item.Priority,
		&item.Status, &item.CreatedAt, &item.StartedAt, &item.CompletedAt, &item.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrQueueEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("ClaimNextQueueItem: Scan: %w", err)
	}

	const updateQuery = `
UPDATE processing_queue SET status = 'processing', started_at = now()
WHERE id = $1
RETURNING started_at`
	if err := tx.QueryRowContext(ctx, updateQuery, item.ID).Scan(&item.StartedAt); err != nil {
		return nil, fmt.Errorf("ClaimNextQueueItem: claim: %w", err)
	}
	item.Status = entity.QueueStatusProcessing

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ClaimNextQueueItem: Commit: %w", err)
	}
	return &item, nil
}

func (s *Store) CompleteQueueItem(ctx context.Context, queueID int64, success bool, errMsg string) error {
	status := entity.QueueStatusCompleted
	if !success {
		status = entity.QueueStatusFailed
	}
	const query = `
UPDATE processing_queue
SET status = $1, completed_at = now(), error_message = $2
WHERE id = $3`
	res, err := s.db.ExecContext(ctx, query, string(status), nullableString(errMsg), queueID)
	if err != nil {
		return fmt.Errorf("CompleteQueueItem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// ResetStaleProcessing returns queue items stuck in processing for longer
// than olderThan back to queued, for recovery after a crashed processor.
func (s *Store) ResetStaleProcessing(ctx context.Context, olderThan time.Duration) (int, error) {
	const query = `
UPDATE processing_queue
SET status = 'queued', started_at = NULL
WHERE status = 'processing' AND started_at < $1`
	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ResetStaleProcessing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ResetStaleProcessing: RowsAffected: %w", err)
	}
	return int(n), nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
