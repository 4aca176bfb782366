package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AMStarks/beacon/internal/domain/entity"
)

func (s *Store) GetSystemStatus(ctx context.Context) (*entity.SystemStatus, error) {
	const query = `
SELECT last_processed_article, total_articles, total_clusters, last_activity, is_running
FROM system_status
WHERE status_id = 1`
	var st entity.SystemStatus
	var lastProcessed sql.NullInt64
	var lastActivity sql.NullTime
	err := s.db.QueryRowContext(ctx, query).
		Scan(&lastProcessed, &st.TotalArticles, &st.TotalClusters, &lastActivity, &st.IsRunning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetSystemStatus: %w", err)
	}
	st.LastProcessedArticle = lastProcessed.Int64
	st.LastActivity = lastActivity.Time
	return &st, nil
}

// UpdateSystemStatus reads the singleton row, applies update in-process, and
// writes the result back inside one transaction.
func (s *Store) UpdateSystemStatus(ctx context.Context, update func(*entity.SystemStatus)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("UpdateSystemStatus: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const selectQuery = `
SELECT last_processed_article, total_articles, total_clusters, last_activity, is_running
FROM system_status
WHERE status_id = 1
FOR UPDATE`
	var st entity.SystemStatus
	var lastProcessed sql.NullInt64
	var lastActivity sql.NullTime
	err = tx.QueryRowContext(ctx, selectQuery).
		Scan(&lastProcessed, &st.TotalArticles, &st.TotalClusters, &lastActivity, &st.IsRunning)
	if err != nil {
		return fmt.Errorf("UpdateSystemStatus: select: %w", err)
	}
	st.LastProcessedArticle = lastProcessed.Int64
	st.LastActivity = lastActivity.Time

	update(&st)

	const updateQuery = `
UPDATE system_status
SET last_processed_article = $1, total_articles = $2, total_clusters = $3,
    last_activity = $4, is_running = $5
WHERE status_id = 1`
	if _, err := tx.ExecContext(ctx, updateQuery,
		nullableInt64(st.LastProcessedArticle), st.TotalArticles, st.TotalClusters,
		st.LastActivity, st.IsRunning); err != nil {
		return fmt.Errorf("UpdateSystemStatus: update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("UpdateSystemStatus: Commit: %w", err)
	}
	return nil
}

func nullableInt64(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
