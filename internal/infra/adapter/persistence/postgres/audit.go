package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AMStarks/beacon/internal/domain/entity"
)

func (s *Store) UpsertClusterEvaluation(ctx context.Context, eval entity.ClusterEvaluation) error {
	const query = `
INSERT INTO cluster_evaluations (cluster_id, metrics_json, label)
VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, eval.ClusterID, eval.MetricsJSON, string(eval.Label)); err != nil {
		return fmt.Errorf("UpsertClusterEvaluation: %w", err)
	}
	return nil
}

func (s *Store) InsertClusterFeedback(ctx context.Context, feedback entity.ClusterFeedback) error {
	const query = `
INSERT INTO cluster_feedback (cluster_id, feedback_text)
VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, feedback.ClusterID, feedback.FeedbackText); err != nil {
		return fmt.Errorf("InsertClusterFeedback: %w", err)
	}
	return nil
}

// SaveClusterParams records a proposed clustering threshold. The most recent
// row is read back through GetCurrentClusterParams, which the clusterer uses
// as its breaking-article acceptance threshold.
func (s *Store) SaveClusterParams(ctx context.Context, params entity.ClusterParams) error {
	const query = `
INSERT INTO cluster_params_history (similarity_threshold)
VALUES ($1)`
	if _, err := s.db.ExecContext(ctx, query, params.SimilarityThreshold); err != nil {
		return fmt.Errorf("SaveClusterParams: %w", err)
	}
	return nil
}

func (s *Store) GetCurrentClusterParams(ctx context.Context) (*entity.ClusterParams, error) {
	const query = `
SELECT id, similarity_threshold, created_at
FROM cluster_params_history
ORDER BY created_at DESC
LIMIT 1`
	var p entity.ClusterParams
	err := s.db.QueryRowContext(ctx, query).Scan(&p.ID, &p.SimilarityThreshold, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetCurrentClusterParams: %w", err)
	}
	return &p, nil
}
