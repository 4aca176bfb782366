// Package semantic implements the Clusterer's optional sentence-embedding
// similarity signal (spec ss4.4 Step 3), kept as a strictly optional,
// weight-zero-by-default collaborator: a deployment with no embeddings
// table populated, or one that never wires this package in, still fully
// satisfies the clustering contract.
package semantic

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// DefaultQueryTimeout bounds a single pairwise-similarity lookup.
const DefaultQueryTimeout = 5 * time.Second

// PgvectorScorer implements cluster.SemanticScorer against the
// article_embeddings table using pgvector's cosine-distance operator.
type PgvectorScorer struct {
	db *sql.DB
}

// NewPgvectorScorer returns a scorer backed by db. Callers pass it to
// cluster.New only when they've chosen to run an embedding pipeline
// alongside the deterministic pipeline; it is never required.
func NewPgvectorScorer(db *sql.DB) *PgvectorScorer {
	return &PgvectorScorer{db: db}
}

// Similarity returns the cosine similarity between articleIDA and
// articleIDB's stored embeddings. ok is false if either article has no
// row in article_embeddings, which the caller must treat as "signal
// absent", not as a zero similarity.
func (p *PgvectorScorer) Similarity(ctx context.Context, articleIDA, articleIDB int64) (float64, bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	const query = `
SELECT 1 - (a.embedding <=> b.embedding)
FROM article_embeddings a, article_embeddings b
WHERE a.article_id = $1 AND b.article_id = $2`

	var similarity float64
	err := p.db.QueryRowContext(queryCtx, query, articleIDA, articleIDB).Scan(&similarity)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("pgvector similarity lookup: %w", err)
	}
	return similarity, true, nil
}

// Upsert stores or replaces articleID's embedding vector.
func (p *PgvectorScorer) Upsert(ctx context.Context, articleID int64, model string, embedding []float32) error {
	const query = `
INSERT INTO article_embeddings (article_id, model, embedding)
VALUES ($1, $2, $3)
ON CONFLICT (article_id) DO UPDATE SET
	model = EXCLUDED.model,
	embedding = EXCLUDED.embedding`

	_, err := p.db.ExecContext(ctx, query, articleID, model, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("pgvector upsert: %w", err)
	}
	return nil
}
