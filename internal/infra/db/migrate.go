package db

import "database/sql"

// MigrateUp creates the pipeline schema: articles, the processing queue, clusters
// and their membership links, the system_status singleton, and the audit tables.
// Statements use CREATE TABLE IF NOT EXISTS so repeated calls are safe.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id              SERIAL PRIMARY KEY,
    url             TEXT NOT NULL UNIQUE,
    original_title  TEXT,
    generated_title TEXT,
    excerpt         TEXT,
    content         TEXT,
    source_domain   TEXT,
    status          VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    processed_at    TIMESTAMPTZ,
    CHECK (status IN ('pending', 'processing', 'completed', 'failed'))
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS processing_queue (
    id            SERIAL PRIMARY KEY,
    article_id    INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    priority      INTEGER NOT NULL DEFAULT 1,
    status        VARCHAR(20) NOT NULL DEFAULT 'queued',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    started_at    TIMESTAMPTZ,
    completed_at  TIMESTAMPTZ,
    error_message TEXT,
    CHECK (status IN ('queued', 'processing', 'completed', 'failed'))
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS clusters (
    id            SERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    summary       TEXT,
    article_count INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS article_clusters (
    article_id       INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    cluster_id       INTEGER NOT NULL REFERENCES clusters(id) ON DELETE CASCADE,
    similarity_score DOUBLE PRECISION NOT NULL,
    added_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (article_id, cluster_id),
    CHECK (similarity_score >= 0 AND similarity_score <= 1)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS system_status (
    status_id              SMALLINT PRIMARY KEY DEFAULT 1,
    last_processed_article INTEGER,
    total_articles         BIGINT NOT NULL DEFAULT 0,
    total_clusters         BIGINT NOT NULL DEFAULT 0,
    last_activity          TIMESTAMPTZ,
    is_running             BOOLEAN NOT NULL DEFAULT FALSE,
    CHECK (status_id = 1)
)`); err != nil {
		return err
	}
	if _, err := db.Exec(`
INSERT INTO system_status (status_id) VALUES (1)
ON CONFLICT (status_id) DO NOTHING`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cluster_evaluations (
    id           SERIAL PRIMARY KEY,
    cluster_id   INTEGER NOT NULL REFERENCES clusters(id) ON DELETE CASCADE,
    metrics_json JSONB NOT NULL,
    label        VARCHAR(20) NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (label IN ('correct', 'mixed', 'duplicate', 'split_needed', 'should_merge'))
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cluster_feedback (
    id            SERIAL PRIMARY KEY,
    cluster_id    INTEGER NOT NULL REFERENCES clusters(id) ON DELETE CASCADE,
    feedback_text TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cluster_params_history (
    id                   SERIAL PRIMARY KEY,
    similarity_threshold DOUBLE PRECISION NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_processing_queue_status ON processing_queue(status, priority DESC, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_article_clusters_cluster_id ON article_clusters(cluster_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cluster_evaluations_cluster_id ON cluster_evaluations(cluster_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Optional semantic-similarity signal (ss4.4 Step 3, weight 0 by default):
	// errors ignored since pgvector may not be installed on the target instance
	// and nothing in this pipeline requires it to function.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`)
	_, _ = db.Exec(`
CREATE TABLE IF NOT EXISTS article_embeddings (
    article_id INTEGER PRIMARY KEY REFERENCES articles(id) ON DELETE CASCADE,
    model      VARCHAR(100) NOT NULL,
    embedding  vector(1536),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	_, _ = db.Exec(`
CREATE INDEX IF NOT EXISTS idx_article_embeddings_vector
    ON article_embeddings USING ivfflat (embedding vector_cosine_ops)
    WITH (lists = 100)`)

	return nil
}

// MigrateDown drops the embedding table only; the core pipeline tables are
// never dropped by an automated migration.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_article_embeddings_vector`,
		`DROP TABLE IF EXISTS article_embeddings CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
