package postgres

import (
	"context"
	"fmt"

	"github.com/AMStarks/beacon/internal/domain/entity"
	"github.com/AMStarks/beacon/internal/repository"
)

func (s *Store) CreateCluster(ctx context.Context, title, summary string) (int64, error) {
	const query = `
INSERT INTO clusters (title, summary)
VALUES ($1, $2)
RETURNING id`
	var id int64
	if err := s.db.QueryRowContext(ctx, query, title, summary).Scan(&id); err != nil {
		return 0, fmt.Errorf("CreateCluster: %w", err)
	}
	return id, nil
}

func (s *Store) AddToCluster(ctx context.Context, articleID, clusterID int64, similarity float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AddToCluster: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertQuery = `
INSERT INTO article_clusters (article_id, cluster_id, similarity_score)
VALUES ($1, $2, $3)
ON CONFLICT (article_id, cluster_id) DO UPDATE SET similarity_score = EXCLUDED.similarity_score`
	if _, err := tx.ExecContext(ctx, insertQuery, articleID, clusterID, similarity); err != nil {
		return fmt.Errorf("AddToCluster: insert: %w", err)
	}

	const updateCountQuery = `
UPDATE clusters
SET article_count = (SELECT COUNT(*) FROM article_clusters WHERE cluster_id = $1),
    updated_at = now()
WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateCountQuery, clusterID); err != nil {
		return fmt.Errorf("AddToCluster: update count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("AddToCluster: Commit: %w", err)
	}
	return nil
}

func (s *Store) GetArticleClusters(ctx context.Context, articleID int64) ([]entity.Cluster, error) {
	const query = `
SELECT c.id, c.title, c.summary, c.article_count, c.created_at, c.updated_at
FROM clusters c
INNER JOIN article_clusters ac ON ac.cluster_id = c.id
WHERE ac.article_id = $1
ORDER BY c.updated_at DESC`
	rows, err := s.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("GetArticleClusters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	clusters := make([]entity.Cluster, 0, 4)
	for rows.Next() {
		var c entity.Cluster
		if err := rows.Scan(&c.ID, &c.Title, &c.Summary, &c.ArticleCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("GetArticleClusters: Scan: %w", err)
		}
		clusters = append(clusters, c)
	}
	return clusters, rows.Err()
}

func (s *Store) GetClusterArticles(ctx context.Context, clusterID int64) ([]entity.Article, error) {
	const query = `
SELECT a.id, a.url, a.original_title, a.generated_title, a.excerpt, a.content, a.source_domain,
       a.status, a.created_at, a.updated_at, a.processed_at
FROM articles a
INNER JOIN article_clusters ac ON ac.article_id = a.id
WHERE ac.cluster_id = $1
ORDER BY a.created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, clusterID)
	if err != nil {
		return nil, fmt.Errorf("GetClusterArticles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, 8)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("GetClusterArticles: Scan: %w", err)
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (s *Store) GetClusters(ctx context.Context, limit int) ([]repository.ClusterWithArticles, error) {
	const query = `
SELECT id, title, summary, article_count, created_at, updated_at
FROM clusters
ORDER BY updated_at DESC
LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("GetClusters: %w", err)
	}
	clusters := make([]entity.Cluster, 0, limit)
	for rows.Next() {
		var c entity.Cluster
		if err := rows.Scan(&c.ID, &c.Title, &c.Summary, &c.ArticleCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("GetClusters: Scan: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("GetClusters: rows.Err: %w", err)
	}
	_ = rows.Close()

	result := make([]repository.ClusterWithArticles, 0, len(clusters))
	for _, c := range clusters {
		articles, err := s.GetClusterArticles(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("GetClusters: %w", err)
		}
		result = append(result, repository.ClusterWithArticles{Cluster: c, Articles: articles})
	}
	return result, nil
}
