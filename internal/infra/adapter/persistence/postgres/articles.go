// Package postgres implements repository.Store against a database/sql pool
// backed by the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
	"github.com/AMStarks/beacon/internal/repository"
)

// Store is the Postgres implementation of repository.Store.
type Store struct{ db *sql.DB }

// New returns a Store backed by db.
func New(db *sql.DB) repository.Store {
	return &Store{db: db}
}

func (s *Store) AddArticle(ctx context.Context, url, originalTitle string) (int64, error) {
	const query = `
INSERT INTO articles (url, original_title)
VALUES ($1, $2)
ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
RETURNING id, (xmax = 0) AS inserted`
	var id int64
	var inserted bool
	if err := s.db.QueryRowContext(ctx, query, url, originalTitle).Scan(&id, &inserted); err != nil {
		return 0, fmt.Errorf("AddArticle: %w", err)
	}
	if !inserted {
		return id, entity.ErrDuplicateURL
	}
	return id, nil
}

func (s *Store) UpdateArticle(ctx context.Context, articleID int64, update repository.ArticleUpdate) error {
	sets := []string{"updated_at = now()"}
	args := make([]interface{}, 0, 6)
	paramIndex := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, paramIndex))
		args = append(args, value)
		paramIndex++
	}

	if update.Status != nil {
		addSet("status", string(*update.Status))
	}
	if update.GeneratedTitle != nil {
		addSet("generated_title", *update.GeneratedTitle)
	}
	if update.Excerpt != nil {
		addSet("excerpt", *update.Excerpt)
	}
	if update.Content != nil {
		addSet("content", *update.Content)
	}
	if update.SourceDomain != nil {
		addSet("source_domain", *update.SourceDomain)
	}
	if update.ProcessedAt != nil {
		addSet("processed_at", *update.ProcessedAt)
	}

	query := "UPDATE articles SET " + joinSets(sets) + fmt.Sprintf(" WHERE id = $%d", paramIndex)
	args = append(args, articleID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UpdateArticle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (s *Store) GetArticle(ctx context.Context, articleID int64) (*entity.Article, error) {
	const query = `
SELECT id, url, original_title, generated_title, excerpt, content, source_domain,
       status, created_at, updated_at, processed_at
FROM articles
WHERE id = $1`
	article, err := scanArticle(s.db.QueryRowContext(ctx, query, articleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetArticle: %w", err)
	}
	return article, nil
}

func (s *Store) GetRecentArticles(ctx context.Context, limit int, includeProcessing bool) ([]entity.Article, error) {
	query := `
SELECT id, url, original_title, generated_title, excerpt, content, source_domain,
       status, created_at, updated_at, processed_at
FROM articles
WHERE status = 'completed'`
	if includeProcessing {
		query = `
SELECT id, url, original_title, generated_title, excerpt, content, source_domain,
       status, created_at, updated_at, processed_at
FROM articles
WHERE status IN ('completed', 'processing')`
	}
	query += `
ORDER BY created_at DESC
LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("GetRecentArticles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("GetRecentArticles: Scan: %w", err)
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (s *Store) GetSingletonArticles(ctx context.Context, limit int, since time.Time) ([]entity.Article, error) {
	const query = `
SELECT a.id, a.url, a.original_title, a.generated_title, a.excerpt, a.content, a.source_domain,
       a.status, a.created_at, a.updated_at, a.processed_at
FROM articles a
WHERE a.status = 'completed'
  AND a.created_at >= $1
  AND NOT EXISTS (SELECT 1 FROM article_clusters ac WHERE ac.article_id = a.id)
ORDER BY a.created_at DESC
LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("GetSingletonArticles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("GetSingletonArticles: Scan: %w", err)
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(&a.ID, &a.URL, &a.OriginalTitle, &a.GeneratedTitle, &a.Excerpt,
		&a.Content, &a.SourceDomain, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.ProcessedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
