// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects -- articles, clusters, queue items, and the
// audit trail that feeds clusterer tuning -- along with their validation rules and errors.
package entity

import "time"

// ArticleStatus is the lifecycle state of an Article.
type ArticleStatus string

const (
	ArticleStatusPending    ArticleStatus = "pending"
	ArticleStatusProcessing ArticleStatus = "processing"
	ArticleStatusCompleted  ArticleStatus = "completed"
	ArticleStatusFailed     ArticleStatus = "failed"
)

// Article represents a single extracted document derived from one submitted URL.
// It moves through pending -> processing -> (completed | failed) and, once completed,
// is never re-extracted -- only re-examined by the clustering sweep.
type Article struct {
	ID             int64
	URL            string
	OriginalTitle  string
	GeneratedTitle string
	Excerpt        string
	Content        string
	SourceDomain   string
	Status         ArticleStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ProcessedAt    *time.Time
}

// IsTerminal reports whether the article has left the pipeline (successfully or not).
func (a *Article) IsTerminal() bool {
	return a.Status == ArticleStatusCompleted || a.Status == ArticleStatusFailed
}

// CombinedText builds the text the clusterer scores candidates against:
// generated title + excerpt + up to the first 1500 characters of content.
func (a *Article) CombinedText() string {
	preview := a.Content
	if len(preview) > 1500 {
		preview = preview[:1500]
	}
	return a.GeneratedTitle + " " + a.Excerpt + " " + preview
}
