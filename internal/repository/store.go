// Package repository defines the persistence boundary for the pipeline.
// The Store interface is the sole mutator of durable state; every usecase
// package reaches the database only through it.
package repository

import (
	"context"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
)

// ArticleUpdate is a partial update applied to an article. Nil fields are left
// unchanged; Status, if non-empty, always bumps updated_at.
type ArticleUpdate struct {
	Status         *entity.ArticleStatus
	GeneratedTitle *string
	Excerpt        *string
	Content        *string
	SourceDomain   *string
	ProcessedAt    *time.Time
}

// ClusterWithArticles is a cluster alongside its current member articles,
// used by the feed interface (list_clusters).
type ClusterWithArticles struct {
	Cluster  entity.Cluster
	Articles []entity.Article
}

// Store is the transactional persistence boundary described in spec ss4.1.
// Every method commits (or rolls back) its own transaction; callers never see
// partial effects of a single call.
type Store interface {
	// AddArticle inserts a new article in pending status. If url already exists,
	// it returns the existing article's id and entity.ErrDuplicateURL so callers
	// can treat resubmission as an idempotent success.
	AddArticle(ctx context.Context, url, originalTitle string) (articleID int64, err error)
	UpdateArticle(ctx context.Context, articleID int64, update ArticleUpdate) error
	GetArticle(ctx context.Context, articleID int64) (*entity.Article, error)
	GetRecentArticles(ctx context.Context, limit int, includeProcessing bool) ([]entity.Article, error)
	GetSingletonArticles(ctx context.Context, limit int, since time.Time) ([]entity.Article, error)

	Enqueue(ctx context.Context, articleID int64, priority int) (queueID int64, err error)
	// ClaimNextQueueItem atomically claims the highest-priority oldest queued row.
	// Returns entity.ErrQueueEmpty if there is nothing to claim.
	ClaimNextQueueItem(ctx context.Context) (*entity.QueueItem, error)
	CompleteQueueItem(ctx context.Context, queueID int64, success bool, errMsg string) error
	// ResetStaleProcessing reclaims queue items stuck in processing for longer than
	// olderThan, returning them to queued. Used on processor startup to recover from
	// a crash (spec ss7).
	ResetStaleProcessing(ctx context.Context, olderThan time.Duration) (count int, err error)

	CreateCluster(ctx context.Context, title, summary string) (clusterID int64, err error)
	// AddToCluster upserts membership; repeated identical calls are a no-op beyond
	// the first.
	AddToCluster(ctx context.Context, articleID, clusterID int64, similarity float64) error
	GetArticleClusters(ctx context.Context, articleID int64) ([]entity.Cluster, error)
	GetClusterArticles(ctx context.Context, clusterID int64) ([]entity.Article, error)
	GetClusters(ctx context.Context, limit int) ([]ClusterWithArticles, error)

	UpsertClusterEvaluation(ctx context.Context, eval entity.ClusterEvaluation) error
	InsertClusterFeedback(ctx context.Context, feedback entity.ClusterFeedback) error
	SaveClusterParams(ctx context.Context, params entity.ClusterParams) error
	GetCurrentClusterParams(ctx context.Context) (*entity.ClusterParams, error)

	GetSystemStatus(ctx context.Context) (*entity.SystemStatus, error)
	UpdateSystemStatus(ctx context.Context, update func(*entity.SystemStatus)) error
}
