// Package processor drives the pipeline: claim a queue item, extract,
// normalize, store, cluster, complete. It is grounded on
// `original_source/beacon3/src/article_processor.py`'s
// process_next_article/run_continuous_processor/
// sweep_singletons_for_corroboration, adapted to Go's context/goroutine
// idiom the way the teacher's own cmd/worker wires a cron job.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
	"github.com/AMStarks/beacon/internal/repository"
	"github.com/AMStarks/beacon/internal/usecase/cluster"
	"github.com/AMStarks/beacon/internal/usecase/extract"
	"github.com/AMStarks/beacon/internal/usecase/normalize"
)

// Config controls the processor's loop timing and resource bounds (spec
// ss6's enumerated configuration, ss5's concurrency model).
type Config struct {
	// PollInterval is how long the loop sleeps when the queue is empty.
	PollInterval time.Duration
	// PerArticleDelay throttles throughput after each successfully
	// processed article.
	PerArticleDelay time.Duration
	// WatchdogInterval is the age at which a processing queue item is
	// considered abandoned by a crashed processor.
	WatchdogInterval time.Duration
	// SingletonSweepWindow bounds how far back the singleton sweep looks.
	SingletonSweepWindow time.Duration
	// SingletonSweepLimit bounds how many singletons the sweep re-examines.
	SingletonSweepLimit int
	// SingletonSweepEvery runs the sweep once every N successfully
	// processed articles (0 disables the periodic sweep; callers may
	// still invoke SweepSingletons directly).
	SingletonSweepEvery int
	// ArticleTimeout bounds a single article's end-to-end processing time.
	ArticleTimeout time.Duration
}

// DefaultConfig returns the processor's default timing, matching spec
// ss6's enumerated defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:         5 * time.Second,
		PerArticleDelay:      1 * time.Second,
		WatchdogInterval:     15 * time.Minute,
		SingletonSweepWindow: 72 * time.Hour,
		SingletonSweepLimit:  300,
		SingletonSweepEvery:  50,
		ArticleTimeout:       5 * time.Minute,
	}
}

// Metrics is the subset of observability counters the processor updates.
// Implementations live in internal/infra/worker; nil is a valid no-op.
type Metrics interface {
	RecordArticleProcessed(success bool)
	RecordProcessingDuration(seconds float64)
	RecordClustered(founded bool)
	RecordQueueReset(count int)
	RecordSweep(clustered int)
}

// Processor implements spec ss4.5.
type Processor struct {
	store      repository.Store
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	clusterer  *cluster.Clusterer
	config     Config
	metrics    Metrics

	processedSinceSweep int
}

// New creates a Processor. metrics may be nil.
func New(store repository.Store, extractor *extract.Extractor, normalizer *normalize.Normalizer, clusterer *cluster.Clusterer, config Config, metrics Metrics) *Processor {
	return &Processor{
		store:      store,
		extractor:  extractor,
		normalizer: normalizer,
		clusterer:  clusterer,
		config:     config,
		metrics:    metrics,
	}
}

// Submit adds url to the pipeline at priority, returning the article_id.
// Resubmission of a URL already on file is treated as an idempotent
// success (spec ss6's submission interface).
func (p *Processor) Submit(ctx context.Context, url string, priority int) (int64, error) {
	articleID, err := p.store.AddArticle(ctx, url, "")
	if err != nil && !errors.Is(err, entity.ErrDuplicateURL) {
		return 0, fmt.Errorf("processor: submit: %w", err)
	}
	if errors.Is(err, entity.ErrDuplicateURL) {
		slog.Info("processor: article already submitted, treating as success", slog.String("url", url), slog.Int64("article_id", articleID))
		return articleID, nil
	}
	if _, err := p.store.Enqueue(ctx, articleID, priority); err != nil {
		return 0, fmt.Errorf("processor: enqueue: %w", err)
	}
	return articleID, nil
}

// Run drives the main processing loop until ctx is canceled. It first
// reclaims any queue item left stuck in processing by a prior crashed
// instance (spec ss7's crash-recovery requirement).
func (p *Processor) Run(ctx context.Context) error {
	reclaimed, err := p.store.ResetStaleProcessing(ctx, p.config.WatchdogInterval)
	if err != nil {
		return fmt.Errorf("processor: startup recovery: %w", err)
	}
	if reclaimed > 0 {
		slog.Warn("processor: reclaimed stale processing items on startup", slog.Int("count", reclaimed))
	}
	if p.metrics != nil {
		p.metrics.RecordQueueReset(reclaimed)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := p.ProcessNext(ctx)
		if err != nil {
			slog.Error("processor: error processing next article", slog.Any("error", err))
		}
		if !processed {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.PollInterval):
			}
			continue
		}

		p.processedSinceSweep++
		if p.config.SingletonSweepEvery > 0 && p.processedSinceSweep >= p.config.SingletonSweepEvery {
			p.processedSinceSweep = 0
			if count, err := p.SweepSingletons(ctx); err != nil {
				slog.Error("processor: singleton sweep failed", slog.Any("error", err))
			} else if count > 0 {
				slog.Info("processor: singleton sweep clustered late arrivals", slog.Int("count", count))
			}
		}

		if p.config.PerArticleDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.PerArticleDelay):
			}
		}
	}
}

// ProcessNext claims and fully processes the next queued article. It
// returns false (with a nil error) when the queue is empty -- that is
// the caller's signal to poll again rather than a failure.
func (p *Processor) ProcessNext(ctx context.Context) (bool, error) {
	item, err := p.store.ClaimNextQueueItem(ctx)
	if errors.Is(err, entity.ErrQueueEmpty) || errors.Is(err, entity.ErrAlreadyClaimed) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("processor: claim queue item: %w", err)
	}

	start := time.Now()
	articleCtx, cancel := context.WithTimeout(ctx, p.config.ArticleTimeout)
	defer cancel()

	success := p.processArticle(articleCtx, item)

	if p.metrics != nil {
		p.metrics.RecordArticleProcessed(success)
		p.metrics.RecordProcessingDuration(time.Since(start).Seconds())
	}
	return true, nil
}

func (p *Processor) processArticle(ctx context.Context, item *entity.QueueItem) bool {
	article, err := p.store.GetArticle(ctx, item.ArticleID)
	if err != nil {
		p.fail(ctx, item, fmt.Sprintf("load article: %v", err))
		return false
	}

	result, err := p.extractor.Extract(ctx, article.URL)
	if err != nil {
		p.fail(ctx, item, fmt.Sprintf("extract: %v", err))
		return false
	}
	if !result.Success {
		p.fail(ctx, item, fmt.Sprintf("extraction failed: %s", result.Error))
		return false
	}

	generatedTitle := p.normalizer.GenerateTitle(ctx, result.Body, article.OriginalTitle)
	excerpt := p.normalizer.GenerateExcerpt(ctx, result.Body, article.OriginalTitle)

	status := entity.ArticleStatusCompleted
	now := time.Now()
	if err := p.store.UpdateArticle(ctx, item.ArticleID, repository.ArticleUpdate{
		Status:         &status,
		GeneratedTitle: &generatedTitle,
		Excerpt:        &excerpt,
		Content:        &result.Body,
		SourceDomain:   &result.SourceDomain,
		ProcessedAt:    &now,
	}); err != nil {
		p.fail(ctx, item, fmt.Sprintf("update article: %v", err))
		return false
	}

	combinedText := combine(generatedTitle, excerpt, result.Body)
	clusterID, err := p.clusterer.Cluster(ctx, item.ArticleID, combinedText)
	if err != nil {
		slog.Error("processor: clustering failed, article remains a singleton",
			slog.Int64("article_id", item.ArticleID), slog.Any("error", err))
	}
	if p.metrics != nil {
		p.metrics.RecordClustered(clusterID != nil)
	}

	if err := p.store.UpdateSystemStatus(ctx, func(s *entity.SystemStatus) {
		s.LastProcessedArticle = item.ArticleID
		s.LastActivity = now
	}); err != nil {
		slog.Error("processor: failed to update system status", slog.Any("error", err))
	}

	if err := p.store.CompleteQueueItem(ctx, item.ID, true, ""); err != nil {
		slog.Error("processor: failed to complete queue item", slog.Int64("queue_id", item.ID), slog.Any("error", err))
		return false
	}

	slog.Info("processor: article completed",
		slog.Int64("article_id", item.ArticleID), slog.Any("cluster_id", clusterID))
	return true
}

func (p *Processor) fail(ctx context.Context, item *entity.QueueItem, reason string) {
	slog.Error("processor: article failed", slog.Int64("article_id", item.ArticleID), slog.String("reason", reason))
	failed := entity.ArticleStatusFailed
	if err := p.store.UpdateArticle(ctx, item.ArticleID, repository.ArticleUpdate{Status: &failed}); err != nil {
		slog.Error("processor: failed to mark article failed", slog.Any("error", err))
	}
	if err := p.store.CompleteQueueItem(ctx, item.ID, false, reason); err != nil {
		slog.Error("processor: failed to complete failed queue item", slog.Any("error", err))
	}
}

// SweepSingletons re-checks recent singleton articles for corroboration
// now that later-arriving peers may exist, compensating for temporal
// ordering (spec ss4.5's periodic sweep). It returns the number of
// articles that transitioned out of singleton status.
func (p *Processor) SweepSingletons(ctx context.Context) (int, error) {
	since := time.Now().Add(-p.config.SingletonSweepWindow)
	singles, err := p.store.GetSingletonArticles(ctx, p.config.SingletonSweepLimit, since)
	if err != nil {
		return 0, fmt.Errorf("processor: sweep: get singletons: %w", err)
	}

	clustered := 0
	for _, a := range singles {
		combined := combine(a.GeneratedTitle, a.Excerpt, a.Content)
		clusterID, err := p.clusterer.Cluster(ctx, a.ID, combined)
		if err != nil {
			slog.Error("processor: sweep: clustering failed", slog.Int64("article_id", a.ID), slog.Any("error", err))
			continue
		}
		if clusterID != nil {
			clustered++
		}
	}

	if p.metrics != nil {
		p.metrics.RecordSweep(clustered)
	}
	return clustered, nil
}

// combine builds the richer base text used for clustering decisions:
// title + excerpt + up to the first 1500 characters of content (matches
// entity.Article.CombinedText's budget, applied here to text not yet
// persisted at clustering time).
func combine(title, excerpt, content string) string {
	preview := content
	if len(preview) > 1500 {
		preview = preview[:1500]
	}
	return title + " " + excerpt + " " + preview
}
