package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "github.com/AMStarks/beacon/internal/infra/adapter/persistence/postgres"
	"github.com/AMStarks/beacon/internal/infra/adapter/semantic"
	"github.com/AMStarks/beacon/internal/infra/db"
	"github.com/AMStarks/beacon/internal/infra/fetcher"
	"github.com/AMStarks/beacon/internal/infra/render"
	"github.com/AMStarks/beacon/internal/infra/summarizer"
	workerPkg "github.com/AMStarks/beacon/internal/infra/worker"
	"github.com/AMStarks/beacon/internal/observability/metrics"
	"github.com/AMStarks/beacon/internal/usecase/audit"
	"github.com/AMStarks/beacon/internal/usecase/cluster"
	"github.com/AMStarks/beacon/internal/usecase/extract"
	"github.com/AMStarks/beacon/internal/usecase/normalize"
	"github.com/AMStarks/beacon/internal/usecase/processor"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	procConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load processor configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("processor configuration loaded",
		slog.Duration("poll_interval", procConfig.PollIntervalSeconds),
		slog.Duration("watchdog_interval", procConfig.WatchdogIntervalMinutes),
		slog.Int("max_articles_per_run", procConfig.MaxArticlesPerRun),
		slog.Float64("similarity_threshold", procConfig.SimilarityThreshold),
		slog.Int("semaphore_limit", procConfig.SemaphoreLimit),
		slog.Bool("renderer_enabled", procConfig.RendererEnabled),
		slog.Int("health_port", procConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmtAddr(procConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	store := pgRepo.New(database)

	go collectDBMetrics(ctx, database)

	extractor := setupExtractor(logger, procConfig)
	normalizer := normalize.New(setupGenerator(logger))
	clusterer := cluster.New(store, setupSemanticScorer(logger, database))

	proc := processor.New(store, extractor, normalizer, clusterer, processorConfigFrom(procConfig), workerMetrics)
	auditor := audit.New(store)

	startAuditCron(logger, auditor)

	healthServer.SetReady(true)
	logger.Info("processor marked as ready")

	if err := proc.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("processor run exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("processor shut down")
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// setupExtractor wires the fast DOM-selector fetch path and, when enabled,
// the headless-browser fallback used for JS-heavy pages that fail the
// quality gate on the fast path.
func setupExtractor(logger *slog.Logger, cfg *workerPkg.ProcessorConfig) *extract.Extractor {
	fetchConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("content fetch configuration fell back to defaults", slog.Any("error", err))
		fetchConfig = fetcher.DefaultConfig()
	}
	fetchConfig.Timeout = cfg.ExtractionTimeout
	htmlFetcher := fetcher.NewHTMLFetcher(fetchConfig)

	var rendered extract.RenderedFetcher
	if cfg.RendererEnabled {
		renderConfig := render.DefaultConfig()
		renderConfig.Timeout = cfg.ExtractionTimeout
		rendered = render.New(renderConfig)
	}

	extractConfig := extract.DefaultConfig()
	return extract.New(htmlFetcher, rendered, extractConfig)
}

// setupGenerator wires the normalizer's optional model-backed title/excerpt
// generation (Open Questions item 2: weight-zero/off by default). It
// returns nil -- deterministic fallback extraction only -- unless
// SUMMARIZER_TYPE names a provider and its API key is present; a
// configured-but-unreachable provider degrades per-call inside Normalizer,
// not here.
func setupGenerator(logger *slog.Logger) normalize.Generator {
	switch os.Getenv("SUMMARIZER_TYPE") {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn("SUMMARIZER_TYPE=claude set but ANTHROPIC_API_KEY missing, generation disabled")
			return nil
		}
		logger.Info("model-backed generation enabled", slog.String("provider", "claude"))
		return summarizer.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn("SUMMARIZER_TYPE=openai set but OPENAI_API_KEY missing, generation disabled")
			return nil
		}
		config, err := summarizer.LoadOpenAIConfig()
		if err != nil {
			logger.Warn("invalid OpenAI configuration, generation disabled", slog.Any("error", err))
			return nil
		}
		logger.Info("model-backed generation enabled", slog.String("provider", "openai"))
		return summarizer.NewOpenAI(apiKey, config)
	default:
		logger.Info("no model-backed generation configured, using deterministic fallback only")
		return nil
	}
}

// setupSemanticScorer wires the clusterer's optional embedding-similarity
// signal (Open Questions item 2: weight-zero/off by default). It returns
// nil -- deterministic scoring only -- unless SEMANTIC_SCORER_ENABLED is
// set, since the pgvector-backed scorer assumes an embedding pipeline has
// already populated article_embeddings, which nothing in this processor
// does on its own.
func setupSemanticScorer(logger *slog.Logger, database *sql.DB) cluster.SemanticScorer {
	if os.Getenv("SEMANTIC_SCORER_ENABLED") != "true" {
		logger.Info("no semantic scorer configured, using deterministic clustering only")
		return nil
	}
	logger.Info("semantic scorer enabled", slog.String("backend", "pgvector"))
	return semantic.NewPgvectorScorer(database)
}

// processorConfigFrom adapts the fail-open environment configuration into
// the processor package's own Config, which carries only loop-timing
// knobs, not the pieces (extraction, renderer, health port) that belong
// to their own constructors.
func processorConfigFrom(cfg *workerPkg.ProcessorConfig) processor.Config {
	pc := processor.DefaultConfig()
	pc.PollInterval = cfg.PollIntervalSeconds
	pc.PerArticleDelay = cfg.PerArticleDelaySeconds
	pc.WatchdogInterval = cfg.WatchdogIntervalMinutes
	pc.SingletonSweepWindow = cfg.SingletonSweepWindowHours
	pc.SingletonSweepLimit = cfg.SingletonSweepLimit
	pc.ArticleTimeout = cfg.ExtractionTimeout * 4
	return pc
}

// startAuditCron schedules the offline cluster-quality audit to run every
// 15 minutes. The audit only reads and annotates; it never mutates cluster
// membership, so a missed or overlapping run is harmless.
func startAuditCron(logger *slog.Logger, auditor *audit.Auditor) {
	c := cron.New()
	_, err := c.AddFunc("@every 15m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		summary, err := auditor.Run(ctx)
		if err != nil {
			logger.Error("audit run failed", slog.Any("error", err))
			return
		}
		logger.Info("audit run complete",
			slog.Int("clusters_evaluated", len(summary.Evaluations)),
			slog.Int("split_needed", summary.SplitCount),
			slog.Int("should_merge", summary.MergeCount),
			slog.Float64("proposed_threshold", summary.ProposedThreshold))
	})
	if err != nil {
		logger.Error("failed to schedule audit cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
}

func fmtAddr(port int) string {
	return fmt.Sprintf(":%d", port)
}

// collectDBMetrics periodically samples the connection pool and the
// articles table so the gauges reflect live state rather than only the
// moment each was last touched by a query.
func collectDBMetrics(ctx context.Context, database *sql.DB) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

			var count int
			if err := database.QueryRowContext(ctx, "SELECT count(*) FROM articles").Scan(&count); err == nil {
				metrics.UpdateArticlesTotal(count)
			}
		}
	}
}
