package worker

import (
	"github.com/AMStarks/beacon/internal/pkg/config"
	"fmt"
	"log/slog"
	"time"
)

// ProcessorConfig holds the configuration for the article processing
// pipeline: poll timing, sweep limits, fetch settings, and a few values
// that are only validated and logged (see the field comments).
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have sensible defaults and validation rules so the
// processor can run safely even with invalid or missing configuration.
type ProcessorConfig struct {
	// PollIntervalSeconds is how long the main loop sleeps when the queue
	// is empty.
	// Default: 5s
	PollIntervalSeconds time.Duration

	// PerArticleDelaySeconds throttles throughput between successfully
	// processed articles.
	// Default: 1s
	PerArticleDelaySeconds time.Duration

	// WatchdogIntervalMinutes is the age at which a processing queue item
	// is considered abandoned by a crashed processor and reclaimed on
	// startup.
	// Default: 15m
	WatchdogIntervalMinutes time.Duration

	// MaxArticlesPerRun is loaded, validated (0 or more) and logged at
	// startup; the processor does not read it and runs until its context
	// is cancelled.
	// Default: 100
	MaxArticlesPerRun int

	// SingletonSweepWindowHours bounds how far back the singleton sweep
	// looks for corroboration candidates.
	// Default: 72h
	SingletonSweepWindowHours time.Duration

	// SingletonSweepLimit bounds how many singleton articles the sweep
	// re-examines per pass.
	// Range: 1-10000
	// Default: 300
	SingletonSweepLimit int

	// CandidatePoolSize is loaded and validated but not passed to the
	// clusterer, which always fetches its own fixed number (150) of
	// recent candidates.
	// Range: 1-1000
	// Default: 150
	CandidatePoolSize int

	// ExtractionTimeout bounds a single content-fetch attempt.
	// Must be positive.
	// Default: 30s
	ExtractionTimeout time.Duration

	// RendererEnabled controls whether the headless-browser fallback is
	// used for JS-heavy pages.
	// Default: true
	RendererEnabled bool

	// SimilarityThreshold is loaded, validated and logged at startup but
	// not stored or passed on; when no cluster parameters have been saved
	// the clusterer uses its own built-in breaking threshold (0.22).
	// Range: 0.16-0.28
	// Default: 0.22
	SimilarityThreshold float64

	// SemaphoreLimit is loaded, validated and logged at startup, but no
	// code path applies it: the processor handles one article at a time
	// and runs extraction and normalization sequentially.
	// Range: 1-64
	// Default: 4
	SemaphoreLimit int

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a ProcessorConfig with sensible default values,
// matching the pipeline's documented defaults.
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		PollIntervalSeconds:       5 * time.Second,
		PerArticleDelaySeconds:    1 * time.Second,
		WatchdogIntervalMinutes:   15 * time.Minute,
		MaxArticlesPerRun:         100,
		SingletonSweepWindowHours: 72 * time.Hour,
		SingletonSweepLimit:       300,
		CandidatePoolSize:         150,
		ExtractionTimeout:         30 * time.Second,
		RendererEnabled:           true,
		SimilarityThreshold:       0.22,
		SemaphoreLimit:            4,
		HealthPort:                9091,
	}
}

// Validate checks if the configuration values are valid. If multiple
// fields are invalid, all errors are collected and returned together.
func (c *ProcessorConfig) Validate() error {
	var errs []error

	if err := config.ValidatePositiveDuration(c.PollIntervalSeconds); err != nil {
		errs = append(errs, fmt.Errorf("poll interval: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.WatchdogIntervalMinutes); err != nil {
		errs = append(errs, fmt.Errorf("watchdog interval: %w", err))
	}
	if err := config.ValidateIntRange(c.MaxArticlesPerRun, 0, 100000); err != nil {
		errs = append(errs, fmt.Errorf("max articles per run: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.SingletonSweepWindowHours); err != nil {
		errs = append(errs, fmt.Errorf("singleton sweep window: %w", err))
	}
	if err := config.ValidateIntRange(c.SingletonSweepLimit, 1, 10000); err != nil {
		errs = append(errs, fmt.Errorf("singleton sweep limit: %w", err))
	}
	if err := config.ValidateIntRange(c.CandidatePoolSize, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("candidate pool size: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.ExtractionTimeout); err != nil {
		errs = append(errs, fmt.Errorf("extraction timeout: %w", err))
	}
	if err := config.ValidateFloatRange(c.SimilarityThreshold, 0.16, 0.28); err != nil {
		errs = append(errs, fmt.Errorf("similarity threshold: %w", err))
	}
	if err := config.ValidateIntRange(c.SemaphoreLimit, 1, 64); err != nil {
		errs = append(errs, fmt.Errorf("semaphore limit: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads processor configuration from environment
// variables with validation and automatic fallback to default values on
// failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from its environment variable
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, record metric
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - POLL_INTERVAL_SECONDS
//   - PER_ARTICLE_DELAY_SECONDS
//   - WATCHDOG_INTERVAL_MINUTES
//   - MAX_ARTICLES_PER_RUN
//   - SINGLETON_SWEEP_WINDOW_HOURS
//   - SINGLETON_SWEEP_LIMIT
//   - CANDIDATE_POOL_SIZE
//   - EXTRACTION_TIMEOUT_SECONDS
//   - RENDERER_ENABLED
//   - SIMILARITY_THRESHOLD
//   - SEMAPHORE_LIMIT
//   - PROCESSOR_HEALTH_PORT
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*ProcessorConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warn := func(field string, applied bool, warnings []string) {
		if !applied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, w := range warnings {
			logger.Warn("Configuration fallback applied", slog.String("field", field), slog.String("warning", w))
		}
	}

	pollResult := config.LoadEnvDuration("POLL_INTERVAL_SECONDS", cfg.PollIntervalSeconds, config.ValidatePositiveDuration)
	cfg.PollIntervalSeconds = pollResult.Value.(time.Duration)
	warn("poll_interval_seconds", pollResult.FallbackApplied, pollResult.Warnings)

	delayResult := config.LoadEnvDuration("PER_ARTICLE_DELAY_SECONDS", cfg.PerArticleDelaySeconds, nil)
	cfg.PerArticleDelaySeconds = delayResult.Value.(time.Duration)
	warn("per_article_delay_seconds", delayResult.FallbackApplied, delayResult.Warnings)

	watchdogResult := config.LoadEnvDuration("WATCHDOG_INTERVAL_MINUTES", cfg.WatchdogIntervalMinutes, config.ValidatePositiveDuration)
	cfg.WatchdogIntervalMinutes = watchdogResult.Value.(time.Duration)
	warn("watchdog_interval_minutes", watchdogResult.FallbackApplied, watchdogResult.Warnings)

	maxArticlesResult := config.LoadEnvInt("MAX_ARTICLES_PER_RUN", cfg.MaxArticlesPerRun, func(v int) error {
		return config.ValidateIntRange(v, 0, 100000)
	})
	cfg.MaxArticlesPerRun = maxArticlesResult.Value.(int)
	warn("max_articles_per_run", maxArticlesResult.FallbackApplied, maxArticlesResult.Warnings)

	sweepWindowResult := config.LoadEnvDuration("SINGLETON_SWEEP_WINDOW_HOURS", cfg.SingletonSweepWindowHours, config.ValidatePositiveDuration)
	cfg.SingletonSweepWindowHours = sweepWindowResult.Value.(time.Duration)
	warn("singleton_sweep_window_hours", sweepWindowResult.FallbackApplied, sweepWindowResult.Warnings)

	sweepLimitResult := config.LoadEnvInt("SINGLETON_SWEEP_LIMIT", cfg.SingletonSweepLimit, func(v int) error {
		return config.ValidateIntRange(v, 1, 10000)
	})
	cfg.SingletonSweepLimit = sweepLimitResult.Value.(int)
	warn("singleton_sweep_limit", sweepLimitResult.FallbackApplied, sweepLimitResult.Warnings)

	poolSizeResult := config.LoadEnvInt("CANDIDATE_POOL_SIZE", cfg.CandidatePoolSize, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000)
	})
	cfg.CandidatePoolSize = poolSizeResult.Value.(int)
	warn("candidate_pool_size", poolSizeResult.FallbackApplied, poolSizeResult.Warnings)

	extractionTimeoutResult := config.LoadEnvDuration("EXTRACTION_TIMEOUT_SECONDS", cfg.ExtractionTimeout, config.ValidatePositiveDuration)
	cfg.ExtractionTimeout = extractionTimeoutResult.Value.(time.Duration)
	warn("extraction_timeout_seconds", extractionTimeoutResult.FallbackApplied, extractionTimeoutResult.Warnings)

	rendererResult := config.LoadEnvBool("RENDERER_ENABLED", cfg.RendererEnabled)
	cfg.RendererEnabled = rendererResult.Value.(bool)

	thresholdResult := config.LoadEnvFloat("SIMILARITY_THRESHOLD", cfg.SimilarityThreshold, func(v float64) error {
		return config.ValidateFloatRange(v, 0.16, 0.28)
	})
	cfg.SimilarityThreshold = thresholdResult.Value.(float64)
	warn("similarity_threshold", thresholdResult.FallbackApplied, thresholdResult.Warnings)

	semaphoreResult := config.LoadEnvInt("SEMAPHORE_LIMIT", cfg.SemaphoreLimit, func(v int) error {
		return config.ValidateIntRange(v, 1, 64)
	})
	cfg.SemaphoreLimit = semaphoreResult.Value.(int)
	warn("semaphore_limit", semaphoreResult.FallbackApplied, semaphoreResult.Warnings)

	healthPortResult := config.LoadEnvInt("PROCESSOR_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = healthPortResult.Value.(int)
	warn("health_port", healthPortResult.FallbackApplied, healthPortResult.Warnings)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
