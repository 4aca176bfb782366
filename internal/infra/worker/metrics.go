package worker

import (
	"github.com/AMStarks/beacon/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the processor component.
// It embeds the standard ConfigMetrics for configuration monitoring and
// adds pipeline-specific metrics, satisfying processor.Metrics.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp
//   - worker_config_validation_errors_total
//   - worker_config_fallbacks_total
//   - worker_config_fallback_active
//
// Pipeline metrics:
//   - worker_articles_processed_total: by outcome (success/failure)
//   - worker_article_processing_duration_seconds
//   - worker_articles_clustered_total: by outcome (clustered/singleton)
//   - worker_queue_items_reset_total
//   - worker_singleton_sweep_clustered_total
type WorkerMetrics struct {
	*config.ConfigMetrics

	ArticlesProcessedTotal *prometheus.CounterVec
	ProcessingDurationSeconds prometheus.Histogram
	ClusteredTotal *prometheus.CounterVec
	QueueItemsResetTotal prometheus.Counter
	SingletonSweepClusteredTotal prometheus.Counter
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics
// initialized and auto-registered via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		ArticlesProcessedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_articles_processed_total",
			Help: "Total number of articles processed by outcome (success/failure)",
		}, []string{"outcome"}),

		ProcessingDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_article_processing_duration_seconds",
			Help:    "Duration of a single article's extract-normalize-cluster pipeline",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),

		ClusteredTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_articles_clustered_total",
			Help: "Total number of processed articles by clustering outcome (clustered/singleton)",
		}, []string{"outcome"}),

		QueueItemsResetTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_queue_items_reset_total",
			Help: "Total number of stale processing queue items reclaimed on startup",
		}),

		SingletonSweepClusteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_singleton_sweep_clustered_total",
			Help: "Total number of singleton articles joined to a cluster by the periodic sweep",
		}),
	}
}

// MustRegister is a no-op method for API compatibility; metrics are
// auto-registered via promauto when created in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {
}

// RecordArticleProcessed implements processor.Metrics.
func (m *WorkerMetrics) RecordArticleProcessed(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.ArticlesProcessedTotal.WithLabelValues(outcome).Inc()
}

// RecordProcessingDuration implements processor.Metrics.
func (m *WorkerMetrics) RecordProcessingDuration(seconds float64) {
	m.ProcessingDurationSeconds.Observe(seconds)
}

// RecordClustered implements processor.Metrics. clustered is true when the
// article joined or founded a cluster, false when it remained a singleton.
func (m *WorkerMetrics) RecordClustered(clustered bool) {
	outcome := "singleton"
	if clustered {
		outcome = "clustered"
	}
	m.ClusteredTotal.WithLabelValues(outcome).Inc()
}

// RecordQueueReset implements processor.Metrics.
func (m *WorkerMetrics) RecordQueueReset(count int) {
	m.QueueItemsResetTotal.Add(float64(count))
}

// RecordSweep implements processor.Metrics.
func (m *WorkerMetrics) RecordSweep(clustered int) {
	m.SingletonSweepClusteredTotal.Add(float64(clustered))
}
