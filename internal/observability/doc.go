// Package observability provides production-grade observability infrastructure:
// structured logging and Prometheus metrics. There is no tracing subpackage.
//
// This package centralizes observability concerns to enable:
//   - Structured logging with context propagation
//   - Prometheus metrics for monitoring
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//
// Example usage:
//
//	import (
//	    "github.com/AMStarks/beacon/internal/observability/logging"
//	    "github.com/AMStarks/beacon/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.UpdateArticlesTotal(articleCount)
//	}
package observability
