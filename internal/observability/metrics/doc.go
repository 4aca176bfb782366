// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes content-fetch and database metrics:
//   - Content fetch outcome, duration, and size
//   - Article count and database connection pool health
//   - Generic operation/query duration
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "github.com/AMStarks/beacon/internal/observability/metrics"
//
//	func fetchArticle(ctx context.Context, url string) (string, error) {
//	    start := time.Now()
//	    html, err := fetch(ctx, url)
//	    if err != nil {
//	        metrics.RecordContentFetchFailed(time.Since(start))
//	        return "", err
//	    }
//	    metrics.RecordContentFetchSuccess(time.Since(start), len(html))
//	    return html, nil
//	}
package metrics
