package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AMStarks/beacon/internal/observability/metrics"
	"github.com/AMStarks/beacon/internal/resilience/circuitbreaker"
	"github.com/AMStarks/beacon/internal/usecase/fetch"
)

// HTMLFetcher implements fetch.ContentFetcher over plain net/http. It returns
// the raw HTML document; the extractor decides how to parse it (selector
// probing, with go-shiori/go-readability as a secondary pass).
//
// Features:
//   - SSRF prevention via URL validation
//   - Circuit breaker for fault tolerance
//   - Size limiting to prevent memory exhaustion
//   - Timeout protection against slow servers
//   - Redirect validation for security
//
// Thread safety: HTMLFetcher is safe for concurrent use.
type HTMLFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewHTMLFetcher creates a new HTMLFetcher with the given configuration.
func NewHTMLFetcher(config ContentFetchConfig) *HTMLFetcher {
	cbConfig := circuitbreaker.Config{
		Name:             "content-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
	cb := circuitbreaker.New(cbConfig)

	fetcher := &HTMLFetcher{
		circuitBreaker: cb,
		config:         config,
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", fetch.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	fetcher.client = client
	return fetcher
}

// FetchHTML fetches the raw HTML document at urlStr.
//
// Security features:
//   - URL validation blocks private IPs (SSRF prevention)
//   - Size limiting prevents memory exhaustion
//   - Timeout prevents resource starvation
//   - Redirect validation ensures all targets are safe
//   - Circuit breaker prevents cascading failures
func (f *HTMLFetcher) FetchHTML(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	start := time.Now()
	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		return "", err
	}

	html := result.(string)
	metrics.RecordContentFetchSuccess(time.Since(start), len(html))
	return html, nil
}

func (f *HTMLFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", fetch.ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", "BeaconBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", fetch.ErrTimeout, f.config.Timeout)
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			fetch.ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	return string(htmlBytes), nil
}
