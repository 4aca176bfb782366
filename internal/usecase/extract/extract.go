// Package extract turns a fetched URL into clean article text: a title,
// a body, and best-effort author/publish-date metadata. It tries a fast
// DOM-selector pass first and only escalates to a headless-browser render
// when the fast pass fails quality and the site is known to be JS-heavy.
package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/AMStarks/beacon/internal/observability/metrics"
	"github.com/AMStarks/beacon/internal/usecase/fetch"
)

// Method identifies which strategy produced an extraction result.
type Method string

const (
	MethodFast            Method = "fast"
	MethodRendered        Method = "rendered"
	MethodSummaryFallback Method = "summary_fallback"
)

// Result is the outcome of extracting a URL.
type Result struct {
	Success      bool
	Title        string
	Body         string
	Description  string
	Author       string
	PublishDate  string
	SourceDomain string
	Method       Method
	Error        string
}

// RenderedFetcher renders a page with a headless browser and returns the
// post-render HTML. Implementations live in internal/infra/render.
type RenderedFetcher interface {
	FetchRendered(ctx context.Context, url string) (string, error)
}

// Config controls the extractor's retry and fallback behavior.
type Config struct {
	// MaxAttempts is the number of fetch attempts for the fast path before
	// giving up, with linear backoff between attempts.
	MaxAttempts int
	// RetryBackoff is the base delay between fast-path fetch retries.
	RetryBackoff time.Duration
}

// DefaultConfig returns the extractor's default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		RetryBackoff: time.Second,
	}
}

// Extractor implements the hybrid fast/rendered extraction pipeline.
type Extractor struct {
	fetcher  fetch.ContentFetcher
	rendered RenderedFetcher
	config   Config
}

// New creates an Extractor. rendered may be nil, in which case JS-heavy
// pages that fail the fast path are reported as failures instead of being
// retried with a headless browser.
func New(fetcher fetch.ContentFetcher, rendered RenderedFetcher, config Config) *Extractor {
	return &Extractor{fetcher: fetcher, rendered: rendered, config: config}
}

// Extract fetches urlStr and returns the best extraction result it can
// produce. It never returns a non-nil error for extraction failures --
// those are reported via Result.Success/Result.Error -- reserving the
// error return for cases where urlStr itself cannot be parsed.
func (e *Extractor) Extract(ctx context.Context, urlStr string) (Result, error) {
	domain, err := sourceDomain(urlStr)
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}

	html, err := e.fetchWithRetry(ctx, urlStr)
	if err != nil {
		return Result{Success: false, SourceDomain: domain, Error: err.Error()}, nil
	}

	fastResult := e.extractFromHTML(html, domain, MethodFast)

	if isMeaningfulContent(fastResult.Title, fastResult.Body) {
		return fastResult, nil
	}

	if e.rendered == nil || !isJSHeavy(urlStr, html) {
		metrics.RecordContentFetchSkipped()
		if fastResult.Body != "" {
			return fastResult, nil
		}
		return Result{Success: false, SourceDomain: domain, Error: "content did not pass the quality gate"}, nil
	}

	renderedHTML, err := e.rendered.FetchRendered(ctx, urlStr)
	if err != nil {
		if fastResult.Body != "" {
			return fastResult, nil
		}
		return Result{Success: false, SourceDomain: domain, Error: fmt.Sprintf("rendered fetch failed: %v", err)}, nil
	}

	renderedResult := e.extractFromHTML(renderedHTML, domain, MethodRendered)
	if isMeaningfulContent(renderedResult.Title, renderedResult.Body) {
		return renderedResult, nil
	}

	if fastResult.Body != "" {
		return fastResult, nil
	}
	return renderedResult, nil
}

// fetchWithRetry fetches urlStr through e.fetcher, retrying any failure
// up to config.MaxAttempts attempts in total with linear backoff.
func (e *Extractor) fetchWithRetry(ctx context.Context, urlStr string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < e.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(e.config.RetryBackoff * time.Duration(attempt)):
			}
		}
		html, err := e.fetcher.FetchHTML(ctx, urlStr)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// extractFromHTML parses html with goquery, probing for title/description/
// body/author/date, then prefers a go-readability pass over the same
// document when it yields a longer body. It applies the summary-fallback
// rule when the resulting body is too short but the description is
// substantial.
func (e *Extractor) extractFromHTML(html string, domain string, method Method) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{Success: false, SourceDomain: domain, Error: fmt.Sprintf("parse html: %v", err)}
	}

	result := Result{
		Success:      true,
		Title:        extractTitle(doc),
		Description:  extractDescription(doc),
		Body:         extractBody(doc),
		Author:       extractAuthor(doc),
		PublishDate:  extractPublishDate(doc),
		SourceDomain: domain,
		Method:       method,
	}

	if readable, ok := tryReadability(html, domain); ok && len(readable) > len(result.Body) {
		result.Body = readable
	}

	if len(result.Body) < minBodyLength && len(result.Description) >= 140 {
		result.Body = result.Description
		result.Method = MethodSummaryFallback
	}

	return result
}

// tryReadability runs go-shiori/go-readability over html and returns its
// cleaned text content, used as a secondary pass alongside the selector
// chain. ok is false when readability failed to parse an article.
func tryReadability(html, domain string) (string, bool) {
	base, err := url.Parse("https://" + domain)
	if err != nil {
		base = nil
	}
	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return "", false
	}
	text := cleanContent(article.TextContent)
	if text == "" {
		return "", false
	}
	return text, true
}

// sourceDomain extracts the host component used to tag extraction results.
func sourceDomain(urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return parsed.Host, nil
}
