package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AMStarks/beacon/internal/usecase/extract"
)

type stubFetcher struct {
	html string
	err  error
	// calls counts invocations, used to verify retry behavior.
	calls int
	// failFirstN makes the first N calls return err before succeeding.
	failFirstN int
}

func (s *stubFetcher) FetchHTML(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.calls <= s.failFirstN {
		return "", s.err
	}
	if s.err != nil && s.failFirstN == 0 {
		return "", s.err
	}
	return s.html, nil
}

type stubRendered struct {
	html    string
	err     error
	invoked bool
}

func (s *stubRendered) FetchRendered(_ context.Context, _ string) (string, error) {
	s.invoked = true
	return s.html, s.err
}

func testConfig() extract.Config {
	return extract.Config{MaxAttempts: 2, RetryBackoff: time.Millisecond}
}

const goodArticleHTML = `<html><head>
<meta property="og:title" content="Officials Announce New Policy After Months of Review">
</head><body><article><p>` +
	`Local officials said Tuesday that the plan, announced after months of review, will take ` +
	`effect in 2026. According to city authorities, John Smith and the council reviewed proposals ` +
	`from several departments before reaching a final decision. The mayor stated that residents ` +
	`should expect changes to begin in the spring and that further details would follow soon.` +
	`</p></article></body></html>`

func TestExtract_FastPathSuccess(t *testing.T) {
	fetcher := &stubFetcher{html: goodArticleHTML}
	ex := extract.New(fetcher, nil, testConfig())

	result, err := ex.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.Method != extract.MethodFast {
		t.Errorf("expected fast method, got %s", result.Method)
	}
	if result.SourceDomain != "example.com" {
		t.Errorf("expected source domain example.com, got %s", result.SourceDomain)
	}
}

func TestExtract_SummaryFallback(t *testing.T) {
	html := `<html><head>
<meta property="og:title" content="A Title Long Enough To Pass The Gate">
<meta property="og:description" content="` +
		strings.Repeat("A fairly long description sentence. ", 5) +
		`">
</head><body><p>short body</p></body></html>`

	fetcher := &stubFetcher{html: html}
	ex := extract.New(fetcher, nil, testConfig())

	result, err := ex.Extract(context.Background(), "https://example.com/short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != extract.MethodSummaryFallback {
		t.Errorf("expected summary_fallback method, got %s", result.Method)
	}
	if result.Body == "" {
		t.Errorf("expected description to be used as body")
	}
}

func TestExtract_RetriesThenSucceeds(t *testing.T) {
	fetcher := &stubFetcher{html: goodArticleHTML, err: errors.New("transient"), failFirstN: 1}
	ex := extract.New(fetcher, nil, testConfig())

	result, err := ex.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success after retry, got error: %s", result.Error)
	}
	if fetcher.calls != 2 {
		t.Errorf("expected 2 fetch attempts, got %d", fetcher.calls)
	}
}

func TestExtract_FetchFailsAfterRetries(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("permanent failure"), failFirstN: 99}
	ex := extract.New(fetcher, nil, testConfig())

	result, err := ex.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected top-level error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected extraction failure")
	}
	if result.Error == "" {
		t.Errorf("expected an error message on failed extraction")
	}
}

func TestExtract_EscalatesToRenderedForJSHeavySite(t *testing.T) {
	poorHTML := `<html><body><nav>Home About</nav><p>too short</p></body></html>`
	fetcher := &stubFetcher{html: poorHTML}
	rendered := &stubRendered{html: goodArticleHTML}
	ex := extract.New(fetcher, rendered, testConfig())

	result, err := ex.Extract(context.Background(), "https://www.bbc.com/news/articles/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rendered.invoked {
		t.Fatalf("expected rendered fetcher to be invoked for a JS-heavy site")
	}
	if result.Method != extract.MethodRendered {
		t.Errorf("expected rendered method, got %s", result.Method)
	}
	if !result.Success {
		t.Fatalf("expected rendered pass to succeed, got error: %s", result.Error)
	}
}

func TestExtract_DoesNotEscalateForNonJSHeavySite(t *testing.T) {
	poorHTML := `<html><body><nav>Home About</nav><p>too short</p></body></html>`
	fetcher := &stubFetcher{html: poorHTML}
	rendered := &stubRendered{html: goodArticleHTML}
	ex := extract.New(fetcher, rendered, testConfig())

	_, err := ex.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rendered.invoked {
		t.Fatalf("expected rendered fetcher to be skipped for a non-JS-heavy site")
	}
}

func TestExtract_InvalidURL(t *testing.T) {
	fetcher := &stubFetcher{html: goodArticleHTML}
	ex := extract.New(fetcher, nil, testConfig())

	_, err := ex.Extract(context.Background(), "://not-a-url")
	if err == nil {
		t.Fatalf("expected an error for an unparseable url")
	}
}
