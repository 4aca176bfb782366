// Package render provides a headless-browser fetch path for the content
// extractor, used only when a fast DOM-selector pass fails the quality
// gate and the URL is classified as JavaScript-heavy.
package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/AMStarks/beacon/internal/infra/fetcher"
)

// Config controls the headless browser launch and per-page timeout.
type Config struct {
	// Timeout bounds how long a single page render may take, including
	// navigation and the settle delay after load.
	Timeout time.Duration
	// SettleDelay is how long to wait after the load event fires, giving
	// client-rendered frameworks time to hydrate the article body.
	SettleDelay time.Duration
	// DenyPrivateIPs, reused from the HTML fetcher's SSRF check, applies
	// to the URL before it is ever handed to the browser.
	DenyPrivateIPs bool
}

// DefaultConfig returns render defaults: a 30s budget and a 3s settle
// delay, matching the timeouts used by the fast-path HTML fetcher.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		SettleDelay:    3 * time.Second,
		DenyPrivateIPs: true,
	}
}

// Fetcher launches a headless Chromium instance on demand and renders a
// single page per FetchRendered call. The browser process is started
// lazily and reused across calls; Close shuts it down.
type Fetcher struct {
	config Config

	mu      sync.Mutex
	browser *rod.Browser
}

// New creates a Fetcher. The browser is not launched until the first
// FetchRendered call.
func New(config Config) *Fetcher {
	return &Fetcher{config: config}
}

// FetchRendered navigates to urlStr, waits for the load event plus a
// settle delay, and returns the resulting HTML document. Every URL is
// validated with the same SSRF check the fast-path fetcher uses before
// it reaches the browser.
func (f *Fetcher) FetchRendered(ctx context.Context, urlStr string) (string, error) {
	if err := fetcher.ValidateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	browser, err := f.ensureBrowser(ctx)
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	renderCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	page, err := browser.Context(renderCtx).Page(proto.TargetCreateTarget{URL: urlStr})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.Context(renderCtx).WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for load: %w", err)
	}

	select {
	case <-renderCtx.Done():
		return "", renderCtx.Err()
	case <-time.After(f.config.SettleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read rendered html: %w", err)
	}
	return html, nil
}

// Close shuts down the underlying browser process, if one was launched.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}

func (f *Fetcher) ensureBrowser(ctx context.Context) (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		if _, err := f.browser.Version(); err == nil {
			return f.browser, nil
		}
		_ = f.browser.Close()
		f.browser = nil
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch headless chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	f.browser = browser
	return browser, nil
}
