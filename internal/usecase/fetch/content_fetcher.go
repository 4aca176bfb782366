package fetch

import "context"

// ContentFetcher fetches raw HTML for a URL. Implementations must validate
// the URL (SSRF prevention), enforce a size limit, enforce a timeout, and
// validate every redirect target the same way as the initial URL.
type ContentFetcher interface {
	// FetchHTML retrieves the raw HTML document at url.
	//
	// Errors:
	//   - ErrInvalidURL, ErrPrivateIP: the URL failed validation
	//   - ErrTooManyRedirects, ErrBodyTooLarge, ErrTimeout
	//   - gobreaker.ErrOpenState: circuit breaker is open
	FetchHTML(ctx context.Context, url string) (string, error)
}
