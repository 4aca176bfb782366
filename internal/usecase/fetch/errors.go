// Package fetch declares the content-fetching boundary the extractor uses:
// the ContentFetcher interface and its sentinel errors. Implementations live
// under internal/infra/fetcher.
package fetch

import "errors"

// Sentinel errors for content fetching operations. They let callers
// distinguish failure modes and choose a fallback strategy.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported
	// scheme. Only http:// and https:// are supported.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private, loopback, or
	// link-local IP address (SSRF prevention).
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrReadabilityFailed indicates content extraction failed: the HTML could
	// not be parsed, or no readable article text was found.
	ErrReadabilityFailed = errors.New("content extraction failed")
)
