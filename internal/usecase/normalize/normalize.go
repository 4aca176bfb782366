// Package normalize produces a neutral title and excerpt for an article
// body, independent of the source site's own style. A model-backed
// generator is an optional collaborator; the deterministic fallback path
// alone fully satisfies the contract, and is what runs when no model is
// configured.
package normalize

import (
	"context"
	"log/slog"
	"time"
)

const (
	titleMinLength = 10
	titleMaxLength = 100

	excerptMinWords    = 50
	excerptMaxWords    = 200
	excerptTargetWords = 150

	modelMaxAttempts = 2
	modelRetryDelay  = 500 * time.Millisecond
)

// Generator queries an external text-generation capability with a single
// prompt and returns its raw response. Retry-on-transport-error is
// applied by Normalizer, not by the Generator implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Normalizer generates titles and excerpts, preferring a model-backed
// Generator when one is configured and falling back to deterministic
// extraction when it is absent, fails validation, or errors out.
type Normalizer struct {
	model Generator
}

// New creates a Normalizer. model may be nil, in which case every call
// uses the deterministic fallback.
func New(model Generator) *Normalizer {
	return &Normalizer{model: model}
}

// GenerateTitle returns a neutral title, 10-100 characters, for body.
// originalTitle may be empty. GenerateTitle never returns an empty
// string: on truly unrecoverable input it returns "News Update".
func (n *Normalizer) GenerateTitle(ctx context.Context, body, originalTitle string) string {
	if n.model != nil {
		if title, ok := n.modelTitle(ctx, body, originalTitle); ok {
			return title
		}
	}
	return fallbackTitle(body, originalTitle)
}

// GenerateExcerpt returns a neutral excerpt for body. Model output is
// accepted only at 50-200 words; the deterministic fallback collects ranked
// sentences until about 150 words, and returns fewer than 50 when the body
// is short (its first chosen sentence may also exceed 200). originalTitle may be empty and is used only to weight
// sentence relevance. GenerateExcerpt never returns an empty string.
func (n *Normalizer) GenerateExcerpt(ctx context.Context, body, originalTitle string) string {
	if n.model != nil {
		if excerpt, ok := n.modelExcerpt(ctx, body, originalTitle); ok {
			return excerpt
		}
	}
	return fallbackExcerpt(body, originalTitle)
}

func (n *Normalizer) modelTitle(ctx context.Context, body, originalTitle string) (string, bool) {
	raw, err := n.generateWithRetry(ctx, titlePrompt(body, originalTitle))
	if err != nil {
		slog.Warn("normalize: model title generation failed, using fallback", slog.Any("error", err))
		return "", false
	}

	cleaned := cleanModelOutput(raw)
	if err := validateTitle(cleaned); err != nil {
		slog.Warn("normalize: model title failed validation, using fallback", slog.String("reason", err.Error()))
		return "", false
	}
	return cleaned, true
}

func (n *Normalizer) modelExcerpt(ctx context.Context, body, originalTitle string) (string, bool) {
	raw, err := n.generateWithRetry(ctx, excerptPrompt(body, originalTitle))
	if err != nil {
		slog.Warn("normalize: model excerpt generation failed, using fallback", slog.Any("error", err))
		return "", false
	}

	cleaned := cleanModelOutput(raw)
	if err := validateExcerpt(cleaned); err != nil {
		slog.Warn("normalize: model excerpt failed validation, using fallback", slog.String("reason", err.Error()))
		return "", false
	}
	return cleaned, true
}

// generateWithRetry calls the model Generator up to modelMaxAttempts
// times with a short backoff, treating any error as a transport error.
func (n *Normalizer) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < modelMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(modelRetryDelay):
			}
		}
		result, err := n.model.Generate(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return "", lastErr
}
