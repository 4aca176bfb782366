package normalize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubGenerator struct {
	calls   int
	results []string
	errs    []error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return "", errors.New("stub generator exhausted")
}

const sampleBody = `Police said a fire broke out at a warehouse in Springfield on Tuesday night. ` +
	`Officials confirmed two workers were injured and taken to a nearby hospital. ` +
	`According to authorities, the blaze was brought under control within three hours. ` +
	`A spokesperson for the fire department said the cause remains under investigation. ` +
	`The warehouse, owned by Harbor Logistics, stored approximately 40% of the company's regional inventory.`

func TestNormalizer_GenerateTitle_NoModelUsesFallback(t *testing.T) {
	n := New(nil)
	title := n.GenerateTitle(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if title == "" {
		t.Fatal("expected non-empty title")
	}
	if len(title) < titleMinLength {
		t.Errorf("fallback title too short: %q", title)
	}
}

func TestNormalizer_GenerateTitle_ModelSuccess(t *testing.T) {
	gen := &stubGenerator{results: []string{"Fire Damages Springfield Warehouse, Two Hurt"}}
	n := New(gen)
	title := n.GenerateTitle(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if title != "Fire Damages Springfield Warehouse, Two Hurt" {
		t.Errorf("expected model title to be used, got %q", title)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one generate call, got %d", gen.calls)
	}
}

func TestNormalizer_GenerateTitle_ModelErrorsFallsBack(t *testing.T) {
	gen := &stubGenerator{errs: []error{errors.New("timeout"), errors.New("timeout")}}
	n := New(gen)
	title := n.GenerateTitle(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if title == "" {
		t.Fatal("expected non-empty fallback title")
	}
	if gen.calls != modelMaxAttempts {
		t.Errorf("expected %d retry attempts, got %d", modelMaxAttempts, gen.calls)
	}
}

func TestNormalizer_GenerateTitle_ModelRetriesThenSucceeds(t *testing.T) {
	gen := &stubGenerator{
		errs:    []error{errors.New("transient")},
		results: []string{"", "Springfield Warehouse Fire Injures Two Workers"},
	}
	n := New(gen)
	title := n.GenerateTitle(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if title != "Springfield Warehouse Fire Injures Two Workers" {
		t.Errorf("expected retry success title, got %q", title)
	}
	if gen.calls != 2 {
		t.Errorf("expected 2 calls (1 failure + 1 success), got %d", gen.calls)
	}
}

func TestNormalizer_GenerateTitle_ModelOutputFailsValidationFallsBack(t *testing.T) {
	gen := &stubGenerator{results: []string{"Hi"}}
	n := New(gen)
	title := n.GenerateTitle(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if title == "Hi" {
		t.Error("expected invalid short model title to be rejected")
	}
	if len(title) < titleMinLength {
		t.Errorf("fallback title too short: %q", title)
	}
}

func TestNormalizer_GenerateExcerpt_NoModelUsesFallback(t *testing.T) {
	n := New(nil)
	excerpt := n.GenerateExcerpt(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if excerpt == "" {
		t.Fatal("expected non-empty excerpt")
	}
}

func TestNormalizer_GenerateExcerpt_ModelSuccess(t *testing.T) {
	modelOutput := strings.Repeat("Fire crews responded quickly to the blaze. ", 15)
	gen := &stubGenerator{results: []string{modelOutput}}
	n := New(gen)
	excerpt := n.GenerateExcerpt(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if excerpt == "" {
		t.Fatal("expected non-empty excerpt")
	}
	words := len(strings.Fields(excerpt))
	if words < excerptMinWords || words > excerptMaxWords {
		t.Errorf("expected model excerpt word count within bounds, got %d", words)
	}
}

func TestNormalizer_GenerateExcerpt_ModelRefusalFallsBack(t *testing.T) {
	gen := &stubGenerator{results: []string{"I cannot generate a summary of this content."}}
	n := New(gen)
	excerpt := n.GenerateExcerpt(context.Background(), sampleBody, "Warehouse Fire Hits Springfield")
	if strings.Contains(strings.ToLower(excerpt), "i cannot") {
		t.Errorf("expected refusal to be rejected, got %q", excerpt)
	}
}

func TestNormalizer_GenerateTitle_NeverEmpty(t *testing.T) {
	n := New(nil)
	title := n.GenerateTitle(context.Background(), "", "")
	if title == "" {
		t.Fatal("GenerateTitle must never return an empty string")
	}
	if title != absoluteFallbackTitle {
		t.Errorf("expected absolute fallback title for empty input, got %q", title)
	}
}

func TestNormalizer_GenerateExcerpt_NeverEmpty(t *testing.T) {
	n := New(nil)
	excerpt := n.GenerateExcerpt(context.Background(), "", "")
	if excerpt == "" {
		t.Fatal("GenerateExcerpt must never return an empty string")
	}
}
