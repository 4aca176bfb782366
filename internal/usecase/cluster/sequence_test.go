package cluster

import "testing"

func TestSequenceRatio_IdenticalStrings(t *testing.T) {
	if got := sequenceRatio("warehouse fire", "warehouse fire"); got != 1.0 {
		t.Errorf("expected ratio 1.0 for identical strings, got %v", got)
	}
}

func TestSequenceRatio_EmptyStrings(t *testing.T) {
	if got := sequenceRatio("", ""); got != 1.0 {
		t.Errorf("expected ratio 1.0 for two empty strings, got %v", got)
	}
	if got := sequenceRatio("fire", ""); got != 0.0 {
		t.Errorf("expected ratio 0.0 when one string is empty, got %v", got)
	}
}

func TestSequenceRatio_CompletelyDifferent(t *testing.T) {
	got := sequenceRatio("abc", "xyz")
	if got != 0.0 {
		t.Errorf("expected ratio 0.0 for disjoint strings, got %v", got)
	}
}

func TestSequenceRatio_PartialOverlap(t *testing.T) {
	got := sequenceRatio("warehouse fire in springfield", "warehouse fire in chicago")
	if got < 0.6 {
		t.Errorf("expected high ratio for largely-overlapping strings, got %v", got)
	}
	if got >= 1.0 {
		t.Errorf("expected ratio below 1.0 for non-identical strings, got %v", got)
	}
}

func TestTitleSequenceRatio_CaseInsensitive(t *testing.T) {
	got := titleSequenceRatio("Warehouse Fire", "WAREHOUSE FIRE")
	if got != 1.0 {
		t.Errorf("expected case-insensitive match to score 1.0, got %v", got)
	}
}
