package cluster

import "testing"

func TestStorySignature_NonEmpty(t *testing.T) {
	sig := storySignature("Warehouse Fire Hits Springfield Overnight", "Officials say two workers were injured in the blaze.")
	if len(sig) == 0 {
		t.Fatal("expected non-empty signature")
	}
}

func TestStorySignature_SharedStoryHasHighOverlap(t *testing.T) {
	sigA := storySignature("Warehouse Fire Hits Springfield Overnight", "Officials say two workers were injured in the blaze.")
	sigB := storySignature("Springfield Warehouse Fire Injures Two", "Authorities confirmed the workers were hospitalized after the blaze.")
	overlap := signatureOverlap(sigA, sigB)
	if overlap <= 0 {
		t.Errorf("expected positive overlap between signatures of the same story, got %v", overlap)
	}
}

func TestStorySignature_UnrelatedStoriesLowOverlap(t *testing.T) {
	sigA := storySignature("Warehouse Fire Hits Springfield Overnight", "Officials say two workers were injured in the blaze.")
	sigB := storySignature("Stock Market Rallies After Earnings", "Analysts pointed to strong quarterly growth across the sector.")
	overlap := signatureOverlap(sigA, sigB)
	if overlap > 0.2 {
		t.Errorf("expected low overlap between unrelated stories, got %v", overlap)
	}
}

func TestSignatureOverlap_EmptySignature(t *testing.T) {
	if got := signatureOverlap(map[string]bool{}, map[string]bool{"a": true}); got != 0.0 {
		t.Errorf("expected 0 overlap with an empty signature, got %v", got)
	}
}
