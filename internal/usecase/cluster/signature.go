package cluster

import "strings"

// storySignature builds a deterministic fingerprint for corroboration
// gating: title/excerpt 3-grams (bigrams if too short to form trigrams),
// geopolitical entities, and the first six salient title+excerpt tokens.
func storySignature(title, excerpt string) map[string]bool {
	text := strings.TrimSpace(tokenizedText(title) + " " + tokenizedText(excerpt))
	words := significantWords(text)

	n := 3
	if len(words) < 3 {
		n = 2
	}

	sig := make(map[string]bool)
	for i := 0; i+n <= len(words); i++ {
		sig[strings.Join(words[i:i+n], " ")] = true
	}
	for entity := range extractGeoEntities(title + " " + excerpt) {
		if entity != "" {
			sig[entity] = true
		}
	}
	limit := 6
	if len(words) < limit {
		limit = len(words)
	}
	for _, w := range words[:limit] {
		sig[w] = true
	}
	return sig
}

// tokenizedText lowercases and strips punctuation, matching the
// clustering source's _normalize_text.
func tokenizedText(s string) string {
	return strings.Join(tokenize(s), " ")
}

// significantWords returns words at least 3 characters long.
func significantWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if len(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

// signatureOverlap returns the overlap ratio of two signatures, using the
// smaller signature as the denominator (spec ss4.4 Step 4).
func signatureOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		smaller = 1
	}
	return float64(inter) / float64(smaller)
}
