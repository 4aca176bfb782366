package normalize

import (
	"regexp"
	"strings"
)

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+\s*`)

// splitSentences splits text on terminal punctuation, dropping empty and
// very short fragments that are unlikely to be real sentences.
func splitSentences(text string) []string {
	parts := sentenceSplitPattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) < 10 {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}
