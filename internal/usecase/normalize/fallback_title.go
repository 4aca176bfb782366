package normalize

import (
	"regexp"
	"strings"
)

const (
	absoluteFallbackTitle = "News Update"
	titleTruncateLength   = 80
)

var metadataSentencePattern = regexp.MustCompile(`(?i)^(by\s|share|follow|subscribe|advertisement|photo:|image:|©)`)

// fallbackTitle deterministically derives a title from the article body:
// the first non-metadata sentence, truncated and punctuation-normalized.
// It falls back to originalTitle, and ultimately to "News Update".
func fallbackTitle(body, originalTitle string) string {
	for _, sentence := range splitSentences(body) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || metadataSentencePattern.MatchString(sentence) {
			continue
		}
		if len(sentence) < titleMinLength {
			continue
		}
		return normalizeTitlePunctuation(truncate(sentence, titleTruncateLength))
	}

	if trimmed := strings.TrimSpace(originalTitle); len(trimmed) >= titleMinLength {
		return normalizeTitlePunctuation(truncate(trimmed, titleTruncateLength))
	}

	return absoluteFallbackTitle
}

// normalizeTitlePunctuation trims trailing sentence punctuation and
// stray whitespace left behind by truncation.
func normalizeTitlePunctuation(title string) string {
	title = strings.TrimSpace(title)
	title = strings.TrimRight(title, ".,;:!? ")
	return title
}
