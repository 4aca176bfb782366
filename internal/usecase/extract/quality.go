package extract

import (
	"regexp"
	"strings"
)

const (
	minTitleLength   = 10
	minBodyLength    = 200
	minWordCount     = 20
	minAvgWordLength = 3.0
	maxAvgWordLength = 12.0
	minArticlePatterns = 2
)

// htmlFragmentIndicators flag text that looks like leftover chrome rather
// than article prose: share widgets, paywalls, and raw script/markup.
var htmlFragmentIndicators = []string{
	"see all topics", "facebook tweet email link", "link copied",
	"follow us", "share", "subscribe", "advertisement", "sponsored", "promoted",
	"<script", "<style", "<meta", "<link",
	"function(", "var ", "const ", "let ",
	"document.", "window.", "console.",
	"loading", "spinner", "placeholder",
}

var articlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(said|told|according to|reported|announced|stated)\b`),
	regexp.MustCompile(`(?i)\b(police|officials|authorities|government)\b.*\b(said|stated|announced)\b`),
	regexp.MustCompile(`\b\d{4}\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
}

// isMeaningfulContent rejects extraction results that look like HTML
// fragments or boilerplate rather than article prose.
func isMeaningfulContent(title, body string) bool {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if len(body) < minBodyLength {
		return false
	}
	if len(title) < minTitleLength {
		return false
	}

	combined := strings.ToLower(title + " " + body)
	for _, indicator := range htmlFragmentIndicators {
		if strings.Contains(combined, indicator) {
			return false
		}
	}

	// Patterns run on the original-case text so the proper-noun pattern can match.
	original := title + " " + body
	matched := 0
	for _, pattern := range articlePatterns {
		if pattern.MatchString(original) {
			matched++
		}
	}
	if matched < minArticlePatterns {
		return false
	}

	words := strings.Fields(body)
	if len(words) < minWordCount {
		return false
	}

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgLen := float64(totalLen) / float64(len(words))
	if avgLen < minAvgWordLength || avgLen > maxAvgWordLength {
		return false
	}

	return true
}
