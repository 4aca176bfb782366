package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// refusalMarkers flag a model declining to answer rather than producing
// a usable title or excerpt.
var refusalMarkers = []string{
	"cannot generate", "cannot create", "unable to", "i cannot",
	"inappropriate", "as an ai", "i'm not able",
}

// bannedPatterns flag output that is really leftover markup rather than
// prose: CSS selectors, code blocks, stylesheet fragments.
var bannedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[.#][a-zA-Z][\w-]*\s*\{`),
	regexp.MustCompile("```"),
	regexp.MustCompile(`(?i)^\s*@media`),
	regexp.MustCompile(`function\s*\(`),
}

func containsRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func matchesBannedPattern(text string) bool {
	for _, pattern := range bannedPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// validateTitle rejects model output that isn't usable as a title:
// refusals, length outside [titleMinLength, titleMaxLength], or markup
// leftovers.
func validateTitle(text string) error {
	if containsRefusal(text) {
		return fmt.Errorf("title contains a refusal marker")
	}
	if len(text) < titleMinLength || len(text) > titleMaxLength {
		return fmt.Errorf("title length %d outside [%d, %d]", len(text), titleMinLength, titleMaxLength)
	}
	if matchesBannedPattern(text) {
		return fmt.Errorf("title matches a banned pattern")
	}
	return nil
}

// validateExcerpt rejects model output that isn't usable as an excerpt:
// refusals, word count outside [excerptMinWords, excerptMaxWords], or
// markup leftovers.
func validateExcerpt(text string) error {
	if containsRefusal(text) {
		return fmt.Errorf("excerpt contains a refusal marker")
	}
	words := len(strings.Fields(text))
	if words < excerptMinWords || words > excerptMaxWords {
		return fmt.Errorf("excerpt word count %d outside [%d, %d]", words, excerptMinWords, excerptMaxWords)
	}
	if matchesBannedPattern(text) {
		return fmt.Errorf("excerpt matches a banned pattern")
	}
	return nil
}
