package extract

import (
	"regexp"
	"strings"
)

var (
	videoTimestampPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
	videoWordPattern      = regexp.MustCompile(`(?i)video`)
	bylinePattern         = regexp.MustCompile(`(?i)By [A-Za-z\s]+|Share|Follow us|Subscribe`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
)

// boilerplatePatterns strips recurring non-article chrome: ad markers,
// social prompts, image credit lines, and copyright notices.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)advertisement`),
	regexp.MustCompile(`(?i)share this`),
	regexp.MustCompile(`(?i)follow us`),
	regexp.MustCompile(`(?i)subscribe to`),
	regexp.MustCompile(`(?i)related articles`),
	regexp.MustCompile(`(?i)more from`),
	regexp.MustCompile(`©\s*\d{4}`),
	regexp.MustCompile(`(?i)view image in fullscreen`),
	regexp.MustCompile(`(?i)illustration:`),
	regexp.MustCompile(`(?i)getty images`),
	regexp.MustCompile(`(?i)shutterstock`),
}

// cleanContent normalizes extracted DOM text into article prose: strips
// video timestamps, bylines, and boilerplate phrases, then collapses
// whitespace and trims stray punctuation left behind by the strips.
func cleanContent(text string) string {
	if text == "" {
		return ""
	}

	text = videoTimestampPattern.ReplaceAllString(text, "")
	text = videoWordPattern.ReplaceAllString(text, "")
	text = bylinePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	for _, pattern := range boilerplatePatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	text = strings.Trim(text, ".,;:!?")

	return text
}
