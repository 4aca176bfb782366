package cluster

import (
	"regexp"
	"strings"
)

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern = regexp.MustCompile("`{1,3}([^`]+)`{1,3}")
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	braceBlockPattern = regexp.MustCompile(`\{[^}]*\}`)
)

// cleanForComparison strips code blocks, inline code, HTML tags, and
// brace-delimited boilerplate before a text enters similarity scoring,
// mirroring the clustering source's _prepare_content_for_comparison.
func cleanForComparison(raw string) string {
	s := codeBlockPattern.ReplaceAllString(raw, " ")
	s = inlineCodePattern.ReplaceAllString(s, "$1")
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = braceBlockPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
