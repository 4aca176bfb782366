package extract

import (
	"strings"
	"testing"
)

func TestCleanContent_StripsBoilerplate(t *testing.T) {
	text := "This is the real article text. Advertisement Share this Follow us on social media. " +
		"© 2024 Example Corp. Getty Images"

	got := cleanContent(text)

	for _, stripped := range []string{"Advertisement", "Share this", "Follow us", "© 2024", "Getty Images"} {
		if strings.Contains(got, stripped) {
			t.Errorf("expected %q to be stripped, got: %q", stripped, got)
		}
	}
	if !strings.Contains(got, "real article text") {
		t.Errorf("expected article text to survive cleaning, got: %q", got)
	}
}

func TestCleanContent_StripsVideoTimestamps(t *testing.T) {
	got := cleanContent("Watch the clip 0:24 before reading the full video story below.")
	if strings.Contains(got, "0:24") {
		t.Errorf("expected timestamp to be stripped, got: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "video") {
		t.Errorf("expected the word video to be stripped, got: %q", got)
	}
}

func TestCleanContent_CollapsesWhitespace(t *testing.T) {
	got := cleanContent("Too   many\n\n  spaces   here")
	if strings.Contains(got, "  ") {
		t.Errorf("expected whitespace to collapse, got: %q", got)
	}
}

func TestCleanContent_EmptyInput(t *testing.T) {
	if got := cleanContent(""); got != "" {
		t.Errorf("expected empty output for empty input, got: %q", got)
	}
}
