package normalize

import (
	"strings"
	"testing"
)

func repeatWords(word string, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = word
	}
	return strings.Join(words, " ")
}

func TestContainsRefusal(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"I cannot generate a headline for this.", true},
		{"As an AI, I am unable to judge this.", true},
		{"Fire Damages Springfield Warehouse", false},
	}
	for _, c := range cases {
		if got := containsRefusal(c.text); got != c.want {
			t.Errorf("containsRefusal(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestMatchesBannedPattern(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{".article { display: none; }", true},
		{"```go\nfunc main() {}\n```", true},
		{"function(x) { return x }", true},
		{"Fire Damages Springfield Warehouse", false},
	}
	for _, c := range cases {
		if got := matchesBannedPattern(c.text); got != c.want {
			t.Errorf("matchesBannedPattern(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := validateTitle("Fire Damages Springfield Warehouse, Two Injured"); err != nil {
		t.Errorf("expected valid title to pass, got error: %v", err)
	}
	if err := validateTitle("Too short"); err == nil {
		t.Error("expected short title to fail validation")
	}
	if err := validateTitle(strings.Repeat("a", titleMaxLength+1)); err == nil {
		t.Error("expected overlong title to fail validation")
	}
	if err := validateTitle("I cannot generate a neutral headline for this content today"); err == nil {
		t.Error("expected refusal to fail validation")
	}
	if err := validateTitle(".headline { color: red; } some filler text here"); err == nil {
		t.Error("expected banned pattern to fail validation")
	}
}

func TestValidateExcerpt(t *testing.T) {
	valid := repeatWords("word", 100)
	if err := validateExcerpt(valid); err != nil {
		t.Errorf("expected valid excerpt to pass, got error: %v", err)
	}
	tooShort := repeatWords("word", 10)
	if err := validateExcerpt(tooShort); err == nil {
		t.Error("expected too-short excerpt to fail validation")
	}
	tooLong := repeatWords("word", excerptMaxWords+20)
	if err := validateExcerpt(tooLong); err == nil {
		t.Error("expected too-long excerpt to fail validation")
	}
	refusalWithLength := "Unable to summarize this article. " + repeatWords("word", 60)
	if err := validateExcerpt(refusalWithLength); err == nil {
		t.Error("expected refusal marker to fail validation even with sufficient length")
	}
}
