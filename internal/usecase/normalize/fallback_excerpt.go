package normalize

import (
	"regexp"
	"strings"
)

const absoluteFallbackExcerpt = "Details were not available at the time of publication."

// eventKeywords raise a sentence's rank when it reports on an event or a
// casualty/impact figure, the kind of sentence a neutral excerpt should
// lead with.
var eventKeywords = []string{
	"said", "told", "according to", "reported", "announced", "stated",
	"killed", "injured", "died", "deaths", "victims",
	"police", "officials", "authorities", "government",
	"warned", "confirmed", "investigation",
}

var properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
var numericFactPattern = regexp.MustCompile(`\b\d+([.,]\d+)?%?\b`)

// fallbackExcerpt concatenates the top-ranked sentences of body until the
// word budget is reached, preferring sentences with event keywords,
// named entities, or numeric facts and rejecting metadata noise.
func fallbackExcerpt(body, originalTitle string) string {
	sentences := splitSentences(body)
	if len(sentences) == 0 {
		return absoluteFallbackExcerpt
	}

	type scored struct {
		text  string
		score float64
	}

	ranked := make([]scored, 0, len(sentences))
	for _, sentence := range sentences {
		if metadataSentencePattern.MatchString(sentence) {
			continue
		}
		ranked = append(ranked, scored{text: sentence, score: scoreSentence(sentence, originalTitle)})
	}
	if len(ranked) == 0 {
		return absoluteFallbackExcerpt
	}

	for i := range ranked {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].score > ranked[i].score {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	var selected []string
	wordCount := 0
	for _, s := range ranked {
		words := len(strings.Fields(s.text))
		if wordCount > 0 && wordCount+words > excerptMaxWords {
			continue
		}
		selected = append(selected, s.text)
		wordCount += words
		if wordCount >= excerptTargetWords {
			break
		}
	}

	if len(selected) == 0 {
		selected = append(selected, ranked[0].text)
	}

	excerpt := strings.Join(selected, ". ")
	return ensureTerminalPunctuation(excerpt)
}

// scoreSentence ranks a sentence by the presence of event keywords,
// named entities, numeric facts, and overlap with the original title.
func scoreSentence(sentence, originalTitle string) float64 {
	lower := strings.ToLower(sentence)
	score := 0.0

	for _, keyword := range eventKeywords {
		if strings.Contains(lower, keyword) {
			score += 0.1
		}
	}

	if matches := properNounPattern.FindAllString(sentence, -1); len(matches) > 0 {
		score += 0.2 * float64(len(matches))
	}

	if numericFactPattern.MatchString(sentence) {
		score += 0.15
	}

	words := len(strings.Fields(sentence))
	if words >= 10 && words <= 40 {
		score += 0.2
	}

	if originalTitle != "" {
		titleWords := wordSet(originalTitle)
		sentenceWords := wordSet(sentence)
		common := 0
		for w := range titleWords {
			if sentenceWords[w] {
				common++
			}
		}
		if len(titleWords) > 0 {
			score += 0.2 * float64(common) / float64(len(titleWords))
		}
	}

	return score
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = true
	}
	return set
}

func ensureTerminalPunctuation(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return absoluteFallbackExcerpt
	}
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}
