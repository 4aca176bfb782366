package cluster

import (
	"regexp"
	"sort"
	"strings"
)

const (
	clusterTitleMaxLength = 90
	clusterTitleMinLength = 10
	clusterSummaryMaxWords = 140
)

var sentenceBoundaryPattern = regexp.MustCompile(`(?:[.!?])\s+`)

// generateClusterTitle synthesizes a deterministic title from the
// aggregated text of a cluster's members (spec ss4.4.1): a centrality-
// scored headline candidate, falling back to Location -- Topic, then to
// the two most frequent capitalized tokens.
func generateClusterTitle(texts []string) string {
	limit := len(texts)
	if limit > 5 {
		limit = 5
	}
	heads := make([]string, 0, limit)
	for _, t := range texts[:limit] {
		heads = append(heads, headlineCandidate(t))
	}

	if central := mostCentralHeadline(heads); central != "" {
		normalized := normalizeTitleCase(strings.Trim(central, " ."))
		if len(normalized) >= clusterTitleMinLength && len(normalized) <= clusterTitleMaxLength {
			return normalized
		}
	}

	allText := strings.Join(texts, " ")
	if loc, topic := dominantLocationAndTopic(allText); loc != "" && topic != "" {
		return truncateTitle(strings.Title(loc) + " -- " + strings.Title(topic))
	}

	if top := topTokens(allText, 2); len(top) >= 2 {
		return truncateTitle(strings.Title(top[0]) + " " + strings.Title(top[1]))
	}
	return "News Update"
}

// headlineCandidate proxies a member's headline: its first sentence, or
// its first 12 words if that sentence runs long.
func headlineCandidate(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	firstSentence := sentenceBoundaryPattern.Split(text, 2)[0]
	words := strings.Fields(firstSentence)
	if len(words) > 12 {
		return strings.Join(words[:12], " ")
	}
	if len(firstSentence) >= 8 {
		return firstSentence
	}
	all := strings.Fields(text)
	if len(all) > 12 {
		all = all[:12]
	}
	return strings.Join(all, " ")
}

// mostCentralHeadline scores each headline candidate by token-Jaccard
// similarity to every other candidate and returns the one with the
// highest total score, requiring at least 5 words so a fragment never
// wins by default.
func mostCentralHeadline(heads []string) string {
	if len(heads) == 0 {
		return ""
	}
	tokenSets := make([]map[string]bool, len(heads))
	for i, h := range heads {
		tokenSets[i] = wordSet(h)
	}

	bestIdx, bestScore := -1, -1.0
	for i := range heads {
		if len(strings.Fields(heads[i])) < 5 {
			continue
		}
		score := 0.0
		for j := range heads {
			if i == j || len(tokenSets[i]) == 0 || len(tokenSets[j]) == 0 {
				continue
			}
			score += jaccardSimilarity(tokenSets[i], tokenSets[j])
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return ""
	}
	return heads[bestIdx]
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// topicKeywords maps a topic label to the keywords whose counts support it.
var topicKeywords = map[string][]string{
	"ceasefire": {"ceasefire", "truce", "hostage", "deal", "agreement"},
	"air base":  {"air base", "airforce", "air force", "facility", "fighter", "jets", "training"},
	"attack":    {"attack", "assault", "strike", "bombing"},
	"election":  {"election", "vote", "campaign", "polls"},
	"protest":   {"protest", "demonstration", "rally"},
	"economy":   {"market", "inflation", "stocks", "economy"},
}

func dominantLocationAndTopic(allText string) (string, string) {
	loc := dominantLocation(allText)
	topic := dominantTopic(allText)
	return loc, topic
}

func dominantTopic(allText string) string {
	lower := strings.ToLower(allText)
	bestTopic, bestScore := "", -1
	topics := make([]string, 0, len(topicKeywords))
	for t := range topicKeywords {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		score := 0
		for _, kw := range topicKeywords[topic] {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			bestScore = score
			bestTopic = topic
		}
	}
	if bestScore <= 0 {
		return ""
	}
	return bestTopic
}

var excludedLocations = map[string]bool{"unknown": true, "european union": true}

func dominantLocation(allText string) string {
	geo := extractGeoEntities(allText)
	counts := make(map[string]int)
	for _, m := range capitalizedSequencePattern.FindAllString(allText, -1) {
		norm := normalizeGeoName(m)
		if geo[norm] && !excludedLocations[norm] {
			counts[norm]++
		}
	}
	best, bestCount := "", 0
	for loc, c := range counts {
		if c > bestCount {
			best, bestCount = loc, c
		}
	}
	return best
}

func topTokens(text string, n int) []string {
	counts := make(map[string]int)
	for _, w := range capitalizedWordPattern.FindAllString(text, -1) {
		w = strings.ToLower(w)
		if len(w) >= 3 && !englishStopWords[w] {
			counts[w]++
		}
	}
	type kv struct {
		word  string
		count int
	}
	list := make([]kv, 0, len(counts))
	for w, c := range counts {
		list = append(list, kv{w, c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].word < list[j].word
	})
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(list); i++ {
		out = append(out, list[i].word)
	}
	return out
}

func normalizeTitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToUpper(w) && len(w) > 1 {
			continue
		}
		if len(w) > 3 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		} else {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func truncateTitle(s string) string {
	if len(s) <= clusterTitleMaxLength {
		return s
	}
	return strings.TrimSpace(s[:clusterTitleMaxLength])
}

// generateClusterSummary selects the first informative sentence (30-240
// chars) from each of up to three member texts, deduplicates, and joins
// until the word budget is reached, ensuring terminal punctuation (spec
// ss4.4.1).
func generateClusterSummary(texts []string, excludeTitle string) string {
	limit := len(texts)
	if limit > 3 {
		limit = 3
	}

	var sentences []string
	for _, raw := range texts[:limit] {
		cleaned := summaryClean(raw, excludeTitle)
		for _, part := range sentenceBoundaryPattern.Split(cleaned, -1) {
			s := strings.TrimSpace(part)
			if len(s) >= 30 && len(s) <= 240 {
				sentences = append(sentences, s)
				break
			}
		}
	}

	seen := make(map[string]bool)
	var deduped []string
	for _, s := range sentences {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, s)
	}

	var out []string
	count := 0
	for _, s := range deduped {
		n := len(strings.Fields(s))
		if count+n > clusterSummaryMaxWords {
			break
		}
		out = append(out, s)
		count += n
	}

	summary := strings.TrimSpace(strings.Join(out, " "))
	if summary == "" {
		fallback := summaryClean(strings.Join(texts, " "), excludeTitle)
		if len(fallback) > 300 {
			return fallback[:300] + "..."
		}
		return fallback
	}
	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "!") && !strings.HasSuffix(summary, "?") {
		summary += "."
	}
	return summary
}

func summaryClean(raw, excludeTitle string) string {
	s := raw
	if excludeTitle != "" {
		s = strings.Replace(s, excludeTitle, "", 1)
	}
	s = cleanForComparison(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
