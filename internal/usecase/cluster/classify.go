package cluster

import "strings"

// breakingTerms and policyTerms drive the lexical heuristic that picks a
// weight vector and threshold for a candidate (spec ss4.4 Step 2).
var breakingTerms = []string{
	"killed", "injured", "arrested", "shooting", "attack", "explosion", "fire", "crash",
	"dead", "deaths", "evacuated", "police said", "authorities", "suspect",
}

var policyTerms = []string{
	"policy", "proposal", "proposes", "plan", "plans", "rollout", "regulation",
	"analysis", "opinion", "lessons", "debate", "parliament", "minister", "white paper",
}

// inferArticleType classifies text as breaking or policy, defaulting to
// breaking (the stricter of the two) when neither vocabulary is present.
func inferArticleType(text string) ArticleType {
	lower := strings.ToLower(text)
	for _, term := range breakingTerms {
		if strings.Contains(lower, term) {
			return ArticleTypeBreaking
		}
	}
	for _, term := range policyTerms {
		if strings.Contains(lower, term) {
			return ArticleTypePolicy
		}
	}
	return ArticleTypeBreaking
}

var ukTerms = []string{"united kingdom", "uk", "britain", "great britain"}
var digitalIDTerms = []string{"digital id", "digital identity", "eidas"}

// topicBoostPolicy adds a small additive boost when two policy articles
// share UK geography and digital-identity terminology (spec ss4.4 Step 3).
func topicBoostPolicy(baseText, candText string) float64 {
	base := strings.ToLower(baseText)
	cand := strings.ToLower(candText)

	ukMatch := containsAny(base, ukTerms) && containsAny(cand, ukTerms)
	topicMatch := containsAny(base, digitalIDTerms) && containsAny(cand, digitalIDTerms)
	if ukMatch && topicMatch {
		return policyTopicBoost
	}
	return 0.0
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
