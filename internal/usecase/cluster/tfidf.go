package cluster

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// englishStopWords is a compact English stop-word list covering the
// function words most likely to dominate raw term counts in short news
// text. It does not aim to be exhaustive, only to remove the terms that
// would otherwise swamp the discriminative ones.
var englishStopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(
		`a about above after again against all am an and any are as at be because been ` +
			`before being below between both but by can did do does doing down during each ` +
			`few for from further had has have having he her here hers herself him himself ` +
			`his how i if in into is it its itself just me more most my myself no nor not ` +
			`now of off on once only or other our ours ourselves out over own same she should ` +
			`so some such than that the their theirs them themselves then there these they ` +
			`this those through to too under until up very was we were what when where which ` +
			`while who whom why will with you your yours yourself yourselves`) {
		englishStopWords[w] = true
	}
}

// tokenize lowercases and splits text into alphanumeric word tokens,
// dropping English stop words.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if englishStopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ngrams builds unigrams, bigrams, and trigrams from words, matching the
// clustering source's (1,3) ngram_range.
func ngrams(words []string) []string {
	var terms []string
	for n := 1; n <= 3; n++ {
		if len(words) < n {
			break
		}
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// tfidfCosineSimilarity computes the TF-IDF cosine similarity between two
// documents using a two-document corpus, mirroring
// TfidfVectorizer.fit_transform([text1, text2]).cosine_similarity: smoothed
// idf = ln((1+N)/(1+df)) + 1 with N=2, L2-normalized term vectors.
func tfidfCosineSimilarity(text1, text2 string) float64 {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0.0
	}

	terms1 := termCounts(ngrams(tokenize(text1)))
	terms2 := termCounts(ngrams(tokenize(text2)))
	if len(terms1) == 0 || len(terms2) == 0 {
		return 0.0
	}

	df := make(map[string]int, len(terms1)+len(terms2))
	for t := range terms1 {
		df[t]++
	}
	for t := range terms2 {
		df[t]++
	}

	idf := func(term string) float64 {
		return math.Log(3.0/float64(1+df[term])) + 1.0
	}

	vec1 := make(map[string]float64, len(terms1))
	for t, tf := range terms1 {
		vec1[t] = float64(tf) * idf(t)
	}
	vec2 := make(map[string]float64, len(terms2))
	for t, tf := range terms2 {
		vec2[t] = float64(tf) * idf(t)
	}

	norm1 := l2Norm(vec1)
	norm2 := l2Norm(vec2)
	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}

	var dot float64
	for t, v1 := range vec1 {
		if v2, ok := vec2[t]; ok {
			dot += v1 * v2
		}
	}

	return dot / (norm1 * norm2)
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

func l2Norm(vec map[string]float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}
