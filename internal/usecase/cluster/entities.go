package cluster

import (
	"regexp"
	"strings"
)

// geoSynonyms canonicalizes common geopolitical names and abbreviations so
// that "uk", "britain", and "united kingdom" are treated as the same
// location for overlap scoring (spec ss4.4 Step 3).
var geoSynonyms = map[string]string{
	"uk": "united kingdom", "u.k.": "united kingdom", "u.k": "united kingdom",
	"united kingdom": "united kingdom", "britain": "united kingdom", "great britain": "united kingdom",
	"gb": "united kingdom", "england": "united kingdom",

	"us": "united states", "u.s.": "united states", "u.s": "united states",
	"usa": "united states", "u.s.a.": "united states", "united states": "united states",
	"america": "united states",

	"eu": "european union", "e.u.": "european union", "e.u": "european union",
	"european union": "european union",
}

// geoGazetteer is a small set of frequently-mentioned places recognized as
// single-word geopolitical entities even when they sit inside a longer
// capitalized sequence, which the one-to-three-word sequence pattern
// captures only as a whole (e.g. "Gaza City" alone yields "gaza city").
var geoGazetteer = map[string]bool{
	"germany": true, "german": true, "munich": true, "uk": true, "britain": true,
	"france": true, "french": true, "iran": true, "iranian": true, "israel": true,
	"gaza": true, "palestine": true, "chicago": true, "illinois": true, "europe": true,
	"european": true, "usa": true, "america": true, "china": true, "russia": true,
	"ukraine": true, "japan": true, "india": true, "syria": true, "lebanon": true,
	"egypt": true, "turkey": true, "mexico": true, "canada": true, "australia": true,
}

var capitalizedSequencePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)
var capitalizedWordPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

func normalizeGeoName(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canon, ok := geoSynonyms[lower]; ok {
		return canon
	}
	return lower
}

// extractGeoEntities returns the set of normalized geopolitical names found
// in text: capitalized sequences and gazetteer single words.
func extractGeoEntities(text string) map[string]bool {
	found := make(map[string]bool)
	for _, m := range capitalizedSequencePattern.FindAllString(text, -1) {
		found[normalizeGeoName(m)] = true
	}
	for _, m := range capitalizedWordPattern.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if geoGazetteer[lower] {
			found[normalizeGeoName(lower)] = true
		}
	}
	return found
}

// eventEntityTerms are the event-indicator vocabulary used in place of
// spaCy's EVENT entity label, which the source itself notes is rarely
// populated by its small model.
var eventEntityTerms = []string{
	"ceasefire", "truce", "election", "protest", "demonstration", "earthquake",
	"flood", "storm", "hurricane", "explosion", "bombing", "shooting", "strike",
	"attack", "invasion", "summit", "referendum", "coup", "uprising",
}

// extractEventEntities returns the set of event-indicator terms present in
// text, lowercased.
func extractEventEntities(text string) map[string]bool {
	lower := strings.ToLower(text)
	found := make(map[string]bool)
	for _, term := range eventEntityTerms {
		if strings.Contains(lower, term) {
			found[term] = true
		}
	}
	return found
}
