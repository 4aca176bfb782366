package cluster

import (
	"regexp"
	"strings"
	"time"
)

// gateStopWords is the small stop list the gating token-Jaccard check uses,
// distinct from the larger list the TF-IDF scorer removes: gating wants a
// coarser, more permissive token set.
var gateStopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(
		`the and for with that this from have has are was were will into over under ` +
			`after before about your their them they you our but not out his her its had ` +
			`who what when where why how`) {
		gateStopWords[w] = true
	}
}

var gateTokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// gateTokens tokenizes text for the token-Jaccard gate: lowercase,
// alphanumeric words of at least 3 characters, minus gateStopWords.
func gateTokens(text string) map[string]bool {
	words := gateTokenPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) >= 3 && !gateStopWords[w] {
			set[w] = true
		}
	}
	return set
}

var twoOrThreeWordEntityPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)

// pureGeographyTerms are tokens that, on their own, indicate only shared
// geography rather than a shared story, and so don't alone justify a match
// (spec ss4.4 Step 4's geography-only rejection).
var pureGeographyTerms = map[string]bool{
	"germany": true, "german": true, "munich": true, "uk": true, "united": true,
	"kingdom": true, "britain": true, "france": true, "french": true, "iran": true,
	"iranian": true, "israel": true, "gaza": true, "palestine": true, "chicago": true,
	"illinois": true, "europe": true, "european": true, "union": true, "usa": true,
	"america": true, "us": true,
}

type gateInput struct {
	baseTitle   string
	baseExcerpt string
	baseDomain  string
	baseSig     map[string]bool
	baseCreated time.Time

	candTitle   string
	candExcerpt string
	candDomain  string
	candCreated time.Time
}

type gateResult struct {
	accept       bool
	titleSim     float64
	tokenJaccard float64
	entityOver   bool
	timeOK       bool
	sigOverlap   float64
}

// evaluateGate applies spec ss4.4 Step 4's orthogonal-signal gating: the
// candidate must clear its type-appropriate similarity threshold (checked
// by the caller) AND pass the gates computed here.
func evaluateGate(in gateInput) gateResult {
	titleSim := titleSequenceRatio(in.baseTitle, in.candTitle)

	baseTok := gateTokens(in.baseTitle + " " + in.baseExcerpt)
	candTok := gateTokens(in.candTitle + " " + in.candExcerpt)
	jaccard := jaccardSimilarity(baseTok, candTok)

	entityOverlap := hasEntityOverlap(in.baseTitle, in.candTitle, in.baseTitle+" "+in.baseExcerpt, in.candTitle+" "+in.candExcerpt)

	timeOK := !in.baseCreated.IsZero() && !in.candCreated.IsZero() &&
		absDuration(in.baseCreated.Sub(in.candCreated)) <= timeWindow

	candSig := storySignature(in.candTitle, in.candExcerpt)
	sigOverlap := signatureOverlap(in.baseSig, candSig)

	tokenThreshold := tokenJaccardNoEntity
	if entityOverlap {
		tokenThreshold = tokenJaccardEntity
	}

	signalsPassed := 0
	if titleSim >= titleSimThreshold {
		signalsPassed++
	}
	if jaccard >= tokenThreshold {
		signalsPassed++
	}
	if timeOK {
		signalsPassed++
	}
	if entityOverlap {
		signalsPassed++
	}

	intersection := intersect(baseTok, candTok)
	geographyOnly := len(intersection) > 0 && subsetOf(intersection, pureGeographyTerms)

	sameDomain := in.baseDomain != "" && in.candDomain != "" && in.baseDomain == in.candDomain

	accept := signalsPassed >= 1 &&
		sigOverlap >= sigOverlapThreshold &&
		!(geographyOnly && titleSim < geoOnlyTitleSimFloor)

	if sameDomain {
		accept = accept && titleSim >= sameDomainTitleSim && jaccard >= sameDomainJaccard && timeOK
	}

	return gateResult{
		accept:       accept,
		titleSim:     titleSim,
		tokenJaccard: jaccard,
		entityOver:   entityOverlap,
		timeOK:       timeOK,
		sigOverlap:   sigOverlap,
	}
}

// hasEntityOverlap reports shared capitalized 2-3-word entities between
// the two titles, falling back to shared single-word geopolitical
// entities across the wider title+excerpt text.
func hasEntityOverlap(baseTitle, candTitle, baseText, candText string) bool {
	baseEntities := twoOrThreeWordEntityPattern.FindAllString(baseTitle, -1)
	candEntities := twoOrThreeWordEntityPattern.FindAllString(candTitle, -1)
	if setsOverlap(baseEntities, candEntities) {
		return true
	}

	baseGeo := extractGeoEntities(baseText)
	candGeo := extractGeoEntities(candText)
	for k := range baseGeo {
		if candGeo[k] {
			return true
		}
	}
	return false
}

func setsOverlap(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}
	return false
}

func intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func subsetOf(set, of map[string]bool) bool {
	for k := range set {
		if !of[k] {
			return false
		}
	}
	return true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
