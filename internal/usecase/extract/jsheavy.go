package extract

import "strings"

// jsHeavySites is a whitelist of publishers known to render their article
// body client-side, where the fast path reliably yields only chrome.
var jsHeavySites = []string{
	"cnn.com", "edition.cnn.com",
	"bbc.com", "bbc.co.uk",
	"nytimes.com",
	"washingtonpost.com",
	"theguardian.com",
	"reuters.com",
	"apnews.com",
	"bloomberg.com",
	"ft.com",
	"wsj.com",
}

// frameworkMarkers are raw-HTML strings that unambiguously indicate a
// modern client-rendered framework, regardless of domain.
var frameworkMarkers = []string{
	"__next_data__",
	"data-reactroot",
	"ng-version",
	"window.__remixcontext",
}

// frameworkKeywords are looser indicators; seeing several together
// suggests a JS-heavy build pipeline even without a definitive marker.
var frameworkKeywords = []string{"react", "vue", "angular", "webpack", "next.js"}

const minFrameworkKeywordHits = 2

// isJSHeavy classifies a URL as JavaScript-heavy by domain whitelist first,
// then by looking for framework markers or a cluster of framework keywords
// in the already-fetched HTML.
func isJSHeavy(urlStr, html string) bool {
	lowerURL := strings.ToLower(urlStr)
	for _, site := range jsHeavySites {
		if strings.Contains(lowerURL, site) {
			return true
		}
	}

	lowerHTML := strings.ToLower(html)
	for _, marker := range frameworkMarkers {
		if strings.Contains(lowerHTML, marker) {
			return true
		}
	}

	hits := 0
	for _, keyword := range frameworkKeywords {
		if strings.Contains(lowerHTML, keyword) {
			hits++
		}
	}
	return hits >= minFrameworkKeywordHits
}
