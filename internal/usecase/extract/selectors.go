package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mainContentSelectors are tried, in order, after the <article> tag fails
// to yield enough text.
var mainContentSelectors = []string{
	"main", "[role=main]", ".content", ".article-content", ".post-content",
}

// containerSelectors are a looser fallback tried after mainContentSelectors.
var containerSelectors = []string{
	".article", ".story", ".entry", ".post",
}

// authorSelectors are tried after the OpenGraph author lookup fails.
var authorSelectors = []string{
	".author", ".byline", "[rel=author]", ".post-author",
}

// dateSelectors are tried after the OpenGraph date lookup fails.
var dateSelectors = []string{
	".date", ".published", ".post-date", "time[datetime]",
}

const bodyFallbackLimit = 2000

// extractTitle probes OpenGraph, Twitter card, <title>, then the first <h1>.
func extractTitle(doc *goquery.Document) string {
	if content, ok := metaContent(doc, "meta[property='og:title']"); ok {
		return content
	}
	if content, ok := metaContent(doc, "meta[name='twitter:title']"); ok {
		return content
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractDescription probes OpenGraph, meta description, then Twitter card.
func extractDescription(doc *goquery.Document) string {
	if content, ok := metaContent(doc, "meta[property='og:description']"); ok {
		return content
	}
	if content, ok := metaContent(doc, "meta[name='description']"); ok {
		return content
	}
	if content, ok := metaContent(doc, "meta[name='twitter:description']"); ok {
		return content
	}
	return ""
}

// extractBody tries, in order: the first <article>; main-content
// selectors; common container classes; a truncated <body> fallback.
func extractBody(doc *goquery.Document) string {
	if article := doc.Find("article").First(); article.Length() > 0 {
		if content := cleanContent(article.Text()); len(content) > minBodyLength {
			return content
		}
	}

	for _, selector := range mainContentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if content := cleanContent(sel.Text()); len(content) > minBodyLength {
			return content
		}
	}

	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if content := cleanContent(sel.Text()); len(content) > minBodyLength {
			return content
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	content := cleanContent(body.Text())
	if len(content) <= minBodyLength {
		return ""
	}
	if len(content) > bodyFallbackLimit {
		content = content[:bodyFallbackLimit]
	}
	return content
}

// extractAuthor is best-effort: OpenGraph article:author, then common
// byline selectors. JSON-LD metadata is not read, here or in
// extractPublishDate.
func extractAuthor(doc *goquery.Document) string {
	if content, ok := metaContent(doc, "meta[property='article:author']"); ok {
		return content
	}
	for _, selector := range authorSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractPublishDate is best-effort: OpenGraph article:published_time,
// then common date selectors preferring a datetime attribute over text.
func extractPublishDate(doc *goquery.Document) string {
	if content, ok := metaContent(doc, "meta[property='article:published_time']"); ok {
		return content
	}
	for _, selector := range dateSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if datetime, exists := sel.Attr("datetime"); exists && datetime != "" {
			return datetime
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	content, exists := sel.Attr("content")
	content = strings.TrimSpace(content)
	if !exists || content == "" {
		return "", false
	}
	return content, true
}
