package normalize

import "fmt"

const contentPreviewLimit = 1500

// titlePrompt builds the title-generation prompt, demanding neutrality,
// length bounds, and factual focus.
func titlePrompt(body, originalTitle string) string {
	return fmt.Sprintf(`You are a neutral news editor. Create a factual, unbiased headline for this article.

Original title: %s
Content: %s

Requirements:
- Write a neutral, factual headline (%d-%d characters)
- Avoid opinion words, bias, or sensationalism
- No generic words like "Breaking" or "News"
- Focus on facts, not emotions
- If you cannot create a neutral headline, return "News Update"

Return only the headline, nothing else.`,
		originalTitle, truncate(body, contentPreviewLimit), titleMinLength, titleMaxLength)
}

// excerptPrompt builds the excerpt-generation prompt, demanding a neutral
// factual summary within the target word budget.
func excerptPrompt(body, originalTitle string) string {
	return fmt.Sprintf(`You are a neutral news editor. Write a factual, unbiased summary of this article.

Original title: %s
Content: %s

Requirements:
- Write a neutral summary of approximately %d words (between %d and %d words)
- State facts only, no opinion or editorializing
- If you cannot create a neutral summary, return "Unable to summarize this article."

Return only the summary, nothing else.`,
		originalTitle, truncate(body, contentPreviewLimit), excerptTargetWords, excerptMinWords, excerptMaxWords)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
