package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_ZeroValue(t *testing.T) {
	var article Article

	assert.Equal(t, int64(0), article.ID)
	assert.Equal(t, "", article.URL)
	assert.Equal(t, ArticleStatus(""), article.Status)
	assert.Nil(t, article.ProcessedAt)
	assert.False(t, article.IsTerminal())
}

func TestArticle_IsTerminal(t *testing.T) {
	cases := []struct {
		status ArticleStatus
		want   bool
	}{
		{ArticleStatusPending, false},
		{ArticleStatusProcessing, false},
		{ArticleStatusCompleted, true},
		{ArticleStatusFailed, true},
	}

	for _, tc := range cases {
		a := Article{Status: tc.status}
		assert.Equal(t, tc.want, a.IsTerminal(), "status=%s", tc.status)
	}
}

func TestArticle_CombinedText(t *testing.T) {
	a := Article{
		GeneratedTitle: "Title",
		Excerpt:        "Excerpt text.",
		Content:        "Body content.",
	}

	got := a.CombinedText()
	assert.Equal(t, "Title Excerpt text. Body content.", got)
}

func TestArticle_CombinedText_TruncatesContentPreview(t *testing.T) {
	longContent := strings.Repeat("a", 2000)
	a := Article{
		GeneratedTitle: "T",
		Excerpt:        "E",
		Content:        longContent,
	}

	got := a.CombinedText()
	// "T" + " " + "E" + " " + 1500 chars of content
	assert.Len(t, got, len("T")+1+len("E")+1+1500)
}

func TestArticle_Lifecycle(t *testing.T) {
	now := time.Now()
	processedAt := now.Add(time.Minute)

	a := Article{
		ID:             1,
		URL:            "https://example.com/a",
		OriginalTitle:  "Original",
		GeneratedTitle: "Generated",
		Excerpt:        "An excerpt of sufficient length to be plausible.",
		Content:        "Full article content goes here.",
		SourceDomain:   "example.com",
		Status:         ArticleStatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
		ProcessedAt:    &processedAt,
	}

	assert.True(t, a.IsTerminal())
	assert.Equal(t, "example.com", a.SourceDomain)
	assert.NotNil(t, a.ProcessedAt)
	assert.True(t, a.ProcessedAt.After(a.CreatedAt))
}
