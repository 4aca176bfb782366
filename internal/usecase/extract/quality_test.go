package extract

import "testing"

func TestIsMeaningfulContent_ValidArticle(t *testing.T) {
	title := "Officials Announce New Policy After Months of Review"
	body := "Local officials said Tuesday that the plan, announced after months of review, " +
		"will take effect in 2026. According to city authorities, John Smith and the council " +
		"reviewed proposals from several departments before reaching a final decision. The " +
		"mayor stated that residents should expect changes to begin in the spring and that " +
		"further details would follow in subsequent briefings held throughout the year."

	if !isMeaningfulContent(title, body) {
		t.Fatalf("expected content to pass the quality gate")
	}
}

func TestIsMeaningfulContent_TitleTooShort(t *testing.T) {
	if isMeaningfulContent("short", "this body text is long enough to pass every other check except the title length gate, which is the thing under test here, so the rest of this sentence just pads it out past two hundred characters total for safety margin") {
		t.Fatalf("expected rejection for a too-short title")
	}
}

func TestIsMeaningfulContent_BodyTooShort(t *testing.T) {
	if isMeaningfulContent("A Perfectly Fine Title For Testing", "too short") {
		t.Fatalf("expected rejection for a too-short body")
	}
}

func TestIsMeaningfulContent_HTMLFragmentIndicator(t *testing.T) {
	title := "Officials Announce New Policy After Months of Review"
	body := "Local officials said Tuesday that the plan, announced after months of review, " +
		"will take effect in 2026. Subscribe to our newsletter for more updates from John Smith " +
		"and the rest of the team covering this story as it continues to develop in the area."

	if isMeaningfulContent(title, body) {
		t.Fatalf("expected rejection for an embedded HTML-fragment indicator")
	}
}

func TestIsMeaningfulContent_TooFewArticlePatterns(t *testing.T) {
	title := "A Generic Title That Is Long Enough"
	body := "Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua ut enim ad minim veniam quis nostrud " +
		"exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat duis aute irure."

	if isMeaningfulContent(title, body) {
		t.Fatalf("expected rejection when fewer than two article patterns are present")
	}
}

func TestIsMeaningfulContent_SparseBody(t *testing.T) {
	title := "A Perfectly Fine Title For This Test Case"
	body := "Supercalifragilisticexpialidocious " +
		"antidisestablishmentarianism " +
		"pneumonoultramicroscopicsilicovolcanoconiosis " +
		"floccinaucinihilipilification said 2024."

	if isMeaningfulContent(title, body) {
		t.Fatalf("expected rejection: body is both too short and too sparse in words")
	}
}
