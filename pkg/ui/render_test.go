package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"

	"github.com/biasaware/biasview/pkg/model"
)

func TestRenderArticleAnnotations(t *testing.T) {
	ds := sampleDataset(t)
	a := ds.Issues[0].News.Left

	out := RenderArticle(a, model.PerspectiveLeft, 200, testTheme())

	for _, want := range []string{
		"Left Perspective",
		a.Title,
		"Source: Progressive Daily",
		ReadOriginalLabel,
		"https://example.com/climate-left",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("article missing %q", want)
		}
	}
	// Two lexical paragraphs and one informational
	if n := strings.Count(out, "["+LexicalBadge+"]"); n != 2 {
		t.Errorf("expected 2 lexical badges, got %d", n)
	}
	if n := strings.Count(out, "["+InformationalBadge+"]"); n != 1 {
		t.Errorf("expected 1 informational badge, got %d", n)
	}
}

func TestRenderArticleUnflagged(t *testing.T) {
	ds := sampleDataset(t)
	out := RenderArticle(ds.Issues[0].News.Center, model.PerspectiveCenter, 200, testTheme())

	if strings.Contains(out, LexicalBadge) || strings.Contains(out, InformationalBadge) {
		t.Error("unflagged article should carry no badges")
	}
	if !strings.Contains(out, "Center Perspective") {
		t.Error("missing perspective badge")
	}
}

func TestRenderArticleNil(t *testing.T) {
	if out := RenderArticle(nil, model.PerspectiveLeft, 80, testTheme()); !strings.Contains(out, "Not available") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderArticleNoLink(t *testing.T) {
	a := &model.PerspectiveArticle{Title: "t", Source: "s", Content: []string{"p"}, Lex: []int{0}, Inf: []int{0}}
	if out := RenderArticle(a, model.PerspectiveRight, 80, testTheme()); strings.Contains(out, ReadOriginalLabel) {
		t.Error("link label shown without a link")
	}
}

func TestRenderIssueCards(t *testing.T) {
	ds := sampleDataset(t)
	out := RenderIssue(ds.Issues[0], 200, testTheme())

	for _, want := range []string{
		"Climate Change Policy",
		"From the Left",
		"From the Center",
		"From the Right",
		"Source: Centrist Times",
		LexicalBadge + ": 2",
		"[3] Read",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("issue view missing %q", want)
		}
	}
}

func TestRenderIssueMissingPerspective(t *testing.T) {
	issue := sampleDataset(t).Issues[1]
	issue.News.Right = nil

	out := RenderIssue(issue, 200, testTheme())
	if !strings.Contains(out, "Not available") {
		t.Error("missing perspective should render as not available")
	}
}

func TestRenderIssueNarrowStacksCards(t *testing.T) {
	issue := sampleDataset(t).Issues[0]
	out := RenderIssue(issue, 40, testTheme())

	left := strings.Index(out, "From the Left")
	right := strings.Index(out, "From the Right")
	if left < 0 || right < 0 {
		t.Fatal("cards missing")
	}
	leftLine := strings.Count(out[:left], "\n")
	rightLine := strings.Count(out[:right], "\n")
	if leftLine == rightLine {
		t.Error("narrow widths should stack cards vertically")
	}
}

func TestDefaultThemeFixesMarkdownStyle(t *testing.T) {
	theme := testTheme()
	if theme.MarkdownStyle != styles.DarkStyle && theme.MarkdownStyle != styles.LightStyle {
		t.Errorf("unexpected markdown style %q", theme.MarkdownStyle)
	}
}

func TestRenderIssueRoundupPlainWithoutColors(t *testing.T) {
	issue := sampleDataset(t).Issues[0]
	out := RenderIssue(issue, 200, testTheme())

	if strings.Contains(out, "\x1b[") {
		t.Error("an ascii renderer should produce no escape sequences")
	}
	if !strings.Contains(out, "Global leaders continue to debate climate policy measures.") {
		t.Errorf("roundup missing:\n%s", out)
	}
}
