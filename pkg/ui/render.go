package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/biasaware/biasview/pkg/analysis"
	"github.com/biasaware/biasview/pkg/model"
)

// ReadOriginalLabel introduces the article link
const ReadOriginalLabel = "Read the original article"

const minCardWidth = 24

// RenderIssue renders an issue: its title, the roundup as markdown and one
// card per perspective.
func RenderIssue(issue model.Issue, width int, t Theme) string {
	if width <= 0 {
		width = 80
	}
	md, _ := NewMarkdownRenderer(width, t)
	return renderIssue(issue, width, t, md)
}

// NewMarkdownRenderer builds the roundup renderer for width using the
// theme's fixed style and color profile.
func NewMarkdownRenderer(width int, t Theme) (*glamour.TermRenderer, error) {
	style := t.MarkdownStyle
	if style == "" {
		style = styles.DarkStyle
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(t.Renderer.ColorProfile()),
		glamour.WithWordWrap(width-4),
	)
}

// renderIssue renders with md; a nil md prints the roundup as plain text
func renderIssue(issue model.Issue, width int, t Theme, md *glamour.TermRenderer) string {
	var b strings.Builder

	b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(issue.Label()))
	b.WriteString("\n")
	b.WriteString(RenderDivider(width, t))
	b.WriteString("\n")

	if len(issue.Roundup) > 0 {
		b.WriteString(renderMarkdown(md, roundupMarkdown(issue.Roundup)))
		b.WriteString("\n")
	}

	b.WriteString(t.Renderer.NewStyle().Bold(true).Render("Perspectives"))
	b.WriteString("\n")

	b.WriteString(renderCards(issue, width, t))
	return b.String()
}

func roundupMarkdown(points []string) string {
	var b strings.Builder
	b.WriteString("### Roundup\n\n")
	for _, point := range points {
		b.WriteString("- ")
		b.WriteString(point)
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(md *glamour.TermRenderer, text string) string {
	if md == nil {
		return text
	}
	out, err := md.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func renderCards(issue model.Issue, width int, t Theme) string {
	bias := analysis.AnalyzeIssue(issue)
	perspectives := model.Perspectives()

	cardWidth := width/len(perspectives) - 2
	stacked := cardWidth < minCardWidth
	if stacked {
		cardWidth = width - 2
	}

	cards := make([]string, 0, len(perspectives))
	for i, p := range perspectives {
		cards = append(cards, renderCard(issue, bias, p, i+1, cardWidth, t))
	}
	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderCard(issue model.Issue, bias analysis.IssueBias, p model.Perspective, key, width int, t Theme) string {
	color := t.PerspectiveColor(p)
	inner := width - 2
	text := t.Renderer.NewStyle().Width(inner)
	sub := text.Foreground(t.Subtext)

	var lines []string
	lines = append(lines, t.Renderer.NewStyle().Bold(true).Foreground(color).Render(p.Heading()))

	article, ok := issue.News.Article(p)
	if !ok {
		lines = append(lines, sub.Italic(true).Render("Not available"))
	} else {
		ab, _ := bias.Article(p)
		lines = append(lines,
			text.Bold(true).Render(article.Title),
			sub.Render("Source: "+article.Source),
			"",
			t.Renderer.NewStyle().Foreground(t.Lexical).Render(fmt.Sprintf("%s: %d", LexicalBadge, ab.Lexical)),
			t.Renderer.NewStyle().Foreground(t.Informational).Render(fmt.Sprintf("%s: %d", InformationalBadge, ab.Informational)),
			sub.Render(fmt.Sprintf("of %d paragraphs", ab.Paragraphs)),
			"",
			t.Renderer.NewStyle().Foreground(t.Primary).Render(fmt.Sprintf("[%d] Read", key)),
		)
	}

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(width).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// RenderArticle renders an article with its bias annotations. Each flagged
// paragraph is drawn with a colored left border and followed by its badges.
func RenderArticle(a *model.PerspectiveArticle, p model.Perspective, width int, t Theme) string {
	if width <= 0 {
		width = 80
	}
	if a == nil {
		return t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).Render("Not available")
	}
	var b strings.Builder

	b.WriteString(RenderPerspectiveBadge(p, t))
	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Bold(true).Width(width).Render(a.Title))
	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Render("Source: " + a.Source))
	b.WriteString("\n")
	if a.TopImage != "" {
		b.WriteString(t.Renderer.NewStyle().Faint(true).Render("Image: " + a.TopImage))
		b.WriteString("\n")
	}
	b.WriteString(RenderDivider(width, t))
	b.WriteString("\n")

	for i, paragraph := range a.Content {
		b.WriteString(paragraphStyle(a, i, width-2, t).Render(paragraph))
		b.WriteString("\n")
		if badges := RenderBiasBadges(a, i, t); badges != "" {
			b.WriteString("  ")
			b.WriteString(badges)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if a.Link != "" {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Primary).Underline(true).Render(ReadOriginalLabel))
		b.WriteString(": ")
		b.WriteString(a.Link)
		b.WriteString("\n")
	}
	return b.String()
}
