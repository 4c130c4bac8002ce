package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/biasaware/biasview/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// Badge labels for flagged paragraphs
const (
	LexicalBadge       = "Lexical Bias"
	InformationalBadge = "Informational Bias"
)

// RenderPerspectiveBadge returns the colored "Left Perspective" style badge
func RenderPerspectiveBadge(p model.Perspective, t Theme) string {
	return t.Renderer.NewStyle().
		Foreground(t.PerspectiveColor(p)).
		Bold(true).
		Render(p.Label())
}

// RenderBiasBadges returns the bias badges for paragraph i, or "" when unflagged
func RenderBiasBadges(a *model.PerspectiveArticle, i int, t Theme) string {
	var badges []string
	if a.LexicalAt(i) {
		badges = append(badges, t.Renderer.NewStyle().
			Foreground(t.Lexical).
			Bold(true).
			Render("["+LexicalBadge+"]"))
	}
	if a.InformationalAt(i) {
		badges = append(badges, t.Renderer.NewStyle().
			Foreground(t.Informational).
			Bold(true).
			Render("["+InformationalBadge+"]"))
	}
	return strings.Join(badges, " ")
}

// paragraphStyle returns the style for paragraph i. Flagged paragraphs get a
// thick left border: yellow for lexical, red for informational. Lexical wins
// when both are set; both badges are still shown.
func paragraphStyle(a *model.PerspectiveArticle, i, width int, t Theme) lipgloss.Style {
	style := t.Renderer.NewStyle().Width(width)
	switch {
	case a.LexicalAt(i):
		return style.
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(t.Lexical).
			PaddingLeft(1)
	case a.InformationalAt(i):
		return style.
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(t.Informational).
			PaddingLeft(1)
	}
	return style.PaddingLeft(2)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
