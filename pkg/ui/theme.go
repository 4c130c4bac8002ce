package ui

import (
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/biasaware/biasview/pkg/model"
)

// Theme carries the renderer and adaptive colors used by every view
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	Left   lipgloss.AdaptiveColor
	Center lipgloss.AdaptiveColor
	Right  lipgloss.AdaptiveColor

	Lexical       lipgloss.AdaptiveColor
	Informational lipgloss.AdaptiveColor

	// MarkdownStyle is a glamour standard style name, fixed when the theme
	// is built so rendering never queries the terminal.
	MarkdownStyle string
}

// DefaultTheme returns the standard palette bound to r. A nil renderer
// uses the lipgloss default. Call it before the program takes over the
// terminal: the background check may query it.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	markdownStyle := styles.LightStyle
	if r.HasDarkBackground() {
		markdownStyle = styles.DarkStyle
	}
	return Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#44475A"},
		Danger:    lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FF5555"},
		Highlight: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#44475A"},

		Left:   lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Center: lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#C084FC"},
		Right:  lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},

		Lexical:       lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"},
		Informational: lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"},

		MarkdownStyle: markdownStyle,
	}
}

// PerspectiveColor is blue for left, purple for center and red for right
func (t Theme) PerspectiveColor(p model.Perspective) lipgloss.AdaptiveColor {
	switch p {
	case model.PerspectiveLeft:
		return t.Left
	case model.PerspectiveCenter:
		return t.Center
	case model.PerspectiveRight:
		return t.Right
	}
	return t.Secondary
}
