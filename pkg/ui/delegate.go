package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/biasaware/biasview/pkg/model"
)

// IssueDelegate renders one issue per line: id, title, and a dot per
// perspective that has an article.
type IssueDelegate struct {
	Theme Theme
}

func (d IssueDelegate) Height() int {
	return 1
}

func (d IssueDelegate) Spacing() int {
	return 0
}

func (d IssueDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d IssueDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(IssueItem)
	if !ok {
		return
	}
	t := d.Theme
	selected := index == m.Index()

	cursor := "  "
	if selected {
		cursor = t.Renderer.NewStyle().Foreground(t.Primary).Render("▸ ")
	}

	id := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Width(6).
		Render(fmt.Sprintf("#%d", i.Issue.ID))

	var dots string
	for _, p := range model.Perspectives() {
		glyph := "·"
		color := t.Border
		if _, ok := i.Issue.News.Article(p); ok {
			glyph = "●"
			color = t.PerspectiveColor(p)
		}
		dots += t.Renderer.NewStyle().Foreground(color).Render(glyph)
	}

	// cursor(2) + id(6) + gap(1) + dots(3) + gap(1)
	available := m.Width() - 13
	if available < 10 {
		available = 10
	}
	title := runewidth.Truncate(i.Issue.Label(), available, "…")
	titleStyle := t.Renderer.NewStyle()
	if selected {
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Left,
		cursor, id, " ", dots, " ", titleStyle.Render(title),
	)
	fmt.Fprint(w, row)
}
