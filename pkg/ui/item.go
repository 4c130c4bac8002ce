package ui

import (
	"fmt"
	"strings"

	"github.com/biasaware/biasview/pkg/model"
)

// IssueItem wraps model.Issue to implement list.Item
type IssueItem struct {
	Issue model.Issue
}

func (i IssueItem) Title() string {
	return i.Issue.Label()
}

// Description lists the sources available for the issue
func (i IssueItem) Description() string {
	var sources []string
	for _, p := range model.Perspectives() {
		if a, ok := i.Issue.News.Article(p); ok && a.Source != "" {
			sources = append(sources, a.Source)
		}
	}
	return fmt.Sprintf("#%d • %s", i.Issue.ID, strings.Join(sources, " · "))
}

func (i IssueItem) FilterValue() string {
	return i.Issue.Title
}
