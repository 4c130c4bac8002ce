// Package selection tracks which issue and which perspective the user is
// looking at. Only the issue id and perspective are stored; the selected
// issue and article are always derived from the current issue set.
package selection

import (
	"errors"

	"github.com/biasaware/biasview/pkg/model"
)

var (
	// ErrNoIssueSelected is returned when a perspective is chosen before an issue
	ErrNoIssueSelected = errors.New("no issue selected")
	// ErrIssueNotFound is returned when the selected id matches no loaded issue
	ErrIssueNotFound = errors.New("selected issue is not in the loaded dataset")
	// ErrPerspectiveUnavailable is returned when the issue has no article for the perspective
	ErrPerspectiveUnavailable = errors.New("issue has no article for that perspective")
)

// State is the coarse position of the machine
type State int

const (
	NoIssueSelected State = iota
	IssueSelected
	ArticleSelected
)

func (s State) String() string {
	switch s {
	case NoIssueSelected:
		return "no-issue-selected"
	case IssueSelected:
		return "issue-selected"
	case ArticleSelected:
		return "article-selected"
	}
	return "unknown"
}

// Machine holds the selection. The zero value is NoIssueSelected.
type Machine struct {
	issueID     int
	hasIssue    bool
	perspective model.Perspective
}

// State reports the current state
func (m *Machine) State() State {
	switch {
	case !m.hasIssue:
		return NoIssueSelected
	case m.perspective == "":
		return IssueSelected
	default:
		return ArticleSelected
	}
}

// IssueID returns the selected issue id, if any
func (m *Machine) IssueID() (int, bool) {
	return m.issueID, m.hasIssue
}

// Perspective returns the selected perspective, if any
func (m *Machine) Perspective() (model.Perspective, bool) {
	return m.perspective, m.perspective != ""
}

// SelectIssue selects id from any state and clears the perspective.
// An id that matches no loaded issue is accepted: the state is
// IssueSelected but SelectedIssue reports nothing.
func (m *Machine) SelectIssue(id int) {
	m.issueID = id
	m.hasIssue = true
	m.perspective = ""
}

// SelectPerspective moves to ArticleSelected. The selected issue must exist
// in issues and carry an article for p; otherwise the state is unchanged.
func (m *Machine) SelectPerspective(issues []model.Issue, p model.Perspective) error {
	if !m.hasIssue {
		return ErrNoIssueSelected
	}
	issue, ok := model.FindIssue(issues, m.issueID)
	if !ok {
		return ErrIssueNotFound
	}
	if _, ok := issue.News.Article(p); !ok {
		return ErrPerspectiveUnavailable
	}
	m.perspective = p
	return nil
}

// Back returns from ArticleSelected to IssueSelected, keeping the issue.
// It reports whether a transition happened.
func (m *Machine) Back() bool {
	if m.State() != ArticleSelected {
		return false
	}
	m.perspective = ""
	return true
}

// Reset returns to NoIssueSelected
func (m *Machine) Reset() {
	*m = Machine{}
}

// SelectedIssue derives the selected issue from issues
func (m *Machine) SelectedIssue(issues []model.Issue) (*model.Issue, bool) {
	if !m.hasIssue {
		return nil, false
	}
	return model.FindIssue(issues, m.issueID)
}

// SelectedArticle derives the selected article from issues
func (m *Machine) SelectedArticle(issues []model.Issue) (*model.PerspectiveArticle, model.Perspective, bool) {
	if m.perspective == "" {
		return nil, "", false
	}
	issue, ok := m.SelectedIssue(issues)
	if !ok {
		return nil, "", false
	}
	article, ok := issue.News.Article(m.perspective)
	if !ok {
		return nil, "", false
	}
	return article, m.perspective, true
}
