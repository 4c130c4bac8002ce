// Package session is the state a renderer observes: the active dataset,
// its load status, and the user's selection.
//
// A Session is not safe for concurrent use. It is owned by one event loop
// and mutated only through its methods, one event at a time.
package session

import (
	"fmt"

	"github.com/biasaware/biasview/pkg/loader"
	"github.com/biasaware/biasview/pkg/model"
	"github.com/biasaware/biasview/pkg/selection"
)

// Status is the load status of the session
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Session combines the loaded dataset with the selection machine
type Session struct {
	status  Status
	err     error
	dataset *loader.Dataset
	sample  bool
	sel     selection.Machine
}

// New returns a session in the Loading state
func New() *Session {
	return &Session{status: StatusLoading}
}

// Status reports the load status
func (s *Session) Status() Status {
	return s.status
}

// Err returns the load failure, or nil unless the status is Failed
func (s *Session) Err() error {
	return s.err
}

// Reason is the failure text shown to the user
func (s *Session) Reason() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

// BeginLoad marks a load as started. The previous dataset stops being
// visible until the load finishes.
func (s *Session) BeginLoad() {
	s.status = StatusLoading
	s.err = nil
}

// Finish records the outcome of a load. Every load ends here exactly once.
// A new dataset replaces the old one wholesale and resets the selection;
// a failure exposes no issues.
func (s *Session) Finish(ds *loader.Dataset, err error) {
	if err == nil && ds == nil {
		err = fmt.Errorf("load returned no dataset")
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		s.dataset = nil
		s.sample = false
		s.sel.Reset()
		return
	}
	s.status = StatusLoaded
	s.err = nil
	s.dataset = ds
	s.sample = false
	s.sel.Reset()
}

// UseSample swaps in the built-in sample dataset and clears any error
func (s *Session) UseSample() error {
	ds, err := loader.Sample()
	if err != nil {
		return err
	}
	s.Finish(ds, nil)
	s.sample = true
	return nil
}

// UsingSample reports whether the active dataset is the built-in sample
func (s *Session) UsingSample() bool {
	return s.sample
}

// Dataset returns the active dataset, or nil unless the status is Loaded
func (s *Session) Dataset() *loader.Dataset {
	if s.status != StatusLoaded {
		return nil
	}
	return s.dataset
}

// Issues returns the active issues in load order
func (s *Session) Issues() []model.Issue {
	if ds := s.Dataset(); ds != nil {
		return ds.Issues
	}
	return nil
}

// Warnings returns shape warnings for the active dataset
func (s *Session) Warnings() []*loader.ShapeError {
	if ds := s.Dataset(); ds != nil {
		return ds.Warnings
	}
	return nil
}

// Selection returns the current selection state
func (s *Session) Selection() selection.State {
	return s.sel.State()
}

// SelectIssue selects the issue with the given id
func (s *Session) SelectIssue(id int) {
	s.sel.SelectIssue(id)
}

// SelectPerspective opens the selected issue's article for p
func (s *Session) SelectPerspective(p model.Perspective) error {
	return s.sel.SelectPerspective(s.Issues(), p)
}

// Back returns from an article to its issue
func (s *Session) Back() bool {
	return s.sel.Back()
}

// ClearSelection returns to NoIssueSelected
func (s *Session) ClearSelection() {
	s.sel.Reset()
}

// SelectedIssue derives the selected issue from the active dataset
func (s *Session) SelectedIssue() (*model.Issue, bool) {
	return s.sel.SelectedIssue(s.Issues())
}

// SelectedArticle derives the selected article from the active dataset
func (s *Session) SelectedArticle() (*model.PerspectiveArticle, model.Perspective, bool) {
	return s.sel.SelectedArticle(s.Issues())
}
