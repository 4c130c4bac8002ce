package loader

import (
	"fmt"

	"github.com/biasaware/biasview/pkg/model"
)

// RetrievalError reports that the dataset could not be fetched.
// StatusCode is set for non-success HTTP responses and zero otherwise.
type RetrievalError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch data: %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch data from %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ParseError reports a line that is not a valid JSON record.
// Line is 1-based and counts every line of the body, blank ones included.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports a record that decoded but does not have the expected shape
type ShapeError struct {
	Line    int
	IssueID int
	Problem model.Problem
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("line %d (issue %d): %s", e.Line, e.IssueID, e.Problem.Detail)
}

// Excluded returns true if the record was dropped from the dataset
func (e *ShapeError) Excluded() bool {
	return e.Problem.Kind.Excludes()
}
