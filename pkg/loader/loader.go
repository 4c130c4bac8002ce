// Package loader turns a line-delimited JSON dataset into validated issues.
//
// A load is atomic: either every non-empty line decodes and the caller gets a
// complete Dataset, or the caller gets an error and no issues at all.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/biasaware/biasview/pkg/model"
)

// maxLineSize caps a single record. Articles can be long.
const maxLineSize = 1024 * 1024 * 10 // 10MB

// Options controls how strictly records are validated
type Options struct {
	// Strict fails the whole load on any shape problem instead of
	// reporting it as a warning.
	Strict bool
}

// Dataset is the result of one successful load. It is never mutated after
// creation; a reload produces a new Dataset.
type Dataset struct {
	Issues   []model.Issue
	Warnings []*ShapeError
	Source   string
	LoadedAt time.Time
}

// Excluded returns how many records were dropped because they could not be shown
func (d *Dataset) Excluded() int {
	n := 0
	for _, w := range d.Warnings {
		if w.Excluded() {
			n++
		}
	}
	return n
}

type record struct {
	line  int
	issue model.Issue
}

// Parse reads a line-delimited JSON body. Blank lines are skipped; any line
// that fails to decode fails the whole parse with a *ParseError.
func Parse(r io.Reader, opts Options) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var issue model.Issue
		if err := json.Unmarshal(line, &issue); err != nil {
			return nil, &ParseError{Line: lineNum, Err: err}
		}
		records = append(records, record{line: lineNum, issue: issue})
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: lineNum + 1, Err: err}
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	return validate(records, opts)
}

func validate(records []record, opts Options) (*Dataset, error) {
	ds := &Dataset{Issues: make([]model.Issue, 0, len(records))}
	firstLine := make(map[int]int, len(records))

	for _, rec := range records {
		problems := rec.issue.Validate()

		excluded := false
		for _, p := range problems {
			if p.Kind.Excludes() {
				excluded = true
			}
		}

		if !excluded {
			if line, dup := firstLine[rec.issue.ID]; dup {
				problems = append(problems, model.Problem{
					Kind:   model.ProblemDuplicateID,
					Detail: fmt.Sprintf("id %d already used on line %d", rec.issue.ID, line),
				})
			} else {
				firstLine[rec.issue.ID] = rec.line
			}
		}

		for _, p := range problems {
			se := &ShapeError{Line: rec.line, IssueID: rec.issue.ID, Problem: p}
			if opts.Strict {
				return nil, se
			}
			ds.Warnings = append(ds.Warnings, se)
		}

		if !excluded {
			ds.Issues = append(ds.Issues, rec.issue)
		}
	}

	return ds, nil
}

// Load fetches src and parses it with opts
func Load(ctx context.Context, src Source, opts Options) (*Dataset, error) {
	return New(opts, nil).Load(ctx, src)
}

// Loader performs loads for one set of validation options. Nothing is
// cached once a load returns.
type Loader struct {
	opts   Options
	group  singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Loader. A nil logger discards log output.
func New(opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Options returns the validation options the loader was built with
func (l *Loader) Options() Options {
	return l.opts
}

// Load fetches and parses src from scratch. It never joins a read that is
// already running, so a load requested after the data changed sees the change.
func (l *Loader) Load(ctx context.Context, src Source) (*Dataset, error) {
	return l.load(ctx, src)
}

// LoadShared is Load for callers that accept a result from a read already in
// flight for the same source, such as one-shot commands.
func (l *Loader) LoadShared(ctx context.Context, src Source) (*Dataset, error) {
	v, err, shared := l.group.Do(src.String(), func() (interface{}, error) {
		return l.load(ctx, src)
	})
	if shared {
		l.logger.Debug("joined in-flight load", zap.String("source", src.String()))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (l *Loader) load(ctx context.Context, src Source) (*Dataset, error) {
	start := l.now()
	log := l.logger.With(zap.String("source", src.String()))

	body, err := src.Open(ctx)
	if err != nil {
		log.Warn("dataset retrieval failed", zap.Error(err))
		return nil, err
	}
	defer body.Close()

	ds, err := Parse(body, l.opts)
	if err != nil {
		var pe *ParseError
		var se *ShapeError
		if !errors.As(err, &pe) && !errors.As(err, &se) {
			err = &RetrievalError{Source: src.String(), Err: err}
		}
		log.Warn("dataset load failed", zap.Error(err))
		return nil, err
	}

	ds.Source = src.String()
	ds.LoadedAt = l.now()

	for _, w := range ds.Warnings {
		log.Info("dataset shape warning",
			zap.Int("line", w.Line),
			zap.Int("issue", w.IssueID),
			zap.String("kind", string(w.Problem.Kind)),
			zap.String("detail", w.Problem.Detail))
	}
	log.Debug("dataset loaded",
		zap.Int("issues", len(ds.Issues)),
		zap.Int("warnings", len(ds.Warnings)),
		zap.Duration("elapsed", ds.LoadedAt.Sub(start)))

	return ds, nil
}
