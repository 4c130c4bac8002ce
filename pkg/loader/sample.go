package loader

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
)

//go:embed sample_issues.jsonl
var sampleJSONL []byte

// SampleSource names the fallback dataset in logs and status lines
const SampleSource = "sample data"

// Sample returns the built-in two-issue dataset used when the real one
// cannot be loaded. Each call returns a fresh copy.
func Sample() (*Dataset, error) {
	ds, err := Parse(bytes.NewReader(sampleJSONL), Options{Strict: true})
	if err != nil {
		return nil, fmt.Errorf("parsing embedded sample data: %w", err)
	}
	ds.Source = SampleSource
	return ds, nil
}

type sampleSource struct{}

// NewSampleSource serves the built-in dataset through the regular load path
func NewSampleSource() Source {
	return sampleSource{}
}

func (sampleSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(sampleJSONL)), nil
}

func (sampleSource) String() string {
	return SampleSource
}
