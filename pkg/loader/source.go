package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// DefaultDataPath is where the dataset lives when nothing else is configured
const DefaultDataPath = "./data/allsides_test_lex_inf_det.jsonl"

// Source is a retrievable dataset body
type Source interface {
	// Open returns the full body. Failures are *RetrievalError.
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource otherwise.
// A nil client means http.DefaultClient.
func NewSource(location string, client *http.Client) Source {
	if location == "" {
		location = DefaultDataPath
	}
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return &HTTPSource{URL: location, Client: client}
	}
	return &FileSource{Path: location}
}

// FileSource reads the dataset from the local filesystem
type FileSource struct {
	Path string
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &RetrievalError{Source: s.Path, Err: err}
	}
	return f, nil
}

func (s *FileSource) String() string {
	return s.Path
}

// HTTPSource fetches the dataset with a GET request.
// No timeout is imposed beyond what the client carries.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &RetrievalError{Source: s.URL, Err: fmt.Errorf("build request: %w", err)}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Source: s.URL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &RetrievalError{
			Source:     s.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server returned status: %s", resp.Status),
		}
	}

	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}
