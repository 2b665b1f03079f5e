// Package evidence provides the external evidence providers the verifier
// consumes: a web-search client and a knowledge-base lookup client. Both are
// defined as interfaces so the pipeline can run against fakes in tests.
package evidence

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the provider itself failed (network error,
// unexpected status, parse failure) as opposed to returning no results.
// Callers degrade gracefully either way but can tell the cases apart.
var ErrUnavailable = errors.New("evidence provider unavailable")

// Searcher issues a web search and returns result URLs in rank order
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Entry is one knowledge-base article: a summary plus its canonical URL
type Entry struct {
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// KnowledgeBase looks up a term and returns its entry, or (nil, nil) when
// the term has no article
type KnowledgeBase interface {
	Lookup(ctx context.Context, term string) (*Entry, error)
}
