package core

import (
	"context"
	"sync"

	"github.com/lorem111/github-analyze/internal/github"
)

type MockExpander struct {
	Variants []string
}

func (m *MockExpander) Expand(ctx context.Context, query string) []string {
	if len(m.Variants) == 0 {
		return []string{query}
	}
	return m.Variants
}

// MockSearcher serves canned results per query and records calls. It is
// accessed from concurrent variant goroutines.
type MockSearcher struct {
	mu      sync.Mutex
	Results map[string][]github.Repository
	Errs    map[string]error
	Calls   []string
}

func (m *MockSearcher) Search(ctx context.Context, query string, limit int) ([]github.Repository, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, query)
	m.mu.Unlock()

	if err, ok := m.Errs[query]; ok {
		return nil, err
	}
	return m.Results[query], nil
}

// CancelSearcher cancels the request as soon as any variant search
// starts, waits for the cancellation to propagate, then either reports
// the context error or pretends the provider call still succeeded.
type CancelSearcher struct {
	Cancel  context.CancelFunc
	Repos   []github.Repository
	Succeed bool
}

func (s *CancelSearcher) Search(ctx context.Context, query string, limit int) ([]github.Repository, error) {
	s.Cancel()
	<-ctx.Done()
	if s.Succeed {
		return s.Repos, nil
	}
	return nil, ctx.Err()
}

type MockReadmes struct {
	Previews map[string]string
}

func (m *MockReadmes) Readme(ctx context.Context, owner, repo string) string {
	return m.Previews[owner+"/"+repo]
}
