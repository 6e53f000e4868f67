package core

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lorem111/github-analyze/internal/core/dedupe"
	"github.com/lorem111/github-analyze/internal/core/model"
	"github.com/lorem111/github-analyze/internal/core/normalize"
	"github.com/lorem111/github-analyze/internal/core/rank"
	"github.com/lorem111/github-analyze/internal/github"
)

// VariantExpander turns a natural-language query into search-friendly
// variants. Implementations must degrade to [query] on failure rather
// than return an error.
type VariantExpander interface {
	Expand(ctx context.Context, query string) []string
}

const (
	defaultMaxResults      = 10
	defaultPerVariantLimit = 15
	defaultSearchTimeout   = 10 * time.Second
)

// Finder runs the full search pipeline: expand the query, search GitHub
// once per variant, normalize, dedupe, score against the original
// query, sort and truncate.
type Finder struct {
	Expander VariantExpander
	Searcher github.Searcher
	Readmes  github.ReadmeFetcher
	Scorer   *rank.Scorer

	// PerVariantLimit is how many raw results each variant search
	// requests. SearchTimeout bounds each provider call.
	PerVariantLimit int
	SearchTimeout   time.Duration
}

func NewFinder(expander VariantExpander, searcher github.Searcher, readmes github.ReadmeFetcher, scorer *rank.Scorer) *Finder {
	return &Finder{
		Expander:        expander,
		Searcher:        searcher,
		Readmes:         readmes,
		Scorer:          scorer,
		PerVariantLimit: defaultPerVariantLimit,
		SearchTimeout:   defaultSearchTimeout,
	}
}

// Rank executes one aggregation request. Per-variant provider failures
// contribute zero candidates; only the case where every variant fails
// is surfaced, and then as a degraded empty response, not an error.
func (f *Finder) Rank(ctx context.Context, query, preferredLanguage string, maxResults int) (*model.SearchResponse, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	requestID := uuid.New().String()

	variants := f.Expander.Expand(ctx, query)
	if len(variants) == 0 {
		variants = []string{query}
	}
	log.Printf("[%s] query transformation: %q -> %v", requestID, query, variants)

	resp := &model.SearchResponse{
		RequestID: requestID,
		Query:     query,
		Variants:  variants,
		Status:    model.StatusOK,
		Results:   []model.RankedResult{},
	}

	merged := make(map[string]*model.Candidate)
	var (
		mu      sync.Mutex
		failed  int
		skipped int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, variant := range variants {
		variant := variant
		g.Go(func() error {
			vctx, cancel := context.WithTimeout(gctx, f.searchTimeout())
			defer cancel()

			raws, err := f.Searcher.Search(vctx, variant, f.perVariantLimit())
			if err != nil {
				log.Printf("[%s] variant %q search failed: %v", requestID, variant, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			// A cancelled variant contributes nothing, even if the
			// provider call happened to return.
			if gctx.Err() != nil {
				return gctx.Err()
			}

			batch := make([]model.Candidate, 0, len(raws))
			dropped := 0
			for _, raw := range raws {
				cand, ok := normalize.Normalize(raw, variant)
				if !ok {
					dropped++
					continue
				}
				batch = append(batch, cand)
			}

			mu.Lock()
			skipped += dropped
			dedupe.Merge(merged, batch)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if failed == len(variants) {
		log.Printf("[%s] all %d variant searches failed", requestID, failed)
		resp.Status = model.StatusDegraded
		return resp, nil
	}

	candidates := dedupe.Candidates(merged)
	resp.TotalCount = len(candidates)
	resp.Skipped = skipped

	results := make([]model.RankedResult, 0, len(candidates))
	for _, cand := range candidates {
		results = append(results, model.RankedResult{
			Candidate: cand,
			Score:     f.Scorer.Score(cand, query, preferredLanguage, ""),
		})
	}
	rank.SortResults(results)

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	f.attachReadmes(ctx, results)
	resp.Results = results

	log.Printf("[%s] %d unique repositories, returning top %d", requestID, resp.TotalCount, len(results))
	return resp, nil
}

// attachReadmes decorates the final page with README previews. Fetched
// only for returned results to stay inside provider rate limits.
func (f *Finder) attachReadmes(ctx context.Context, results []model.RankedResult) {
	if f.Readmes == nil {
		return
	}
	for i := range results {
		if ctx.Err() != nil {
			return
		}
		results[i].ReadmePreview = f.Readmes.Readme(ctx, results[i].Owner, results[i].Name)
	}
}

func (f *Finder) searchTimeout() time.Duration {
	if f.SearchTimeout > 0 {
		return f.SearchTimeout
	}
	return defaultSearchTimeout
}

func (f *Finder) perVariantLimit() int {
	if f.PerVariantLimit > 0 {
		return f.PerVariantLimit
	}
	return defaultPerVariantLimit
}
