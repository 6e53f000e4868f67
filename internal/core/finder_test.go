package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorem111/github-analyze/internal/core/model"
	"github.com/lorem111/github-analyze/internal/core/rank"
	"github.com/lorem111/github-analyze/internal/github"
)

func newTestFinder(expander VariantExpander, searcher github.Searcher) *Finder {
	scorer := rank.NewScorer(rank.DefaultWeights(), rank.ReferenceStars)
	return NewFinder(expander, searcher, nil, scorer)
}

func repo(id int64, owner, name, desc string, stars int) github.Repository {
	return github.Repository{
		ID:          id,
		Name:        name,
		FullName:    owner + "/" + name,
		Owner:       github.Owner{Login: owner},
		Description: desc,
		Stars:       stars,
		HTMLURL:     "https://github.com/" + owner + "/" + name,
	}
}

func TestRankMergesVariantsAndOrdersByRelevance(t *testing.T) {
	// Query "bird song detection"; repo A is found by two variants and
	// overlaps the query strongly, repo B only by the third variant and
	// is merely popular. A must outrank B despite the star gap.
	repoA := repo(1, "alice", "bird-audio-classifier", "bird song classifier using audio deep learning", 500)
	repoB := repo(2, "bob", "generic-ml-toolkit", "a generic toolkit", 50000)

	variants := []string{"bird song detection", "audio classification", "sound recognition"}
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"bird song detection":  {repoA},
			"audio classification": {repoA},
			"sound recognition":    {repoB},
		},
	}

	f := newTestFinder(&MockExpander{Variants: variants}, searcher)
	resp, err := f.Rank(context.Background(), "bird song detection", "", 10)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusOK, resp.Status)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Len(t, resp.Results, 2)

	assert.Equal(t, "1", resp.Results[0].Identity)
	assert.Equal(t, []string{"audio classification", "bird song detection"}, resp.Results[0].MatchedVariants)
	assert.Equal(t, "2", resp.Results[1].Identity)
	assert.Equal(t, []string{"sound recognition"}, resp.Results[1].MatchedVariants)
}

func TestRankDeterministic(t *testing.T) {
	variants := []string{"v1", "v2", "v3"}
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"v1": {repo(1, "a", "one", "bird song", 10), repo(2, "b", "two", "", 20)},
			"v2": {repo(2, "b", "two", "", 20), repo(3, "c", "three", "bird", 30)},
			"v3": {repo(1, "a", "one", "bird song", 10), repo(3, "c", "three", "bird", 30)},
		},
	}
	f := newTestFinder(&MockExpander{Variants: variants}, searcher)

	first, err := f.Rank(context.Background(), "bird song", "", 10)
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := f.Rank(context.Background(), "bird song", "", 10)
		assert.NoError(t, err)
		assert.Equal(t, first.Results, again.Results)
	}
}

func TestRankScoreBounds(t *testing.T) {
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"q": {
				repo(1, "a", "q", "q q q", 9999999),
				repo(2, "b", "other", "", 0),
			},
		},
	}
	f := newTestFinder(&MockExpander{Variants: []string{"q"}}, searcher)

	resp, err := f.Rank(context.Background(), "q", "Go", 10)
	assert.NoError(t, err)
	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestRankTruncates(t *testing.T) {
	var repos []github.Repository
	for i := int64(1); i <= 8; i++ {
		repos = append(repos, repo(i, "o", fmt.Sprintf("repo-%d", i), "", int(i)*10))
	}
	searcher := &MockSearcher{Results: map[string][]github.Repository{"q": repos}}
	f := newTestFinder(&MockExpander{Variants: []string{"q"}}, searcher)

	resp, err := f.Rank(context.Background(), "q", "", 3)
	assert.NoError(t, err)
	assert.Equal(t, 8, resp.TotalCount)
	assert.Len(t, resp.Results, 3)

	// No text overlap anywhere, so the popularity signal decides.
	assert.Equal(t, "8", resp.Results[0].Identity)
	assert.Equal(t, "7", resp.Results[1].Identity)
	assert.Equal(t, "6", resp.Results[2].Identity)
}

func TestRankPartialProviderFailure(t *testing.T) {
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"good": {repo(1, "a", "one", "", 5)},
		},
		Errs: map[string]error{
			"bad": fmt.Errorf("rate limited"),
		},
	}
	f := newTestFinder(&MockExpander{Variants: []string{"good", "bad"}}, searcher)

	resp, err := f.Rank(context.Background(), "anything", "", 10)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusOK, resp.Status)
	assert.Len(t, resp.Results, 1)
}

func TestRankAllProvidersFailed(t *testing.T) {
	searcher := &MockSearcher{
		Errs: map[string]error{
			"v1": fmt.Errorf("boom"),
			"v2": fmt.Errorf("boom"),
		},
	}
	f := newTestFinder(&MockExpander{Variants: []string{"v1", "v2"}}, searcher)

	resp, err := f.Rank(context.Background(), "anything", "", 10)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusDegraded, resp.Status)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.TotalCount)
}

func TestRankCountsMalformedRecords(t *testing.T) {
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"q": {
				repo(1, "a", "valid", "", 5),
				{ID: 2}, // no name
				{Name: "no-identity"},
			},
		},
	}
	f := newTestFinder(&MockExpander{Variants: []string{"q"}}, searcher)

	resp, err := f.Rank(context.Background(), "q", "", 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Skipped)
	assert.Len(t, resp.Results, 1)
}

func TestRankCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	searcher := &CancelSearcher{Cancel: cancel}
	f := newTestFinder(&MockExpander{Variants: []string{"v1", "v2"}}, searcher)

	resp, err := f.Rank(ctx, "anything", "", 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}

func TestRankDiscardsVariantCompletingAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The provider call "succeeds" only after the request was
	// cancelled; its results must not be merged.
	searcher := &CancelSearcher{
		Cancel:  cancel,
		Succeed: true,
		Repos:   []github.Repository{repo(1, "a", "one", "", 5)},
	}
	f := newTestFinder(&MockExpander{Variants: []string{"v1", "v2"}}, searcher)

	resp, err := f.Rank(ctx, "anything", "", 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}

func TestRankAttachesReadmePreviews(t *testing.T) {
	searcher := &MockSearcher{
		Results: map[string][]github.Repository{
			"q": {repo(1, "alice", "one", "", 5)},
		},
	}
	scorer := rank.NewScorer(rank.DefaultWeights(), rank.ReferenceStars)
	f := NewFinder(&MockExpander{Variants: []string{"q"}}, searcher,
		&MockReadmes{Previews: map[string]string{"alice/one": "hello readme"}}, scorer)

	resp, err := f.Rank(context.Background(), "q", "", 10)
	assert.NoError(t, err)
	assert.Equal(t, "hello readme", resp.Results[0].ReadmePreview)
}

func TestRankSearchesEveryVariant(t *testing.T) {
	searcher := &MockSearcher{Results: map[string][]github.Repository{}}
	f := newTestFinder(&MockExpander{Variants: []string{"v1", "v2", "v3"}}, searcher)

	_, err := f.Rank(context.Background(), "anything", "", 10)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2", "v3"}, searcher.Calls)
}
