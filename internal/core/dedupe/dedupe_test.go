package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorem111/github-analyze/internal/core/model"
)

func cand(identity, variant string) model.Candidate {
	return model.Candidate{
		Identity:        identity,
		Name:            "repo-" + identity,
		MatchedVariants: []string{variant},
	}
}

func TestMergeInsertsNewIdentity(t *testing.T) {
	merged := map[string]*model.Candidate{}
	Merge(merged, []model.Candidate{cand("1", "a"), cand("2", "a")})

	assert.Len(t, merged, 2)
	assert.Equal(t, []string{"a"}, merged["1"].MatchedVariants)
}

func TestMergeUnionsVariants(t *testing.T) {
	merged := map[string]*model.Candidate{}
	Merge(merged, []model.Candidate{cand("x", "a")})
	Merge(merged, []model.Candidate{cand("x", "b")})
	Merge(merged, []model.Candidate{cand("x", "c")})

	assert.Len(t, merged, 1)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, merged["x"].MatchedVariants)
}

func TestMergeVariantUnionIsIdempotent(t *testing.T) {
	merged := map[string]*model.Candidate{}
	Merge(merged, []model.Candidate{cand("x", "a")})
	Merge(merged, []model.Candidate{cand("x", "a")})

	assert.Equal(t, []string{"a"}, merged["x"].MatchedVariants)
}

func TestMergeFirstSeenFieldsWin(t *testing.T) {
	first := cand("x", "a")
	first.Description = "original description"
	first.Stars = 100

	second := cand("x", "b")
	second.Description = "different description"
	second.Stars = 999

	merged := map[string]*model.Candidate{}
	Merge(merged, []model.Candidate{first})
	Merge(merged, []model.Candidate{second})

	assert.Equal(t, "original description", merged["x"].Description)
	assert.Equal(t, 100, merged["x"].Stars)
}

func TestMergeOrderIndependent(t *testing.T) {
	batches := [][]model.Candidate{
		{cand("1", "a"), cand("2", "a")},
		{cand("2", "b"), cand("3", "b")},
		{cand("1", "c")},
	}

	forward := map[string]*model.Candidate{}
	for _, b := range batches {
		Merge(forward, b)
	}

	backward := map[string]*model.Candidate{}
	for i := len(batches) - 1; i >= 0; i-- {
		Merge(backward, batches[i])
	}

	// Same identities with the same variant sets either way round.
	assert.Equal(t, len(forward), len(backward))
	for id, c := range forward {
		assert.ElementsMatch(t, c.MatchedVariants, backward[id].MatchedVariants, "identity %s", id)
	}
}

func TestCandidatesDeterministicOrder(t *testing.T) {
	merged := map[string]*model.Candidate{}
	Merge(merged, []model.Candidate{cand("b", "z"), cand("a", "z"), cand("c", "z")})
	Merge(merged, []model.Candidate{{Identity: "a", Name: "repo-a", MatchedVariants: []string{"y", "x"}}})

	out := Candidates(merged)

	assert.Equal(t, "a", out[0].Identity)
	assert.Equal(t, "b", out[1].Identity)
	assert.Equal(t, "c", out[2].Identity)
	assert.Equal(t, []string{"x", "y", "z"}, out[0].MatchedVariants)
}
