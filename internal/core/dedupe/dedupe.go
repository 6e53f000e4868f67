// Package dedupe merges candidates observed across query variants into
// one entry per repository identity.
package dedupe

import (
	"sort"

	"github.com/lorem111/github-analyze/internal/core/model"
)

// Merge folds incoming candidates into the identity-keyed map. A new
// identity is inserted as-is; a repeated identity only unions its
// MatchedVariants and keeps the first-seen descriptive fields (provider
// data for one identity is assumed stable within a request). Safe to
// call progressively as each variant's results arrive; the outcome does
// not depend on arrival order.
func Merge(existing map[string]*model.Candidate, incoming []model.Candidate) {
	for i := range incoming {
		cand := incoming[i]
		prev, ok := existing[cand.Identity]
		if !ok {
			c := cand
			existing[cand.Identity] = &c
			continue
		}
		for _, v := range cand.MatchedVariants {
			if !prev.HasVariant(v) {
				prev.MatchedVariants = append(prev.MatchedVariants, v)
			}
		}
	}
}

// Candidates returns the merged candidates in identity order, with each
// variant list sorted. The deterministic layout keeps downstream
// ranking independent of map iteration and variant arrival order.
func Candidates(merged map[string]*model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(merged))
	for _, c := range merged {
		sort.Strings(c.MatchedVariants)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}
