// Package rank computes the deterministic relevance score that orders
// search candidates against the user's original query.
package rank

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lorem111/github-analyze/internal/core/model"
)

// Weights are the per-signal contributions to the final score. They
// must sum to 1.0; the readme and language weights are redistributed
// proportionally among the remaining signals when their inputs are
// absent, so a candidate is never penalized for a signal nobody could
// supply.
type Weights struct {
	Name        float64 `toml:"name"`
	Description float64 `toml:"description"`
	Topics      float64 `toml:"topics"`
	Readme      float64 `toml:"readme"`
	Language    float64 `toml:"language"`
	Popularity  float64 `toml:"popularity"`
}

func DefaultWeights() Weights {
	return Weights{
		Name:        0.35,
		Description: 0.25,
		Topics:      0.15,
		Readme:      0.10,
		Language:    0.10,
		Popularity:  0.05,
	}
}

func (w Weights) sum() float64 {
	return w.Name + w.Description + w.Topics + w.Readme + w.Language + w.Popularity
}

// Validate rejects weight sets that do not sum to 1.0. The literal
// values are tunable policy; the sum is not.
func (w Weights) Validate() error {
	if math.Abs(w.sum()-1.0) > 1e-6 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %.4f", w.sum())
	}
	return nil
}

// ReferenceStars is the star count at which the popularity signal
// saturates to 1.0.
const ReferenceStars = 10000

type Scorer struct {
	weights  Weights
	refStars int
}

func NewScorer(weights Weights, refStars int) *Scorer {
	if refStars <= 0 {
		refStars = ReferenceStars
	}
	return &Scorer{weights: weights, refStars: refStars}
}

// Score computes the relevance of one candidate to the original user
// query, in [0,1]. preferredLanguage and readmeExcerpt are optional;
// an empty value removes that signal entirely (weight redistributed)
// instead of contributing zero. Pure: same inputs, same score.
func (s *Scorer) Score(cand model.Candidate, query, preferredLanguage, readmeExcerpt string) float64 {
	queryTokens := Tokenize(query)
	querySet := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		querySet[t] = struct{}{}
	}

	w := s.weights
	active := w.Name + w.Description + w.Topics + w.Popularity
	if preferredLanguage != "" {
		active += w.Language
	}
	if readmeExcerpt != "" {
		active += w.Readme
	}
	if active == 0 {
		return 0
	}

	score := w.Name * s.nameSignal(queryTokens, querySet, cand.Name)
	score += w.Description * Overlap(querySet, TokenSet(cand.Description))
	score += w.Topics * Overlap(querySet, TokenSet(strings.Join(cand.Topics, " ")))
	score += w.Popularity * s.popularitySignal(cand.Stars)
	if preferredLanguage != "" && strings.EqualFold(cand.Language, preferredLanguage) {
		score += w.Language
	}
	if readmeExcerpt != "" {
		score += w.Readme * Overlap(querySet, TokenSet(readmeExcerpt))
	}

	score /= active
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// nameSignal gives 1.0 on full containment of the normalized query in
// the normalized repository name, otherwise the token-overlap fraction.
func (s *Scorer) nameSignal(queryTokens []string, querySet map[string]struct{}, name string) float64 {
	nameTokens := Tokenize(name)
	if len(queryTokens) > 0 && len(nameTokens) > 0 {
		joinedQuery := strings.Join(queryTokens, " ")
		joinedName := strings.Join(nameTokens, " ")
		if strings.Contains(joinedName, joinedQuery) {
			return 1
		}
	}
	nameSet := make(map[string]struct{}, len(nameTokens))
	for _, t := range nameTokens {
		nameSet[t] = struct{}{}
	}
	return Overlap(querySet, nameSet)
}

// popularitySignal is a saturating log scale: a mega-popular repository
// maxes the signal out instead of dominating the whole score.
func (s *Scorer) popularitySignal(stars int) float64 {
	if stars <= 0 {
		return 0
	}
	v := math.Log1p(float64(stars)) / math.Log1p(float64(s.refStars))
	if v > 1 {
		v = 1
	}
	return v
}

// SortResults orders ranked results by score descending, breaking ties
// by stars descending and then identity ascending so the order is
// total and reproducible.
func SortResults(results []model.RankedResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Stars != results[j].Stars {
			return results[i].Stars > results[j].Stars
		}
		return results[i].Identity < results[j].Identity
	})
}
