// Package normalize converts raw GitHub search records into canonical
// candidates. Records missing an identity or a name are dropped rather
// than erroring: the search feed is best-effort and may carry partial
// entries.
package normalize

import (
	"strconv"

	"github.com/lorem111/github-analyze/internal/core/model"
	"github.com/lorem111/github-analyze/internal/github"
)

// Normalize maps one raw search result to a Candidate tagged with the
// variant that surfaced it. ok is false when the record lacks the
// required identity or name.
func Normalize(raw github.Repository, variant string) (model.Candidate, bool) {
	if raw.Name == "" {
		return model.Candidate{}, false
	}

	identity := ""
	switch {
	case raw.ID != 0:
		identity = strconv.FormatInt(raw.ID, 10)
	case raw.Owner.Login != "":
		identity = raw.Owner.Login + "/" + raw.Name
	default:
		return model.Candidate{}, false
	}

	stars := raw.Stars
	if stars < 0 {
		stars = 0
	}

	return model.Candidate{
		Identity:        identity,
		Name:            raw.Name,
		Owner:           raw.Owner.Login,
		FullName:        raw.FullName,
		Description:     raw.Description,
		Language:        raw.Language,
		Topics:          raw.Topics,
		Stars:           stars,
		URL:             raw.HTMLURL,
		MatchedVariants: []string{variant},
	}, true
}
