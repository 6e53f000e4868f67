package model

// Candidate is one repository surfaced by a search call, after
// normalization. Identity is the dedup key across query variants.
type Candidate struct {
	Identity    string   `json:"identity"`
	Name        string   `json:"name"`
	Owner       string   `json:"owner"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stars"`
	URL         string   `json:"url"`

	// MatchedVariants holds the query variants that returned this
	// candidate. It only grows as variants are merged in.
	MatchedVariants []string `json:"matched_variants"`
}

// HasVariant reports whether the candidate was already returned by variant.
func (c *Candidate) HasVariant(variant string) bool {
	for _, v := range c.MatchedVariants {
		if v == variant {
			return true
		}
	}
	return false
}
