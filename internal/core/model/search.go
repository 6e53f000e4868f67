package model

// RankedResult is a scored candidate. Score is in [0,1]; ordering is
// score descending, stars descending, identity ascending.
type RankedResult struct {
	Candidate
	Score         float64 `json:"score"`
	ReadmePreview string  `json:"readme_preview,omitempty"`
}

// Search status values. StatusDegraded marks a response where every
// variant call failed, as opposed to a genuine empty result set.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type SearchResponse struct {
	RequestID  string         `json:"request_id"`
	Query      string         `json:"original_query"`
	Variants   []string       `json:"search_variations"`
	TotalCount int            `json:"total_count"`
	Skipped    int            `json:"skipped_results,omitempty"`
	Status     string         `json:"status"`
	Results    []RankedResult `json:"repositories"`
}
