package github

// Repository is the raw search-result record as returned by the GitHub
// REST API. Fields the ranking core does not consume are omitted.
type Repository struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Owner       Owner    `json:"owner"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	HTMLURL     string   `json:"html_url"`
	UpdatedAt   string   `json:"updated_at"`
}

type Owner struct {
	Login string `json:"login"`
}

type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}

// TreeEntry is one blob from the recursive git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int    `json:"size"`
	} `json:"tree"`
}

type readmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
