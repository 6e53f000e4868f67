package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultBaseURL = "https://api.github.com"

// Searcher is the provider contract the ranking core consumes. One call
// per query variant; failures are per-call and never fatal upstream.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Repository, error)
}

// ReadmeFetcher supplies README previews for the final result page.
type ReadmeFetcher interface {
	Readme(ctx context.Context, owner, repo string) string
}

// Client talks to the GitHub REST API. A zero token works but is
// subject to much lower rate limits.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	readmes *gocache.Cache
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithReadmeCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.readmes = gocache.New(ttl, 2*ttl) }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		readmes: gocache.New(10*time.Minute, 20*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the repository search endpoint, sorted by stars
// descending. limit is clamped to the API page maximum of 100.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Repository, error) {
	return c.SearchSorted(ctx, query, limit, "", "")
}

// SearchSorted is Search with an explicit sort field (stars, forks,
// help-wanted-issues, updated) and order (asc, desc). Empty values
// fall back to stars descending.
func (c *Client) SearchSorted(ctx context.Context, query string, limit int, sort, order string) ([]Repository, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if sort == "" {
		sort = "stars"
	}
	if order == "" {
		order = "desc"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", order)
	params.Set("per_page", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.getJSON(ctx, "/search/repositories?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return resp.Items, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// APIError is a non-200 response from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err is a 403 (missing token or rate limit).
func IsForbidden(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusForbidden
}
