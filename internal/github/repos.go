package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var repoURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/\s?#]+)`)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", fmt.Errorf("invalid GitHub URL: %s", rawURL)
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), nil
}

// Repository fetches metadata for a single repository.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var out Repository
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &out); err != nil {
		return nil, fmt.Errorf("fetch repo %s/%s: %w", owner, repo, err)
	}
	return &out, nil
}

// Tree lists all blobs in the repository's HEAD tree, recursively.
// Directories are filtered out.
func (c *Client) Tree(ctx context.Context, owner, repo string) ([]TreeEntry, error) {
	var resp treeResponse
	err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/git/trees/HEAD?recursive=1", owner, repo), &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch tree %s/%s: %w", owner, repo, err)
	}

	var files []TreeEntry
	for _, item := range resp.Tree {
		if item.Type == "blob" {
			files = append(files, TreeEntry{Path: item.Path, Size: item.Size})
		}
	}
	return files, nil
}
