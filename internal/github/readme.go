package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
)

const readmePreviewLen = 100

// Readme fetches a repository's README and returns a short single-line
// preview. Failures map to display placeholders rather than errors: the
// preview is presentation data and must never abort a search response.
func (c *Client) Readme(ctx context.Context, owner, repo string) string {
	key := owner + "/" + repo
	if cached, ok := c.readmes.Get(key); ok {
		return cached.(string)
	}

	var resp readmeResponse
	err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, repo), &resp)
	if err != nil {
		switch {
		case IsNotFound(err):
			return "No README found"
		case IsForbidden(err):
			return "README available (add GitHub token for preview)"
		default:
			log.Printf("README fetch failed for %s: %v", key, err)
			return "README fetch failed"
		}
	}

	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		log.Printf("README decode failed for %s: %v", key, err)
		return "README decode failed"
	}

	// Truncate on runes, not bytes, so a multi-byte character at the
	// boundary is never cut mid-sequence.
	preview := string(content)
	if runes := []rune(preview); len(runes) > readmePreviewLen {
		preview = string(runes[:readmePreviewLen])
	}
	preview = strings.TrimSpace(strings.ReplaceAll(preview, "\n", " "))

	c.readmes.SetDefault(key, preview)
	return preview
}
