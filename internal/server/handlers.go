package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lorem111/github-analyze/internal/github"
)

type SearchRequest struct {
	Query             string `json:"query"`
	PreferredLanguage string `json:"preferred_language"`
	Limit             int    `json:"limit"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a search query"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.MaxResults
	}

	resp, err := s.Finder.Rank(c.Request.Context(), req.Query, req.PreferredLanguage, limit)
	if err != nil {
		log.Printf("Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type DiagramRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (s *Server) GenerateDiagram(c *gin.Context) {
	var req DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Owner = strings.TrimSpace(req.Owner)
	req.Repo = strings.TrimSpace(req.Repo)
	if req.Owner == "" || req.Repo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner and repository name are required"})
		return
	}

	files, err := s.GitHub.Tree(c.Request.Context(), req.Owner, req.Repo)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "File tree fetch failed"
		switch {
		case github.IsNotFound(err):
			status, msg = http.StatusNotFound, "Repository not found"
		case github.IsForbidden(err):
			status, msg = http.StatusForbidden, "Repository access denied (add GitHub token)"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No files found in repository"})
		return
	}

	name := req.Owner + "/" + req.Repo
	diagram := s.Diagrams.Generate(c.Request.Context(), name, files)

	c.JSON(http.StatusOK, gin.H{
		"repository": name,
		"file_count": len(files),
		"diagram":    diagram,
	})
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	owner, repo, err := github.ParseRepoURL(strings.TrimSpace(req.URL))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := s.GitHub.Repository(c.Request.Context(), owner, repo)
	if err != nil {
		if github.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Repository not found"})
			return
		}
		log.Printf("Analyze failed for %s/%s: %v", owner, repo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repository"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repository":     info,
		"readme_preview": s.GitHub.Readme(c.Request.Context(), owner, repo),
	})
}
