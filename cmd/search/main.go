// Command search queries GitHub repositories from the terminal without
// going through the web service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lorem111/github-analyze/internal/github"
)

var validSorts = map[string]bool{
	"stars":              true,
	"forks":              true,
	"help-wanted-issues": true,
	"updated":            true,
}

func main() {
	_ = godotenv.Load()

	query := flag.String("search", "", "Search query for repositories (required)")
	token := flag.String("token", os.Getenv("GITHUB_TOKEN"), "GitHub API token for authenticated requests")
	limit := flag.Int("limit", 10, "Number of results to display (max: 100)")
	sortBy := flag.String("sort", "stars", "Sort results by: stars, forks, help-wanted-issues, updated")
	order := flag.String("order", "desc", "Sort order: asc, desc")
	flag.Parse()

	if *query == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !validSorts[*sortBy] {
		fmt.Fprintf(os.Stderr, "invalid -sort value %q (choose from: stars, forks, help-wanted-issues, updated)\n", *sortBy)
		os.Exit(2)
	}
	if *order != "asc" && *order != "desc" {
		fmt.Fprintf(os.Stderr, "invalid -order value %q (choose from: asc, desc)\n", *order)
		os.Exit(2)
	}
	if *limit > 100 {
		fmt.Println("Warning: GitHub API limits results to 100 per page. Setting limit to 100.")
		*limit = 100
	}

	client := github.NewClient(*token)
	repos, err := client.SearchSorted(context.Background(), *query, *limit, *sortBy, *order)
	if err != nil {
		log.Fatalf("Search request failed: %v", err)
	}

	if len(repos) == 0 {
		fmt.Println("No repositories found matching your search query.")
		return
	}

	fmt.Printf("Found %d repositories\n", len(repos))
	fmt.Println(strings.Repeat("=", 50))
	for i, repo := range repos {
		desc := repo.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Printf("\n%d. %s\n", i+1, repo.FullName)
		fmt.Printf("   Description: %s\n", desc)
		fmt.Printf("   Language: %s\n", orNA(repo.Language))
		fmt.Printf("   Stars: %d\n", repo.Stars)
		fmt.Printf("   Forks: %d\n", repo.Forks)
		fmt.Printf("   Updated: %s\n", orNA(repo.UpdatedAt))
		fmt.Printf("   URL: %s\n", repo.HTMLURL)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
