package llm

import (
	"context"
	"log"
	"regexp"
	"strings"
)

const maxVariants = 3

const defaultExpansionPrompt = `You are a GitHub search query optimizer. Generate 3 different search variations for the same natural language request to maximize repository discovery.

Rules:
1. Generate exactly 3 variations, each 2-3 words
2. Each variation should approach the same concept from different angles
3. Use different technical terminology and synonyms
4. Remove unnecessary words like "I want", "find", "solution", "help me"
5. Focus on core functionality, implementation, and related concepts

Format: Return the 3 variations separated by newlines, nothing else.

Examples:
- "I want to find a solution to detect bird sound" ->
bird detection
audio classification
sound recognition

- "help me build a web scraper" ->
web scraper
html parser
data extraction

Generate 3 search variations, one per line:`

// QueryExpander asks the LLM for short search-friendly variations of a
// natural-language request. Expansion is best-effort: any failure or
// empty output degrades to the original query, never to an error.
type QueryExpander struct {
	LLM    LLMClient
	Prompt string
}

func NewQueryExpander(client LLMClient, prompt string) *QueryExpander {
	if prompt == "" {
		prompt = defaultExpansionPrompt
	}
	return &QueryExpander{LLM: client, Prompt: prompt}
}

func (e *QueryExpander) Expand(ctx context.Context, query string) []string {
	if e.LLM == nil {
		return []string{query}
	}

	response, err := e.LLM.Generate(ctx, e.Prompt+"\n\nRequest: "+query)
	if err != nil {
		log.Printf("query expansion failed, falling back to original query: %v", err)
		return []string{query}
	}

	variants := parseVariants(response)
	if len(variants) == 0 {
		return []string{query}
	}
	return variants
}

// listMarker matches bullet or numbered-list prefixes the model
// sometimes adds despite the prompt.
var listMarker = regexp.MustCompile(`^(?:[-*]|\d+[.)])\s+`)

func parseVariants(response string) []string {
	var variants []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		variants = append(variants, line)
		if len(variants) == maxVariants {
			break
		}
	}
	return variants
}
