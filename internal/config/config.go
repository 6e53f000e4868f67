package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lorem111/github-analyze/internal/core/rank"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type GitHubConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`

	// PerVariantLimit is the raw result count requested per query
	// variant; SearchTimeoutSeconds bounds each provider call.
	PerVariantLimit      int `toml:"per_variant_limit"`
	SearchTimeoutSeconds int `toml:"search_timeout_seconds"`
	ReadmeCacheMinutes   int `toml:"readme_cache_minutes"`
}

type RankingConfig struct {
	Weights        rank.Weights `toml:"weights"`
	ReferenceStars int          `toml:"reference_stars"`
	MaxResults     int          `toml:"max_results"`
}

type PromptsConfig struct {
	Expansion string `toml:"expansion"`
	Diagram   string `toml:"diagram"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	GitHub  GitHubConfig  `toml:"github"`
	Ranking RankingConfig `toml:"ranking"`
	Prompts PromptsConfig `toml:"prompts"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.Ranking.Weights == (rank.Weights{}) {
		cfg.Ranking.Weights = rank.DefaultWeights()
	}
	if err := cfg.Ranking.Weights.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
