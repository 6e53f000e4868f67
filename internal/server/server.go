package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lorem111/github-analyze/internal/config"
	"github.com/lorem111/github-analyze/internal/core"
	"github.com/lorem111/github-analyze/internal/core/rank"
	"github.com/lorem111/github-analyze/internal/github"
	"github.com/lorem111/github-analyze/internal/llm"
)

type Server struct {
	Finder     *core.Finder
	GitHub     *github.Client
	Diagrams   *llm.DiagramGenerator
	MaxResults int
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = &config.Config{}
		cfg.Ranking.Weights = rank.DefaultWeights()
	}
	applyEnvOverrides(cfg)

	// Without an API key the expander degrades to the original query
	// and diagrams render a placeholder; search itself still works.
	var llmClient llm.LLMClient
	if cfg.LLM.APIKey != "" {
		llmClient, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
	} else {
		log.Println("No LLM API key configured, query expansion disabled")
	}

	var ghOpts []github.Option
	if cfg.GitHub.BaseURL != "" {
		ghOpts = append(ghOpts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}
	if cfg.GitHub.ReadmeCacheMinutes > 0 {
		ghOpts = append(ghOpts, github.WithReadmeCacheTTL(time.Duration(cfg.GitHub.ReadmeCacheMinutes)*time.Minute))
	}
	gh := github.NewClient(cfg.GitHub.Token, ghOpts...)

	scorer := rank.NewScorer(cfg.Ranking.Weights, cfg.Ranking.ReferenceStars)
	expander := llm.NewQueryExpander(llmClient, cfg.Prompts.Expansion)

	finder := core.NewFinder(expander, gh, gh, scorer)
	if cfg.GitHub.PerVariantLimit > 0 {
		finder.PerVariantLimit = cfg.GitHub.PerVariantLimit
	}
	if cfg.GitHub.SearchTimeoutSeconds > 0 {
		finder.SearchTimeout = time.Duration(cfg.GitHub.SearchTimeoutSeconds) * time.Second
	}

	return &Server{
		Finder:     finder,
		GitHub:     gh,
		Diagrams:   llm.NewDiagramGenerator(llmClient, cfg.Prompts.Diagram),
		MaxResults: cfg.Ranking.MaxResults,
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.Provider = "openrouter"
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openrouter"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "google/gemini-2.5-flash-preview-09-2025"
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/search", s.Search)
	r.POST("/generate-diagram", s.GenerateDiagram)
	r.POST("/analyze", s.Analyze)

	return r
}
