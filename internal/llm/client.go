package llm

import (
	"context"
)

// LLMClient is the minimal generation contract the application needs.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
