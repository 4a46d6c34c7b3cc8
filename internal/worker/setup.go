package worker

import (
	"context"
	"fmt"

	"github.com/ahrav/go-newsdesk/internal/llm"
	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
)

// InitializeLLMClient creates the LLM client with its middleware pipeline.
// Returns the client for dependency injection rather than setting global
// state. Must be called during worker startup.
func InitializeLLMClient(ctx context.Context, cfg *configuration.Config) (llm.Client, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return client, nil
}
