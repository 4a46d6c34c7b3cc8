package transport

import (
	"errors"
	"time"
)

// Operation identifies the kind of LLM call flowing through the pipeline.
// Used for routing decisions, cache keys, and usage attribution.
type Operation string

const (
	// OpGeneration produces or revises an article draft.
	OpGeneration Operation = "generation"
	// OpJudgment evaluates a draft against a style profile.
	OpJudgment Operation = "judgment"
)

// Request is the normalized LLM request passed through the middleware chain.
// Provider adapters translate it into provider-specific wire formats.
type Request struct {
	// Operation distinguishes generation from judgment calls.
	Operation Operation

	// StyleID and Round scope the call within a pipeline run.
	// They participate in cache and idempotency keys so that drafts for
	// different styles or rounds never collide.
	StyleID string
	Round   int

	// Provider and Model select the adapter and the concrete model.
	Provider string
	Model    string

	// SystemPrompt and UserPrompt form the conversation sent to the model.
	SystemPrompt string
	UserPrompt   string

	// MaxTokens caps the completion length. Zero lets the provider default.
	MaxTokens int

	// Temperature controls sampling. A nil value omits the parameter
	// entirely, which reasoning models require.
	Temperature *float64

	// Timeout bounds this single attempt. Zero inherits the client timeout.
	Timeout time.Duration

	// IdempotencyKey deduplicates retried calls at the cache layer.
	// Derived from the canonical request payload when empty.
	IdempotencyKey string
}

// Validate checks the request is well-formed before it enters the chain.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New("request is nil")
	}
	if r.Operation != OpGeneration && r.Operation != OpJudgment {
		return errors.New("unknown operation")
	}
	if r.Provider == "" {
		return errors.New("provider is required")
	}
	if r.Model == "" {
		return errors.New("model is required")
	}
	if r.UserPrompt == "" {
		return errors.New("user prompt is required")
	}
	return nil
}

// Usage captures token consumption reported by the provider.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Response is the normalized result of an LLM call.
type Response struct {
	// Content is the raw completion text. Callers parse it into domain
	// payloads downstream.
	Content string

	// Model and Provider echo what actually served the request.
	Model    string
	Provider string

	// ProviderRequestID is the provider's trace identifier when exposed.
	ProviderRequestID string

	// Usage holds token counts for cost attribution.
	Usage Usage

	// FinishReason reports why generation stopped (stop, length, filter).
	FinishReason string

	// FromCache marks responses served by the cache middleware.
	FromCache bool

	// LatencyMillis measures the HTTP round trip, zero for cache hits.
	LatencyMillis int64
}
