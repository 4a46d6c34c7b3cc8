package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/llm/cache"
	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	"github.com/ahrav/go-newsdesk/internal/llm/providers"
	"github.com/ahrav/go-newsdesk/internal/llm/ratelimit"
	"github.com/ahrav/go-newsdesk/internal/llm/retry"
	"github.com/ahrav/go-newsdesk/internal/llm/transport"
)

// Client provides the high-level LLM operations the pipeline activities use.
// It maps domain inputs to normalized transport requests and routes them
// through the full middleware pipeline: caching, retries, and rate limiting.
type Client interface {
	// GenerateDraft produces an article draft for one style and round.
	// Round 2 calls carry the revision instructions and the prior draft.
	GenerateDraft(ctx context.Context, in domain.GenerateDraftInput) (*domain.GenerateDraftOutput, error)

	// JudgeDraft evaluates a draft against its style profile and source text,
	// returning a structured quality report with a verdict.
	JudgeDraft(ctx context.Context, in domain.JudgeDraftInput) (*domain.JudgeDraftOutput, error)
}

// client implements the Client interface with the full middleware pipeline.
type client struct {
	config  *configuration.Config
	handler transport.Handler
}

// NewClient creates an LLM client with the complete middleware pipeline.
// Ordering matters: the cache sits at the call level so a hit skips retries
// entirely, while rate limiting applies per attempt inside the retry loop.
func NewClient(ctx context.Context, cfg *configuration.Config) (Client, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}

	router, err := providers.NewRouter(cfg.Providers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
			Timeout: cfg.HTTPTimeout,
		}
	}

	coreHandler := transport.NewHTTPHandler(httpClient, router)

	// Attempt-level middleware runs inside the retry loop.
	attemptHandler := transport.Chain(coreHandler,
		ratelimit.NewRateLimitMiddleware(cfg.RateLimit))

	retryMiddleware, err := retry.NewRetryMiddleware(cfg.Retry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize retry middleware: %w", err)
	}
	retryHandler := retryMiddleware(attemptHandler)

	// Call-level middleware wraps the whole retried call.
	cacheMiddleware, err := cache.NewCacheMiddlewareWithRedis(ctx, cfg.Cache, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	handler := transport.Chain(retryHandler, cacheMiddleware)

	return &client{config: cfg, handler: handler}, nil
}

// GenerateDraft implements Client.GenerateDraft.
func (c *client) GenerateDraft(ctx context.Context, in domain.GenerateDraftInput) (*domain.GenerateDraftOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation input: %w", err)
	}

	var system, user string
	var err error
	temperature := in.Config.WriterTemperature

	if in.Round == domain.RoundRevised {
		system, user, err = BuildRevisionPrompt(in.Style, *in.PriorDraft, in.SourceText, in.Instructions)
		temperature = in.Config.ReviseTemperature
	} else {
		system, user, err = BuildWriterPrompt(in.Style, in.SourceText, in.SourceURL)
	}
	if err != nil {
		return nil, err
	}

	req := &transport.Request{
		Operation:    transport.OpGeneration,
		StyleID:      in.Style.ID,
		Round:        int(in.Round),
		Provider:     in.Config.WriterProvider,
		Model:        in.Config.WriterModel,
		SystemPrompt: system,
		UserPrompt:   user,
		MaxTokens:    int(in.Config.MaxDraftTokens),
		Temperature:  &temperature,
		Timeout:      time.Duration(in.Config.CallTimeoutSecs) * time.Second,
	}
	req.IdempotencyKey = transport.IdempotencyKey(req)

	resp, err := c.handler.Handle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("draft generation failed: %w", err)
	}

	draft, err := ParseWriterResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	draft.ID = domain.NewDraftID()
	draft.StyleID = in.Style.ID
	draft.Round = in.Round
	draft.Provider = resp.Provider
	draft.Model = modelOrRequested(resp.Model, in.Config.WriterModel)
	draft.LatencyMillis = resp.LatencyMillis

	out := &domain.GenerateDraftOutput{
		Draft:         draft,
		TokensUsed:    resp.Usage.TotalTokens,
		ClientIdemKey: req.IdempotencyKey,
	}
	if !resp.FromCache {
		out.CallsMade = 1
	}
	return out, nil
}

// JudgeDraft implements Client.JudgeDraft.
func (c *client) JudgeDraft(ctx context.Context, in domain.JudgeDraftInput) (*domain.JudgeDraftOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid judgment input: %w", err)
	}

	system, user, err := BuildJudgePrompt(in.Style, in.Draft, in.SourceText)
	if err != nil {
		return nil, err
	}

	req := &transport.Request{
		Operation:    transport.OpJudgment,
		StyleID:      in.Style.ID,
		Round:        int(in.Draft.Round),
		Provider:     in.Config.JudgeProvider,
		Model:        in.Config.JudgeModel,
		SystemPrompt: system,
		UserPrompt:   user,
		MaxTokens:    int(in.Config.MaxDraftTokens),
		Timeout:      time.Duration(in.Config.CallTimeoutSecs) * time.Second,
		// Temperature stays nil: judge models run at their defaults and
		// reasoning models reject the parameter.
	}
	req.IdempotencyKey = transport.IdempotencyKey(req)

	resp, err := c.handler.Handle(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("draft judgment failed: %w", err)
	}

	report, err := ParseJudgeResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	report.ID = domain.NewReportID()
	report.StyleID = in.Style.ID
	report.Round = in.Draft.Round
	report.DraftID = in.Draft.ID
	report.JudgeProvider = resp.Provider
	report.JudgeModel = modelOrRequested(resp.Model, in.Config.JudgeModel)
	report.LatencyMillis = resp.LatencyMillis

	out := &domain.JudgeDraftOutput{
		Report:        report,
		TokensUsed:    resp.Usage.TotalTokens,
		ClientIdemKey: req.IdempotencyKey,
	}
	if !resp.FromCache {
		out.CallsMade = 1
	}
	return out, nil
}

// modelOrRequested prefers the model echoed by the provider, falling back to
// the requested one for cached or sparse responses.
func modelOrRequested(echoed, requested string) string {
	if echoed != "" {
		return echoed
	}
	return requested
}
