// Package retry provides retry middleware for the LLM transport pipeline,
// implementing exponential backoff with jitter and respecting provider
// Retry-After guidance.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
	"github.com/ahrav/go-newsdesk/internal/llm/transport"
)

var (
	// Configuration validation errors.
	errMaxAttemptsInvalid     = errors.New("maxAttempts must be greater than 0")
	errInitialIntervalInvalid = errors.New("initialInterval must be greater than 0")
	errMaxIntervalInvalid     = errors.New("maxInterval must be >= initialInterval")
	errMultiplierInvalid      = errors.New("multiplier must be >= 1.0")

	// Runtime errors.
	errContextCancelledBeforeRetry = errors.New("context cancelled before retry")
	errContextCancelledDuringRetry = errors.New("context cancelled during retry")
	errAllRetriesExhausted         = errors.New("all retries exhausted")
)

// retryMiddleware implements retry logic with exponential backoff.
// Handles transient failures with configurable retry policies and respects
// provider-specific retry guidance like Retry-After headers.
type retryMiddleware struct {
	config configuration.RetryConfig
	logger *slog.Logger
}

// AfterProvider is implemented by error types that carry a provider-specified
// duration to wait before retrying.
type AfterProvider interface {
	// GetRetryAfter returns the recommended duration to wait before the
	// next attempt, or zero when no guidance is available.
	GetRetryAfter() time.Duration
}

// NewRetryMiddleware creates retry middleware with the specified configuration.
// Implements exponential backoff with full jitter and respects provider rate
// limit headers.
func NewRetryMiddleware(cfg configuration.RetryConfig) (transport.Middleware, error) {
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("%w, got %d", errMaxAttemptsInvalid, cfg.MaxAttempts)
	}
	if cfg.InitialInterval <= 0 {
		return nil, fmt.Errorf("%w, got %v", errInitialIntervalInvalid, cfg.InitialInterval)
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		return nil, fmt.Errorf("%w, MaxInterval: %v, InitialInterval: %v",
			errMaxIntervalInvalid, cfg.MaxInterval, cfg.InitialInterval)
	}
	if cfg.Multiplier < 1.0 {
		return nil, fmt.Errorf("%w, got %f", errMultiplierInvalid, cfg.Multiplier)
	}

	rm := &retryMiddleware{
		config: cfg,
		logger: slog.Default().With("component", "retry"),
	}
	return rm.middleware(), nil
}

// middleware returns the retry middleware function.
func (r *retryMiddleware) middleware() transport.Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			var lastErr error
			startTime := time.Now()

			// Fail fast if context is already cancelled to avoid wasted attempts.
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", errContextCancelledBeforeRetry, ctx.Err())
			default:
			}

			for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
				// Respect the overall deadline to prevent indefinite retry loops.
				if r.config.MaxElapsedTime > 0 && time.Since(startTime) > r.config.MaxElapsedTime {
					r.logger.Warn("max elapsed time exceeded",
						"elapsed", time.Since(startTime),
						"attempts", attempt-1,
						"last_error", lastErr)
					break
				}

				resp, err := next.Handle(ctx, req)
				if err == nil {
					if attempt > 1 {
						r.logger.Info("request succeeded after retry",
							"attempt", attempt,
							"provider", req.Provider,
							"model", req.Model)
					}
					return resp, nil
				}

				if !llmerrors.IsRetryable(err) {
					r.logger.Debug("non-retryable error",
						"error", err,
						"attempt", attempt,
						"provider", req.Provider)
					return nil, err
				}

				lastErr = err

				if attempt == r.config.MaxAttempts {
					break
				}

				backoff := r.calculateBackoff(attempt, err)

				// A provider retry-after that blows the elapsed budget falls
				// back to plain exponential backoff; if even that does not
				// fit, give up.
				if r.config.MaxElapsedTime > 0 {
					elapsed := time.Since(startTime)
					if elapsed+backoff > r.config.MaxElapsedTime {
						exponential := r.calculateExponentialBackoff(attempt)
						if elapsed+exponential > r.config.MaxElapsedTime {
							r.logger.Warn("max elapsed time exceeded",
								"elapsed", elapsed,
								"attempts", attempt,
								"last_error", err)
							break
						}
						backoff = exponential
					}
				}

				r.logger.Debug("retrying after backoff",
					"attempt", attempt,
					"backoff", backoff,
					"error", err,
					"provider", req.Provider)

				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return nil, fmt.Errorf("%w: %w", errContextCancelledDuringRetry, ctx.Err())
				}
			}

			return nil, fmt.Errorf("%w after %d attempts: %w",
				errAllRetriesExhausted, r.config.MaxAttempts, lastErr)
		})
	}
}
