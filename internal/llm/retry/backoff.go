package retry

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
)

// calculateBackoff computes the retry delay for an attempt. Provider
// Retry-After guidance takes precedence; otherwise exponential backoff with
// optional full jitter applies. Thread-safe via math/rand/v2.
func (r *retryMiddleware) calculateBackoff(attempt int, err error) time.Duration {
	if retryAfter := extractRetryAfter(err); retryAfter > 0 {
		return retryAfter
	}
	return r.calculateExponentialBackoff(attempt)
}

// calculateExponentialBackoff computes exponential backoff ignoring any
// retry-after guidance. Used directly when provider guidance conflicts with
// the elapsed time budget.
func (r *retryMiddleware) calculateExponentialBackoff(attempt int) time.Duration {
	backoff := r.config.InitialInterval
	if backoff <= 0 {
		backoff = time.Millisecond
	}

	for i := 1; i < attempt; i++ {
		multiplier := r.config.Multiplier
		if multiplier < 1.0 {
			multiplier = 1.0
		}
		backoff = time.Duration(float64(backoff) * multiplier)
		if backoff > r.config.MaxInterval {
			backoff = r.config.MaxInterval
			break
		}
	}

	if r.config.UseJitter {
		// Full jitter: random between 0 and the calculated backoff.
		jitterMs := rand.Int64N(backoff.Milliseconds() + 1) // #nosec G404 -- non-cryptographic jitter is appropriate here
		return time.Duration(jitterMs) * time.Millisecond
	}

	return backoff
}

// extractRetryAfter determines provider-specified retry delays from error
// responses, preferring explicit interface guidance over typed error fields.
func extractRetryAfter(err error) time.Duration {
	var provider AfterProvider
	if errors.As(err, &provider) {
		return provider.GetRetryAfter()
	}

	var rateLimitErr *llmerrors.RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
		return time.Duration(rateLimitErr.RetryAfter) * time.Second
	}

	var providerErr *llmerrors.ProviderError
	if errors.As(err, &providerErr) && providerErr.RetryAfter > 0 {
		return time.Duration(providerErr.RetryAfter) * time.Second
	}

	return 0
}

// ExponentialBackoff calculates retry delays using exponential backoff with
// optional full jitter. Returns zero for non-positive attempt numbers.
func ExponentialBackoff(attempt int, config configuration.RetryConfig) time.Duration {
	if attempt <= 0 {
		return 0
	}

	backoff := config.InitialInterval
	for i := 1; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * config.Multiplier)
		if backoff > config.MaxInterval {
			return config.MaxInterval
		}
	}

	if config.UseJitter {
		jitterMs := rand.Int64N(backoff.Milliseconds() + 1) // #nosec G404 -- non-cryptographic jitter is appropriate here
		return time.Duration(jitterMs) * time.Millisecond
	}

	return backoff
}
