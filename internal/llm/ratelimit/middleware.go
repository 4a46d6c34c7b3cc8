// Package ratelimit provides token-bucket rate limiting for the LLM request
// pipeline. Limiters are keyed per provider and model so one saturated
// provider cannot starve the others, and stale limiters are cleaned up in the
// background to keep memory bounded in long-running workers.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	llmerrors "github.com/ahrav/go-newsdesk/internal/llm/errors"
	"github.com/ahrav/go-newsdesk/internal/llm/transport"
)

// Cleanup and lifecycle constants.
const (
	// CleanupInterval determines the frequency of stale limiter cleanup.
	CleanupInterval = 1 * time.Hour

	// LimiterTTL defines the time-to-live for unused limiters.
	LimiterTTL = 1 * time.Hour
)

// timedLimiter pairs a token bucket with its last-use timestamp for TTL
// based cleanup.
type timedLimiter struct {
	limiter  *rate.Limiter
	lastUsed atomic.Int64
}

// rateLimitMiddleware throttles outgoing LLM requests with per-key token
// buckets. All operations are thread-safe.
type rateLimitMiddleware struct {
	mu       sync.RWMutex
	limiters map[string]*timedLimiter
	config   configuration.RateLimitConfig

	cleanupMu     sync.Mutex
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	cleanupDone   sync.WaitGroup

	logger *slog.Logger
}

// NewRateLimitMiddleware creates rate limiting middleware from configuration.
// A disabled config yields a pass-through middleware. The middleware starts a
// background cleanup goroutine that removes limiters unused for LimiterTTL.
func NewRateLimitMiddleware(cfg configuration.RateLimitConfig) transport.Middleware {
	if !cfg.Enabled {
		return func(next transport.Handler) transport.Handler { return next }
	}

	rlm := &rateLimitMiddleware{
		limiters: make(map[string]*timedLimiter),
		config:   cfg,
		logger:   slog.Default().With("component", "ratelimit"),
	}
	rlm.start()

	return rlm.middleware()
}

// middleware returns the configured rate limiting middleware function.
// Requests that exceed the bucket receive a RateLimitError carrying the
// delay until the next token, so the retry layer can back off accordingly.
func (r *rateLimitMiddleware) middleware() transport.Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			key := buildKey(req)
			limiter := r.getOrCreateLimiter(key)

			if !limiter.Allow() {
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				return nil, &llmerrors.RateLimitError{
					Provider:   req.Provider,
					RetryAfter: int(math.Ceil(delay.Seconds())),
					Limit:      r.config.BurstSize,
					Remaining:  0,
				}
			}

			return next.Handle(ctx, req)
		})
	}
}

// buildKey constructs the rate limiting key from request metadata.
// Provider and model granularity keeps writer and judge models on
// independent buckets.
func buildKey(req *transport.Request) string {
	return fmt.Sprintf("%s:%s", req.Provider, req.Model)
}

// getOrCreateLimiter retrieves an existing token bucket or creates one,
// using double-checked locking to keep the fast path on a read lock.
func (r *rateLimitMiddleware) getOrCreateLimiter(key string) *rate.Limiter {
	now := time.Now().UnixNano()

	r.mu.RLock()
	if tl, ok := r.limiters[key]; ok {
		tl.lastUsed.Store(now)
		lim := tl.limiter
		r.mu.RUnlock()
		return lim
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tl, ok := r.limiters[key]; ok {
		tl.lastUsed.Store(now)
		return tl.limiter
	}

	lim := rate.NewLimiter(rate.Limit(r.config.TokensPerSecond), r.config.BurstSize)
	tl := &timedLimiter{limiter: lim}
	tl.lastUsed.Store(now)
	r.limiters[key] = tl
	return lim
}

// cleanupStale removes limiters not used since the cutoff.
func (r *rateLimitMiddleware) cleanupStale(before time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := before.UnixNano()
	for key, tl := range r.limiters {
		if tl.lastUsed.Load() < cutoff {
			delete(r.limiters, key)
		}
	}
}

// start launches the background cleanup goroutine. Idempotent.
func (r *rateLimitMiddleware) start() {
	r.cleanupMu.Lock()
	defer r.cleanupMu.Unlock()

	if r.cleanupTicker != nil {
		return
	}

	r.cleanupStop = make(chan struct{})
	r.cleanupTicker = time.NewTicker(CleanupInterval)

	r.cleanupDone.Add(1)
	go r.cleanupLoop()
}

// Stop gracefully terminates the background cleanup goroutine. Idempotent.
func (r *rateLimitMiddleware) Stop() {
	r.cleanupMu.Lock()
	defer r.cleanupMu.Unlock()

	if r.cleanupTicker == nil {
		return
	}

	close(r.cleanupStop)
	r.cleanupTicker.Stop()
	r.cleanupDone.Wait()
	r.cleanupTicker = nil
}

func (r *rateLimitMiddleware) cleanupLoop() {
	defer r.cleanupDone.Done()

	for {
		select {
		case <-r.cleanupTicker.C:
			r.cleanupStale(time.Now().Add(-LimiterTTL))
		case <-r.cleanupStop:
			return
		}
	}
}
