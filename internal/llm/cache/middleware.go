// Package cache provides Redis-based caching middleware for LLM responses.
// Cache keys derive from request idempotency keys so retried pipeline
// activities reuse completed provider calls instead of paying for them twice.
// Redis failures degrade gracefully to cache bypass.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-newsdesk/internal/llm/configuration"
	"github.com/ahrav/go-newsdesk/internal/llm/transport"
)

const (
	// Redis connection defaults.
	defaultPoolSize   = 10
	connectionTimeout = 5 * time.Second

	// Idempotency key constraints.
	maxIdempotencyKeyLength = 256
	minIdempotencyKeyLength = 8
)

// RedisClient is the subset of redis.Client operations the cache uses.
// Accepting the interface keeps the middleware testable without a live Redis.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// cacheMiddleware implements Redis-based caching for LLM responses.
// All operations are thread-safe. Only successful responses are cached;
// errors always pass through uncached.
type cacheMiddleware struct {
	client  RedisClient
	ttl     time.Duration
	enabled bool

	logger *slog.Logger

	// Metrics counters accessed atomically.
	hits      atomic.Int64
	misses    atomic.Int64
	cacheErrs atomic.Int64
}

// cachedEntry is the JSON envelope stored in Redis.
type cachedEntry struct {
	Response *transport.Response `json:"response"`
	CachedAt time.Time           `json:"cached_at"`
}

// NewCacheMiddlewareWithRedis creates caching middleware for LLM responses.
// If client is nil and caching is enabled, a new Redis client is created from
// cfg. Redis connection failures disable caching for graceful degradation.
func NewCacheMiddlewareWithRedis(ctx context.Context, cfg configuration.CacheConfig, client RedisClient) (transport.Middleware, error) {
	if client == nil && cfg.Enabled {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: defaultPoolSize,
		})

		timeoutCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		defer cancel()

		if err := client.Ping(timeoutCtx).Err(); err != nil {
			slog.Warn("Redis connection failed, cache disabled", "error", err)
			cfg.Enabled = false
		}
	}

	cm := &cacheMiddleware{
		client:  client,
		ttl:     cfg.TTL,
		enabled: cfg.Enabled,
		logger:  slog.Default().With("component", "cache"),
	}

	return cm.middleware(), nil
}

// middleware returns the transport.Middleware that intercepts requests.
func (c *cacheMiddleware) middleware() transport.Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			if !c.enabled || req.IdempotencyKey == "" {
				return next.Handle(ctx, req)
			}

			key, keyErr := c.buildKey(req)
			if keyErr != nil {
				c.logger.Warn("cache key validation failed", "error", keyErr)
				return next.Handle(ctx, req)
			}

			if cached, err := c.get(ctx, key); err != nil {
				c.cacheErrs.Add(1)
				c.logger.Warn("cache read error", "error", err, "key", key)
			} else if cached != nil {
				c.hits.Add(1)
				c.logger.Debug("cache hit",
					"key", key,
					"provider", req.Provider,
					"model", req.Model,
					"operation", req.Operation)
				return cached, nil
			}

			c.misses.Add(1)

			resp, err := next.Handle(ctx, req)
			if err != nil {
				// Only successful responses are cached.
				return nil, err
			}

			if resp != nil {
				if cacheErr := c.set(ctx, key, resp); cacheErr != nil {
					c.cacheErrs.Add(1)
					c.logger.Warn("cache write error", "error", cacheErr, "key", key)
				}
			}

			return resp, nil
		})
	}
}

// buildKey constructs a cache key for the request after validating its fields.
// The key format is "llm:{operation}:{idemkey}".
func (c *cacheMiddleware) buildKey(req *transport.Request) (string, error) {
	if req.Operation == "" {
		return "", fmt.Errorf("operation is required")
	}
	switch req.Operation {
	case transport.OpGeneration, transport.OpJudgment:
	default:
		return "", fmt.Errorf("invalid operation: %s", req.Operation)
	}
	if len(req.IdempotencyKey) < minIdempotencyKeyLength {
		return "", fmt.Errorf("idempotency key too short (min %d chars): %d",
			minIdempotencyKeyLength, len(req.IdempotencyKey))
	}
	if len(req.IdempotencyKey) > maxIdempotencyKeyLength {
		return "", fmt.Errorf("idempotency key too long (max %d chars): %d",
			maxIdempotencyKeyLength, len(req.IdempotencyKey))
	}

	return fmt.Sprintf("llm:%s:%s", req.Operation, req.IdempotencyKey), nil
}

// get fetches and decodes a cached response. A nil response with nil error
// indicates a cache miss.
func (c *cacheMiddleware) get(ctx context.Context, key string) (*transport.Response, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var entry cachedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if entry.Response == nil {
		return nil, nil
	}

	entry.Response.FromCache = true
	entry.Response.LatencyMillis = 0
	return entry.Response, nil
}

// set stores a successful response under the key with the configured TTL.
func (c *cacheMiddleware) set(ctx context.Context, key string, resp *transport.Response) error {
	entry := cachedEntry{Response: resp, CachedAt: time.Now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   int64
	Misses int64
	Errors int64
}

// GetStats returns a snapshot of the cache counters.
func (c *cacheMiddleware) GetStats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.cacheErrs.Load(),
	}
}
