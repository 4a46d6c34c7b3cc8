// Package configuration holds typed configuration for the LLM client:
// provider endpoints and credentials, retry behavior, local rate limiting,
// and the Redis response cache.
package configuration

import (
	"net/http"
	"time"
)

// Config holds comprehensive configuration for the LLM client.
type Config struct {
	// HTTP client configuration
	HTTPTimeout time.Duration `json:"http_timeout"`
	HTTPClient  *http.Client  `json:"-"`

	// Providers maps provider names to their configuration.
	Providers map[string]ProviderConfig `json:"providers"`

	// Retry configuration
	Retry RetryConfig `json:"retry"`

	// RateLimit configuration for the local token bucket.
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Cache configuration for the Redis response cache.
	Cache CacheConfig `json:"cache"`
}

// ProviderConfig holds provider-specific configuration and authentication.
type ProviderConfig struct {
	Endpoint   string            `json:"endpoint"`
	APIKey     string            `json:"-"` // Sensitive, not serialized
	APIKeyEnv  string            `json:"api_key_env"`
	Timeout    time.Duration     `json:"timeout"`
	Headers    map[string]string `json:"headers"`
	Version    string            `json:"version,omitempty"` // Provider API version header where required
}

// RetryConfig controls retry behavior for failed LLM operations.
// Implements exponential backoff with full jitter.
type RetryConfig struct {
	MaxAttempts     int           `json:"max_attempts"`     // Maximum attempts including the first
	MaxElapsedTime  time.Duration `json:"max_elapsed_time"` // Total time budget for all attempts
	InitialInterval time.Duration `json:"initial_interval"` // Starting backoff duration
	MaxInterval     time.Duration `json:"max_interval"`     // Maximum backoff duration
	Multiplier      float64       `json:"multiplier"`       // Exponential backoff multiplier
	UseJitter       bool          `json:"use_jitter"`       // Enable full jitter randomization
}

// RateLimitConfig controls the in-memory token bucket applied per
// provider:model key before each attempt.
type RateLimitConfig struct {
	Enabled         bool    `json:"enabled"`
	TokensPerSecond float64 `json:"tokens_per_second"`
	BurstSize       int     `json:"burst_size"`
}

// CacheConfig controls the Redis-based success-only response cache.
// Caching is keyed by the client idempotency key, so identical calls within
// the TTL are served without a provider round trip.
type CacheConfig struct {
	Enabled       bool          `json:"enabled"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"-"` // Sensitive
	RedisDB       int           `json:"redis_db"`
	TTL           time.Duration `json:"ttl"`
}
