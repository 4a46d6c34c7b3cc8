package configuration

import (
	"os"
	"time"
)

// HTTP and connection constants.
const (
	DefaultMaxIdleConns       = 100
	DefaultIdleTimeoutSeconds = 90
	DefaultTLSTimeoutSeconds  = 10
	DefaultHTTPTimeoutSeconds = 120
)

// Retry constants.
const (
	DefaultMaxAttempts       = 3
	DefaultMaxElapsedTime    = 90 * time.Second
	DefaultInitialInterval   = 250 * time.Millisecond
	DefaultMaxInterval       = 5 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Rate limiting constants.
const (
	DefaultTokensPerSecond = 5
	DefaultBurstSize       = 10
)

// Cache constants.
const DefaultCacheTTL = 24 * time.Hour

// Provider API key environment variables.
const (
	OpenAIAPIKeyEnv    = "OPENAI_API_KEY"
	AnthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
)

// DefaultConfig returns production-ready configuration with sensible defaults.
// API keys are read from the conventional environment variables; the Redis
// cache stays disabled until an address is configured.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: DefaultHTTPTimeoutSeconds * time.Second,
		Providers: map[string]ProviderConfig{
			"openai": {
				APIKey:    os.Getenv(OpenAIAPIKeyEnv),
				APIKeyEnv: OpenAIAPIKeyEnv,
			},
			"anthropic": {
				APIKey:    os.Getenv(AnthropicAPIKeyEnv),
				APIKeyEnv: AnthropicAPIKeyEnv,
				Version:   "2023-06-01",
			},
		},
		Retry: RetryConfig{
			MaxAttempts:     DefaultMaxAttempts,
			MaxElapsedTime:  DefaultMaxElapsedTime,
			InitialInterval: DefaultInitialInterval,
			MaxInterval:     DefaultMaxInterval,
			Multiplier:      DefaultBackoffMultiplier,
			UseJitter:       true,
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			TokensPerSecond: DefaultTokensPerSecond,
			BurstSize:       DefaultBurstSize,
		},
		Cache: CacheConfig{
			Enabled:   os.Getenv("REDIS_ADDR") != "",
			RedisAddr: os.Getenv("REDIS_ADDR"),
			TTL:       DefaultCacheTTL,
		},
	}
}
