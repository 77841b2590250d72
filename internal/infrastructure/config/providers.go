package config

import "time"

// ProvidersConfig holds the remote feed client configuration
type ProvidersConfig struct {
	// Feed URLs
	AuctionsURL  string `mapstructure:"auctions_url" validate:"required,url"`
	ItemsURL     string `mapstructure:"items_url" validate:"required,url"`
	KatProfitURL string `mapstructure:"kat_profit_url" validate:"required,url"`
	LowSupplyURL string `mapstructure:"low_supply_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Circuit breaker settings
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// Maximum auction pages to aggregate (0 = until an empty page)
	MaxPages int `mapstructure:"max_pages" validate:"min=0"`

	// User-Agent sent to the providers
	UserAgent string `mapstructure:"user_agent"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests float64 `mapstructure:"requests" validate:"gt=0"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	// Consecutive failures before the circuit opens
	MaxFailures int `mapstructure:"max_failures" validate:"min=1"`

	// How long the circuit stays open before a probe is allowed
	Cooldown time.Duration `mapstructure:"cooldown" validate:"required"`
}
