package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAuctionsURL  = "https://api.hypixel.net/skyblock/auctions"
	DefaultItemsURL     = "https://sky.coflnet.com/api/items"
	DefaultKatProfitURL = "https://sky.coflnet.com/api/kat/profit"
	DefaultLowSupplyURL = "https://sky.coflnet.com/api/auctions/supply/low"
)

// RegisterDefaults registers every configuration key with viper.
// Booleans that default to true can only be expressed here, since SetDefaults
// cannot tell an explicit false from a missing value.
func RegisterDefaults(v *viper.Viper) {
	v.SetDefault("providers.auctions_url", DefaultAuctionsURL)
	v.SetDefault("providers.items_url", DefaultItemsURL)
	v.SetDefault("providers.kat_profit_url", DefaultKatProfitURL)
	v.SetDefault("providers.low_supply_url", DefaultLowSupplyURL)
	v.SetDefault("providers.timeout", 30*time.Second)
	v.SetDefault("providers.rate_limit.requests", 2.0)
	v.SetDefault("providers.rate_limit.burst", 4)
	v.SetDefault("providers.circuit_breaker.max_failures", 5)
	v.SetDefault("providers.circuit_breaker.cooldown", 30*time.Second)
	v.SetDefault("providers.max_pages", 0)
	v.SetDefault("providers.user_agent", "hyflipper")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_entries", 512)
	v.SetDefault("cache.ttl", time.Duration(0))

	v.SetDefault("query.cancel_superseded", false)
	v.SetDefault("query.default_limit", 0)
	v.SetDefault("query.timeout", time.Duration(0))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.host", "localhost")
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Provider defaults
	if cfg.Providers.AuctionsURL == "" {
		cfg.Providers.AuctionsURL = DefaultAuctionsURL
	}
	if cfg.Providers.ItemsURL == "" {
		cfg.Providers.ItemsURL = DefaultItemsURL
	}
	if cfg.Providers.KatProfitURL == "" {
		cfg.Providers.KatProfitURL = DefaultKatProfitURL
	}
	if cfg.Providers.LowSupplyURL == "" {
		cfg.Providers.LowSupplyURL = DefaultLowSupplyURL
	}
	if cfg.Providers.Timeout == 0 {
		cfg.Providers.Timeout = 30 * time.Second
	}
	if cfg.Providers.RateLimit.Requests == 0 {
		cfg.Providers.RateLimit.Requests = 2
	}
	if cfg.Providers.RateLimit.Burst == 0 {
		cfg.Providers.RateLimit.Burst = 4
	}
	if cfg.Providers.CircuitBreaker.MaxFailures == 0 {
		cfg.Providers.CircuitBreaker.MaxFailures = 5
	}
	if cfg.Providers.CircuitBreaker.Cooldown == 0 {
		cfg.Providers.CircuitBreaker.Cooldown = 30 * time.Second
	}
	if cfg.Providers.UserAgent == "" {
		cfg.Providers.UserAgent = "hyflipper"
	}

	// Cache defaults
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 512
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
