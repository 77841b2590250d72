package config

import "time"

// CacheConfig holds result cache configuration
type CacheConfig struct {
	// Enabled wraps the provider client with the result cache
	Enabled bool `mapstructure:"enabled"`

	// Maximum number of cached feed results (LRU bound)
	MaxEntries int `mapstructure:"max_entries" validate:"min=1"`

	// Entry lifetime; 0 keeps entries for the whole session
	TTL time.Duration `mapstructure:"ttl" validate:"min=0"`
}
