package config

import "time"

// QueryConfig holds query runner configuration
type QueryConfig struct {
	// Cancel the previous query when a new one is submitted
	CancelSuperseded bool `mapstructure:"cancel_superseded"`

	// Default result limit for ranked output (0 = all)
	DefaultLimit int `mapstructure:"default_limit" validate:"min=0"`

	// Upper bound on one query run (0 = no timeout)
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}
