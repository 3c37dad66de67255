// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers .env, an optional YAML file and XGFLOW_* env vars over New().
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Timeline store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, also writes logs to a rotating file.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string `koanf:"cors_origins"`

	// MaxBodyBytes caps the size of a submitted match document.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RequestTimeoutMS bounds a single HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// AssembleWorkers bounds concurrent match assembly in batch mode.
	AssembleWorkers int `koanf:"assemble_workers"`

	// Store selects the timeline store backend: "memory" or "redis".
	Store string `koanf:"store"`

	// RedisURL locates the redis server used by the redis store.
	RedisURL string `koanf:"redis_url"`

	// StoreTTLSeconds expires documents in the redis store; 0 keeps them
	// until evicted by capacity.
	StoreTTLSeconds int `koanf:"store_ttl_seconds"`

	// StoreCapacity bounds how many assembled documents are kept for lookup.
	StoreCapacity int `koanf:"store_capacity"`

	// TeamColors overrides or extends the built-in team palette.
	TeamColors map[string]string `koanf:"team_colors"`

	// FallbackColor is used for teams missing from the palette.
	FallbackColor string `koanf:"fallback_color"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		CORSOrigins:      []string{"*"},
		MaxBodyBytes:     4 << 20,
		RequestTimeoutMS: 10_000,
		AssembleWorkers:  runtime.NumCPU(),
		Store:            StoreMemory,
		RedisURL:         "redis://localhost:6379/0",
		StoreTTLSeconds:  7 * 24 * 60 * 60,
		StoreCapacity:    1024,
		TeamColors:       map[string]string{},
		FallbackColor:    "#808080",
	}
}
