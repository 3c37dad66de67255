package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment keys recognised by Load.
const (
	envPrefix  = "XGFLOW_"
	envConfig  = "XGFLOW_CONFIG"
	envDotFile = "XGFLOW_ENV_FILE"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if XGFLOW_CONFIG is set
//  3. env (prefix XGFLOW_), after loading XGFLOW_ENV_FILE or ./.env if present
func Load(_ context.Context) (*Config, error) {
	return LoadFile(os.Getenv(envConfig))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	loadDotEnv()

	base := New()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// XGFLOW_MAX_BODY_BYTES -> max_body_bytes; underscores are kept to match
	// the koanf tags. Comma separated values become lists.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "cors_origins" {
			return key, strings.Split(value, ",")
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the process cannot start without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.RequestTimeoutMS <= 0:
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	case c.AssembleWorkers <= 0:
		return fmt.Errorf("%w: assemble_workers must be positive", ErrInvalidConfig)
	case c.StoreCapacity <= 0:
		return fmt.Errorf("%w: store_capacity must be positive", ErrInvalidConfig)
	case c.Store != StoreMemory && c.Store != StoreRedis:
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidConfig, StoreMemory, StoreRedis, c.Store)
	case c.Store == StoreRedis && strings.TrimSpace(c.RedisURL) == "":
		return fmt.Errorf("%w: redis_url is required for the redis store", ErrInvalidConfig)
	case c.StoreTTLSeconds < 0:
		return fmt.Errorf("%w: store_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// loadDotEnv populates the process environment from a dotenv file without
// overriding variables that are already set.
func loadDotEnv() {
	if path := os.Getenv(envDotFile); path != "" {
		_ = godotenv.Load(path)
		return
	}
	_ = godotenv.Load()
}
