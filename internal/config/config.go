// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultSessionSecret is the insecure development fallback for the
// session signing secret. Production deployments must override it via
// SESSION_SECRET; Validate refuses to start with it in production mode.
const DefaultSessionSecret = "secretkey"

// ErrInsecureSessionSecret is returned by Validate when the production
// configuration still carries the development fallback secret.
var ErrInsecureSessionSecret = errors.New("SESSION_SECRET must be set to a non-default value in production")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3000"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Session signing secret and token lifetime.
	// The default is a development-only placeholder.
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"secretkey"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 64KB, form posts only)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Profile cache TTL
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"30s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks invariants that env parsing cannot express.
// The session secret fallback is tolerated only outside production.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret) {
		return ErrInsecureSessionSecret
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
