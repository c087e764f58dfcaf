// Package config holds the server configuration, read from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	Environment  string `env:"APP_ENV" envDefault:"development"`
	DatabasePath string `env:"DB_PATH" envDefault:"./data/denker.db"`
	PuzzleFile   string `env:"PUZZLE_FILE"`
	DailySalt    string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"denker_session"`

	ClientOrigin      string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	AdminSecretHash   string `env:"ADMIN_SECRET_HASH"`
	AdminSecretHeader string `env:"ADMIN_SECRET_HEADER" envDefault:"x-amz-secret"`

	MaxContentSizeBytes int64         `env:"MAX_CONTENT_SIZE_BYTES" envDefault:"3072"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("config: PORT is empty")
	case c.MaxContentSizeBytes <= 0:
		return errors.New("config: MAX_CONTENT_SIZE_BYTES must be positive")
	case c.RequestTimeout <= 0:
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	case c.SessionTTL <= 0:
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}

// Production reports whether cookies should be Secure / SameSite=None.
func (c *Config) Production() bool { return c.Environment == "production" }
