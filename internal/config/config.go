// Package config loads process settings for the CLI and HTTP server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server and logging settings. Kernel behaviour is not
// configurable.
type Config struct {
	Addr           string        `env:"PFC_ADDR" envDefault:"127.0.0.1:8078"`
	LogLevel       string        `env:"PFC_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"PFC_LOG_FORMAT" envDefault:"json"`
	RequestTimeout time.Duration `env:"PFC_REQUEST_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes   int64         `env:"PFC_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads an optional .env file, then the environment. Variables already set
// in the environment win over .env entries.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges env tags cannot express.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid PFC_LOG_FORMAT %q", c.LogFormat)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("PFC_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("PFC_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.Addr == "" {
		return errors.New("PFC_ADDR must not be empty")
	}
	return nil
}
