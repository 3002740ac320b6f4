// Package config loads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrLoadingEnvFile is returned when an explicitly named .env file can't be read
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when parsed values are out of range
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	TokenSecret   string        `env:"TOKEN_SECRET,notEmpty"`
	ListenAddr    string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"tokengate.sqlite"`
	TemplatesDir  string        `env:"TEMPLATES_DIR"`
	BasePath      string        `env:"BASE_PATH"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"1h"`
	ExpiredOffset time.Duration `env:"EXPIRED_OFFSET" envDefault:"30s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the named .env files into the process environment and parses
// it. With no paths the default .env is tried and may be absent.
func Load(
	paths ...string,
) (
	*Config,
	error,
) {
	if len(paths) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadingEnvFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap parses the config from vars instead of the process environment.
func FromMap(
	vars map[string]string,
) (
	*Config,
	error,
) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenLifetime <= 0 {
		return fmt.Errorf("%w: TOKEN_LIFETIME must be positive, got %s", ErrInvalidConfig, c.TokenLifetime)
	}
	if c.ExpiredOffset <= 0 {
		return fmt.Errorf("%w: EXPIRED_OFFSET must be positive, got %s", ErrInvalidConfig, c.ExpiredOffset)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
