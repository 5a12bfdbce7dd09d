// Package config loads process configuration and initializes logging for the
// obzr binaries.
package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration. Values come from environment
// variables with the prefix "OBZR". Example: OBZR_SERVICE_URL=http://api:3001 .
type Config struct {
	ServiceURL string `envconfig:"SERVICE_URL" default:"http://localhost:3001"`
	TokenPath  string `envconfig:"TOKEN_PATH"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load populates Config from environment variables (prefix OBZR).
// TokenPath defaults to ~/.obzr/token when unset.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("OBZR", &c); err != nil {
		return nil, err
	}
	if c.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		c.TokenPath = filepath.Join(home, ".obzr", "token")
	}
	return &c, nil
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.Level())

	log.Debug().
		Str("service_url", c.ServiceURL).
		Str("token_path", c.TokenPath).
		Str("log_level", c.LogLevel).
		Msg("configuration loaded")
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	switch c.LogLevel {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
