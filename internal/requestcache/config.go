package requestcache

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the cache tunables. Values are taken from environment
// variables with the prefix "OBZR_CACHE". Example: OBZR_CACHE_TTL=2s .
type Config struct {
	TTL time.Duration `envconfig:"TTL" default:"1s"`
}

// LoadConfig populates Config from environment variables (prefix OBZR_CACHE).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("OBZR_CACHE", &c)
}

// NewFromConfig builds a cache from cfg.
func NewFromConfig(cfg Config) *Cache {
	return New(WithTTL(cfg.TTL))
}
