package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent for defaults.
	t.Setenv("OBZR_SERVICE_URL", "")
	os.Unsetenv("OBZR_SERVICE_URL")
	t.Setenv("OBZR_LOG_LEVEL", "")
	os.Unsetenv("OBZR_LOG_LEVEL")
	t.Setenv("OBZR_TOKEN_PATH", "/tmp/obzr-test-token")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ServiceURL != "http://localhost:3001" {
		t.Fatalf("service url %q", c.ServiceURL)
	}
	if c.TokenPath != "/tmp/obzr-test-token" {
		t.Fatalf("token path %q", c.TokenPath)
	}
	if c.Level() != zerolog.InfoLevel {
		t.Fatalf("level %v", c.Level())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OBZR_SERVICE_URL", "http://api.internal:9000")
	t.Setenv("OBZR_LOG_LEVEL", "debug")
	t.Setenv("OBZR_TOKEN_PATH", "/tmp/tok")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ServiceURL != "http://api.internal:9000" {
		t.Fatalf("service url %q", c.ServiceURL)
	}
	if c.Level() != zerolog.DebugLevel {
		t.Fatalf("level %v", c.Level())
	}
}
