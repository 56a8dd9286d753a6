package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Fatalf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.AuthRequired {
		t.Fatal("auth should be opt-in")
	}
	if cfg.RateLimitBackend != "memory" {
		t.Fatalf("RateLimitBackend = %q", cfg.RateLimitBackend)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ACCESS_TTL", "30m")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg := Load()
	if cfg.HTTPPort != "9000" {
		t.Fatalf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Fatalf("AccessTTL = %s", cfg.AccessTTL)
	}
	if !cfg.AuthRequired {
		t.Fatal("AUTH_REQUIRED=true should enable auth")
	}
	if cfg.RateLimitPerMin != 5 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TTL", "soon")
	t.Setenv("AUTH_REQUIRED", "maybe")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	if cfg.AccessTTL != 12*time.Hour {
		t.Fatalf("AccessTTL = %s, want fallback", cfg.AccessTTL)
	}
	if cfg.AuthRequired {
		t.Fatal("invalid bool should fall back to false")
	}
	if cfg.RateLimitPerMin != 120 {
		t.Fatalf("RateLimitPerMin = %d, want fallback", cfg.RateLimitPerMin)
	}
}
