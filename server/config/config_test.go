package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SOCIAL_ADDR", "SOCIAL_JWT_SECRET", "SOCIAL_TOKEN_TTL", "SOCIAL_TLS_CERT", "SOCIAL_TLS_KEY", "SOCIAL_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.JWTSecret == "" || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TLS() {
		t.Fatalf("TLS should be off by default")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SOCIAL_JWT_SECRET is not set")
	}
	t.Setenv("SOCIAL_JWT_SECRET", "x")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
	if strings.Contains(cfg.String(), "x}") {
		t.Fatalf("secret leaked in String(): %s", cfg)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOCIAL_TOKEN_TTL", "tomorrow")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error for invalid SOCIAL_TOKEN_TTL")
	}
}

func TestLoad_TLSNeedsBoth(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOCIAL_TLS_CERT", "cert.pem")
	if _, err := LoadWithDefaults(); err == nil {
		t.Fatalf("expected error with cert but no key")
	}
	t.Setenv("SOCIAL_TLS_KEY", "key.pem")
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if !cfg.TLS() {
		t.Fatalf("TLS should be on")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SOCIAL_ADDR=:4000\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SOCIAL_ADDR") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Addr != ":4000" {
		t.Fatalf("Addr = %q, want :4000", cfg.Addr)
	}
}
