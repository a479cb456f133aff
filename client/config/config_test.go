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
	for _, k := range []string{"SOCIAL_API_URL", "SOCIAL_TIMEOUT", "SOCIAL_DATA_DIR", "SOCIAL_STORE_PASSPHRASE", "SOCIAL_LOG_FILE", "SOCIAL_LOG_LEVEL", "SOCIAL_CA_CERT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOCIAL_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL || cfg.Timeout != 15*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if filepath.Dir(cfg.LogPath()) != cfg.DataDir {
		t.Fatalf("log file %q not under data dir %q", cfg.LogPath(), cfg.DataDir)
	}
	cfg.DataDir = "/elsewhere"
	if cfg.LogPath() != filepath.Join("/elsewhere", "social.log") {
		t.Fatalf("log path does not follow data dir: %q", cfg.LogPath())
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOCIAL_API_URL", "https://api.example.com")
	t.Setenv("SOCIAL_TIMEOUT", "3s")
	t.Setenv("SOCIAL_DATA_DIR", "/tmp/social-test")
	t.Setenv("SOCIAL_STORE_PASSPHRASE", "hunter2")
	t.Setenv("SOCIAL_CA_CERT", "/tmp/dev-ca.pem")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" || cfg.Timeout != 3*time.Second || cfg.Passphrase != "hunter2" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.CACert != "/tmp/dev-ca.pem" {
		t.Fatalf("CACert = %q", cfg.CACert)
	}
	if strings.Contains(cfg.String(), "hunter2") {
		t.Fatalf("passphrase leaked: %s", cfg)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOCIAL_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid SOCIAL_TIMEOUT")
	}
}
