package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("expected fixture provider by default, got %s", cfg.Provider)
	}
	if cfg.Timezone != "Asia/Seoul" {
		t.Fatalf("unexpected default timezone %s", cfg.Timezone)
	}
	if !cfg.Prefetch {
		t.Fatalf("expected prefetch on by default")
	}
	if cfg.Fortuna.Timeout != defaultFortunaTimeout {
		t.Fatalf("unexpected fortuna timeout %v", cfg.Fortuna.Timeout)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != defaultMetricsPort {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.Auth.Namespace != defaultAuthNamespace {
		t.Fatalf("unexpected auth namespace %s", cfg.Auth.Namespace)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(envPort, "8088")
	t.Setenv(envProvider, "fortuna")
	t.Setenv(envFortunaBaseURL, "https://staging.fortuna.app/api")
	t.Setenv(envFortunaTimeout, "3s")
	t.Setenv(envPrefetch, "no")
	t.Setenv(envAuthToken, "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8088" {
		t.Fatalf("port override not applied: %s", cfg.Port)
	}
	if cfg.Provider != "fortuna" {
		t.Fatalf("provider override not applied: %s", cfg.Provider)
	}
	if cfg.Fortuna.BaseURL != "https://staging.fortuna.app/api" {
		t.Fatalf("base url override not applied: %s", cfg.Fortuna.BaseURL)
	}
	if cfg.Fortuna.Timeout != 3*time.Second {
		t.Fatalf("timeout override not applied: %v", cfg.Fortuna.Timeout)
	}
	if cfg.Prefetch {
		t.Fatalf("prefetch override not applied")
	}
	if cfg.Auth.Token != "secret" {
		t.Fatalf("auth token override not applied")
	}
}

func TestLoadYAMLFileThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("port: \"9001\"\nprovider: fortuna\nfortuna:\n  base_url: https://file.fortuna.app/api\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(envConfigFile, path)
	t.Setenv(envPort, "9002")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "fortuna" {
		t.Fatalf("file value not applied: %s", cfg.Provider)
	}
	if cfg.Fortuna.BaseURL != "https://file.fortuna.app/api" {
		t.Fatalf("file base url not applied: %s", cfg.Fortuna.BaseURL)
	}
	if cfg.Port != "9002" {
		t.Fatalf("env should override file, got %s", cfg.Port)
	}
}

func TestLoadBadYAMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\t this is not yaml"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(envConfigFile, path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
