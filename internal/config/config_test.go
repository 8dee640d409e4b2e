package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CatalogBaseURL != DefaultCatalogBaseURL {
		t.Errorf("Expected catalog base %q, got %q", DefaultCatalogBaseURL, cfg.CatalogBaseURL)
	}
	if cfg.PlaceholderImageURL != DefaultPlaceholderImageURL {
		t.Errorf("Expected placeholder %q, got %q", DefaultPlaceholderImageURL, cfg.PlaceholderImageURL)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", cfg.UserAgent)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Address != "localhost" {
		t.Errorf("Unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Session.Provider != "memory" || cfg.Session.Size != 1000 || cfg.Session.TTL != "24h" {
		t.Errorf("Unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.RateLimit.RequestsPerSecond != 2 || cfg.RateLimit.Burst != 20 {
		t.Errorf("Unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showfinder.yaml")
	content := []byte(`
catalog_base_url: http://catalog.test
placeholder_image_url: http://img.test/none.png
server:
  port: 7000
session:
  provider: redis
  redis:
    address: localhost:6379
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("APP_SERVER_ADDRESS", "0.0.0.0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CatalogBaseURL != "http://catalog.test" {
		t.Errorf("Expected catalog base from file, got %q", cfg.CatalogBaseURL)
	}
	if cfg.PlaceholderImageURL != "http://img.test/none.png" {
		t.Errorf("Expected placeholder from file, got %q", cfg.PlaceholderImageURL)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Address != "0.0.0.0" {
		t.Errorf("Expected address from env, got %q", cfg.Server.Address)
	}
	if cfg.Session.Provider != "redis" || cfg.Session.Redis.Address != "localhost:6379" {
		t.Errorf("Unexpected session config: %+v", cfg.Session)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level from LOG_LEVEL, got %q", cfg.LogLevel)
	}
}

func TestGetUserAgent_Default(t *testing.T) {
	orig := globalConfig
	t.Cleanup(func() { globalConfig = orig })

	globalConfig = nil
	if got := GetUserAgent(); got != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", got)
	}

	globalConfig = &Config{UserAgent: "custom/1.0"}
	if got := GetUserAgent(); got != "custom/1.0" {
		t.Errorf("Expected custom user agent, got %q", got)
	}
}
