package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qgis-contrib/hubctl/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HUBCTL_CONFIG", filepath.Join(t.TempDir(), "config.yml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
	if cfg.Hub.BaseURL != config.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.Hub.BaseURL)
	}
	if cfg.Hub.PageLimit != 1000 {
		t.Errorf("PageLimit = %d, want 1000", cfg.Hub.PageLimit)
	}
	if cfg.Hub.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Hub.TimeoutSeconds)
	}
	if cfg.Defaults.CacheDir == "" || cfg.Defaults.DownloadDir == "" {
		t.Error("directory defaults are empty")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := `hub:
  base_url: https://hub.example/api/v1/resources/
  page_limit: 500
defaults:
  download_dir: /tmp/downloads
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUBCTL_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hub.BaseURL != "https://hub.example/api/v1/resources/" {
		t.Errorf("BaseURL = %q", cfg.Hub.BaseURL)
	}
	if cfg.Hub.PageLimit != 500 {
		t.Errorf("PageLimit = %d, want 500", cfg.Hub.PageLimit)
	}
	// unset keys keep defaults
	if cfg.Hub.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.Hub.TimeoutSeconds)
	}
	if cfg.Defaults.DownloadDir != "/tmp/downloads" {
		t.Errorf("DownloadDir = %q", cfg.Defaults.DownloadDir)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HUBCTL_CONFIG", filepath.Join(t.TempDir(), "config.yml"))
	t.Setenv("HUBCTL_HUB_PAGE_LIMIT", "250")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hub.PageLimit != 250 {
		t.Errorf("PageLimit = %d, want env override 250", cfg.Hub.PageLimit)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("hub: [not: closed"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HUBCTL_CONFIG", path)

	if _, err := config.Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}

	if got := config.ExpandHome("~/cache"); got != filepath.Join(home, "cache") {
		t.Errorf("ExpandHome(~/cache) = %q", got)
	}
	if got := config.ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
	if got := config.ExpandHome("relative"); got != "relative" {
		t.Errorf("ExpandHome(relative) = %q", got)
	}
}
