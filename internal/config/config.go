package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public QGIS Hub resources listing endpoint.
const DefaultBaseURL = "https://plugins.qgis.org/api/v1/resources/"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hubctl", "config.yml")
}

// Load reads the config from disk and the environment. A missing config
// file is fine — every setting has a default.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("hub.base_url", DefaultBaseURL)
	v.SetDefault("hub.page_limit", 1000)
	v.SetDefault("hub.timeout_seconds", 30)
	v.SetDefault("defaults.cache_dir", defaultCacheDir())
	v.SetDefault("defaults.download_dir", defaultDownloadDir())

	v.SetEnvPrefix("HUBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("HUBCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Defaults.CacheDir = ExpandHome(cfg.Defaults.CacheDir)
	cfg.Defaults.DownloadDir = ExpandHome(cfg.Defaults.DownloadDir)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// defaultCacheDir mirrors the plugin's per-user settings layout: the raw
// listing cache and thumbnails live under a qgis_hub subdirectory.
func defaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "hubctl", "qgis_hub")
}

func defaultDownloadDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads")
}
