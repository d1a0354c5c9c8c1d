package config

// Config is the top-level hubctl configuration.
type Config struct {
	Hub      HubConfig      `mapstructure:"hub" yaml:"hub"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// HubConfig holds QGIS Hub API connection settings.
type HubConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// PageLimit must stay large enough to cover the whole catalog in one
	// page; the listing API's pagination is not otherwise handled.
	PageLimit      int `mapstructure:"page_limit" yaml:"page_limit"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultsConfig holds local directory defaults.
type DefaultsConfig struct {
	CacheDir    string `mapstructure:"cache_dir" yaml:"cache_dir"`
	DownloadDir string `mapstructure:"download_dir" yaml:"download_dir"`
}
