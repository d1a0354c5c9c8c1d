package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Preference keys for small persisted UI state.
const (
	KeyIconSize     = "icon_size"
	KeyLastViewMode = "last_view_mode"
	KeyLastSort     = "last_sort"
)

// Preference defaults.
const (
	DefaultIconSize = 96
	DefaultViewMode = "list"
	DefaultSort     = "name"
)

// Prefs is a small typed key-value store for persisted preferences (icon
// size, last view mode, last sort column). It is injected into the
// components that need it and stays entirely outside the cache and filter
// logic.
type Prefs struct {
	v    *viper.Viper
	path string
}

// OpenPrefs loads (or initializes) the preference store at path.
func OpenPrefs(path string) (*Prefs, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault(KeyIconSize, DefaultIconSize)
	v.SetDefault(KeyLastViewMode, DefaultViewMode)
	v.SetDefault(KeyLastSort, DefaultSort)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	return &Prefs{v: v, path: path}, nil
}

// DefaultPrefsPath returns the preference file next to the main config.
func DefaultPrefsPath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "prefs.yml")
}

// IconSize returns the thumbnail icon size in pixels (default 96).
func (p *Prefs) IconSize() int {
	size := p.v.GetInt(KeyIconSize)
	if size <= 0 {
		return DefaultIconSize
	}
	return size
}

// SetIconSize persists the icon size.
func (p *Prefs) SetIconSize(size int) error {
	if size <= 0 {
		size = DefaultIconSize
	}
	p.v.Set(KeyIconSize, size)
	return p.write()
}

// LastViewMode returns the last used view mode, "list" or "grid".
func (p *Prefs) LastViewMode() string {
	mode := p.v.GetString(KeyLastViewMode)
	if mode != "list" && mode != "grid" {
		return DefaultViewMode
	}
	return mode
}

// SetLastViewMode persists the view mode.
func (p *Prefs) SetLastViewMode(mode string) error {
	if mode != "list" && mode != "grid" {
		mode = DefaultViewMode
	}
	p.v.Set(KeyLastViewMode, mode)
	return p.write()
}

// LastSort returns the last used sort column name.
func (p *Prefs) LastSort() string {
	if s := p.v.GetString(KeyLastSort); s != "" {
		return s
	}
	return DefaultSort
}

// SetLastSort persists the sort column name.
func (p *Prefs) SetLastSort(column string) error {
	p.v.Set(KeyLastSort, column)
	return p.write()
}

func (p *Prefs) write() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return p.v.WriteConfigAs(p.path)
}
