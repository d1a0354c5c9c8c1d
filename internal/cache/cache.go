package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/qgis-contrib/hubctl/internal/fetch"
)

// Manager handles the on-disk asset cache: downloaded files and thumbnails.
// Entries live until a forced refresh; nothing here garbage-collects them.
type Manager struct {
	baseDir string
	fetcher *fetch.Fetcher

	fallbackOnce sync.Once
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string, f *fetch.Fetcher) *Manager {
	return &Manager{baseDir: baseDir, fetcher: f}
}

// BaseDir returns the cache root.
func (m *Manager) BaseDir() string { return m.baseDir }

// Ensure makes sure the asset at url is present at dest. If force is false
// and dest already exists it is a cache hit and the network is not touched.
// On a miss the fetcher's error taxonomy propagates unchanged.
func (m *Manager) Ensure(ctx context.Context, url, dest string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return true, nil
		}
	}
	if err := fetch.EnsureDir(filepath.Dir(dest)); err != nil {
		return false, err
	}
	if _, err := m.fetcher.Fetch(ctx, url, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a cached file if it exists.
func (m *Manager) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes the entire cache directory tree.
func (m *Manager) Clear() error {
	return os.RemoveAll(m.baseDir)
}

// Size walks the cache and returns total bytes and file count.
func (m *Manager) Size() (int64, int, error) {
	var bytes int64
	var files int
	err := filepath.Walk(m.baseDir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			bytes += info.Size()
			files++
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	return bytes, files, err
}
