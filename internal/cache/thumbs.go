package cache

import (
	"context"
	_ "embed"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// defaultIconSuffix marks the Hub's placeholder thumbnail URL. Resources
// carrying it have no real preview, so fetching it is pointless.
const defaultIconSuffix = "qgis-icon-32x32.png"

// thumbnailsDir is the per-cache subdirectory holding UUID-keyed previews.
const thumbnailsDir = "thumbnails"

//go:embed hub_icon.svg
var fallbackIcon []byte

// ThumbnailPath returns a local path for a resource's preview image,
// fetching it into the thumbnail cache on first use. It never returns an
// error: a missing preview must not block browsing, so any failure —
// empty URL, placeholder URL, unreachable host, disk trouble — degrades to
// the built-in fallback icon path.
func (m *Manager) ThumbnailPath(ctx context.Context, rawURL, uuid string) string {
	if rawURL == "" || strings.HasSuffix(rawURL, defaultIconSuffix) {
		return m.FallbackIconPath()
	}

	dest := filepath.Join(m.baseDir, thumbnailsDir, uuid+thumbnailExt(rawURL))
	present, err := m.Ensure(ctx, rawURL, dest, false)
	if err != nil || !present {
		return m.FallbackIconPath()
	}
	return dest
}

// thumbnailExt sniffs a file extension from the URL's trailing path
// segment, defaulting to .jpg when none can be parsed.
func thumbnailExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	if ext := path.Ext(path.Base(u.Path)); ext != "" {
		return ext
	}
	return ".jpg"
}

// FallbackIconPath materializes the embedded placeholder icon under the
// cache root once and returns its path. If even that write fails the path
// is still returned; consumers treat the icon as best-effort.
func (m *Manager) FallbackIconPath() string {
	p := filepath.Join(m.baseDir, "hub_icon.svg")
	m.fallbackOnce.Do(func() {
		if _, err := os.Stat(p); err == nil {
			return
		}
		if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
			return
		}
		_ = os.WriteFile(p, fallbackIcon, 0o644)
	})
	return p
}
