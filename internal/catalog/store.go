package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/qgis-contrib/hubctl/internal/fetch"
)

// ErrCatalogUnavailable is the one stable, user-facing catalog failure.
// The underlying transport or parse error is wrapped for logs but the
// message shown to users never varies with the root cause.
var ErrCatalogUnavailable = errors.New(
	"the QGIS Hub service is currently unavailable — try again with a forced refresh")

// DefaultPageLimit is the listing page size. It must stay large enough to
// return the whole known catalog in one page; the API's pagination is not
// otherwise implemented.
const DefaultPageLimit = 1000

// cacheFileName holds the last successful raw listing response.
const cacheFileName = "response.json"

// Store owns the catalog snapshot. Only the Store replaces it, and it does
// so atomically: readers see either the old snapshot in full or the new one
// in full, never a partial mix.
type Store struct {
	baseURL   string
	pageLimit int
	cacheDir  string
	fetcher   *fetch.Fetcher

	current atomic.Pointer[Snapshot]
}

// NewStore creates a Store that caches the raw listing under cacheDir.
func NewStore(baseURL string, pageLimit int, cacheDir string, f *fetch.Fetcher) *Store {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	return &Store{
		baseURL:   baseURL,
		pageLimit: pageLimit,
		cacheDir:  cacheDir,
		fetcher:   f,
	}
}

// CacheFile returns the path of the local listing cache file.
func (s *Store) CacheFile() string {
	return filepath.Join(s.cacheDir, cacheFileName)
}

// Current returns the snapshot from the last successful Listing call, or
// nil if none has completed yet. During a refresh it keeps serving the
// prior snapshot until the new one is fully fetched and normalized.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Listing returns the current catalog snapshot.
//
// With force=false and a cache file on disk, the listing is served from the
// file without touching the network; a corrupt cache file surfaces
// ErrCatalogUnavailable and does not trigger a fetch (the caller fixes it
// by forcing an update). Otherwise the remote listing is fetched into the
// cache file first. There is no TTL: staleness is entirely caller-driven.
func (s *Store) Listing(ctx context.Context, force bool) (*Snapshot, error) {
	cacheFile := s.CacheFile()

	if !force {
		if _, err := os.Stat(cacheFile); err == nil {
			return s.loadFromFile(cacheFile)
		}
	}

	if err := fetch.EnsureDir(s.cacheDir); err != nil {
		return nil, fmt.Errorf("%w (cache dir: %v)", ErrCatalogUnavailable, err)
	}
	if _, err := s.fetcher.Fetch(ctx, s.listingURL(), cacheFile); err != nil {
		return nil, fmt.Errorf("%w (fetching listing: %v)", ErrCatalogUnavailable, err)
	}
	return s.loadFromFile(cacheFile)
}

// loadFromFile parses the cached raw listing and atomically publishes the
// resulting snapshot.
func (s *Store) loadFromFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w (reading cache: %v)", ErrCatalogUnavailable, err)
	}

	var listing listingResponse
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("%w (parsing cache: %v)", ErrCatalogUnavailable, err)
	}

	resources, skipped := NormalizeAll(listing.Results)
	snap := &Snapshot{
		Total:     listing.Total,
		Next:      listing.Next,
		Previous:  listing.Previous,
		Resources: resources,
		Skipped:   skipped,
	}
	s.current.Store(snap)
	return snap, nil
}

func (s *Store) listingURL() string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(s.pageLimit))
	q.Set("format", "json")
	return s.baseURL + "?" + q.Encode()
}
