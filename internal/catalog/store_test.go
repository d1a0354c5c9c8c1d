package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/fetch"
)

const listingBody = `{
	"total": 2,
	"next": "",
	"previous": "",
	"results": [
		{
			"uuid": "uuid-style-1",
			"name": "Hillshade Style",
			"creator": "Alice",
			"resource_type": "Style",
			"resource_subtypes": ["Fill"],
			"upload_date": "2023-05-01T10:30:00Z",
			"download_count": 42,
			"file": "https://hub.example/files/hillshade.xml"
		},
		{
			"uuid": "uuid-model-1",
			"name": "Buffer Model",
			"creator": "Bob",
			"resource_type": "Model",
			"upload_date": "2022-11-15",
			"download_count": 7,
			"file": "https://hub.example/files/buffer.model3"
		}
	]
}`

// newListingServer serves a fixed listing and counts requests.
func newListingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if q.Get("limit") == "" || q.Get("format") != "json" {
			t.Errorf("listing request missing query params: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestListing_ColdCacheFetchesOnce(t *testing.T) {
	srv, hits := newListingServer(t, listingBody)
	dir := t.TempDir()
	store := catalog.NewStore(srv.URL, 0, dir, fetch.New(0))

	snap, err := store.Listing(context.Background(), false)
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("fetch count = %d, want 1", hits.Load())
	}
	if snap.Total != 2 || len(snap.Resources) != 2 {
		t.Errorf("Total=%d len=%d, want 2/2", snap.Total, len(snap.Resources))
	}
	if _, err := os.Stat(store.CacheFile()); err != nil {
		t.Errorf("cache file not written: %v", err)
	}
	if got := store.Current(); got != snap {
		t.Error("Current() does not return the published snapshot")
	}
}

func TestListing_WarmCacheSkipsNetwork(t *testing.T) {
	srv, hits := newListingServer(t, listingBody)
	dir := t.TempDir()
	store := catalog.NewStore(srv.URL, 0, dir, fetch.New(0))

	if _, err := store.Listing(context.Background(), false); err != nil {
		t.Fatalf("priming Listing: %v", err)
	}
	snap, err := store.Listing(context.Background(), false)
	if err != nil {
		t.Fatalf("second Listing: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("fetch count = %d, want 1 (second call must hit the cache)", hits.Load())
	}
	if len(snap.Resources) != 2 {
		t.Errorf("got %d resources from cache, want 2", len(snap.Resources))
	}
}

func TestListing_ForceRefetches(t *testing.T) {
	srv, hits := newListingServer(t, listingBody)
	dir := t.TempDir()
	store := catalog.NewStore(srv.URL, 0, dir, fetch.New(0))

	if _, err := store.Listing(context.Background(), false); err != nil {
		t.Fatalf("priming Listing: %v", err)
	}
	if _, err := store.Listing(context.Background(), true); err != nil {
		t.Fatalf("forced Listing: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("fetch count = %d, want 2", hits.Load())
	}
}

func TestListing_CorruptCacheFailsWithoutFetch(t *testing.T) {
	srv, hits := newListingServer(t, listingBody)
	dir := t.TempDir()
	store := catalog.NewStore(srv.URL, 0, dir, fetch.New(0))

	if err := os.WriteFile(store.CacheFile(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := store.Listing(context.Background(), false)
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("fetch count = %d, want 0 (corrupt cache must not trigger a fetch)", hits.Load())
	}
}

func TestListing_NetworkDownNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	store := catalog.NewStore(url, 0, t.TempDir(), fetch.New(0))
	_, err := store.Listing(context.Background(), false)
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestListing_FailedRefreshKeepsSnapshot(t *testing.T) {
	srv, _ := newListingServer(t, listingBody)
	dir := t.TempDir()
	store := catalog.NewStore(srv.URL, 0, dir, fetch.New(0))

	snap, err := store.Listing(context.Background(), false)
	if err != nil {
		t.Fatalf("priming Listing: %v", err)
	}

	srv.Close()
	if _, err := store.Listing(context.Background(), true); err == nil {
		t.Fatal("forced refresh against a dead server should fail")
	}
	if got := store.Current(); got != snap {
		t.Error("failed refresh replaced the current snapshot")
	}
}

func TestListing_SkippedRecordsCounted(t *testing.T) {
	body := `{"total": 2, "results": [
		{"uuid": "ok-1", "name": "Good", "resource_type": "Style", "upload_date": "2023-01-01"},
		{"uuid": "", "name": "No UUID", "resource_type": "Style", "upload_date": "2023-01-01"}
	]}`
	srv, _ := newListingServer(t, body)
	store := catalog.NewStore(srv.URL, 0, t.TempDir(), fetch.New(0))

	snap, err := store.Listing(context.Background(), false)
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}
	if len(snap.Resources) != 1 || snap.Skipped != 1 {
		t.Errorf("resources=%d skipped=%d, want 1/1", len(snap.Resources), snap.Skipped)
	}
}

func TestSnapshot_ByUUID(t *testing.T) {
	srv, _ := newListingServer(t, listingBody)
	store := catalog.NewStore(srv.URL, 0, t.TempDir(), fetch.New(0))

	snap, err := store.Listing(context.Background(), false)
	if err != nil {
		t.Fatalf("Listing: %v", err)
	}
	if r := snap.ByUUID("uuid-model-1"); r == nil || r.Name != "Buffer Model" {
		t.Errorf("ByUUID returned %+v", r)
	}
	if r := snap.ByUUID("nope"); r != nil {
		t.Errorf("ByUUID for unknown id returned %+v", r)
	}
}
