package cache

import (
	"context"
	"sync"

	"github.com/qgis-contrib/hubctl/internal/catalog"
)

// DefaultPrefetchWorkers bounds concurrent thumbnail fetches.
const DefaultPrefetchWorkers = 4

// PrefetchThumbnails warms the thumbnail cache for the given resources
// using a bounded worker pool. Each fetch targets a distinct UUID-keyed
// destination, so workers share no mutable state beyond idempotent
// directory creation. Failures degrade to the fallback icon per
// ThumbnailPath, so this never returns an error; it reports how many
// resources ended up with a real (non-fallback) thumbnail.
func (m *Manager) PrefetchThumbnails(ctx context.Context, resources []catalog.Resource, workers int) int {
	if workers <= 0 {
		workers = DefaultPrefetchWorkers
	}

	jobs := make(chan catalog.Resource)
	var wg sync.WaitGroup
	var mu sync.Mutex
	fetched := 0

	fallback := m.FallbackIconPath()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if p := m.ThumbnailPath(ctx, r.Thumbnail, r.UUID); p != fallback {
					mu.Lock()
					fetched++
					mu.Unlock()
				}
			}
		}()
	}

	for _, r := range resources {
		jobs <- r
	}
	close(jobs)
	wg.Wait()

	return fetched
}
