package app

import (
	"github.com/qgis-contrib/hubctl/internal/cache"
	"github.com/spf13/cobra"
)

func newThumbnailsCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "thumbnails",
		Short: "Prefetch preview thumbnails into the local cache",
		Long: `Warm the thumbnail cache for every resource in the listing.

Fetches run concurrently; resources without a usable preview silently
get the built-in fallback icon, so this never fails outright.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), false)
			if err != nil {
				return err
			}

			fetched := cacheMgr.PrefetchThumbnails(cmd.Context(), snap.Resources, workers)
			ok("Thumbnails cached for %d of %d resource(s)", fetched, len(snap.Resources))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", cache.DefaultPrefetchWorkers, "Concurrent fetch workers")
	return cmd
}
