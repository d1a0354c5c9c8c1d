package app

import (
	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a fresh fetch of the hub listing",
		Long: `Bypass the local listing cache and re-fetch the catalog from the hub.
This is the only way the cache goes stale-to-fresh — hubctl never
refreshes behind your back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), true)
			if err != nil {
				return err
			}
			ok("Listing refreshed: %d resource(s), cache at %s", len(snap.Resources), store.CacheFile())
			return nil
		},
	}
}
