package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var (
		force         bool
		noInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse hub resources interactively",
		Long: `Open an interactive browser over the cached listing.

Cycle categories with tab, change the sort column with s, reverse it
with r, filter by text with /, and download the selected resource
with g. Falls back to a plain table when stdout is not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), force)
			if err != nil {
				return err
			}

			if !tui.ShouldUseTUI(cmd) {
				printResourceTable(snap.Resources)
				return nil
			}

			_ = prefs.SetLastViewMode("list")

			for {
				result, err := tui.RunBrowser(snap.Resources, downloadedSet(snap))
				if err != nil {
					return err
				}

				switch result.Action {
				case tui.ActionDownload:
					if err := downloadResource(cmd, result.Selected); err != nil {
						warn("Download failed for %q: %v", result.Selected.Name, err)
					}
				case tui.ActionShowDetails:
					printDetails(result.Selected)
					return nil
				default:
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVar(&force, "refresh", false, "Force a fresh listing fetch first")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Print a table instead of the TUI")
	return cmd
}

// downloadedSet marks UUIDs whose asset already sits in the download dir.
func downloadedSet(snap *catalog.Snapshot) map[string]bool {
	out := map[string]bool{}
	for _, r := range snap.Resources {
		if r.File == "" {
			continue
		}
		dest := filepath.Join(cfg.Defaults.DownloadDir, assetFilename(r.File, r.UUID))
		if _, err := os.Stat(dest); err == nil {
			out[r.UUID] = true
		}
	}
	return out
}

func downloadResource(cmd *cobra.Command, r *catalog.Resource) error {
	if r.File == "" {
		return fmt.Errorf("no downloadable file")
	}
	dest := filepath.Join(cfg.Defaults.DownloadDir, assetFilename(r.File, r.UUID))
	if _, err := cacheMgr.Ensure(cmd.Context(), r.File, dest, false); err != nil {
		return err
	}
	ok("Saved: %s", dest)
	return nil
}

func printDetails(r *catalog.Resource) {
	header(r.Name)
	fmt.Printf("  %s %s\n", color.CyanString("uuid:"), r.UUID)
	fmt.Printf("  %s %s\n", color.CyanString("type:"), r.Type)
	if len(r.Subtypes) > 0 {
		fmt.Printf("  %s %s\n", color.CyanString("subtypes:"), strings.Join(r.Subtypes, ", "))
	}
	fmt.Printf("  %s %s\n", color.CyanString("creator:"), r.Creator)
	fmt.Printf("  %s %s\n", color.CyanString("uploaded:"), r.UploadDate.Format("2006-01-02"))
	fmt.Printf("  %s %d\n", color.CyanString("downloads:"), r.DownloadCount)
	if len(r.Dependencies) > 0 {
		fmt.Printf("  %s %s\n", color.CyanString("dependencies:"), strings.Join(r.Dependencies, ", "))
	}
	fmt.Printf("  %s %s\n", color.CyanString("file:"), r.File)
	if r.Thumbnail != "" {
		fmt.Printf("  %s %s\n", color.CyanString("thumbnail:"), r.Thumbnail)
	}
}
