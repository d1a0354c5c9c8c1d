package app

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/config"
	"github.com/qgis-contrib/hubctl/internal/util"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var (
		force bool
		toDir string
	)

	cmd := &cobra.Command{
		Use:   "get <uuid|name>",
		Short: "Download a resource's asset file",
		Long: `Download the asset file of a resource to the download directory.

Already-downloaded files are reused unless --force is given. The
resulting path is printed so other tools can pick the file up — hubctl
does not import anything into a host application itself.

Examples:
  hubctl get 7d9e3f0a-0bc6-4a5e-9d5c-6f1a2b3c4d5e
  hubctl get "Contour Style" --to ~/styles --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), false)
			if err != nil {
				return err
			}
			r, err := findResource(snap, args[0])
			if err != nil {
				return err
			}
			if r.File == "" {
				return fmt.Errorf("resource %q has no downloadable file", r.Name)
			}

			destDir := cfg.Defaults.DownloadDir
			if toDir != "" {
				destDir = config.ExpandHome(toDir)
			}
			dest := filepath.Join(destDir, assetFilename(r.File, r.UUID))

			if !force {
				if _, err := os.Stat(dest); err == nil {
					ok("Already downloaded: %s", dest)
					return nil
				}
			}

			fmt.Printf("Downloading %s %s\n",
				color.WhiteString(r.DisplayName()),
				color.CyanString("(%s)", r.Type))

			if _, err := cacheMgr.Ensure(cmd.Context(), r.File, dest, force); err != nil {
				return fmt.Errorf("downloading %q: %w", r.Name, err)
			}

			if fi, err := os.Stat(dest); err == nil {
				ok("Saved: %s (%s)", dest, util.HumanBytes(fi.Size()))
			} else {
				ok("Saved: %s", dest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-download even if the file exists")
	cmd.Flags().StringVar(&toDir, "to", "", "Download into this directory instead of the default")
	return cmd
}

// assetFilename derives a local filename from the asset URL's trailing
// path segment, falling back to the uuid when the URL has none.
func assetFilename(rawURL, uuid string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return uuid
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return uuid
	}
	return base
}
