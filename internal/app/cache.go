package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/qgis-contrib/hubctl/internal/util"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
		Long:  "Inspect or clear the listing cache, thumbnails, and any downloaded assets kept under the cache directory.",
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheClearCmd(),
	)
	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			header("Cache: %s", cacheMgr.BaseDir())

			bytes, files, err := cacheMgr.Size()
			if err != nil {
				return err
			}
			fmt.Printf("  %d file(s), %s\n", files, util.HumanBytes(bytes))

			if _, err := os.Stat(store.CacheFile()); err == nil {
				fmt.Printf("  listing cache: %s\n", store.CacheFile())
			} else {
				fmt.Println("  listing cache: not fetched yet")
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the entire local cache",
		Long: `Remove the listing cache and all thumbnails. Resources will be
re-fetched on the next command that needs them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && util.IsTTY() {
				fmt.Printf("Remove everything under %s? (y/N): ", cacheMgr.BaseDir())
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := cacheMgr.Clear(); err != nil {
				return err
			}
			ok("Cache cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
