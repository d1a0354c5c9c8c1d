package app

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/cache"
	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/config"
	"github.com/qgis-contrib/hubctl/internal/fetch"
	"github.com/qgis-contrib/hubctl/internal/util"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	prefs    *config.Prefs
	store    *catalog.Store
	cacheMgr *cache.Manager

	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "hubctl",
	Short: "Browse and download shared resources from the QGIS Hub",
	Long: `hubctl is a catalog browser for the QGIS Hub.

It caches the remote resource listing locally, lets you filter by
category, subtype, and free text, and downloads styles, models,
geopackages, and other shared assets.

Run 'hubctl browse' for the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/hubctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if flagConfig != "" {
			os.Setenv("HUBCTL_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		prefs, err = config.OpenPrefs(config.DefaultPrefsPath())
		if err != nil {
			return fmt.Errorf("loading preferences: %w", err)
		}

		fetcher := fetch.New(time.Duration(cfg.Hub.TimeoutSeconds) * time.Second)
		store = catalog.NewStore(cfg.Hub.BaseURL, cfg.Hub.PageLimit, cfg.Defaults.CacheDir, fetcher)
		cacheMgr = cache.New(cfg.Defaults.CacheDir, fetcher)
		return nil
	}

	rootCmd.AddCommand(
		newListCmd(),
		newSearchCmd(),
		newGetCmd(),
		newRefreshCmd(),
		newTypesCmd(),
		newThumbnailsCmd(),
		newCacheCmd(),
		newBrowseCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
