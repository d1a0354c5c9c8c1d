package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/filter"
	"github.com/spf13/cobra"
)

type listResult struct {
	UUID          string   `json:"uuid"`
	Name          string   `json:"name"`
	Creator       string   `json:"creator"`
	Type          string   `json:"resource_type"`
	Subtypes      []string `json:"resource_subtypes,omitempty"`
	UploadDate    string   `json:"upload_date"`
	DownloadCount int      `json:"download_count"`
	File          string   `json:"file"`
}

func newListCmd() *cobra.Command {
	var (
		typeName string
		subtype  string
		search   string
		sortBy   string
		desc     bool
		jsonOut  bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hub resources with optional filters",
		Long: `List catalog resources from the local listing cache.

The first run fetches the listing from the hub; later runs reuse the
cache until you pass --refresh (or run 'hubctl refresh').

Examples:
  hubctl list
  hubctl list --type Style --subtype colorramp
  hubctl list --search contour --sort downloads --desc
  hubctl list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), force)
			if err != nil {
				return err
			}

			col, err := filter.ParseColumn(sortBy)
			if err != nil {
				return err
			}
			_ = prefs.SetLastSort(string(col))

			state := buildState(snap, typeName, subtype, search)
			visible := filter.Apply(snap.Resources, state)
			visible = filter.Sort(visible, col, desc)

			if jsonOut {
				results := make([]listResult, 0, len(visible))
				for _, r := range visible {
					results = append(results, listResult{
						UUID:          r.UUID,
						Name:          r.Name,
						Creator:       r.Creator,
						Type:          r.Type,
						Subtypes:      r.Subtypes,
						UploadDate:    r.UploadDate.Format(time.RFC3339),
						DownloadCount: r.DownloadCount,
						File:          r.File,
					})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			if len(visible) == 0 {
				fmt.Println("No resources match.")
				return nil
			}

			printResourceTable(visible)
			fmt.Printf("\n%d of %d resource(s)\n", len(visible), len(snap.Resources))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Filter by resource type (Style, Model, ...)")
	cmd.Flags().StringVar(&subtype, "subtype", "", "Filter by subtype (requires --type)")
	cmd.Flags().StringVar(&search, "search", "", "Free-text filter over name and creator")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "Sort column: name, creator, type, downloads, uploaded")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&force, "refresh", false, "Force a fresh listing fetch first")

	return cmd
}

// buildState assembles a filter state from command-line facets. An empty
// type means no facet narrowing at all.
func buildState(snap *catalog.Snapshot, typeName, subtype, search string) filter.State {
	enabled := map[string]bool{}
	if typeName != "" {
		enabled[typeName] = true
		if subtype != "" {
			enabled[typeName+":"+subtype] = true
			for _, r := range snap.Resources {
				if r.Type != typeName {
					continue
				}
				for _, sub := range r.Subtypes {
					if sub != subtype {
						enabled[typeName+":"+sub] = false
					}
				}
			}
		}
	}
	return filter.State{
		Enabled: enabled,
		Query:   search,
		Fields:  []filter.Field{filter.FieldName, filter.FieldCreator},
	}
}

func printResourceTable(resources []catalog.Resource) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, color.CyanString("TYPE\tNAME\tCREATOR\tSUBTYPES\tDOWNLOADS\tUPLOADED"))
	for _, r := range resources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Type,
			r.DisplayName(),
			r.Creator,
			strings.Join(r.Subtypes, ","),
			r.DownloadCount,
			r.UploadDate.Format("2006-01-02"),
		)
	}
	_ = w.Flush()
}
