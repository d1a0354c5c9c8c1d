package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/filter"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var creatorOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search resources by name or creator",
		Long: `Search the cached listing with a case-insensitive query.
The query is treated as a regular expression; an invalid pattern falls
back to plain substring matching.

Examples:
  hubctl search contour
  hubctl search "river|stream"
  hubctl search alice --creator`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), false)
			if err != nil {
				return err
			}

			fields := []filter.Field{filter.FieldName, filter.FieldCreator}
			if creatorOnly {
				fields = []filter.Field{filter.FieldCreator}
			}

			state := filter.State{Query: args[0], Fields: fields}
			matched := filter.Apply(snap.Resources, state)
			if len(matched) == 0 {
				fmt.Println("No resources found.")
				return nil
			}

			for _, r := range matched {
				subtypeStr := ""
				if len(r.Subtypes) > 0 {
					subtypeStr = " " + color.CyanString("["+strings.Join(r.Subtypes, ",")+"]")
				}
				fmt.Printf("  %-38s  %s%s  %s\n",
					color.WhiteString(r.UUID),
					r.DisplayName(),
					subtypeStr,
					color.YellowString("by %s", r.Creator),
				)
			}
			fmt.Printf("\n%d result(s)\n", len(matched))
			return nil
		},
	}

	cmd.Flags().BoolVar(&creatorOnly, "creator", false, "Match only the creator field")
	return cmd
}
