package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/qgis-contrib/hubctl/internal/facet"
	"github.com/spf13/cobra"
)

func newTypesCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Show the resource category tree with counts",
		Long: `Render the category facet tree derived from the current listing:
known categories with per-subtype counts, plus any resource types the
taxonomy has not caught up with yet (those get their own pluralized
category automatically).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), force)
			if err != nil {
				return err
			}

			tree := facet.Build(facet.NewRegistry(), snap.Resources)
			header(tree.Title())
			for _, cat := range tree.Children {
				fmt.Printf("  %s\n", color.WhiteString(cat.Title()))
				for _, sub := range cat.Children {
					fmt.Printf("    %s\n", sub.Title())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "refresh", false, "Force a fresh listing fetch first")
	return cmd
}
