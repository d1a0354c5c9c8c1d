package tui

import (
	"github.com/qgis-contrib/hubctl/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI reports whether a command should go interactive: stdout is
// a TTY, --no-interactive is unset, and no output-format flag hints at
// scripting.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}
	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return false
	}
	return true
}
