package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage in the CLI output.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	ColorWhite  = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

// Reusable styles.
var (
	// StyleNormal is the base style for regular text.
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for the selected row.
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleSubtype is for subtype tags.
	StyleSubtype = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleCreator is for creator names.
	StyleCreator = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHelp is for help text and hints.
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleFacet is for the active facet shown above the list.
	StyleFacet = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

	// StyleBorder is for the outer frame.
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)
