package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qgis-contrib/hubctl/internal/catalog"
)

// ResourceItem wraps one catalog resource for the list widget.
type ResourceItem struct {
	Resource   catalog.Resource
	Downloaded bool
}

// FilterValue feeds the list's built-in "/" filter: name, creator, type,
// and subtypes all match.
func (r ResourceItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s %s",
		r.Resource.Name,
		r.Resource.Creator,
		r.Resource.Type,
		strings.Join(r.Resource.Subtypes, " "))
}

// resourceDelegate renders one resource per row.
type resourceDelegate struct{}

func (d resourceDelegate) Height() int                               { return 1 }
func (d resourceDelegate) Spacing() int                              { return 0 }
func (d resourceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d resourceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(ResourceItem)
	if !ok {
		return
	}
	r := ri.Resource

	typeStr := fmt.Sprintf("%-16s", r.Type)
	name := r.DisplayName()

	subtypeStr := ""
	if len(r.Subtypes) > 0 {
		subtypeStr = " " + StyleSubtype.Render("["+strings.Join(r.Subtypes, ",")+"]")
	}
	downloadedMark := ""
	if ri.Downloaded {
		downloadedMark = " " + StyleFacet.Render("✓")
	}
	creator := " " + StyleCreator.Render("by "+r.Creator)

	var s strings.Builder
	if index == m.Index() {
		s.WriteString(StyleHighlight.Render("› " + typeStr + " " + name + subtypeStr + creator + downloadedMark))
	} else {
		s.WriteString("  " + StyleNormal.Render(typeStr) + " " + name + subtypeStr + creator + downloadedMark)
	}
	_, _ = fmt.Fprint(w, s.String())
}
