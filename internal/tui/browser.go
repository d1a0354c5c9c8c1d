package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/facet"
	"github.com/qgis-contrib/hubctl/internal/filter"
)

// BrowserAction is what the user asked for when leaving the browser.
type BrowserAction string

const (
	ActionNone        BrowserAction = ""
	ActionShowDetails BrowserAction = "details"
	ActionDownload    BrowserAction = "download"
)

// BrowserResult holds the outcome of a browser session.
type BrowserResult struct {
	Action   BrowserAction
	Selected *catalog.Resource
}

type browserKeys struct {
	quit     key.Binding
	enter    key.Binding
	get      key.Binding
	facet    key.Binding
	sortCol  key.Binding
	sortDir  key.Binding
	textFind key.Binding
}

var keys = browserKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	get: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "download"),
	),
	facet: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	sortCol: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort column"),
	),
	sortDir: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reverse sort"),
	),
	textFind: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
}

// model drives the resource browser: a flat list over the current
// snapshot, narrowed by the selected facet node and re-sorted on demand.
// The snapshot itself is never mutated, only re-sliced into views.
type model struct {
	resources  []catalog.Resource
	downloaded map[string]bool

	tree      *facet.Node
	facetIdx  int // index into facetNodes; 0 is the "All" root
	facetList []*facet.Node

	sortIdx  int
	sortDesc bool

	list     list.Model
	quitting bool
	action   BrowserAction
	selected *catalog.Resource
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The list's own text filter gets the keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.enter):
			if item, ok := m.list.SelectedItem().(ResourceItem); ok {
				m.action = ActionShowDetails
				m.selected = &item.Resource
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.get):
			if item, ok := m.list.SelectedItem().(ResourceItem); ok {
				m.action = ActionDownload
				m.selected = &item.Resource
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.facet):
			m.facetIdx = (m.facetIdx + 1) % len(m.facetList)
			return m.refreshItems()

		case key.Matches(msg, keys.sortCol):
			m.sortIdx = (m.sortIdx + 1) % len(filter.Columns)
			return m.refreshItems()

		case key.Matches(msg, keys.sortDir):
			m.sortDesc = !m.sortDesc
			return m.refreshItems()
		}

	case tea.WindowSizeMsg:
		h, v := StyleBorder.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refreshItems recomputes the visible view from the immutable snapshot.
func (m model) refreshItems() (tea.Model, tea.Cmd) {
	node := m.facetList[m.facetIdx]
	state := filter.StateFor(node.Selection, m.resources)
	visible := filter.Apply(m.resources, state)
	visible = filter.Sort(visible, filter.Columns[m.sortIdx], m.sortDesc)

	items := make([]list.Item, len(visible))
	for i, r := range visible {
		items[i] = ResourceItem{Resource: r, Downloaded: m.downloaded[r.UUID]}
	}
	cmd := m.list.SetItems(items)
	m.list.ResetSelected()
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	node := m.facetList[m.facetIdx]
	dir := "asc"
	if m.sortDesc {
		dir = "desc"
	}
	status := StyleFacet.Render(node.Title()) +
		StyleHelp.Render(fmt.Sprintf("  sort: %s/%s", filter.Columns[m.sortIdx], dir))
	return StyleBorder.Render(status + "\n" + m.list.View())
}

// RunBrowser launches the interactive resource browser over a snapshot.
// downloaded marks UUIDs that already have a local asset file.
func RunBrowser(resources []catalog.Resource, downloaded map[string]bool) (*BrowserResult, error) {
	if len(resources) == 0 {
		return nil, fmt.Errorf("no resources to display")
	}

	tree := facet.Build(facet.NewRegistry(), resources)
	facetList := flatten(tree)

	items := make([]list.Item, len(resources))
	for i, r := range resources {
		items[i] = ResourceItem{Resource: r, Downloaded: downloaded[r.UUID]}
	}

	l := list.New(items, resourceDelegate{}, 0, 0)
	l.Title = "QGIS Hub"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.get, keys.facet, keys.sortCol}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.get, keys.facet, keys.sortCol, keys.sortDir, keys.enter}
	}

	m := model{
		resources:  resources,
		downloaded: downloaded,
		tree:       tree,
		facetList:  facetList,
		list:       l,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		return &BrowserResult{Action: fm.action, Selected: fm.selected}, nil
	}
	return &BrowserResult{Action: ActionNone}, nil
}

// flatten lists the tree's selectable nodes in cycling order: All, each
// category, each subtype.
func flatten(root *facet.Node) []*facet.Node {
	out := []*facet.Node{root}
	for _, cat := range root.Children {
		out = append(out, cat)
		out = append(out, cat.Children...)
	}
	return out
}
