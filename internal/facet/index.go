package facet

import (
	"fmt"
	"sort"

	"github.com/qgis-contrib/hubctl/internal/catalog"
)

// Selection describes what clicking a tree node means to the filter:
// everything, a set of resource types, or one type:subtype pair.
type Selection struct {
	All     bool
	Types   []string
	Subtype string // set together with exactly one entry in Types
}

// Node is one entry in the category tree.
type Node struct {
	Label     string
	Count     int
	Selection Selection
	Children  []*Node
}

// Title is the rendered node label, "{label} ({count})".
func (n *Node) Title() string {
	return fmt.Sprintf("%s (%d)", n.Label, n.Count)
}

// Find returns the first node in the tree with the given label, or nil.
func (n *Node) Find(label string) *Node {
	if n.Label == label {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(label); found != nil {
			return found
		}
	}
	return nil
}

// Build derives the facet tree from the current snapshot's resources. It
// is a pure function over its inputs apart from registering newly
// discovered types on the registry. Categories with no matching resources
// are omitted; categories whose resources carry subtypes get subtype
// children with per-subtype counts.
func Build(reg *Registry, resources []catalog.Resource) *Node {
	types := make([]string, 0, len(resources))
	for _, r := range resources {
		types = append(types, r.Type)
	}
	reg.Discover(types)

	root := &Node{
		Label:     "All",
		Count:     len(resources),
		Selection: Selection{All: true},
	}

	for _, label := range reg.Labels() {
		catTypes := reg.Types(label)
		inCategory := filterByTypes(resources, catTypes)
		if len(inCategory) == 0 {
			continue
		}

		cat := &Node{
			Label:     label,
			Count:     len(inCategory),
			Selection: Selection{Types: catTypes},
		}

		for _, sub := range subtypeCounts(inCategory) {
			cat.Children = append(cat.Children, &Node{
				Label: sub.name,
				Count: sub.count,
				Selection: Selection{
					Types:   []string{sub.resourceType},
					Subtype: sub.name,
				},
			})
		}

		root.Children = append(root.Children, cat)
	}

	return root
}

func filterByTypes(resources []catalog.Resource, types []string) []catalog.Resource {
	var out []catalog.Resource
	for _, r := range resources {
		for _, t := range types {
			if r.Type == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

type subtypeCount struct {
	name         string
	resourceType string
	count        int
}

// subtypeCounts tallies how many resources carry each exact subtype,
// ordered alphabetically for stable tree rendering.
func subtypeCounts(resources []catalog.Resource) []subtypeCount {
	counts := map[string]*subtypeCount{}
	for _, r := range resources {
		for _, sub := range r.Subtypes {
			if sub == "" {
				continue
			}
			if c, ok := counts[sub]; ok {
				c.count++
			} else {
				counts[sub] = &subtypeCount{name: sub, resourceType: r.Type, count: 1}
			}
		}
	}

	out := make([]subtypeCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
