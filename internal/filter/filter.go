// Package filter evaluates the faceted filter and the sort order over an
// immutable catalog snapshot. Filtering and sorting compute views; they
// never mutate the underlying resource set.
package filter

import (
	"regexp"
	"strings"

	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/facet"
)

// Field extracts one searchable string from a resource.
type Field func(catalog.Resource) string

// Searchable fields for the free-text stage.
var (
	FieldName    Field = func(r catalog.Resource) string { return r.Name }
	FieldCreator Field = func(r catalog.Resource) string { return r.Creator }
)

// State is the current facet selection plus the free-text query. Enabled
// maps facet keys — a resource type, or "type:subtype" — to on/off. It is
// rebuilt whole on every tree selection or listing refresh, never patched
// from two sources at once.
type State struct {
	Enabled map[string]bool
	Query   string
	Fields  []Field
}

// subtypeKey builds the "type:subtype" facet key.
func subtypeKey(resourceType, subtype string) string {
	return resourceType + ":" + subtype
}

// Passes reports whether a resource is visible under the state. Both
// stages are pure and short-circuit independently.
func Passes(r catalog.Resource, s State) bool {
	return passesFacet(r, s) && passesText(r, s)
}

// passesFacet applies the type and subtype stage. An empty Enabled map
// means no facet filter at all. Type-enabled is necessary but not
// sufficient: when subtype-specific keys exist for the resource's type, a
// subtype with an explicit disabled entry excludes the resource, while a
// subtype with no entry is implicitly enabled. Resources without any
// subtype always pass once their type is enabled.
func passesFacet(r catalog.Resource, s State) bool {
	if len(s.Enabled) == 0 {
		return true
	}
	if !s.Enabled[r.Type] {
		return false
	}
	if !hasSubtypeKeys(s.Enabled, r.Type) || len(r.Subtypes) == 0 {
		return true
	}
	for _, sub := range r.Subtypes {
		enabled, listed := s.Enabled[subtypeKey(r.Type, sub)]
		if !listed || enabled {
			return true
		}
	}
	return false
}

func hasSubtypeKeys(enabled map[string]bool, resourceType string) bool {
	prefix := resourceType + ":"
	for key := range enabled {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// passesText applies the free-text stage: a case-insensitive match of the
// query against any of the searched fields. An empty query matches
// everything, and with no fields to search the stage is vacuously
// satisfied.
func passesText(r catalog.Resource, s State) bool {
	if s.Query == "" || len(s.Fields) == 0 {
		return true
	}
	m := newMatcher(s.Query)
	for _, field := range s.Fields {
		if m(field(r)) {
			return true
		}
	}
	return false
}

// newMatcher compiles the query as a case-insensitive regexp, falling back
// to plain substring matching when the query is not a valid pattern.
func newMatcher(query string) func(string) bool {
	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}
	lower := strings.ToLower(query)
	return func(v string) bool {
		return strings.Contains(strings.ToLower(v), lower)
	}
}

// Apply returns the resources visible under the state, preserving snapshot
// order.
func Apply(resources []catalog.Resource, s State) []catalog.Resource {
	var out []catalog.Resource
	for _, r := range resources {
		if Passes(r, s) {
			out = append(out, r)
		}
	}
	return out
}

// StateFor expands a facet tree selection into a full checkbox state over
// the given resources. Selecting a single subtype explicitly disables the
// sibling subtypes seen on that type, which is what makes the exclusion
// tie-break in passesFacet bite.
func StateFor(sel facet.Selection, resources []catalog.Resource) State {
	enabled := map[string]bool{}

	switch {
	case sel.All:
		for _, r := range resources {
			enabled[r.Type] = true
		}
	case sel.Subtype != "" && len(sel.Types) == 1:
		t := sel.Types[0]
		enabled[t] = true
		enabled[subtypeKey(t, sel.Subtype)] = true
		for _, r := range resources {
			if r.Type != t {
				continue
			}
			for _, sub := range r.Subtypes {
				if sub != sel.Subtype {
					enabled[subtypeKey(t, sub)] = false
				}
			}
		}
	default:
		for _, t := range sel.Types {
			enabled[t] = true
		}
	}

	return State{Enabled: enabled}
}
