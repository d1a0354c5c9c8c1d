// Package facet derives the category tree shown next to the resource list
// and the selection states used by the filter engine.
package facet

import (
	"sort"
	"strings"
	"unicode"
)

// Known resource types from the QGIS Hub API. The set is open-ended: types
// the taxonomy has not caught up with yet are registered dynamically.
const (
	TypeStyle           = "Style"
	TypeGeopackage      = "Geopackage"
	TypeModel           = "Model"
	TypeModel3D         = "3DModel"
	TypeLayerDefinition = "LayerDefinition"
	TypeMap             = "Map"
)

// Registry maps human category labels to the resource_type values they
// cover. It is an explicit mutable registry: Discover adds categories for
// unseen types at rebuild time, so the UI never hides resources of a type
// the static taxonomy does not know.
type Registry struct {
	order      []string
	categories map[string][]string
}

// NewRegistry seeds the registry with the known category taxonomy.
func NewRegistry() *Registry {
	r := &Registry{categories: map[string][]string{}}
	r.add("Styles", TypeStyle)
	r.add("Geopackages", TypeGeopackage)
	r.add("Models", TypeModel)
	r.add("3D Models", TypeModel3D)
	r.add("Layer Definitions", TypeLayerDefinition)
	r.add("Maps", TypeMap)
	return r
}

func (r *Registry) add(label string, types ...string) {
	if _, ok := r.categories[label]; !ok {
		r.order = append(r.order, label)
	}
	r.categories[label] = append(r.categories[label], types...)
}

// Labels returns category labels in display order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Types returns the resource_type values covered by a category label.
func (r *Registry) Types(label string) []string {
	return r.categories[label]
}

// covered reports whether any category includes the given type.
func (r *Registry) covered(resourceType string) bool {
	for _, types := range r.categories {
		for _, t := range types {
			if t == resourceType {
				return true
			}
		}
	}
	return false
}

// Discover registers a pluralized category for every resource type not yet
// covered by the taxonomy. It runs on every index rebuild; registering an
// already-known type is a no-op.
func (r *Registry) Discover(resourceTypes []string) {
	unknown := map[string]bool{}
	for _, t := range resourceTypes {
		if t != "" && !r.covered(t) {
			unknown[t] = true
		}
	}
	labels := make([]string, 0, len(unknown))
	for t := range unknown {
		labels = append(labels, t)
	}
	sort.Strings(labels)
	for _, t := range labels {
		r.add(Pluralize(t), t)
	}
}

// Pluralize turns a raw resource type into a category label:
// "newtype" → "Newtypes".
func Pluralize(resourceType string) string {
	if resourceType == "" {
		return ""
	}
	runes := []rune(resourceType)
	runes[0] = unicode.ToUpper(runes[0])
	label := string(runes)
	if !strings.HasSuffix(label, "s") {
		label += "s"
	}
	return label
}
