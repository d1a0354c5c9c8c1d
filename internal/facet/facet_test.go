package facet_test

import (
	"testing"

	"github.com/qgis-contrib/hubctl/internal/catalog"
	"github.com/qgis-contrib/hubctl/internal/facet"
)

func res(resourceType string, subtypes ...string) catalog.Resource {
	if subtypes == nil {
		subtypes = []string{}
	}
	return catalog.Resource{Type: resourceType, Subtypes: subtypes}
}

func TestBuild_CountsAndOmitsEmpty(t *testing.T) {
	resources := []catalog.Resource{
		res(facet.TypeStyle, "Fill"),
		res(facet.TypeStyle, "Fill"),
		res(facet.TypeStyle, "Marker"),
		res(facet.TypeModel),
	}

	root := facet.Build(facet.NewRegistry(), resources)

	if root.Count != 4 {
		t.Errorf("root count = %d, want 4", root.Count)
	}
	if !root.Selection.All {
		t.Error("root selection is not All")
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d categories, want 2 (empty ones omitted)", len(root.Children))
	}

	styles := root.Find("Styles")
	if styles == nil {
		t.Fatal("Styles category missing")
	}
	if styles.Title() != "Styles (3)" {
		t.Errorf("Styles title = %q", styles.Title())
	}

	models := root.Find("Models")
	if models == nil || models.Count != 1 {
		t.Fatalf("Models category = %+v", models)
	}
	if len(models.Children) != 0 {
		t.Errorf("Models has %d subtype children, want 0", len(models.Children))
	}
}

func TestBuild_SubtypeChildren(t *testing.T) {
	resources := []catalog.Resource{
		res(facet.TypeStyle, "Marker"),
		res(facet.TypeStyle, "Fill"),
		res(facet.TypeStyle, "Fill"),
	}

	root := facet.Build(facet.NewRegistry(), resources)
	styles := root.Find("Styles")
	if styles == nil {
		t.Fatal("Styles category missing")
	}
	if len(styles.Children) != 2 {
		t.Fatalf("got %d subtype children, want 2", len(styles.Children))
	}
	// alphabetical order
	if styles.Children[0].Title() != "Fill (2)" || styles.Children[1].Title() != "Marker (1)" {
		t.Errorf("children = [%s, %s]", styles.Children[0].Title(), styles.Children[1].Title())
	}

	fill := styles.Children[0]
	if fill.Selection.Subtype != "Fill" || len(fill.Selection.Types) != 1 || fill.Selection.Types[0] != facet.TypeStyle {
		t.Errorf("Fill selection = %+v", fill.Selection)
	}
}

func TestBuild_DiscoversUnknownTypes(t *testing.T) {
	resources := []catalog.Resource{
		res(facet.TypeStyle),
		res("newtype"),
	}

	root := facet.Build(facet.NewRegistry(), resources)
	node := root.Find("Newtypes")
	if node == nil {
		t.Fatal("discovered category Newtypes missing")
	}
	if node.Title() != "Newtypes (1)" {
		t.Errorf("title = %q, want %q", node.Title(), "Newtypes (1)")
	}
	if len(node.Selection.Types) != 1 || node.Selection.Types[0] != "newtype" {
		t.Errorf("selection types = %v", node.Selection.Types)
	}
}

func TestDiscover_Idempotent(t *testing.T) {
	reg := facet.NewRegistry()
	reg.Discover([]string{"newtype", "newtype", facet.TypeStyle, ""})
	reg.Discover([]string{"newtype"})

	seen := 0
	for _, label := range reg.Labels() {
		if label == "Newtypes" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Newtypes registered %d times, want 1", seen)
	}
	if got := reg.Types("Newtypes"); len(got) != 1 || got[0] != "newtype" {
		t.Errorf("Types(Newtypes) = %v", got)
	}
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"newtype": "Newtypes",
		"Style":   "Styles",
		"Maps":    "Maps",
		"atlas":   "Atlas", // already ends in s
		"":        "",
	}
	for in, want := range cases {
		if got := facet.Pluralize(in); got != want {
			t.Errorf("Pluralize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistryLabels_StableOrder(t *testing.T) {
	reg := facet.NewRegistry()
	want := []string{"Styles", "Geopackages", "Models", "3D Models", "Layer Definitions", "Maps"}
	got := reg.Labels()
	if len(got) != len(want) {
		t.Fatalf("Labels = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNodeFind_Missing(t *testing.T) {
	root := facet.Build(facet.NewRegistry(), nil)
	if n := root.Find("Styles"); n != nil {
		t.Errorf("Find on empty tree returned %+v", n)
	}
	if n := root.Find("All"); n != root {
		t.Error("Find(All) did not return root")
	}
}
