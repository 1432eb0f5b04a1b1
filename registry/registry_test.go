package registry

import (
	"os"
	"path/filepath"
	"testing"

	"newbuild-aggregator/models"
)

func unit(ref string) *models.Unit {
	return &models.Unit{ID: ref, Reference: ref}
}

func TestResolveExactMatchOnly(t *testing.T) {
	r := &Registry{Units: map[string]Entry{
		"SP001": {Developer: "GUEMAR", Development: "GOMERA STAR"},
	}}

	// SP001X shares a prefix with SP001 but must not match
	resolved := r.Resolve([]*models.Unit{unit("SP001X")})
	if len(resolved) != 1 {
		t.Fatalf("expected 1 development, got %d", len(resolved))
	}
	if len(resolved[0].Units) != 0 {
		t.Errorf("prefix-similar reference matched: %d units attributed", len(resolved[0].Units))
	}

	resolved = r.Resolve([]*models.Unit{unit("SP001")})
	if len(resolved[0].Units) != 1 {
		t.Errorf("exact reference did not match: %d units attributed", len(resolved[0].Units))
	}
}

func TestResolveZeroMatchDevelopmentStillProduced(t *testing.T) {
	r := &Registry{Units: map[string]Entry{
		"N9525": {Developer: "GUEMAR", Development: "GOMERA STAR", DeliveryDate: "01-06-2026"},
		"N9524": {Developer: "GUEMAR", Development: "GOMERA STAR", DeliveryDate: "01-06-2026"},
	}}

	resolved := r.Resolve(nil)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 development with no feed units, got %d", len(resolved))
	}
	g := resolved[0]
	if g.Name != "GOMERA STAR" {
		t.Errorf("Name = %q; want GOMERA STAR", g.Name)
	}
	if len(g.Refs) != 2 {
		t.Errorf("Refs = %d; want 2", len(g.Refs))
	}
	if len(g.Units) != 0 {
		t.Errorf("Units = %d; want 0", len(g.Units))
	}
}

func TestResolveGroupsCaseNormalizedNames(t *testing.T) {
	r := &Registry{Units: map[string]Entry{
		"A1": {Developer: "DEV", Development: "Gomera Star"},
		"A2": {Developer: "DEV", Development: "GOMERA STAR"},
		"B1": {Developer: "DEV", Development: "Mirasal 2"},
	}}

	resolved := r.Resolve(nil)
	if len(resolved) != 2 {
		t.Fatalf("expected 2 developments after case-normalized grouping, got %d", len(resolved))
	}
}

func TestResolveMatchesByID(t *testing.T) {
	r := &Registry{Units: map[string]Entry{
		"88201": {Developer: "AVKR HOMES", Development: "SAMAR VILLAS"},
	}}

	u := &models.Unit{ID: "88201", Reference: "SP2201"}
	resolved := r.Resolve([]*models.Unit{u})
	if len(resolved[0].Units) != 1 {
		t.Errorf("unit with matching id not attributed")
	}
}

func TestLoadEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(path, []byte("units:\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if r.Units == nil || len(r.Units) != 0 {
		t.Errorf("empty registry should load as empty map, got %v", r.Units)
	}
	if got := r.Resolve([]*models.Unit{unit("N1")}); len(got) != 0 {
		t.Errorf("empty registry resolved %d developments; want 0", len(got))
	}
}

func TestLoadRegistryEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	raw := `units:
  N9525:
    developer: GUEMAR
    development: GOMERA STAR
    delivery_date: 01-06-2026
    zone: Aguas Nuevas
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	e, ok := r.Units["N9525"]
	if !ok {
		t.Fatal("N9525 missing from loaded registry")
	}
	if e.Developer != "GUEMAR" || e.Development != "GOMERA STAR" ||
		e.DeliveryDate != "01-06-2026" || e.Zone != "Aguas Nuevas" {
		t.Errorf("entry = %+v; fields not mapped", e)
	}
}
