package mccmnc

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeOverrides(t, `
"262-01":
  name: Telekom
  bands: [B3, B20, n78]
"310-410":
  name: AT&T Mobility
`)
	table, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("Expected 2 overrides, got %d", len(table))
	}
	if !reflect.DeepEqual(table["262-01"].Bands, []string{"B3", "B20", "n78"}) {
		t.Errorf("Unexpected bands %v", table["262-01"].Bands)
	}
}

func TestLoadOverridesRejectsMissingName(t *testing.T) {
	path := writeOverrides(t, `
"262-01":
  bands: [B3]
`)
	if _, err := LoadOverrides(path); err == nil {
		t.Error("Expected an error for an override without a name")
	}
	if _, err := LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestOverrideMerge(t *testing.T) {
	base := DefaultOverrides()
	merged := base.Merge(OverrideTable{
		"310-410": {Name: "AT&T Mobility"},
		"262-01":  {Name: "Telekom", Bands: []string{"B20"}},
	})

	if len(merged) != len(base)+1 {
		t.Errorf("Expected %d entries, got %d", len(base)+1, len(merged))
	}
	if merged["310-410"].Name != "AT&T Mobility" || merged["310-410"].Bands != nil {
		t.Errorf("Expected overlay to replace the whole entry, got %+v", merged["310-410"])
	}
	if base["310-410"].Name != "AT&T" {
		t.Error("Expected Merge to leave the base table untouched")
	}

	merged["310-260"].Bands[0] = "mutated"
	if base["310-260"].Bands[0] != "B2" {
		t.Error("Expected merged bands to be copies")
	}

	resolver := NewResolver(nil, merged)
	if info := resolver.Resolve("262", "1"); info.Name != "Telekom" {
		t.Errorf("Expected numeric key to hit the overlay, got %q", info.Name)
	}
}
