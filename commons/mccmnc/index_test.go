package mccmnc

import "testing"

func TestBuildIndex(t *testing.T) {
	canonical := []CanonicalRecord{
		{MCC: "310", MNC: "004", Operator: "first"},
		{MCC: "310", MNC: "04", Operator: "second"},
		{MCC: "310", MNC: "004", Operator: "third"},
		{MCC: "310", MNC: "260", ISO: ""},
		{MCC: "310", MNC: "270", ISO: "us"},
		{MCC: "310", MNC: "280", ISO: "pr"},
	}
	structured := []StructuredRecord{
		{MCC: "310", MNC: "4", Brand: "old"},
		{MCC: "310", MNC: "004", Brand: "new"},
	}
	idx := Build(canonical, structured)

	// Exact keys are last-write-wins.
	rec, ok := idx.lookupCanonical(NewKey("310", "004"))
	if !ok || rec.Operator != "third" {
		t.Errorf("Expected exact lookup to return third, got %q", rec.Operator)
	}
	// Numeric keys keep the first record inserted.
	rec, ok = idx.lookupCanonical(NewKey("310", "4"))
	if !ok || rec.Operator != "first" {
		t.Errorf("Expected numeric lookup to return first, got %q", rec.Operator)
	}
	rec, ok = idx.lookupCanonical(NewKey("310", "04"))
	if !ok || rec.Operator != "second" {
		t.Errorf("Expected exact 04 to return second, got %q", rec.Operator)
	}

	sr, ok := idx.lookupStructured(NewKey("310", "0004"))
	if !ok || sr.Brand != "new" {
		t.Errorf("Expected structured last-write-wins, got %q", sr.Brand)
	}

	iso, ok := idx.CountryCode("310")
	if !ok || iso != "US" {
		t.Errorf("Expected first non-empty ISO US, got %q", iso)
	}

	stats := idx.Stats()
	if stats.Canonical != 6 || stats.Exact != 5 || stats.Numeric != 4 || stats.Countries != 1 || stats.Structured != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestBuildEmptyIndex(t *testing.T) {
	idx := Build(nil, nil)
	if _, ok := idx.lookupCanonical(NewKey("1", "1")); ok {
		t.Error("Expected empty index to miss")
	}
	if _, ok := idx.CountryCode("1"); ok {
		t.Error("Expected empty country index to miss")
	}
}
