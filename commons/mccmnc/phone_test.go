package mccmnc

import (
	"errors"
	"testing"
)

func TestMatchCarrier(t *testing.T) {
	candidates := []CanonicalRecord{
		{MCC: "234", MNC: "10", Operator: "Telefonica UK", Brand: "O2"},
		{MCC: "234", MNC: "15", Operator: "Vodafone UK", Brand: "Vodafone"},
		{MCC: "234", MNC: "20", Operator: "Hutchison 3G UK", Brand: "Three"},
	}

	cases := []struct {
		name string
		mnc  Code
		ok   bool
	}{
		{"Vodafone", "15", true},
		{"vodafone", "15", true},
		{"Thre", "20", true},
		{"O2", "10", true},
		{"Sky Mobile", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		rec, ok := matchCarrier(candidates, c.name)
		if ok != c.ok {
			t.Errorf("matchCarrier(%q): expected ok=%v, got %v", c.name, c.ok, ok)
			continue
		}
		if ok && rec.MNC != c.mnc {
			t.Errorf("matchCarrier(%q): expected MNC %s, got %s", c.name, c.mnc, rec.MNC)
		}
	}
}

func TestResolvePhone(t *testing.T) {
	resolver := loadFixtureResolver(t, true)

	lookup, err := resolver.ResolvePhone("+1 650-253-0000")
	if err != nil {
		t.Fatalf("ResolvePhone failed: %v", err)
	}
	if lookup.Region != "US" {
		t.Errorf("Expected region US, got %q", lookup.Region)
	}
	if lookup.Number != "+16502530000" {
		t.Errorf("Expected E.164 number, got %q", lookup.Number)
	}
	if lookup.Flag != "\U0001F1FA\U0001F1F8" {
		t.Errorf("Expected US flag, got %q", lookup.Flag)
	}
}

func TestResolvePhoneInvalid(t *testing.T) {
	resolver := loadFixtureResolver(t, false)
	for _, number := range []string{"12345", "not a number", "+1 000"} {
		if _, err := resolver.ResolvePhone(number); !errors.Is(err, ErrInvalidPhoneNumber) {
			t.Errorf("Expected ErrInvalidPhoneNumber for %q, got %v", number, err)
		}
	}
}
