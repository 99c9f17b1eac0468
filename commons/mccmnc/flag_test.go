package mccmnc

import "testing"

func TestIsoToFlag(t *testing.T) {
	us := IsoToFlag("US")
	expected := string([]rune{0x1F1FA, 0x1F1F8})
	if us != expected {
		t.Errorf("Expected %q, got %q", expected, us)
	}
	if len([]rune(us)) != 2 {
		t.Errorf("Expected two code points, got %d", len([]rune(us)))
	}
	if got := IsoToFlag("us"); got != expected {
		t.Errorf("Expected lowercase input to convert, got %q", got)
	}

	for _, bad := range []string{"", "U", "USA", "1A", "U-", "ÜS"} {
		if got := IsoToFlag(bad); got != "" {
			t.Errorf("Expected empty flag for %q, got %q", bad, got)
		}
	}
}

func TestCountryFlag(t *testing.T) {
	r := loadFixtureResolver(t, false)

	if got := r.CountryFlag("US"); got != "\U0001F1FA\U0001F1F8" {
		t.Errorf("Expected US flag, got %q", got)
	}
	if got := r.CountryFlag("XX"); got != GlobeGlyph {
		t.Errorf("Expected globe for XX, got %q", got)
	}
	if got := r.CountryFlag(""); got != "" {
		t.Errorf("Expected empty flag for empty input, got %q", got)
	}
	if got := r.CountryFlag("234"); got != "\U0001F1EC\U0001F1E7" {
		t.Errorf("Expected GB flag for MCC 234, got %q", got)
	}
	if got := r.CountryFlag("901"); got != GlobeGlyph {
		t.Errorf("Expected globe for international MCC 901, got %q", got)
	}
	if got := r.CountryFlag("999"); got != "" {
		t.Errorf("Expected empty flag for unknown MCC, got %q", got)
	}
	if got := r.CountryFlag("Germany"); got != "" {
		t.Errorf("Expected empty flag for a non-ISO string, got %q", got)
	}
}

func TestCountryCode(t *testing.T) {
	r := loadFixtureResolver(t, false)

	iso, ok := r.CountryCode("262")
	if !ok || iso != "DE" {
		t.Errorf("Expected DE, got %q (found=%v)", iso, ok)
	}
	if _, ok := r.CountryCode("999"); ok {
		t.Error("Expected unknown MCC to be missing")
	}
	// 998 only has a record without an ISO code.
	if _, ok := r.CountryCode("998"); ok {
		t.Error("Expected MCC without ISO to be missing")
	}
}
