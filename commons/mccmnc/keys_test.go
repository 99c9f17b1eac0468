package mccmnc

import "testing"

func TestNewKey(t *testing.T) {
	cases := []struct {
		mcc, mnc       string
		exact, numeric string
	}{
		{"310", "410", "310-410", "310-410"},
		{"310", "004", "310-004", "310-4"},
		{"310", "4", "310-4", "310-4"},
		{"234", "00", "234-00", "234-0"},
		{"234", "", "234-", "234-0"},
		{"234", " 07 ", "234- 07 ", "234-7"},
		{"234", "7.0", "234-7.0", "234-7"},
		{"234", "0x1A", "234-0x1A", "234-26"},
		{"234", "abc", "234-abc", "234-NaN"},
	}
	for _, tc := range cases {
		key := NewKey(tc.mcc, tc.mnc)
		if key.Exact != tc.exact {
			t.Errorf("NewKey(%q, %q).Exact = %q, expected %q", tc.mcc, tc.mnc, key.Exact, tc.exact)
		}
		if key.Numeric != tc.numeric {
			t.Errorf("NewKey(%q, %q).Numeric = %q, expected %q", tc.mcc, tc.mnc, key.Numeric, tc.numeric)
		}
	}
}

func TestCodeUnmarshal(t *testing.T) {
	var rec CanonicalRecord
	if err := rec.MCC.UnmarshalJSON([]byte(`310`)); err != nil {
		t.Fatalf("Failed to decode numeric code: %v", err)
	}
	if err := rec.MNC.UnmarshalJSON([]byte(`"004"`)); err != nil {
		t.Fatalf("Failed to decode string code: %v", err)
	}
	if rec.MCC != "310" || rec.MNC != "004" {
		t.Errorf("Expected 310/004, got %s/%s", rec.MCC, rec.MNC)
	}
	if err := rec.MCC.UnmarshalJSON([]byte(`true`)); err == nil {
		t.Error("Expected an error for a boolean code")
	}
}
