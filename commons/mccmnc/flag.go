// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import "strings"

const (
	regionalIndicatorA = 0x1F1E6

	// InternationalISO marks networks that do not belong to a single country.
	InternationalISO = "XX"
	// GlobeGlyph stands in for a flag on international networks.
	GlobeGlyph = "\U0001F310"
)

// IsoToFlag converts an ISO 3166-1 alpha-2 code into its regional indicator
// pair. Anything other than two ASCII letters yields "".
func IsoToFlag(iso2 string) string {
	if len(iso2) != 2 {
		return ""
	}
	iso2 = strings.ToUpper(iso2)
	flag := make([]rune, 0, 2)
	for i := 0; i < 2; i++ {
		ch := iso2[i]
		if ch < 'A' || ch > 'Z' {
			return ""
		}
		flag = append(flag, rune(regionalIndicatorA+int(ch-'A')))
	}
	return string(flag)
}

func (r *Resolver) CountryCode(mcc string) (string, bool) {
	return r.index.CountryCode(strings.TrimSpace(mcc))
}

// CountryFlag accepts either an MCC (all digits) or an ISO alpha-2 code.
func (r *Resolver) CountryFlag(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	iso := input
	if isDigits(input) {
		code, ok := r.CountryCode(input)
		if !ok {
			return ""
		}
		iso = code
	}

	if strings.EqualFold(iso, InternationalISO) {
		return GlobeGlyph
	}
	return IsoToFlag(iso)
}
