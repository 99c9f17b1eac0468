// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SplitBands turns a canonical "B2 / B4, n77" style string into its trimmed,
// non-empty, de-duplicated parts.
func SplitBands(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == ','
	})
	return appendUnique(nil, parts)
}

// flattenStructured concatenates every category of a structured band map.
// Categories listed in order come first, in that order; the rest follow in
// sorted order.
func flattenStructured(m map[string][]string, order []string) []string {
	if len(m) == 0 {
		return nil
	}
	categories := make([]string, 0, len(m))
	for _, category := range order {
		if _, ok := m[category]; ok && !contains(categories, category) {
			categories = append(categories, category)
		}
	}
	var rest []string
	for category := range m {
		if !contains(categories, category) {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	categories = append(categories, rest...)

	var out []string
	for _, category := range categories {
		out = appendUnique(out, m[category])
	}
	return out
}

func appendUnique(dst []string, values []string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

var (
	bandSeparator = regexp.MustCompile(`(?i)/|,|\+|\s+and\s+`)
	bandDigits    = regexp.MustCompile(`\d+`)
	lteBandCode   = regexp.MustCompile(`^B\d+$`)
)

var lteFrequencyToBand = map[int]string{
	700:  "12",
	800:  "20",
	850:  "5",
	900:  "8",
	1500: "32",
	1700: "4",
	1800: "3",
	1900: "2",
	2100: "1",
	2600: "7",
}

var gsmFrequencyToBand = map[int]string{
	850:  "5",
	900:  "8",
	1800: "3",
	1900: "2",
}

// Technology generations used as structured band categories.
const (
	Gen2G = "2G"
	Gen3G = "3G"
	Gen4G = "4G"
	Gen5G = "5G"
)

// StructureBands classifies a free-text band description such as
// "GSM 900 / UMTS 2100 / LTE 1800 / NR 78" into per-generation band codes.
// Categories without any band are omitted.
func StructureBands(raw string) map[string][]string {
	out := map[string][]string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}

	add := func(gen, band string) {
		if !contains(out[gen], band) {
			out[gen] = append(out[gen], band)
		}
	}

	for _, part := range bandSeparator.Split(raw, -1) {
		p := strings.ToUpper(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		digits := bandDigits.FindString(p)

		switch {
		case strings.Contains(p, "NR") || strings.HasPrefix(p, "N"):
			if digits != "" {
				add(Gen5G, "n"+digits)
			}
		case strings.Contains(p, "LTE"):
			if digits == "" {
				continue
			}
			mhz, _ := strconv.Atoi(digits)
			if band, ok := lteFrequencyToBand[mhz]; ok {
				add(Gen4G, "B"+band)
			} else {
				add(Gen4G, "B"+digits)
			}
		case lteBandCode.MatchString(p):
			add(Gen4G, p)
		case strings.Contains(p, "GSM"):
			if digits == "" {
				continue
			}
			mhz, _ := strconv.Atoi(digits)
			if band, ok := gsmFrequencyToBand[mhz]; ok {
				add(Gen2G, band)
			} else {
				add(Gen2G, digits)
			}
		case strings.Contains(p, "UMTS") || strings.Contains(p, "WCDMA") || strings.Contains(p, "HSPA"):
			if digits != "" {
				add(Gen3G, digits)
			}
		}
	}
	return out
}
