// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"math"
	"strconv"
	"strings"
)

// Key carries both lookup forms of an MCC/MNC pair. Exact uses the literal
// MNC, Numeric collapses leading zeros so "004" and "4" meet.
type Key struct {
	Exact   string
	Numeric string
}

func NewKey(mcc, mnc string) Key {
	return Key{
		Exact:   mcc + "-" + mnc,
		Numeric: mcc + "-" + numericValue(mnc),
	}
}

// numericValue renders s the way a JavaScript Number() coercion would for
// the inputs seen in carrier datasets: blank is 0, decimal digits lose their
// leading zeros, anything unparsable becomes "NaN".
func numericValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	if isDigits(s) {
		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		if n, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
			return strconv.FormatUint(n, 10)
		}
		return "NaN"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return "NaN"
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
