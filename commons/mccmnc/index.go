// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import "strings"

// Index is the immutable lookup state built from the datasets. It is safe for
// concurrent readers; nothing mutates it after Build returns.
type Index struct {
	exact      map[string]CanonicalRecord
	numeric    map[string]CanonicalRecord
	country    map[string]string
	structured map[string]StructuredRecord
	byISO      map[string][]CanonicalRecord
	canonical  int
}

type IndexStats struct {
	Canonical  int `json:"canonical"`
	Exact      int `json:"exact"`
	Numeric    int `json:"numeric"`
	Countries  int `json:"countries"`
	Structured int `json:"structured"`
}

func Build(canonical []CanonicalRecord, structured []StructuredRecord) *Index {
	idx := &Index{
		exact:      make(map[string]CanonicalRecord, len(canonical)),
		numeric:    make(map[string]CanonicalRecord, len(canonical)),
		country:    make(map[string]string),
		structured: make(map[string]StructuredRecord, len(structured)),
		byISO:      make(map[string][]CanonicalRecord),
		canonical:  len(canonical),
	}

	for _, rec := range canonical {
		key := NewKey(string(rec.MCC), string(rec.MNC))
		idx.exact[key.Exact] = rec
		if _, seen := idx.numeric[key.Numeric]; !seen {
			idx.numeric[key.Numeric] = rec
		}

		iso := normalizeISO(rec.ISO)
		if iso == "" {
			continue
		}
		if _, seen := idx.country[string(rec.MCC)]; !seen {
			idx.country[string(rec.MCC)] = iso
		}
		idx.byISO[iso] = append(idx.byISO[iso], rec)
	}

	for _, rec := range structured {
		key := NewKey(string(rec.MCC), string(rec.MNC))
		idx.structured[key.Numeric] = rec
	}

	return idx
}

func (idx *Index) lookupCanonical(key Key) (CanonicalRecord, bool) {
	if rec, ok := idx.exact[key.Exact]; ok {
		return rec, true
	}
	rec, ok := idx.numeric[key.Numeric]
	return rec, ok
}

func (idx *Index) lookupStructured(key Key) (StructuredRecord, bool) {
	rec, ok := idx.structured[key.Numeric]
	return rec, ok
}

// CountryCode returns the uppercase ISO code first seen for mcc.
func (idx *Index) CountryCode(mcc string) (string, bool) {
	iso, ok := idx.country[mcc]
	return iso, ok
}

func (idx *Index) recordsForISO(iso string) []CanonicalRecord {
	return idx.byISO[normalizeISO(iso)]
}

func (idx *Index) Stats() IndexStats {
	return IndexStats{
		Canonical:  idx.canonical,
		Exact:      len(idx.exact),
		Numeric:    len(idx.numeric),
		Countries:  len(idx.country),
		Structured: len(idx.structured),
	}
}

func normalizeISO(iso string) string {
	return strings.ToUpper(strings.TrimSpace(iso))
}
