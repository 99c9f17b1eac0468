// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultOverrides is the hand-maintained table for carriers whose public
// dataset entries are stale or missing band data. A record with no bands only
// renames the carrier.
func DefaultOverrides() OverrideTable {
	return OverrideTable{
		"310-410": {
			Name:  "AT&T",
			Bands: []string{"B2", "B4", "B5", "B12", "B14", "B17", "B29", "B30", "B66", "n5", "n77", "n260"},
		},
		"310-260": {
			Name:  "T-Mobile",
			Bands: []string{"B2", "B4", "B12", "B66", "B71", "n25", "n41", "n71", "n258", "n260", "n261"},
		},
		"311-480": {
			Name:  "Verizon",
			Bands: []string{"B2", "B4", "B5", "B13", "B46", "B48", "B66", "n2", "n5", "n66", "n77", "n261"},
		},
		"312-530": {
			Name:  "Sprint",
			Bands: []string{"B25", "B26", "B41"},
		},
		"313-100": {
			Name: "FirstNet",
		},
	}
}

// LoadOverrides reads an overlay table from a YAML file of the form
//
//	"310-410":
//	  name: AT&T
//	  bands: [B2, B4, n77]
func LoadOverrides(path string) (OverrideTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table OverrideTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	for key, rec := range table {
		if rec.Name == "" {
			return nil, fmt.Errorf("override %s has no name", key)
		}
	}
	return table, nil
}

// Merge returns a new table holding base with overlay entries replacing any
// entry under the same key.
func (t OverrideTable) Merge(overlay OverrideTable) OverrideTable {
	out := make(OverrideTable, len(t)+len(overlay))
	for k, v := range t {
		out[k] = v.clone()
	}
	for k, v := range overlay {
		out[k] = v.clone()
	}
	return out
}

func (t OverrideTable) lookup(key Key) (OverrideRecord, bool) {
	if rec, ok := t[key.Exact]; ok {
		return rec, true
	}
	rec, ok := t[key.Numeric]
	return rec, ok
}

func (r OverrideRecord) clone() OverrideRecord {
	out := OverrideRecord{Name: r.Name}
	if r.Bands != nil {
		out.Bands = append([]string(nil), r.Bands...)
	}
	return out
}
