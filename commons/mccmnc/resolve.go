// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"fmt"
	"strings"
)

// Resolver merges the override table, the canonical index and the structured
// index into CarrierInfo values. It never mutates its inputs and is safe to
// share between goroutines.
type Resolver struct {
	index     *Index
	overrides OverrideTable
}

func NewResolver(index *Index, overrides OverrideTable) *Resolver {
	if index == nil {
		index = Build(nil, nil)
	}
	return &Resolver{
		index:     index,
		overrides: OverrideTable{}.Merge(overrides),
	}
}

func (r *Resolver) Index() *Index {
	return r.index
}

func (r *Resolver) Overrides() int {
	return len(r.overrides)
}

// Resolve never fails: unknown pairs produce a synthetic "MCC x / MNC y"
// record with no country and no bands.
func (r *Resolver) Resolve(mcc, mnc string) CarrierInfo {
	info, _ := r.ResolveWithSources(mcc, mnc)
	return info
}

func (r *Resolver) ResolveWithSources(mcc, mnc string) (CarrierInfo, Sources) {
	key := NewKey(mcc, mnc)

	override, hasOverride := r.overrides.lookup(key)
	base, hasBase := r.index.lookupCanonical(key)
	structured, hasStructured := r.index.lookupStructured(key)

	// Absent records are zero values, so every chain below just skips their
	// empty fields.
	iso := normalizeISO(firstNonEmpty(structured.ISO, base.ISO))
	country := firstNonEmpty(structured.Country, base.Country)

	name := firstNonEmpty(
		override.Name,
		base.Brand,
		base.Operator,
		structured.Brand,
		structured.Operator,
	)
	if name == "" {
		name = fmt.Sprintf("MCC %s / MNC %s", mcc, mnc)
	}

	bands := firstNonEmptyBands(
		func() []string { return override.clone().Bands },
		func() []string { return flattenStructured(structured.BandsStructured, structured.BandOrder) },
		func() []string { return SplitBands(base.Bands) },
	)

	var flag string
	switch {
	case iso != "":
		flag = r.CountryFlag(iso)
	case hasBase:
		flag = r.CountryFlag(mcc)
	}

	info := CarrierInfo{
		Name:     name,
		Country:  nullable(country),
		ISO:      nullable(iso),
		Flag:     flag,
		Bands:    bands,
		MCC:      mcc,
		MNC:      mnc,
		Operator: nullable(firstNonEmpty(base.Operator, structured.Operator)),
		Brand:    nullable(firstNonEmpty(base.Brand, structured.Brand)),
		Region:   nullable(base.Region),
		TADIG:    nullable(base.TADIG),
	}
	return info, Sources{
		Override:   hasOverride,
		Canonical:  hasBase,
		Structured: hasStructured,
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func firstNonEmptyBands(candidates ...func() []string) []string {
	for _, candidate := range candidates {
		if bands := candidate(); len(bands) > 0 {
			return bands
		}
	}
	return []string{}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
