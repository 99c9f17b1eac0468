// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// PhoneLookup is the result of mapping an E.164 number onto the carrier
// datasets. Match is nil when no canonical carrier matched the name the
// numbering plan reports.
type PhoneLookup struct {
	Number  string       `json:"number"`
	Region  string       `json:"region"`
	Carrier string       `json:"carrier"`
	Flag    string       `json:"flag"`
	Match   *CarrierInfo `json:"match"`
}

// ResolvePhone finds the region and original carrier of number using the
// numbering plan metadata, then resolves the best matching MCC/MNC.
func (r *Resolver) ResolvePhone(number string) (PhoneLookup, error) {
	parsed, err := phonenumbers.Parse(number, "")
	if err != nil {
		return PhoneLookup{}, fmt.Errorf("%w: %v", ErrInvalidPhoneNumber, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return PhoneLookup{}, ErrInvalidPhoneNumber
	}

	region := phonenumbers.GetRegionCodeForNumber(parsed)
	carrier, err := phonenumbers.GetCarrierForNumber(parsed, "en")
	if err != nil {
		carrier = ""
	}

	lookup := PhoneLookup{
		Number:  phonenumbers.Format(parsed, phonenumbers.E164),
		Region:  region,
		Carrier: carrier,
		Flag:    r.CountryFlag(region),
	}
	if carrier == "" {
		return lookup, nil
	}

	if rec, ok := matchCarrier(r.index.recordsForISO(region), carrier); ok {
		info := r.Resolve(string(rec.MCC), string(rec.MNC))
		lookup.Match = &info
	}
	return lookup, nil
}

// matchCarrier picks the candidate whose brand or operator is closest to
// name. Containment counts as an exact hit; otherwise the edit distance must
// stay within a quarter of the name length (and at least 2).
func matchCarrier(candidates []CanonicalRecord, name string) (CanonicalRecord, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return CanonicalRecord{}, false
	}
	limit := len(target) / 4
	if limit < 2 {
		limit = 2
	}

	best := -1
	var bestRec CanonicalRecord
	for _, rec := range candidates {
		for _, label := range []string{rec.Brand, rec.Operator} {
			label = strings.ToLower(strings.TrimSpace(label))
			if label == "" {
				continue
			}
			dist := levenshtein.ComputeDistance(target, label)
			if strings.Contains(label, target) || strings.Contains(target, label) {
				dist = 0
			}
			if dist <= limit && (best < 0 || dist < best) {
				best = dist
				bestRec = rec
			}
		}
	}
	return bestRec, best >= 0
}
