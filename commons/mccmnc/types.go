// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Code holds an MCC, MNC or PLMN value. Datasets encode these either as JSON
// strings (keeping leading zeros) or as JSON numbers; both decode to the same
// string form.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a string or a number, got %s", string(data))
	}
	*c = Code(n.String())
	return nil
}

func (c Code) String() string {
	return string(c)
}

// CanonicalRecord is one row of the canonical MCC/MNC dataset. Empty strings
// stand for missing values.
type CanonicalRecord struct {
	MCC      Code   `json:"mcc"`
	MNC      Code   `json:"mnc"`
	PLMN     Code   `json:"plmn"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	ISO      string `json:"iso"`
	Operator string `json:"operator"`
	Brand    string `json:"brand"`
	TADIG    string `json:"tadig"`
	Bands    string `json:"bands"`
}

// StructuredRecord is one row of the optional structured-bands dataset.
// BandOrder keeps the category order of the decoded document; maps built in
// code leave it empty and flatten in sorted order.
type StructuredRecord struct {
	MCC             Code                `json:"mcc"`
	MNC             Code                `json:"mnc"`
	ISO             string              `json:"iso"`
	Country         string              `json:"country"`
	Operator        string              `json:"operator"`
	Brand           string              `json:"brand"`
	PLMN            Code                `json:"plmn,omitempty"`
	Bands           string              `json:"bands,omitempty"`
	BandsStructured map[string][]string `json:"bandsStructured"`
	BandOrder       []string            `json:"-"`
}

// UnmarshalJSON also accepts the snake_case "bands_structured" key written by
// older conversion runs.
func (r *StructuredRecord) UnmarshalJSON(data []byte) error {
	type plain StructuredRecord
	var aux struct {
		plain
		Camel json.RawMessage `json:"bandsStructured"`
		Snake json.RawMessage `json:"bands_structured"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = StructuredRecord(aux.plain)

	bands, order, err := decodeCategories(aux.Camel)
	if err != nil {
		return fmt.Errorf("bandsStructured: %w", err)
	}
	if len(bands) == 0 {
		if bands, order, err = decodeCategories(aux.Snake); err != nil {
			return fmt.Errorf("bands_structured: %w", err)
		}
	}
	r.BandsStructured, r.BandOrder = bands, order
	return nil
}

// MarshalJSON writes mnc as a JSON number when it is all digits.
func (r StructuredRecord) MarshalJSON() ([]byte, error) {
	type plain StructuredRecord
	aux := struct {
		plain
		MNC any `json:"mnc"`
	}{plain: plain(r), MNC: string(r.MNC)}
	if isDigits(string(r.MNC)) {
		aux.MNC = json.Number(numericValue(string(r.MNC)))
	}
	return json.Marshal(aux)
}

// decodeCategories decodes a category -> bands object and records the order
// its keys appear in.
func decodeCategories(raw json.RawMessage) (map[string][]string, []string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil, nil
	}
	var bands map[string][]string
	if err := json.Unmarshal(raw, &bands); err != nil {
		return nil, nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	order := make([]string, 0, len(bands))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, nil, err
		}
		if key, ok := tok.(string); ok && !contains(order, key) {
			order = append(order, key)
		}
	}
	return bands, order, nil
}

type OverrideRecord struct {
	Name  string   `json:"name" yaml:"name"`
	Bands []string `json:"bands" yaml:"bands"`
}

// OverrideTable maps exact "MCC-MNC" keys to hand-maintained carrier data.
type OverrideTable map[string]OverrideRecord

// CarrierInfo is the merged, normalized view of a carrier returned by the
// resolver. Nullable fields serialize as JSON null.
type CarrierInfo struct {
	Name     string   `json:"name"`
	Country  *string  `json:"country"`
	ISO      *string  `json:"iso"`
	Flag     string   `json:"flag"`
	Bands    []string `json:"bands"`
	MCC      string   `json:"mcc"`
	MNC      string   `json:"mnc"`
	Operator *string  `json:"operator"`
	Brand    *string  `json:"brand"`
	Region   *string  `json:"region"`
	TADIG    *string  `json:"tadig"`
}

// Sources reports which inputs contributed to a resolved CarrierInfo.
type Sources struct {
	Override   bool
	Canonical  bool
	Structured bool
}

func (s Sources) Fallback() bool {
	return !s.Override && !s.Canonical && !s.Structured
}

// Label names the highest-priority source that matched.
func (s Sources) Label() string {
	switch {
	case s.Override:
		return "override"
	case s.Canonical:
		return "canonical"
	case s.Structured:
		return "structured"
	default:
		return "fallback"
	}
}
