// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoRows = errors.New("dataset contains no rows")

// csvColumns maps the mcc-mnc.net header names onto record fields.
var csvColumns = map[string]func(*CanonicalRecord, string){
	"MCC":      func(r *CanonicalRecord, v string) { r.MCC = Code(v) },
	"MNC":      func(r *CanonicalRecord, v string) { r.MNC = Code(v) },
	"PLMN":     func(r *CanonicalRecord, v string) { r.PLMN = Code(v) },
	"REGION":   func(r *CanonicalRecord, v string) { r.Region = v },
	"COUNTRY":  func(r *CanonicalRecord, v string) { r.Country = v },
	"ISO":      func(r *CanonicalRecord, v string) { r.ISO = v },
	"OPERATOR": func(r *CanonicalRecord, v string) { r.Operator = v },
	"BRAND":    func(r *CanonicalRecord, v string) { r.Brand = v },
	"TADIG":    func(r *CanonicalRecord, v string) { r.TADIG = v },
	"BANDS":    func(r *CanonicalRecord, v string) { r.Bands = v },
}

// ParseCSV reads the semicolon separated mcc-mnc.net export. Unknown columns
// are ignored and every value is trimmed.
func ParseCSV(r io.Reader) ([]CanonicalRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	setters := make([]func(*CanonicalRecord, string), len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		setters[i] = csvColumns[strings.ToUpper(name)]
	}

	var records []CanonicalRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		var rec CanonicalRecord
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(value))
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

// ConvertStructured derives the structured-bands dataset from canonical
// records by classifying each free-text band string.
func ConvertStructured(records []CanonicalRecord) []StructuredRecord {
	out := make([]StructuredRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, StructuredRecord{
			MCC:             rec.MCC,
			MNC:             Code(numericValue(string(rec.MNC))),
			ISO:             rec.ISO,
			Country:         rec.Country,
			Operator:        rec.Operator,
			Brand:           rec.Brand,
			PLMN:            rec.PLMN,
			Bands:           strings.TrimSpace(rec.Bands),
			BandsStructured: StructureBands(rec.Bands),
		})
	}
	return out
}
