// SPDX-License-Identifier: GPL-3.0-only

package datasync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cellid-server/commons/mccmnc"
)

// Summary describes the files written by a conversion.
type Summary struct {
	Records              int
	RecordsWithBands     int
	CanonicalFingerprint string
}

// ConvertCSV parses the semicolon separated export at csvPath, writes the
// canonical JSON dataset and derives the structured one from it.
func ConvertCSV(csvPath, canonicalPath, structuredPath string) (Summary, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	records, err := mccmnc.ParseCSV(f)
	if err != nil {
		return Summary{}, fmt.Errorf("parse %s: %w", csvPath, err)
	}
	encoded, err := writeJSON(canonicalPath, records)
	if err != nil {
		return Summary{}, err
	}
	summary, err := writeStructured(records, structuredPath)
	summary.CanonicalFingerprint = mccmnc.Fingerprint(encoded)
	return summary, err
}

// ConvertCanonical derives the structured dataset from an existing canonical
// JSON file.
func ConvertCanonical(canonicalPath, structuredPath string) (Summary, error) {
	records, fingerprint, err := mccmnc.LoadCanonical(canonicalPath)
	if err != nil {
		return Summary{}, err
	}
	if len(records) == 0 {
		return Summary{}, mccmnc.ErrNoRows
	}
	summary, err := writeStructured(records, structuredPath)
	summary.CanonicalFingerprint = fingerprint
	return summary, err
}

func writeStructured(records []mccmnc.CanonicalRecord, path string) (Summary, error) {
	structured := mccmnc.ConvertStructured(records)
	summary := Summary{Records: len(structured)}
	for _, rec := range structured {
		if len(rec.BandsStructured) > 0 {
			summary.RecordsWithBands++
		}
	}
	if _, err := writeJSON(path, structured); err != nil {
		return summary, err
	}
	return summary, nil
}

func writeJSON(path string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

type RefreshOptions struct {
	URL            string
	CSVPath        string
	CanonicalPath  string
	StructuredPath string
	Timeout        time.Duration
}

// Refresh downloads the export and regenerates both JSON datasets. The CSV
// is replaced before parsing, so a later parse failure leaves the new CSV on
// disk and the previous JSON datasets untouched.
func Refresh(ctx context.Context, opts RefreshOptions) (FetchResult, Summary, error) {
	url := opts.URL
	if url == "" {
		url = DefaultURL
	}
	fetched, err := Fetch(ctx, FetchRequest{
		URL:         url,
		Destination: opts.CSVPath,
		Timeout:     opts.Timeout,
		UserAgent:   "cellsync/1.0",
	})
	if err != nil {
		return fetched, Summary{}, err
	}
	summary, err := ConvertCSV(opts.CSVPath, opts.CanonicalPath, opts.StructuredPath)
	return fetched, summary, err
}
