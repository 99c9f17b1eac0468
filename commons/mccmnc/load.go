// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Logger is the subset of the service logger the loader needs.
type Logger interface {
	Warnf(format string, args ...any)
}

// Datasets holds the raw records read at startup.
type Datasets struct {
	Canonical             []CanonicalRecord
	Structured            []StructuredRecord
	StructuredAvailable   bool
	CanonicalFingerprint  string
	StructuredFingerprint string
	Source                string
	LoadedAt              time.Time
}

type LoadOptions struct {
	CanonicalPath  string
	StructuredPath string
	Logger         Logger
}

// ErrNotArray is returned for a dataset whose top-level value is not an array.
var ErrNotArray = errors.New("dataset is not a JSON array")

var (
	utf8BOM = []byte("\ufeff")
	// CSV exports sometimes leak the BOM into the first header, either raw or
	// JSON-escaped.
	bomMCCKeys = [][]byte{[]byte("\"\ufeffMCC\""), []byte(`"\ufeffMCC"`)}
)

// Load reads the required canonical dataset and the optional structured
// dataset. Only a canonical failure is returned as an error; a structured
// failure is reported once through opts.Logger.
func Load(opts LoadOptions) (*Datasets, error) {
	canonical, fingerprint, err := LoadCanonical(opts.CanonicalPath)
	if err != nil {
		return nil, err
	}

	ds := &Datasets{
		Canonical:            canonical,
		CanonicalFingerprint: fingerprint,
		Source:               opts.CanonicalPath,
		LoadedAt:             time.Now().UTC(),
	}
	ds.AttachStructured(opts.StructuredPath, opts.Logger)
	return ds, nil
}

// AttachStructured loads the structured dataset into ds, falling back to an
// empty dataset with a single warning when the file is missing or invalid.
func (ds *Datasets) AttachStructured(path string, logger Logger) {
	ds.Structured = nil
	ds.StructuredAvailable = false
	ds.StructuredFingerprint = ""

	structured, fingerprint, err := LoadStructured(path)
	if err != nil {
		if logger != nil {
			logger.Warnf("Warning: structured bands dataset unavailable, continuing without it: %v", err)
		}
		return
	}
	ds.Structured = structured
	ds.StructuredAvailable = true
	ds.StructuredFingerprint = fingerprint
}

func (ds *Datasets) Index() *Index {
	return Build(ds.Canonical, ds.Structured)
}

func LoadCanonical(path string) ([]CanonicalRecord, string, error) {
	data, err := readDataset(path)
	if err != nil {
		return nil, "", fmt.Errorf("read canonical dataset: %w", err)
	}
	records, err := DecodeCanonical(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse canonical dataset %s: %w", path, err)
	}
	return records, Fingerprint(data), nil
}

func LoadStructured(path string) ([]StructuredRecord, string, error) {
	data, err := readDataset(path)
	if err != nil {
		return nil, "", fmt.Errorf("read structured dataset: %w", err)
	}
	records, err := DecodeStructured(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse structured dataset %s: %w", path, err)
	}
	return records, Fingerprint(data), nil
}

func DecodeCanonical(data []byte) ([]CanonicalRecord, error) {
	data = normalizeDataset(data)
	if err := requireArray(data); err != nil {
		return nil, err
	}
	var records []CanonicalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func DecodeStructured(data []byte) ([]StructuredRecord, error) {
	data = normalizeDataset(data)
	if err := requireArray(data); err != nil {
		return nil, err
	}
	var records []StructuredRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// requireArray rejects documents whose top-level value is not a JSON array.
// json.Unmarshal alone decodes null into an empty slice.
func requireArray(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ErrNotArray
	}
	return nil
}

func normalizeDataset(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	for _, key := range bomMCCKeys {
		data = bytes.ReplaceAll(data, key, []byte(`"MCC"`))
	}
	return data
}

func readDataset(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no dataset path configured")
	}
	return os.ReadFile(path)
}
