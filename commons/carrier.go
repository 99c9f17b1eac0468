// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"cellid-server/commons/mccmnc"

	"github.com/dustin/go-humanize"
)

// CanonicalLoader supplies canonical records from somewhere other than the
// JSON dataset, typically the mcc_mnc_carriers table.
type CanonicalLoader func() ([]mccmnc.CanonicalRecord, error)

// InitCarrierResolver loads the datasets and overrides named by cfg. A
// canonical failure is fatal.
func InitCarrierResolver(cfg Config, fromDB CanonicalLoader) (*mccmnc.Datasets, *mccmnc.Resolver) {
	ds, resolver, err := LoadCarrierResolver(cfg, fromDB)
	if err != nil {
		Logger.Fatalf("Failed to load MCC/MNC data: %v", err)
	}
	return ds, resolver
}

func LoadCarrierResolver(cfg Config, fromDB CanonicalLoader) (*mccmnc.Datasets, *mccmnc.Resolver, error) {
	ds, err := loadDatasets(cfg, fromDB)
	if err != nil {
		return nil, nil, err
	}

	overrides := mccmnc.DefaultOverrides()
	if cfg.OverridesPath != "" {
		overlay, err := mccmnc.LoadOverrides(cfg.OverridesPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			Logger.Debugf("No override overlay at %s", cfg.OverridesPath)
		case err != nil:
			Logger.Warnf("Warning: Failed to load MCC/MNC overrides: %v", err)
		default:
			overrides = overrides.Merge(overlay)
			Logger.Infof("Loaded %d MCC/MNC override entries from %s", len(overlay), cfg.OverridesPath)
		}
	}

	resolver := mccmnc.NewResolver(ds.Index(), overrides)
	stats := resolver.Index().Stats()
	Logger.Infof("Loaded %s canonical MCC/MNC records from %s (%s keys, %s structured, %d overrides)",
		humanize.Comma(int64(stats.Canonical)),
		ds.Source,
		humanize.Comma(int64(stats.Exact)),
		humanize.Comma(int64(stats.Structured)),
		resolver.Overrides(),
	)
	return ds, resolver, nil
}

func loadDatasets(cfg Config, fromDB CanonicalLoader) (*mccmnc.Datasets, error) {
	if cfg.CarrierSource != CarrierSourceDatabase {
		return mccmnc.Load(mccmnc.LoadOptions{
			CanonicalPath:  cfg.CanonicalDatasetPath,
			StructuredPath: cfg.StructuredDatasetPath,
			Logger:         Logger,
		})
	}

	if fromDB == nil {
		return nil, errors.New("carrier source is database but no database is configured")
	}
	records, err := fromDB()
	if err != nil {
		return nil, fmt.Errorf("load canonical records from database: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("mcc_mnc_carriers is empty, run cellsync load first")
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	ds := &mccmnc.Datasets{
		Canonical:            records,
		CanonicalFingerprint: mccmnc.Fingerprint(encoded),
		Source:               CarrierSourceDatabase,
		LoadedAt:             time.Now().UTC(),
	}
	ds.AttachStructured(cfg.StructuredDatasetPath, Logger)
	return ds, nil
}
