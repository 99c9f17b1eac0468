// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"fmt"
	"time"

	"cellid-server/commons"
	"cellid-server/commons/mccmnc"
	"cellid-server/models"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

// SyncDatasets replaces mcc_mnc_carriers with ds and applies its structured
// bands, recording the outcome as a SyncRun. The run is stored even when the
// sync fails.
func SyncDatasets(conn *gorm.DB, ds *mccmnc.Datasets, trigger models.SyncTrigger) (models.SyncRun, error) {
	run := models.SyncRun{
		Trigger:              trigger,
		Status:               models.SyncRunning,
		CanonicalFingerprint: optional(ds.CanonicalFingerprint),
	}
	if err := conn.Create(&run).Error; err != nil {
		msg := err.Error()
		run.Status = models.SyncFailed
		run.Error = &msg
		return run, fmt.Errorf("record sync run: %w", err)
	}

	syncErr := func() error {
		inserted, skipped, err := ReplaceCarriers(conn, ds.Canonical)
		run.Inserted, run.Skipped = inserted, skipped
		if err != nil {
			return err
		}
		commons.Logger.Infof("Inserted %s rows into mcc_mnc_carriers (skipped %d invalid rows)",
			humanize.Comma(int64(inserted)), skipped)

		if !ds.StructuredAvailable {
			return nil
		}
		updated, missed, err := SyncStructuredBands(conn, ds.Structured)
		run.BandsUpdated, run.BandsMissed = updated, missed
		if err != nil {
			return err
		}
		commons.Logger.Infof("Updated bands on %s rows in mcc_mnc_carriers (missed %d)",
			humanize.Comma(int64(updated)), missed)
		return nil
	}()

	now := time.Now()
	run.FinishedAt = &now
	run.Status = models.SyncSucceeded
	if syncErr != nil {
		run.Status = models.SyncFailed
		msg := syncErr.Error()
		run.Error = &msg
	}
	if err := conn.Save(&run).Error; err != nil {
		commons.Logger.Error("Failed to record sync run: ", err)
	}
	return run, syncErr
}

func RecentSyncRuns(conn *gorm.DB, limit int) ([]models.SyncRun, error) {
	var runs []models.SyncRun
	err := conn.Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}
