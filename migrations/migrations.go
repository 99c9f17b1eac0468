// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"cellid-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_create_mcc_mnc_carriers",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.Carrier{}); err != nil {
					return fmt.Errorf("failed to create mcc_mnc_carriers: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(models.Carrier{}.TableName())
			},
		},
		{
			ID: "002_create_sync_runs",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.SyncRun{}); err != nil {
					return fmt.Errorf("failed to create sync_runs: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.SyncRun{})
			},
		},
		{
			ID: "003_index_carriers_iso",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.Carrier{}, "idx_mcc_mnc_carriers_iso") {
					return nil
				}
				return tx.Exec("CREATE INDEX idx_mcc_mnc_carriers_iso ON mcc_mnc_carriers (iso)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.Carrier{}, "idx_mcc_mnc_carriers_iso")
			},
		},
	}
}
