// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyncStatus string
type SyncTrigger string

const (
	SyncRunning   SyncStatus = "RUNNING"
	SyncSucceeded SyncStatus = "SUCCEEDED"
	SyncFailed    SyncStatus = "FAILED"
)

const (
	TriggerCLI   SyncTrigger = "CLI"
	TriggerAdmin SyncTrigger = "ADMIN"
)

// SyncRun records one load of the canonical dataset into mcc_mnc_carriers.
type SyncRun struct {
	ID                   uint        `gorm:"primaryKey"`
	RID                  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	Trigger              SyncTrigger `gorm:"size:20;not null"`
	Status               SyncStatus  `gorm:"size:20;not null;index"`
	CanonicalFingerprint *string     `gorm:"size:64;default:null"`
	Inserted             int
	Skipped              int
	BandsUpdated         int
	BandsMissed          int
	Error                *string `gorm:"type:text;default:null"`
	FinishedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (run *SyncRun) BeforeCreate(tx *gorm.DB) (err error) {
	if run.RID == uuid.Nil {
		run.RID = uuid.New()
	}
	return
}

func init() {
	AllModels = append(AllModels, &SyncRun{})
}
