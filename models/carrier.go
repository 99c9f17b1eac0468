// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// Carrier is one canonical MCC/MNC row as loaded from the mcc-mnc.net export.
// MCC and MNC are stored as integers, so leading MNC zeros only survive in
// PLMN.
type Carrier struct {
	ID              uint                `gorm:"primaryKey"`
	MCC             int                 `gorm:"not null;index:idx_mcc_mnc"`
	MNC             int                 `gorm:"not null;index:idx_mcc_mnc"`
	PLMN            *string             `gorm:"size:16;default:null;index"`
	Region          *string             `gorm:"size:255;default:null"`
	Country         *string             `gorm:"size:255;default:null"`
	ISO             *string             `gorm:"size:8;default:null"`
	Operator        *string             `gorm:"size:255;default:null"`
	Brand           *string             `gorm:"size:255;default:null"`
	TADIG           *string             `gorm:"column:tadig;size:32;default:null"`
	Bands           *string             `gorm:"type:text;default:null"`
	BandsStructured map[string][]string `gorm:"serializer:json;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Carrier) TableName() string {
	return "mcc_mnc_carriers"
}

func init() {
	AllModels = append(AllModels, &Carrier{})
}
