// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cellid-server/commons/mccmnc"
	"cellid-server/models"

	"gorm.io/gorm"
)

var ErrNoValidRows = errors.New("no valid rows to insert into mcc_mnc_carriers")

const insertBatchSize = 500

// CarrierFromRecord converts a canonical record into a table row. MCC and MNC
// keep only their digits; when MCC is empty both are derived from PLMN. The
// second return is false when no usable MCC/MNC pair exists.
func CarrierFromRecord(rec mccmnc.CanonicalRecord) (models.Carrier, bool) {
	mccDigits := digits(string(rec.MCC))
	mncDigits := digits(string(rec.MNC))
	plmnDigits := digits(string(rec.PLMN))

	if mccDigits == "" && len(plmnDigits) >= 3 {
		mccDigits = plmnDigits[:3]
		if mncDigits == "" && len(plmnDigits) > 3 {
			mncDigits = plmnDigits[3:]
		}
	}
	if mccDigits == "" || mncDigits == "" {
		return models.Carrier{}, false
	}
	mcc, err := strconv.Atoi(mccDigits)
	if err != nil {
		return models.Carrier{}, false
	}
	mnc, err := strconv.Atoi(mncDigits)
	if err != nil {
		return models.Carrier{}, false
	}

	return models.Carrier{
		MCC:      mcc,
		MNC:      mnc,
		PLMN:     optional(string(rec.PLMN)),
		Region:   optional(rec.Region),
		Country:  optional(rec.Country),
		ISO:      optional(rec.ISO),
		Operator: optional(rec.Operator),
		Brand:    optional(rec.Brand),
		TADIG:    optional(rec.TADIG),
		Bands:    optional(rec.Bands),
	}, true
}

// ReplaceCarriers truncates mcc_mnc_carriers and inserts every valid record
// in one transaction. Nothing is changed when no record is valid.
func ReplaceCarriers(conn *gorm.DB, records []mccmnc.CanonicalRecord) (inserted, skipped int, err error) {
	rows := make([]models.Carrier, 0, len(records))
	for _, rec := range records {
		row, ok := CarrierFromRecord(rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, skipped, ErrNoValidRows
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Carrier{}).Error; err != nil {
			return fmt.Errorf("truncate mcc_mnc_carriers: %w", err)
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert mcc_mnc_carriers: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, skipped, err
	}
	return len(rows), skipped, nil
}

// SyncStructuredBands writes structured bands onto existing rows, matching on
// PLMN as well when the record carries one. Raw bands are only replaced when
// the record has a non-empty value.
func SyncStructuredBands(conn *gorm.DB, records []mccmnc.StructuredRecord) (updated, missed int, err error) {
	err = conn.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			mccDigits := digits(string(rec.MCC))
			mncDigits := digits(string(rec.MNC))
			if mccDigits == "" || mncDigits == "" {
				missed++
				continue
			}
			mcc, _ := strconv.Atoi(mccDigits)
			mnc, _ := strconv.Atoi(mncDigits)

			bands := rec.BandsStructured
			if bands == nil {
				bands = map[string][]string{}
			}

			query := tx.Model(&models.Carrier{}).Where("mcc = ? AND mnc = ?", mcc, mnc)
			if plmn := digits(string(rec.PLMN)); plmn != "" {
				query = query.Where("plmn = ?", plmn)
			}
			result := query.Updates(&models.Carrier{
				Bands:           optional(rec.Bands),
				BandsStructured: bands,
			})
			if result.Error != nil {
				return fmt.Errorf("update bands for %s-%s: %w", rec.MCC, rec.MNC, result.Error)
			}
			if result.RowsAffected > 0 {
				updated += int(result.RowsAffected)
			} else {
				missed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return updated, missed, nil
}

// LoadCanonicalRecords reads mcc_mnc_carriers back as canonical records.
// Leading MNC zeros are restored from PLMN when it is consistent with the
// stored MCC and MNC.
func LoadCanonicalRecords(conn *gorm.DB) ([]mccmnc.CanonicalRecord, error) {
	var rows []models.Carrier
	if err := conn.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]mccmnc.CanonicalRecord, 0, len(rows))
	for _, row := range rows {
		mcc := fmt.Sprintf("%03d", row.MCC)
		plmn := value(row.PLMN)
		records = append(records, mccmnc.CanonicalRecord{
			MCC:      mccmnc.Code(mcc),
			MNC:      mccmnc.Code(mncFromPLMN(mcc, row.MNC, plmn)),
			PLMN:     mccmnc.Code(plmn),
			Region:   value(row.Region),
			Country:  value(row.Country),
			ISO:      value(row.ISO),
			Operator: value(row.Operator),
			Brand:    value(row.Brand),
			TADIG:    value(row.TADIG),
			Bands:    value(row.Bands),
		})
	}
	return records, nil
}

func mncFromPLMN(mcc string, mnc int, plmn string) string {
	if rest, ok := strings.CutPrefix(digits(plmn), mcc); ok && rest != "" {
		if n, err := strconv.Atoi(rest); err == nil && n == mnc {
			return rest
		}
	}
	return fmt.Sprintf("%02d", mnc)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
