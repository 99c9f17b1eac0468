// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "cellid-server/commons/mccmnc"

// swagger:model CarrierResponse
type CarrierResponse = mccmnc.CarrierInfo

// swagger:model CountryResponse
type CountryResponse struct {
	// Mobile country code as requested
	MCC string `json:"mcc" example:"310"`
	// ISO 3166-1 alpha-2 code, null when unknown
	ISO *string `json:"iso" example:"US"`
	// Flag emoji for the country
	Flag string `json:"flag" example:"🇺🇸"`
}

// swagger:model FlagResponse
type FlagResponse struct {
	// MCC or ISO code as requested
	Input string `json:"input" example:"us"`
	// Flag emoji, empty when the input is not recognised
	Flag string `json:"flag" example:"🇺🇸"`
}

// swagger:model PhoneLookupResponse
type PhoneLookupResponse = mccmnc.PhoneLookup

// swagger:model DatasetsResponse
type DatasetsResponse struct {
	// Where the canonical records were loaded from
	Source string `json:"source" example:"cell-data/mcc-mnc.json"`
	// Number of canonical records
	CanonicalRecords int `json:"canonical_records" example:"2900"`
	// Number of structured band records
	StructuredRecords int `json:"structured_records" example:"2850"`
	// Whether the structured dataset could be loaded
	StructuredAvailable bool `json:"structured_available" example:"true"`
	// Content fingerprint of the canonical dataset
	CanonicalFingerprint string `json:"canonical_fingerprint" example:"blake2b-256:9f86d081884c7d659a2feaa0c55ad015"`
	// Content fingerprint of the structured dataset
	StructuredFingerprint string `json:"structured_fingerprint" example:"blake2b-256:3a7bd3e2360a3d29eea436fcfb7e44c7"`
	// Distinct exact lookup keys
	ExactKeys int `json:"exact_keys" example:"2890"`
	// Distinct numeric lookup keys
	NumericKeys int `json:"numeric_keys" example:"2870"`
	// MCCs with a known country
	Countries int `json:"countries" example:"238"`
	// Entries in the override table
	Overrides int `json:"overrides" example:"5"`
	// When the datasets were loaded
	LoadedAt string `json:"loaded_at" example:"2024-10-01T12:00:00Z"`
}

// swagger:model SyncRunResponse
type SyncRunResponse struct {
	// Unique ID of the sync run
	RunID string `json:"run_id" example:"6f1c0c36-2f1f-4f7a-9a43-6b9f7f0f1b7e"`
	// What started the run
	Trigger string `json:"trigger" example:"ADMIN"`
	// Final status of the run
	Status string `json:"status" example:"SUCCEEDED"`
	// Rows written to mcc_mnc_carriers
	Inserted int `json:"inserted" example:"2890"`
	// Canonical records without a usable MCC/MNC
	Skipped int `json:"skipped" example:"10"`
	// Rows that received structured bands
	BandsUpdated int `json:"bands_updated" example:"2850"`
	// Structured records without a matching row
	BandsMissed int `json:"bands_missed" example:"40"`
	// Failure reason, null on success
	Error *string `json:"error"`
	// Timestamp of when the run started
	CreatedAt string `json:"created_at" example:"2024-10-01T12:00:00Z"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	Status           string `json:"status" example:"ok"`
	CanonicalRecords int    `json:"canonical_records" example:"2900"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message describing the outcome
	Message string `json:"message" example:"Operation successful"`
}
