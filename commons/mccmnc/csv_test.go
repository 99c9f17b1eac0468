package mccmnc

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = "\ufeffMCC;MNC;PLMN;Region;Country;ISO;Operator;Brand;TADIG;Bands;Notes\n" +
	"310;410;310410;North America;United States;us; AT&T Mobility ;;USACG;GSM 850 / LTE 700;ignored\n" +
	"262;01;26201;Europe;Germany;de;Telekom Deutschland;Telekom;DEUD1;\"GSM 900; LTE 800\"\n" +
	"901;11\n"

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].MCC != "310" || records[0].Operator != "AT&T Mobility" || records[0].TADIG != "USACG" {
		t.Errorf("Unexpected first record %+v", records[0])
	}
	if records[1].Bands != "GSM 900; LTE 800" {
		t.Errorf("Expected quoted field to keep its separator, got %q", records[1].Bands)
	}
	if records[2].MNC != "11" || records[2].Operator != "" {
		t.Errorf("Expected short row to fill leading columns only, got %+v", records[2])
	}
}

func TestParseCSVEmpty(t *testing.T) {
	for _, input := range []string{"", "MCC;MNC\n"} {
		if _, err := ParseCSV(strings.NewReader(input)); !errors.Is(err, ErrNoRows) {
			t.Errorf("Expected ErrNoRows for %q, got %v", input, err)
		}
	}
}

func TestConvertStructured(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	structured := ConvertStructured(records)
	if len(structured) != len(records) {
		t.Fatalf("Expected %d structured records, got %d", len(records), len(structured))
	}
	if structured[1].MNC != "1" {
		t.Errorf("Expected numeric MNC 1, got %q", structured[1].MNC)
	}
	expected := map[string][]string{Gen2G: {"5"}, Gen4G: {"B12"}}
	if !reflect.DeepEqual(structured[0].BandsStructured, expected) {
		t.Errorf("Expected %v, got %v", expected, structured[0].BandsStructured)
	}
	if len(structured[2].BandsStructured) != 0 {
		t.Errorf("Expected no bands, got %v", structured[2].BandsStructured)
	}
}

func TestStructuredRecordWritesNumericMNC(t *testing.T) {
	structured := ConvertStructured([]CanonicalRecord{
		{MCC: "262", MNC: "01", Bands: "LTE 800"},
		{MCC: "901", MNC: "ab"},
	})
	data, err := json.Marshal(structured)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if mnc, ok := raw[0]["mnc"].(float64); !ok || mnc != 1 {
		t.Errorf("Expected numeric mnc 1, got %#v", raw[0]["mnc"])
	}
	if mnc, ok := raw[1]["mnc"].(string); !ok || mnc != "NaN" {
		t.Errorf("Expected non-numeric mnc to stay a string, got %#v", raw[1]["mnc"])
	}

	decoded, err := DecodeStructured(data)
	if err != nil {
		t.Fatalf("DecodeStructured failed: %v", err)
	}
	if decoded[0].MNC != "1" || decoded[0].MCC != "262" {
		t.Errorf("Expected 262-1 after decoding, got %s-%s", decoded[0].MCC, decoded[0].MNC)
	}
	if !reflect.DeepEqual(decoded[0].BandsStructured, map[string][]string{Gen4G: {"B20"}}) {
		t.Errorf("Unexpected bands %v", decoded[0].BandsStructured)
	}
}
