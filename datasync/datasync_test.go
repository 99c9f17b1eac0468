// SPDX-License-Identifier: GPL-3.0-only

package datasync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cellid-server/commons/mccmnc"
)

const exportCSV = "\ufeffMCC;MNC;PLMN;Region;Country;ISO;Operator;Brand;TADIG;Bands\n" +
	"262;01;26201;Europe;Germany;de;Telekom Deutschland GmbH;Telekom;DEUD1;GSM 900 / LTE 800 / NR 78\n" +
	"310;410;310410;North America;United States;us;AT&T Mobility;;USACG;\n"

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch(t *testing.T) {
	server := serve(t, http.StatusOK, exportCSV)
	dest := filepath.Join(t.TempDir(), "cell-data", "mcc-mnc.csv")

	res, err := Fetch(context.Background(), FetchRequest{URL: server.URL, Destination: dest, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.Bytes != int64(len(exportCSV)) || !strings.HasPrefix(res.Fingerprint, "blake2b-256:") {
		t.Errorf("Unexpected result %+v", res)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != exportCSV {
		t.Errorf("Unexpected destination content (%v)", err)
	}
}

func TestFetchKeepsDestinationOnFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mcc-mnc.csv")
	if err := os.WriteFile(dest, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	for name, server := range map[string]*httptest.Server{
		"error status": serve(t, http.StatusBadGateway, "upstream down"),
		"empty body":   serve(t, http.StatusOK, ""),
	} {
		if _, err := Fetch(context.Background(), FetchRequest{URL: server.URL, Destination: dest}); err == nil {
			t.Errorf("%s: expected an error", name)
		}
		data, _ := os.ReadFile(dest)
		if string(data) != "previous" {
			t.Errorf("%s: expected destination to be untouched, got %q", name, data)
		}
	}

	if _, err := Fetch(context.Background(), FetchRequest{Destination: dest}); err == nil {
		t.Error("Expected an error without a URL")
	}
}

func TestRefresh(t *testing.T) {
	server := serve(t, http.StatusOK, exportCSV)
	dir := t.TempDir()
	opts := RefreshOptions{
		URL:            server.URL,
		CSVPath:        filepath.Join(dir, "mcc-mnc.csv"),
		CanonicalPath:  filepath.Join(dir, "mcc-mnc.json"),
		StructuredPath: filepath.Join(dir, "mcc-mnc-converted.json"),
	}
	_, summary, err := Refresh(context.Background(), opts)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if summary.Records != 2 || summary.RecordsWithBands != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}

	ds, err := mccmnc.Load(mccmnc.LoadOptions{CanonicalPath: opts.CanonicalPath, StructuredPath: opts.StructuredPath})
	if err != nil {
		t.Fatalf("Load of generated datasets failed: %v", err)
	}
	if !ds.StructuredAvailable || ds.CanonicalFingerprint != summary.CanonicalFingerprint {
		t.Errorf("Unexpected datasets %+v", ds)
	}
	info := mccmnc.NewResolver(ds.Index(), nil).Resolve("262", "1")
	expected := []string{"8", "B20", "n78"}
	if info.Name != "Telekom" || strings.Join(info.Bands, ",") != strings.Join(expected, ",") {
		t.Errorf("Unexpected carrier %+v", info)
	}
}

func TestConvertCSVRejectsEmptyExport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "mcc-mnc.csv")
	if err := os.WriteFile(csvPath, []byte("MCC;MNC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	canonical := filepath.Join(dir, "mcc-mnc.json")
	if _, err := ConvertCSV(csvPath, canonical, filepath.Join(dir, "s.json")); !errors.Is(err, mccmnc.ErrNoRows) {
		t.Errorf("Expected ErrNoRows, got %v", err)
	}
	if _, err := os.Stat(canonical); !errors.Is(err, os.ErrNotExist) {
		t.Error("Expected no canonical dataset to be written")
	}
}

func TestConvertCanonical(t *testing.T) {
	structured := filepath.Join(t.TempDir(), "converted.json")
	summary, err := ConvertCanonical(filepath.Join("..", "commons", "mccmnc", "testdata", "canonical.json"), structured)
	if err != nil {
		t.Fatalf("ConvertCanonical failed: %v", err)
	}
	if summary.Records != 10 {
		t.Errorf("Expected 10 records, got %d", summary.Records)
	}
	records, _, err := mccmnc.LoadStructured(structured)
	if err != nil || len(records) != 10 {
		t.Fatalf("Expected 10 structured records, got %d (%v)", len(records), err)
	}
	if records[1].MNC != "4" || records[1].PLMN != "310004" {
		t.Errorf("Expected numeric MNC and PLMN to be kept, got %+v", records[1])
	}
}
