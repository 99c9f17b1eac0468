// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cellid-server/commons"
	"cellid-server/commons/mccmnc"
	"cellid-server/crypto"
	"cellid-server/datasync"
	"cellid-server/db"
	"cellid-server/models"

	"github.com/dustin/go-humanize"
)

const usage = `Usage: cellsync <command> [flags]

Commands:
  fetch      download the mcc-mnc.net export and regenerate the JSON datasets
  convert    regenerate the structured dataset from the canonical JSON
  load       replace mcc_mnc_carriers with the datasets and sync bands
  hash-key   generate an admin API key and its argon2id hash
  token      issue an admin JWT signed with JWT_SECRET
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	commons.LoadEnvFile()
	commons.InitLogger()
	cfg := commons.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "fetch":
		err = runFetch(ctx, cfg, args)
	case "convert":
		err = runConvert(cfg, args)
	case "load":
		err = runLoad(cfg, args)
	case "hash-key":
		err = runHashKey()
	case "token":
		err = runToken(cfg, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		commons.Logger.Fatalf("cellsync %s failed: %v", os.Args[1], err)
	}
}

// newFlagSet accepts --env-file so it can sit anywhere on the command line.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.String("env-file", "", "Load environment variables from this file")
	return fs
}

func runFetch(ctx context.Context, cfg commons.Config, args []string) error {
	fs := newFlagSet("fetch")
	url := fs.String("url", cfg.DatasetURL, "Export URL")
	csvPath := fs.String("csv", filepath.Join(filepath.Dir(cfg.CanonicalDatasetPath), "mcc-mnc.csv"), "Where to store the raw CSV")
	timeout := fs.Duration("timeout", datasync.DefaultTimeout, "Download timeout")
	load := fs.Bool("load", false, "Also load the result into the database")
	fs.Parse(args)

	commons.Logger.Infof("Downloading %s", *url)
	fetched, summary, err := datasync.Refresh(ctx, datasync.RefreshOptions{
		URL:            *url,
		CSVPath:        *csvPath,
		CanonicalPath:  cfg.CanonicalDatasetPath,
		StructuredPath: cfg.StructuredDatasetPath,
		Timeout:        *timeout,
	})
	if err != nil {
		return err
	}
	commons.Logger.Infof("Downloaded %s (%s)", humanize.Bytes(uint64(fetched.Bytes)), fetched.Fingerprint)
	logSummary(cfg, summary)

	if *load {
		return runLoad(cfg, nil)
	}
	return nil
}

func runConvert(cfg commons.Config, args []string) error {
	fs := newFlagSet("convert")
	fs.Parse(args)

	summary, err := datasync.ConvertCanonical(cfg.CanonicalDatasetPath, cfg.StructuredDatasetPath)
	if err != nil {
		return err
	}
	logSummary(cfg, summary)
	return nil
}

func runLoad(cfg commons.Config, args []string) error {
	fs := newFlagSet("load")
	fs.Parse(args)

	ds, err := mccmnc.Load(mccmnc.LoadOptions{
		CanonicalPath:  cfg.CanonicalDatasetPath,
		StructuredPath: cfg.StructuredDatasetPath,
		Logger:         commons.Logger,
	})
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	run, err := db.SyncDatasets(conn, ds, models.TriggerCLI)
	if err != nil {
		return err
	}
	commons.Logger.Infof("Sync run %s finished: %d inserted, %d skipped, %d bands updated, %d missed",
		run.RID, run.Inserted, run.Skipped, run.BandsUpdated, run.BandsMissed)
	return nil
}

func runHashKey() error {
	key, hash, err := crypto.NewCrypto().GenerateAPIKey()
	if err != nil {
		return err
	}
	fmt.Printf("API key (give to the client):   %s\n", key)
	fmt.Printf("ADMIN_API_KEY_HASH (server env): %s\n", hash)
	return nil
}

func runToken(cfg commons.Config, args []string) error {
	fs := newFlagSet("token")
	subject := fs.String("subject", "admin", "Token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token lifetime")
	fs.Parse(args)

	token, err := crypto.SignAdminToken([]byte(cfg.JWTSecret), *subject, *ttl)
	if err != nil {
		return fmt.Errorf("%w (set JWT_SECRET)", err)
	}
	fmt.Println(token)
	return nil
}

func logSummary(cfg commons.Config, summary datasync.Summary) {
	commons.Logger.Infof("Wrote %s records to %s (%s)", humanize.Comma(int64(summary.Records)),
		cfg.CanonicalDatasetPath, summary.CanonicalFingerprint)
	commons.Logger.Infof("Wrote structured bands for %s of them to %s",
		humanize.Comma(int64(summary.RecordsWithBands)), cfg.StructuredDatasetPath)
}
