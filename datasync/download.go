// SPDX-License-Identifier: GPL-3.0-only

// Package datasync refreshes the carrier datasets from the public
// mcc-mnc.net export.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cellid-server/commons/mccmnc"
)

const (
	DefaultURL     = "https://mcc-mnc.net/mcc-mnc.csv"
	DefaultTimeout = 30 * time.Second

	maxDownloadBytes = 64 << 20
)

type FetchRequest struct {
	URL         string
	Destination string
	Timeout     time.Duration
	UserAgent   string
}

type FetchResult struct {
	Bytes       int64
	Fingerprint string
}

// Fetch downloads req.URL and atomically replaces req.Destination with the
// body. The destination is left untouched on any failure, including an
// empty body.
func Fetch(ctx context.Context, req FetchRequest) (FetchResult, error) {
	var result FetchResult
	url := strings.TrimSpace(req.URL)
	dest := strings.TrimSpace(req.Destination)
	if url == "" {
		return result, errors.New("fetch: URL is empty")
	}
	if dest == "" {
		return result, errors.New("fetch: destination is empty")
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("fetch: build request: %w", err)
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := (&http.Client{Timeout: timeout}).Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return result, fmt.Errorf("fetch: read body: %w", err)
	}
	if len(body) == 0 {
		return result, errors.New("fetch: empty response body")
	}
	if err := writeFileAtomic(dest, body); err != nil {
		return result, err
	}
	result.Bytes = int64(len(body))
	result.Fingerprint = mccmnc.Fingerprint(body)
	return result, nil
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("finalize temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("replace %s: %w", dest, err)
	}
	return nil
}
