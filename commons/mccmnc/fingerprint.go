// SPDX-License-Identifier: GPL-3.0-only

package mccmnc

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint identifies a dataset by content so operators can tell which
// revision a running process loaded.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return "blake2b-256:" + hex.EncodeToString(sum[:16])
}
