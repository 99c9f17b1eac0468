// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHashAPIKey(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "8192")
	crypto := NewCrypto()
	if crypto.ArgonMemory != 8192 {
		t.Errorf("Expected ARGON2_MEMORY to apply, got %d", crypto.ArgonMemory)
	}
	key := "ck_testkey123"

	hash, err := crypto.HashAPIKey(key)
	if err != nil {
		t.Fatalf("HashAPIKey failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("Expected an argon2id hash, got %q", hash)
	}

	hash2, err := crypto.HashAPIKey(key)
	if err != nil {
		t.Fatalf("Second HashAPIKey failed: %v", err)
	}
	if hash == hash2 {
		t.Error("Two hashes of same key should be different (due to salt)")
	}
}

func TestVerifyAPIKey(t *testing.T) {
	crypto := NewCrypto()
	key, hash, err := crypto.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey failed: %v", err)
	}
	if !strings.HasPrefix(key, APIKeyPrefix) || len(key) != len(APIKeyPrefix)+64 {
		t.Errorf("Unexpected key format %q", key)
	}

	if err := crypto.VerifyAPIKey(key, hash); err != nil {
		t.Errorf("VerifyAPIKey failed for correct key: %v", err)
	}
	if err := crypto.VerifyAPIKey("ck_wrong", hash); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("Expected ErrKeyMismatch, got %v", err)
	}
	if err := crypto.VerifyAPIKey(key, "invalid-hash"); err == nil {
		t.Error("VerifyAPIKey should fail for invalid hash")
	}
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString("p_", 8, "hex")
	if err != nil || len(s) != 18 || !strings.HasPrefix(s, "p_") {
		t.Errorf("Unexpected hex string %q (%v)", s, err)
	}
	if _, err := GenerateRandomString("", 8, "base64"); err != nil {
		t.Errorf("base64 should be supported: %v", err)
	}
	if _, err := GenerateRandomString("", 8, "rot13"); err == nil {
		t.Error("Expected unsupported encoding to fail")
	}
}

func TestAdminToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignAdminToken(secret, "ops", time.Hour)
	if err != nil {
		t.Fatalf("SignAdminToken failed: %v", err)
	}

	claims, err := ParseAdminToken(secret, token)
	if err != nil {
		t.Fatalf("ParseAdminToken failed: %v", err)
	}
	if claims.Subject != "ops" || claims.Scope != AdminScope || claims.ID == "" {
		t.Errorf("Unexpected claims %+v", claims)
	}

	if _, err := ParseAdminToken([]byte("other-secret"), token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := ParseAdminToken(nil, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken without a secret, got %v", err)
	}

	expired, err := SignAdminToken(secret, "ops", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAdminToken(secret, expired); err == nil {
		t.Error("Expected an expired token to be rejected")
	}
	if _, err := SignAdminToken(nil, "ops", time.Hour); err == nil {
		t.Error("Expected signing without a secret to fail")
	}
}
