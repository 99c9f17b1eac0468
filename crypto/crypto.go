// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"cellid-server/commons"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	APIKeyPrefix = "ck_"
	AdminScope   = "admin"
)

var (
	ErrKeyMismatch  = errors.New("api key verification failed")
	ErrInvalidToken = errors.New("invalid admin token")
)

func NewCrypto() *Crypto {
	return &Crypto{
		ArgonTime:    uint32(commons.GetEnvInt("ARGON2_TIME", 1)),
		ArgonMemory:  uint32(commons.GetEnvInt("ARGON2_MEMORY", 65536)),
		ArgonThreads: uint8(commons.GetEnvInt("ARGON2_THREADS", 2)),
		ArgonKeyLen:  uint32(commons.GetEnvInt("ARGON2_KEYLEN", 32)),
		ArgonSaltLen: uint32(commons.GetEnvInt("ARGON2_SALTLEN", 16)),
	}
}

func (c *Crypto) HashAPIKey(key string) (string, error) {
	commons.Logger.Debug("Hashing API key")
	params := &argon2id.Params{
		Memory:      c.ArgonMemory,
		Iterations:  c.ArgonTime,
		Parallelism: c.ArgonThreads,
		SaltLength:  c.ArgonSaltLen,
		KeyLength:   c.ArgonKeyLen,
	}
	return argon2id.CreateHash(key, params)
}

// VerifyAPIKey checks key against an argon2id hash produced by HashAPIKey.
// The hash carries its own parameters, so c's settings do not matter here.
func (c *Crypto) VerifyAPIKey(key, encodedHash string) error {
	match, err := argon2id.ComparePasswordAndHash(key, encodedHash)
	if err != nil {
		return err
	}
	if !match {
		return ErrKeyMismatch
	}
	return nil
}

// GenerateAPIKey returns a new admin API key and its argon2id hash.
func (c *Crypto) GenerateAPIKey() (key, hash string, err error) {
	key, err = GenerateRandomString(APIKeyPrefix, 32, "hex")
	if err != nil {
		return "", "", err
	}
	hash, err = c.HashAPIKey(key)
	if err != nil {
		return "", "", err
	}
	return key, hash, nil
}

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supportedEncodings := []string{"hex", "base64"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.RawURLEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, supported encodings are: %s", encoding, supportedEncodings)
	}
}

// SignAdminToken issues an HS256 admin token for subject valid for ttl.
func SignAdminToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		Scope: AdminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAdminToken validates an admin token and returns its claims.
func ParseAdminToken(secret []byte, token string) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidToken
	}
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Scope != AdminScope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
