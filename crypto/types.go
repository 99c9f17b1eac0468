// SPDX-License-Identifier: GPL-3.0-only

package crypto

import "github.com/golang-jwt/jwt/v5"

type Crypto struct {
	ArgonTime    uint32
	ArgonMemory  uint32
	ArgonThreads uint8
	ArgonKeyLen  uint32
	ArgonSaltLen uint32
}

// AdminClaims are carried by admin bearer tokens.
type AdminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
