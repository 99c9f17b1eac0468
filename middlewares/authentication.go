// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"cellid-server/crypto"

	"github.com/labstack/echo/v4"
)

type AuthMethod int

const (
	AuthMethodJWT AuthMethod = iota
	AuthMethodAPIKey
)

// AuthConfig holds the admin credentials. An empty field disables the
// matching method.
type AuthConfig struct {
	JWTSecret  string
	APIKeyHash string
}

func VerifyAuthMiddleware(cfg AuthConfig, authMethods ...AuthMethod) func(echo.HandlerFunc) echo.HandlerFunc {
	if len(authMethods) == 0 {
		authMethods = []AuthMethod{AuthMethodJWT}
	}
	verifier := crypto.NewCrypto()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				logger.Warn("Authorization header missing or invalid.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Bearer token is required",
				}
			}

			if slices.Contains(authMethods, AuthMethodAPIKey) && cfg.APIKeyHash != "" &&
				strings.HasPrefix(token, crypto.APIKeyPrefix) {
				if err := verifier.VerifyAPIKey(token, cfg.APIKeyHash); err == nil {
					c.Set("auth_method", AuthMethodAPIKey)
					c.Set("auth_subject", "api-key")
					return next(c)
				}
			}

			if slices.Contains(authMethods, AuthMethodJWT) && cfg.JWTSecret != "" {
				claims, err := crypto.ParseAdminToken([]byte(cfg.JWTSecret), token)
				if err == nil {
					c.Set("auth_method", AuthMethodJWT)
					c.Set("auth_subject", claims.Subject)
					return next(c)
				}
				logger.Debugf("Admin token rejected: %v", err)
			}

			logger.Warn("Authentication failed.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired authentication token",
			}
		}
	}
}

// AuthenticatedSubject returns who passed VerifyAuthMiddleware for c.
func AuthenticatedSubject(c echo.Context) string {
	subject, _ := c.Get("auth_subject").(string)
	return subject
}
