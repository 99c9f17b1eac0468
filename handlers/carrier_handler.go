// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cellid-server/commons/mccmnc"
	"cellid-server/metrics"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
)

// CarrierHandler serves read-only lookups against an immutable resolver.
type CarrierHandler struct {
	Resolver *mccmnc.Resolver
	Metrics  *metrics.Collector
}

func NewCarrierHandler(resolver *mccmnc.Resolver, collector *metrics.Collector) *CarrierHandler {
	return &CarrierHandler{Resolver: resolver, Metrics: collector}
}

// GetCarrierHandler godoc
// @Summary      Resolve a carrier
// @Description  Resolves an MCC/MNC pair into merged carrier information. Unknown pairs resolve to a fallback record rather than an error.
// @Tags         carriers
// @Produce      json
// @Param        mcc  path  string  true  "Mobile country code"  example(310)
// @Param        mnc  path  string  true  "Mobile network code"  example(410)
// @Success      200 {object}  CarrierResponse  "Carrier resolved"
// @Success      304 "Not modified"
// @Router       /v1/carriers/{mcc}/{mnc} [get]
func (h *CarrierHandler) GetCarrierHandler(c echo.Context) error {
	return h.resolve(c, c.Param("mcc"), c.Param("mnc"))
}

// QueryCarrierHandler godoc
// @Summary      Resolve a carrier by query
// @Description  Same as GET /v1/carriers/{mcc}/{mnc} with the codes passed as query parameters.
// @Tags         carriers
// @Produce      json
// @Param        mcc  query  string  true  "Mobile country code"  example(310)
// @Param        mnc  query  string  true  "Mobile network code"  example(410)
// @Success      200 {object}  CarrierResponse  "Carrier resolved"
// @Success      304 "Not modified"
// @Failure      400 {object}  echo.HTTPError   "mcc and mnc are required"
// @Router       /v1/carriers [get]
func (h *CarrierHandler) QueryCarrierHandler(c echo.Context) error {
	mcc := strings.TrimSpace(c.QueryParam("mcc"))
	mnc := strings.TrimSpace(c.QueryParam("mnc"))
	if mcc == "" || mnc == "" {
		c.Logger().Warn("Carrier query without mcc or mnc.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "mcc and mnc query parameters are required",
		}
	}
	return h.resolve(c, mcc, mnc)
}

func (h *CarrierHandler) resolve(c echo.Context, mcc, mnc string) error {
	info, sources := h.Resolver.ResolveWithSources(mcc, mnc)
	h.Metrics.ObserveResolution("http", sources.Label())
	c.Logger().Debugf("Resolved %s-%s from %s", mcc, mnc, sources.Label())
	return jsonWithETag(c, http.StatusOK, info)
}

// GetCountryHandler godoc
// @Summary      Look up a country by MCC
// @Description  Returns the ISO code and flag of the first dataset entry carrying a country for the MCC.
// @Tags         countries
// @Produce      json
// @Param        mcc  path  string  true  "Mobile country code"  example(262)
// @Success      200 {object}  CountryResponse  "Country found"
// @Failure      404 {object}  echo.HTTPError   "No country known for this MCC"
// @Router       /v1/countries/{mcc} [get]
func (h *CarrierHandler) GetCountryHandler(c echo.Context) error {
	mcc := c.Param("mcc")
	iso, ok := h.Resolver.CountryCode(mcc)
	if !ok {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("no country known for MCC %s", strings.TrimSpace(mcc)),
		}
	}
	return jsonWithETag(c, http.StatusOK, CountryResponse{
		MCC:  strings.TrimSpace(mcc),
		ISO:  &iso,
		Flag: h.Resolver.CountryFlag(iso),
	})
}

// GetFlagHandler godoc
// @Summary      Flag emoji for an MCC or ISO code
// @Tags         countries
// @Produce      json
// @Param        input  path  string  true  "MCC digits or ISO 3166-1 alpha-2 code"  example(de)
// @Success      200 {object}  FlagResponse  "Flag, empty when unknown"
// @Router       /v1/flags/{input} [get]
func (h *CarrierHandler) GetFlagHandler(c echo.Context) error {
	input := c.Param("input")
	return jsonWithETag(c, http.StatusOK, FlagResponse{
		Input: input,
		Flag:  h.Resolver.CountryFlag(input),
	})
}

// GetPhoneHandler godoc
// @Summary      Resolve the carrier of a phone number
// @Description  Uses numbering plan metadata to find the region and original carrier of an E.164 number, then matches it against the carrier datasets. Ported numbers report their original carrier.
// @Tags         carriers
// @Produce      json
// @Param        number  path  string  true  "E.164 phone number"  example(+447400123456)
// @Success      200 {object}  PhoneLookupResponse  "Lookup result, match is null when no carrier matched"
// @Failure      400 {object}  echo.HTTPError       "Invalid phone number"
// @Router       /v1/phone/{number} [get]
func (h *CarrierHandler) GetPhoneHandler(c echo.Context) error {
	lookup, err := h.Resolver.ResolvePhone(c.Param("number"))
	if err != nil {
		if errors.Is(err, mccmnc.ErrInvalidPhoneNumber) {
			c.Logger().Warnf("Phone lookup rejected: %v", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "invalid phone number, use E.164 format such as +447400123456",
			}
		}
		c.Logger().Errorf("Phone lookup failed: %v", err)
		return echo.ErrInternalServerError
	}
	source := "unmatched"
	if lookup.Match != nil {
		source = "matched"
	}
	h.Metrics.ObserveResolution("phone", source)
	return c.JSON(http.StatusOK, lookup)
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object}  HealthResponse
// @Router       /healthz [get]
func (h *CarrierHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:           "ok",
		CanonicalRecords: h.Resolver.Index().Stats().Canonical,
	})
}

// jsonWithETag writes v with a strong ETag derived from the encoded body and
// answers 304 when the client already holds it.
func jsonWithETag(c echo.Context, code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sum := xxh3.Hash128(body)
	etag := fmt.Sprintf(`"%016x%016x"`, sum.Hi, sum.Lo)

	res := c.Response()
	res.Header().Set("ETag", etag)
	res.Header().Set("Cache-Control", "public, max-age=300")
	if etagMatches(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(code, body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
