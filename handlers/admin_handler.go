// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cellid-server/commons/mccmnc"
	"cellid-server/db"
	"cellid-server/metrics"
	"cellid-server/middlewares"
	"cellid-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AdminHandler exposes dataset metadata and the database sync. DB is nil
// when the server runs without a database.
type AdminHandler struct {
	Datasets *mccmnc.Datasets
	Resolver *mccmnc.Resolver
	DB       *gorm.DB
	Metrics  *metrics.Collector
}

// GetDatasetsHandler godoc
// @Summary      Loaded dataset metadata
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer admin token or API key."  default(Bearer <your_token_here>)
// @Success      200 {object}  DatasetsResponse
// @Failure      401 {object}  echo.HTTPError  "Unauthorized"
// @Router       /v1/admin/datasets [get]
func (h *AdminHandler) GetDatasetsHandler(c echo.Context) error {
	stats := h.Resolver.Index().Stats()
	return c.JSON(http.StatusOK, DatasetsResponse{
		Source:                h.Datasets.Source,
		CanonicalRecords:      len(h.Datasets.Canonical),
		StructuredRecords:     len(h.Datasets.Structured),
		StructuredAvailable:   h.Datasets.StructuredAvailable,
		CanonicalFingerprint:  h.Datasets.CanonicalFingerprint,
		StructuredFingerprint: h.Datasets.StructuredFingerprint,
		ExactKeys:             stats.Exact,
		NumericKeys:           stats.Numeric,
		Countries:             stats.Countries,
		Overrides:             h.Resolver.Overrides(),
		LoadedAt:              h.Datasets.LoadedAt.Format(time.RFC3339),
	})
}

// SyncHandler godoc
// @Summary      Sync loaded datasets into the database
// @Description  Replaces mcc_mnc_carriers with the loaded canonical records and applies structured bands.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer admin token or API key."  default(Bearer <your_token_here>)
// @Success      200 {object}  SyncRunResponse  "Sync completed"
// @Failure      401 {object}  echo.HTTPError   "Unauthorized"
// @Failure      422 {object}  echo.HTTPError   "No valid rows to insert"
// @Failure      503 {object}  echo.HTTPError   "No database configured"
// @Router       /v1/admin/sync [post]
func (h *AdminHandler) SyncHandler(c echo.Context) error {
	logger := c.Logger()
	if h.DB == nil {
		return &echo.HTTPError{
			Code:    http.StatusServiceUnavailable,
			Message: "no database configured, set DB_DIALECT to enable syncing",
		}
	}

	logger.Infof("Database sync requested by %s", middlewares.AuthenticatedSubject(c))
	run, err := db.SyncDatasets(h.DB, h.Datasets, models.TriggerAdmin)
	h.Metrics.ObserveSyncRun(string(run.Status))
	if err != nil {
		logger.Errorf("Database sync failed: %v", err)
		if errors.Is(err, db.ErrNoValidRows) {
			return &echo.HTTPError{
				Code:    http.StatusUnprocessableEntity,
				Message: "sync failed: " + err.Error(),
			}
		}
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, syncRunResponse(run))
}

// ListSyncRunsHandler godoc
// @Summary      Recent database sync runs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer admin token or API key."  default(Bearer <your_token_here>)
// @Param        limit  query  int  false  "Maximum number of runs (1-100)"  default(20)
// @Success      200 {array}   SyncRunResponse
// @Failure      503 {object}  echo.HTTPError  "No database configured"
// @Router       /v1/admin/sync-runs [get]
func (h *AdminHandler) ListSyncRunsHandler(c echo.Context) error {
	if h.DB == nil {
		return &echo.HTTPError{
			Code:    http.StatusServiceUnavailable,
			Message: "no database configured",
		}
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "limit must be between 1 and 100",
			}
		}
		limit = n
	}

	runs, err := db.RecentSyncRuns(h.DB, limit)
	if err != nil {
		c.Logger().Errorf("Failed to list sync runs: %v", err)
		return echo.ErrInternalServerError
	}
	out := make([]SyncRunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, syncRunResponse(run))
	}
	return c.JSON(http.StatusOK, out)
}

func syncRunResponse(run models.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		RunID:        run.RID.String(),
		Trigger:      string(run.Trigger),
		Status:       string(run.Status),
		Inserted:     run.Inserted,
		Skipped:      run.Skipped,
		BandsUpdated: run.BandsUpdated,
		BandsMissed:  run.BandsMissed,
		Error:        run.Error,
		CreatedAt:    run.CreatedAt.Format(time.RFC3339),
	}
}
