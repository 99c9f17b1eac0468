// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"cellid-server/commons"
	"cellid-server/handlers"
	"cellid-server/metrics"
	"cellid-server/middlewares"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Carriers *handlers.CarrierHandler
	Admin    *handlers.AdminHandler
	Metrics  *metrics.Collector
	Auth     middlewares.AuthConfig
}

func RegisterRoutes(e *echo.Echo, deps Deps) {
	commons.Logger.Debug("Registering v1 routes")
	e.GET("/healthz", deps.Carriers.HealthHandler)
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	api_v1 := e.Group("/v1")
	api_v1.GET("/carriers", deps.Carriers.QueryCarrierHandler)
	api_v1.GET("/carriers/:mcc/:mnc", deps.Carriers.GetCarrierHandler)
	api_v1.GET("/countries/:mcc", deps.Carriers.GetCountryHandler)
	api_v1.GET("/flags/:input", deps.Carriers.GetFlagHandler)
	api_v1.GET("/phone/:number", deps.Carriers.GetPhoneHandler)

	admin := api_v1.Group("/admin", middlewares.VerifyAuthMiddleware(deps.Auth, middlewares.AuthMethodJWT, middlewares.AuthMethodAPIKey))
	admin.GET("/datasets", deps.Admin.GetDatasetsHandler)
	admin.POST("/sync", deps.Admin.SyncHandler)
	admin.GET("/sync-runs", deps.Admin.ListSyncRunsHandler)
	commons.Logger.Info("v1 routes registered successfully")
}
