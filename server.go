// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"cellid-server/commons"
	"cellid-server/commons/mccmnc"
	"cellid-server/db"
	"cellid-server/handlers"
	"cellid-server/metrics"
	"cellid-server/middlewares"
	"cellid-server/rabbitmq"
	"cellid-server/routes"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()
	cfg := commons.LoadConfig()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
				v.RequestID,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
		commons.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		commons.Logger.Fatalf("Failed to register metrics: %v", err)
	}
	e.Use(collector.Middleware())

	var fromDB commons.CanonicalLoader
	if cfg.DatabaseConfigured() {
		db.InitDB(cfg)
		if slices.Contains(os.Args[1:], "--migrate-db") {
			commons.Logger.Debug("--migrate-db flag detected, running migrations")
			db.MigrateDB()
		}
		fromDB = func() ([]mccmnc.CanonicalRecord, error) {
			return db.LoadCanonicalRecords(db.Conn)
		}
	} else {
		commons.Logger.Info("No database configured, admin sync is disabled")
	}

	datasets, resolver := commons.InitCarrierResolver(cfg, fromDB)
	collector.SetDatasetCounts(len(datasets.Canonical), len(datasets.Structured), resolver.Overrides())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AMQPURL != "" {
		worker, err := rabbitmq.NewWorker(rabbitmq.WorkerConfig{
			URL:   cfg.AMQPURL,
			Queue: cfg.ResolveQueue,
		}, resolver, collector)
		if err != nil {
			commons.Logger.Fatalf("Failed to start resolve worker: %v", err)
		}
		defer worker.Close()
		if err := worker.Start(ctx); err != nil {
			commons.Logger.Fatalf("Failed to consume %s: %v", cfg.ResolveQueue, err)
		}
	}

	if cfg.JWTSecret == "" && cfg.AdminAPIKeyHash == "" {
		commons.Logger.Warn("Neither JWT_SECRET nor ADMIN_API_KEY_HASH is set, admin endpoints will reject every request")
	}
	routes.RegisterRoutes(e, routes.Deps{
		Carriers: handlers.NewCarrierHandler(resolver, collector),
		Admin: &handlers.AdminHandler{
			Datasets: datasets,
			Resolver: resolver,
			DB:       db.Conn,
			Metrics:  collector,
		},
		Metrics: collector,
		Auth: middlewares.AuthConfig{
			JWTSecret:  cfg.JWTSecret,
			APIKeyHash: cfg.AdminAPIKeyHash,
		},
	})

	go func() {
		if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	commons.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
