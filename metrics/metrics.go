// SPDX-License-Identifier: GPL-3.0-only

package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of the carrier service.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
	Resolutions   *prometheus.CounterVec
	SyncRuns      *prometheus.CounterVec

	DatasetRecords *prometheus.GaugeVec
	Overrides      prometheus.Gauge
}

// NewCollector registers the service metrics against reg, defaulting to the
// global Prometheus registry when nil. Registering twice on the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellid_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, route, and status code.",
	}, []string{"method", "route", "code"}), "cellid_http_requests_total")
	if err != nil {
		return nil, err
	}
	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cellid_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	}, []string{"method", "route"}), "cellid_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}
	resolutions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellid_resolutions_total",
		Help: "Carrier resolutions, labeled by channel and the highest-priority source that matched.",
	}, []string{"channel", "source"}), "cellid_resolutions_total")
	if err != nil {
		return nil, err
	}
	syncRuns, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellid_sync_runs_total",
		Help: "Database sync runs, labeled by final status.",
	}, []string{"status"}), "cellid_sync_runs_total")
	if err != nil {
		return nil, err
	}
	records, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cellid_dataset_records",
		Help: "Number of records loaded per dataset.",
	}, []string{"dataset"}), "cellid_dataset_records")
	if err != nil {
		return nil, err
	}
	overrides, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cellid_overrides",
		Help: "Number of entries in the override table.",
	}), "cellid_overrides")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		HTTPRequests:   requests,
		HTTPDurations:  durations,
		Resolutions:    resolutions,
		SyncRuns:       syncRuns,
		DatasetRecords: records,
		Overrides:      overrides,
	}, nil
}

// Middleware records request counts and durations. Routes are labeled by
// their registered path so parameters do not explode cardinality.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if c == nil {
				return err
			}

			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method

			c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveResolution counts one resolution served over channel.
func (c *Collector) ObserveResolution(channel, source string) {
	if c == nil {
		return
	}
	c.Resolutions.WithLabelValues(channel, source).Inc()
}

func (c *Collector) ObserveSyncRun(status string) {
	if c == nil {
		return
	}
	c.SyncRuns.WithLabelValues(status).Inc()
}

// SetDatasetCounts publishes the sizes of the loaded datasets.
func (c *Collector) SetDatasetCounts(canonical, structured, overrides int) {
	if c == nil {
		return
	}
	c.DatasetRecords.WithLabelValues("canonical").Set(float64(canonical))
	c.DatasetRecords.WithLabelValues("structured").Set(float64(structured))
	c.Overrides.Set(float64(overrides))
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
