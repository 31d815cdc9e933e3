// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability registers the service's Prometheus metrics.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Lookup outcomes recorded by ObserveLookup.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// Collector bundles Prometheus metrics for the HTTP surface, the engine
// and the resolver.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Computations   *prometheus.CounterVec
	ComputedRows   *prometheus.CounterVec
	DegenerateRows *prometheus.CounterVec

	Lookups  *prometheus.CounterVec
	Sessions prometheus.Gauge
}

// NewCollector registers metrics against reg, defaulting to the global
// registry when nil. Registering twice on the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.HTTPRequests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kinematics_http_requests_total",
		Help: "Handled HTTP requests, labeled by route, method and status code.",
	}, []string{"route", "method", "code"})); err != nil {
		return nil, err
	}
	if c.HTTPDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kinematics_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route"})); err != nil {
		return nil, err
	}
	if c.Computations, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kinematics_computations_total",
		Help: "Engine computations, labeled by input mode.",
	}, []string{"mode"})); err != nil {
		return nil, err
	}
	if c.ComputedRows, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kinematics_rows_total",
		Help: "Result rows computed, labeled by input mode.",
	}, []string{"mode"})); err != nil {
		return nil, err
	}
	if c.DegenerateRows, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kinematics_degenerate_rows_total",
		Help: "Result rows with non-finite values, labeled by input mode.",
	}, []string{"mode"})); err != nil {
		return nil, err
	}
	if c.Lookups, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kinematics_name_lookups_total",
		Help: "Star name lookups, labeled by outcome.",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if c.Sessions, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kinematics_sessions",
		Help: "Current number of live sessions.",
	})); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveComputation records one engine run. It satisfies
// transform.Observer.
func (c *Collector) ObserveComputation(mode types.InputMode, rows, degenerate int) {
	if c == nil {
		return
	}
	m := mode.String()
	c.Computations.WithLabelValues(m).Inc()
	c.ComputedRows.WithLabelValues(m).Add(float64(rows))
	c.DegenerateRows.WithLabelValues(m).Add(float64(degenerate))
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.HTTPDurations.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveLookup records a name lookup outcome.
func (c *Collector) ObserveLookup(outcome string) {
	if c == nil {
		return
	}
	c.Lookups.WithLabelValues(outcome).Inc()
}

// SetSessions sets the live-session gauge.
func (c *Collector) SetSessions(n int) {
	if c == nil {
		return
	}
	c.Sessions.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return nil, err
	}
	return gauge, nil
}
