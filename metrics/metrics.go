// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for solver statistics.
//
// Collectors count even when unregistered; RegisterDefault attaches them
// (plus Go and process collectors) to Registry once, and the CLI serves
// Registry over HTTP.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry served by the CLI.
	Registry = prometheus.NewRegistry()

	// SolverEvents counts search events by method and kind
	// (label, dominated, expanded, pulse, restart).
	SolverEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lvroute_espprc_events_total", Help: "ESPPRC search events by method and kind."},
		[]string{"method", "event"},
	)
	// Solves counts finished ESPPRC solves by method and status.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lvroute_espprc_solves_total", Help: "ESPPRC solves by method and status."},
		[]string{"method", "status"},
	)
	// SolveDuration records ESPPRC solve durations in seconds.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "lvroute_espprc_solve_duration_seconds", Help: "ESPPRC solve duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10)},
		[]string{"method"},
	)

	// PricingIterations counts column-generation iterations.
	PricingIterations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "lvroute_vrptw_pricing_iterations_total", Help: "Column-generation pricing iterations."},
	)
	// ColumnsAdded counts routes added to the pool by source (initial, pricing, enumeration).
	ColumnsAdded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lvroute_vrptw_columns_total", Help: "Routes added to the column pool by source."},
		[]string{"source"},
	)
	// VRPTWDuration records whole VRPTW solves by final status.
	VRPTWDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "lvroute_vrptw_solve_duration_seconds", Help: "VRPTW solve duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(SolverEvents)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(PricingIterations)
		Registry.MustRegister(ColumnsAdded)
		Registry.MustRegister(VRPTWDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveSolve records one finished ESPPRC solve.
func ObserveSolve(method, status string, elapsed time.Duration, events map[string]int) {
	Solves.WithLabelValues(method, status).Inc()
	SolveDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	for ev, n := range events {
		if n > 0 {
			SolverEvents.WithLabelValues(method, ev).Add(float64(n))
		}
	}
}
