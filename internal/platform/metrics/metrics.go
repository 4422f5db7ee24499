// Package metrics exposes Prometheus instrumentation for the playback core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the playback daemon.
type Metrics struct {
	registry           *prometheus.Registry
	stateChangesTotal  prometheus.Counter
	nativeRetriesTotal prometheus.Counter
	recreationsTotal   prometheus.Counter
	playbackErrors     prometheus.Counter
	transportCommands  prometheus.Counter
	activeBackend      prometheus.Gauge
}

// Backend gauge values.
const (
	BackendNone   = 0
	BackendNative = 1
	BackendWidget = 2
)

// New creates and registers Prometheus metrics for the daemon.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	stateChangesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_state_changes_total",
		Help: "Total number of published playback state changes",
	})
	nativeRetriesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_native_retries_total",
		Help: "Total number of native engine retry attempts",
	})
	recreationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_widget_recreations_total",
		Help: "Total number of widget surface recreations",
	})
	playbackErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_errors_total",
		Help: "Total number of backend playback failures",
	})
	transportCommands := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_transport_commands_total",
		Help: "Total number of remote transport commands handled",
	})
	activeBackend := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_active_backend",
		Help: "Currently active backend (0=none, 1=native, 2=widget)",
	})

	registry.MustRegister(
		stateChangesTotal,
		nativeRetriesTotal,
		recreationsTotal,
		playbackErrors,
		transportCommands,
		activeBackend,
	)

	return &Metrics{
		registry:           registry,
		stateChangesTotal:  stateChangesTotal,
		nativeRetriesTotal: nativeRetriesTotal,
		recreationsTotal:   recreationsTotal,
		playbackErrors:     playbackErrors,
		transportCommands:  transportCommands,
		activeBackend:      activeBackend,
	}
}

// IncStateChanges increments the published state change counter.
func (m *Metrics) IncStateChanges() {
	m.stateChangesTotal.Inc()
}

// IncNativeRetries increments the native retry counter.
func (m *Metrics) IncNativeRetries() {
	m.nativeRetriesTotal.Inc()
}

// IncRecreations increments the widget recreation counter.
func (m *Metrics) IncRecreations() {
	m.recreationsTotal.Inc()
}

// IncPlaybackErrors increments the playback failure counter.
func (m *Metrics) IncPlaybackErrors() {
	m.playbackErrors.Inc()
}

// IncTransportCommands increments the remote transport command counter.
func (m *Metrics) IncTransportCommands() {
	m.transportCommands.Inc()
}

// SetActiveBackend records which backend currently owns playback.
func (m *Metrics) SetActiveBackend(v int) {
	m.activeBackend.Set(float64(v))
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
