// Package metrics provides Prometheus instrumentation for the
// orchestration pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrchestrationDuration *prometheus.HistogramVec
	FirstTokenLatency     prometheus.Histogram

	LLMCallDuration *prometheus.HistogramVec

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	ReplayDuration   prometheus.Histogram
	ReplayCallsTotal *prometheus.CounterVec
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	m := &Metrics{}

	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unfoldingtheword_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.OrchestrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_orchestration_duration_seconds",
			Help:    "End-to-end duration of chat turns in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"intent"},
	)

	m.FirstTokenLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_first_token_latency_seconds",
			Help:    "Time from request start to first streamed token",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	m.LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_llm_call_duration_seconds",
			Help:    "Duration of model API calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"operation"},
	)

	m.UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unfoldingtheword_upstream_requests_total",
			Help: "Total number of translation-helps requests",
		},
		[]string{"endpoint", "status"},
	)

	m.UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_upstream_request_duration_seconds",
			Help:    "Duration of translation-helps requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	m.ReplayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unfoldingtheword_replay_duration_seconds",
			Help:    "Duration of tool-call replay rounds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.ReplayCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unfoldingtheword_replay_calls_total",
			Help: "Tool-call signatures replayed, by tool and outcome",
		},
		[]string{"tool", "status"},
	)

	return m
}

// Recording helpers are safe on a nil *Metrics so adapters can be
// constructed without instrumentation in tests.

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpstreamRequest records one translation-helps call.
func (m *Metrics) RecordUpstreamRequest(endpoint, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveLLMCall records the duration of one model API call.
func (m *Metrics) ObserveLLMCall(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.LLMCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveReplayDuration records the duration of one replay round.
func (m *Metrics) ObserveReplayDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.ReplayDuration.Observe(duration.Seconds())
}

// RecordReplayCall records one replayed signature.
func (m *Metrics) RecordReplayCall(tool, status string) {
	if m == nil {
		return
	}
	m.ReplayCallsTotal.WithLabelValues(tool, status).Inc()
}
