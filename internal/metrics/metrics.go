// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the evently server.
//
// Collectors are package-level so that services, middlewares and workers can
// record without carrying a metrics handle. [RegisterMetrics] must be called
// once at startup to expose them on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for auth flow metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// HTTPRequests counts served requests by route pattern, method and status.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "evently_http_requests_total",
		Help: "Total number of HTTP requests by route, method and status",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration is the histogram of request latency by route pattern.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "evently_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// AuthEvents counts auth flow operations by outcome. Failure means a
// client-side error such as a wrong password; error means the server failed.
var AuthEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "evently_auth_events_total",
		Help: "Total number of auth flow operations by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// EmailsSent counts outbound e-mails by kind and outcome.
var EmailsSent = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "evently_emails_sent_total",
		Help: "Total number of outbound e-mails by kind and outcome",
	},
	[]string{"kind", "outcome"},
)

// SweptSecrets counts verification tokens and reset codes cleared by the
// sweeper.
var SweptSecrets = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "evently_swept_secrets_total",
		Help: "Total number of expired verification tokens and reset codes cleared",
	},
)

// RegisterMetrics registers every evently collector plus the Go and process
// collectors with reg. Panics if registration fails (following prometheus
// convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequests,
		HTTPRequestDuration,
		AuthEvents,
		EmailsSent,
		SweptSecrets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// NewRegistry returns a registry with every evently collector registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	RegisterMetrics(reg)
	return reg
}

// Handler serves the metrics gathered by reg in the text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordAuthEvent increments the auth flow counter.
func RecordAuthEvent(operation, outcome string) {
	AuthEvents.WithLabelValues(operation, outcome).Inc()
}

// RecordEmail increments the outbound e-mail counter.
func RecordEmail(kind string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	EmailsSent.WithLabelValues(kind, outcome).Inc()
}

// RecordSweptSecrets adds n cleared secrets.
func RecordSweptSecrets(n int64) {
	if n > 0 {
		SweptSecrets.Add(float64(n))
	}
}
