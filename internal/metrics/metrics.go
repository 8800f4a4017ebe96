// Package metrics exposes Prometheus collectors for the inquiry service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered for one service instance.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	Submissions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	FlightLinks        *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inquiry_submissions_total",
				Help: "Inquiry dispatch attempts by delivery channel and outcome",
			},
			[]string{"channel", "outcome"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inquiry_validation_failures_total",
				Help: "Rejected form fields by field name",
			},
			[]string{"field"},
		),
		FlightLinks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flight_search_links_total",
				Help: "Flight search link builds by outcome",
			},
			[]string{"outcome"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.Submissions, m.ValidationFailures, m.FlightLinks)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
