package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	BookingsTotal       *prometheus.CounterVec
	TransitionsTotal    *prometheus.CounterVec
	NotificationsFailed prometheus.Counter

	AccountingDegraded prometheus.Counter
	ReportsExported    prometheus.Counter
}

// NewCollector registers the collector on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome (created, conflict, past, busy, invalid, error).",
		}, []string{"outcome"}),

		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "scheduling",
			Name:      "transitions_total",
			Help:      "Appointment status transitions by operation and result.",
		}, []string{"operation", "result"}),

		NotificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "notify",
			Name:      "failed_total",
			Help:      "Appointment notifications that could not be delivered.",
		}),

		AccountingDegraded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "accounting",
			Name:      "degraded_total",
			Help:      "Income summaries served empty because the range query failed. Alert if non-zero.",
		}),

		ReportsExported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "accounting",
			Name:      "reports_exported_total",
			Help:      "Cash cut spreadsheets exported.",
		}),
	}
}

func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
