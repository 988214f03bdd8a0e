// Package metrics exposes booking engine counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	bookings        *prometheus.CounterVec
	bookingDuration *prometheus.HistogramVec
	cancellations   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New registers collectors on a private registry so tests can build many.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "academy_bookings_total",
				Help: "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		bookingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "academy_booking_duration_seconds",
				Help:    "Time taken to decide a booking attempt",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		cancellations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "academy_cancellations_total",
				Help: "Cancellation requests by whether the booking changed",
			},
			[]string{"changed"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "academy_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
	}
	m.registry.MustRegister(
		m.bookings,
		m.bookingDuration,
		m.cancellations,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveBooking(outcome string, elapsed time.Duration) {
	m.bookings.WithLabelValues(outcome).Inc()
	m.bookingDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCancellation(changed bool) {
	m.cancellations.WithLabelValues(strconv.FormatBool(changed)).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
