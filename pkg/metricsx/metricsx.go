// Package metricsx exposes the service's Prometheus collectors.
package metricsx

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "xcs",
		Name:      "http_in_flight_requests",
		Help:      "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xcs",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route.",
	}, []string{"route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "xcs",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latencies in seconds by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})

	// ScanDecisions counts access point scan outcomes.
	ScanDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xcs",
		Name:      "scan_decisions_total",
		Help:      "Access point scan decisions by result and reason.",
	}, []string{"result", "reason"})

	// WebhookDeliveries counts access point webhook attempts.
	WebhookDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xcs",
		Name:      "webhook_deliveries_total",
		Help:      "Access point webhook deliveries by outcome.",
	}, []string{"outcome"})

	// HousekeepingDeleted counts rows removed by housekeeping.
	HousekeepingDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xcs",
		Name:      "housekeeping_deleted_total",
		Help:      "Expired records deleted by housekeeping.",
	}, []string{"kind"})
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			ScanDecisions,
			WebhookDeliveries,
			HousekeepingDeleted,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentRoute records request counts and latency under route, which should
// be the mux pattern rather than the raw path.
func InstrumentRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.code)
		httpRequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(route, status).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
