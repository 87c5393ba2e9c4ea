package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments outgoing gateway calls.
type Metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fallbackTotal   prometheus.Counter
}

// NewMetrics registers the gateway collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Total outgoing backend requests",
	}, []string{"operation", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Duration of outgoing backend requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	fallbackTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_slot_fallback_total",
		Help: "Times the deterministic interview-slot fallback was served",
	})

	registry.MustRegister(requestTotal, requestDuration, fallbackTotal)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		fallbackTotal:   fallbackTotal,
	}
}

// Record counts one outgoing request. Status 0 means the transport failed
// before a response arrived.
func (m *Metrics) Record(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFallback counts a served slot fallback.
func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.fallbackTotal.Inc()
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
