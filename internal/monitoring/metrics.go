package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics holds the HTTP client collectors
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	Errors          *prometheus.CounterVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for callers that do not scrape Prometheus
type Snapshot struct {
	TotalRequests int64
	TotalFailures int64 // 4xx and 5xx responses
	TotalErrors   int64 // transport errors
	TotalDuration time.Duration
}

// NewHTTPMetrics creates the collectors and registers them on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)

	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gohelper_http_client_requests_total",
				Help: "Total number of outbound HTTP requests",
			},
			[]string{"method", "host", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gohelper_http_client_request_duration_seconds",
				Help:    "Outbound HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "host"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gohelper_http_client_response_size_bytes",
				Help:    "Outbound HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "host"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gohelper_http_client_errors_total",
				Help: "Total number of outbound HTTP transport errors",
			},
			[]string{"method", "host"},
		),
	}
}

// RecordRequest records a completed request
func (m *HTTPMetrics) RecordRequest(method, host string, status int, duration time.Duration, respSize int64) {
	if m == nil {
		return
	}

	m.RequestsTotal.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, host).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, host).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration
	if status >= 400 {
		m.snapshot.TotalFailures++
	}
	m.mu.Unlock()
}

// RecordError records a request that never produced a response
func (m *HTTPMetrics) RecordError(method, host string) {
	if m == nil {
		return
	}

	m.Errors.WithLabelValues(method, host).Inc()

	m.mu.Lock()
	m.snapshot.TotalErrors++
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *HTTPMetrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
