package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	CodecErrors     *prometheus.CounterVec
	TransportErrors *prometheus.CounterVec

	// Snapshot for callers without a Prometheus scraper
	snapshot Snapshot

	mu sync.RWMutex
}

// StatusError is the status label of requests that failed in transport.
const StatusError = "error"

// Snapshot holds running totals
type Snapshot struct {
	TotalRequests   int64
	TotalErrors     int64
	CodecErrors     int64
	TransportErrors int64
	TotalDuration   float64 // sum of all request durations
}

var (
	registered   = make(map[prometheus.Registerer]*Metrics)
	registeredMu sync.Mutex
)

// Default returns the process-wide collector registered with
// prometheus.DefaultRegisterer.
func Default() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// NewMetrics returns the collector registered with reg, creating it on first
// use. Collectors can only be registered once per registerer, so every call
// with the same reg shares one Metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	registeredMu.Lock()
	defer registeredMu.Unlock()

	if m, ok := registered[reg]; ok {
		return m
	}
	m := newMetrics(reg)
	registered[reg] = m
	return m
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courier_requests_total",
				Help: "Total number of requests sent",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courier_request_duration_seconds",
				Help:    "Request round-trip duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courier_response_size_bytes",
				Help:    "Response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
		CodecErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courier_codec_errors_total",
				Help: "Total number of codec parse or serialize failures",
			},
			[]string{"mime", "direction"},
		),
		TransportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courier_transport_errors_total",
				Help: "Total number of transport failures",
			},
			[]string{"method"},
		),
	}
}

// RecordRequest records a completed round trip
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration, respSize int) {
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFailure records a round trip that produced no response. It is
// counted under the "error" status.
func (m *Metrics) RecordFailure(method string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, StatusError).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalErrors++
	m.snapshot.TotalDuration += duration.Seconds()
	m.mu.Unlock()
}

// RecordCodecError records a codec failure; direction is "parse" or "serialize"
func (m *Metrics) RecordCodecError(mime, direction string) {
	if mime == "" {
		mime = "none"
	}
	m.CodecErrors.WithLabelValues(mime, direction).Inc()

	m.mu.Lock()
	m.snapshot.CodecErrors++
	m.mu.Unlock()
}

// RecordTransportError records a failed transport call
func (m *Metrics) RecordTransportError(method string) {
	m.TransportErrors.WithLabelValues(method).Inc()

	m.mu.Lock()
	m.snapshot.TransportErrors++
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Timer measures a request round trip
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer starts a timer for method
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop records the elapsed time with the response status and size
func (t *Timer) Stop(status, respSize int) time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordRequest(t.method, status, duration, respSize)
	return duration
}

// Fail records the elapsed time of a request that failed in transport
func (t *Timer) Fail() time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordFailure(t.method, duration)
	return duration
}
