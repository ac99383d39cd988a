// Package metrics holds the Prometheus collectors shared by the HTTP client
// and the stale-while-revalidate cache.
//
// A nil *Metrics is valid and records nothing, so components can take an
// optional metrics value without branching at every call site.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "doctorq"

// Metrics holds all Prometheus metrics for the SDK.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheEvictions   prometheus.Counter
	Revalidations    *prometheus.CounterVec
	StreamMessages   prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil registerer
// leaves the collectors unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests by target, method and status",
			},
			[]string{"target", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"target", "method"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Current number of API requests being processed",
			},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Loads served from cached data",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Loads that had no cached data",
			},
		),
		CacheEvictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "evictions_total",
				Help:      "Entries evicted from the cache",
			},
		),
		Revalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "revalidations_total",
				Help:      "Fetches issued by the cache by result",
			},
			[]string{"result"},
		),
		StreamMessages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "messages_total",
				Help:      "Messages forwarded from event streams",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RequestsTotal,
			m.RequestDuration,
			m.RequestsInFlight,
			m.CacheHits,
			m.CacheMisses,
			m.CacheEvictions,
			m.Revalidations,
			m.StreamMessages,
		)
	}

	return m
}

// RequestStarted marks a request as in flight.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.RequestsInFlight.Inc()
}

// RequestFinished records a completed request. A status of 0 means the
// request never got a response.
func (m *Metrics) RequestFinished(target, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsInFlight.Dec()

	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(target, method, statusLabel).Inc()
	m.RequestDuration.WithLabelValues(target, method).Observe(elapsed.Seconds())
}

// CacheHit records a load served from cached data.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// CacheMiss records a load with no cached data.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

// CacheEvicted records an LRU eviction.
func (m *Metrics) CacheEvicted() {
	if m == nil {
		return
	}
	m.CacheEvictions.Inc()
}

// Revalidated records the outcome of a cache fetch.
func (m *Metrics) Revalidated(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Revalidations.WithLabelValues(result).Inc()
}

// StreamMessage records a message forwarded from an event stream.
func (m *Metrics) StreamMessage() {
	if m == nil {
		return
	}
	m.StreamMessages.Inc()
}
