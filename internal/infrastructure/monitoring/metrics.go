package monitoring

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/resilience"
)

const namespace = "blueprint_studio"

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Codec metrics
	CodecOperations *prometheus.CounterVec

	// History metrics
	HistorySize     prometheus.Gauge
	StorageFailures *prometheus.CounterVec
	BreakerState    prometheus.Gauge

	startTime time.Time

	// Snapshot for the JSON health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests   int64   `json:"totalRequests"`
	TotalErrors     int64   `json:"totalErrors"`
	AvgResponseTime float64 `json:"avgResponseTimeMs"`
	Decodes         int64   `json:"decodes"`
	DecodeFailures  int64   `json:"decodeFailures"`
	Encodes         int64   `json:"encodes"`
	HistorySize     int64   `json:"historySize"`
	StorageFailures int64   `json:"storageFailures"`
	UptimeSeconds   float64 `json:"uptimeSeconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_size_bytes",
				Help:      "HTTP request size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		CodecOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codec_operations_total",
				Help:      "Blueprint decode and encode operations by result",
			},
			[]string{"op", "result"},
		),

		HistorySize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "history_entries",
				Help:      "Number of blueprints in the history",
			},
		),
		StorageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_failures_total",
				Help:      "History storage operations that failed and were ignored",
			},
			[]string{"op"},
		),
		BreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "storage_breaker_state",
				Help:      "Storage circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry holding every metric
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCodecOperation counts a decode or encode by result
func (m *Metrics) RecordCodecOperation(op string, err error) {
	m.CodecOperations.WithLabelValues(op, Result(err)).Inc()

	m.mu.Lock()
	switch op {
	case "decode":
		m.snapshot.Decodes++
		if err != nil {
			m.snapshot.DecodeFailures++
		}
	case "encode":
		m.snapshot.Encodes++
	}
	m.mu.Unlock()
}

// SetHistorySize sets the history gauge
func (m *Metrics) SetHistorySize(n int) {
	m.HistorySize.Set(float64(n))
	m.mu.Lock()
	m.snapshot.HistorySize = int64(n)
	m.mu.Unlock()
}

// RecordStorageFailure counts a swallowed storage error
func (m *Metrics) RecordStorageFailure(op string) {
	m.StorageFailures.WithLabelValues(op).Inc()
	m.mu.Lock()
	m.snapshot.StorageFailures++
	m.mu.Unlock()
}

// SetBreakerState records the storage breaker state
func (m *Metrics) SetBreakerState(state resilience.State) {
	m.BreakerState.Set(float64(state))
}

// Snapshot returns the current values for the JSON API
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgResponseTime = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}

// Result maps a codec error to a metric label
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, blueprint.ErrEmptyInput) {
		return "empty"
	}
	var de *blueprint.DecodeError
	if errors.As(err, &de) {
		return string(de.Stage)
	}
	if blueprint.IsEncodeError(err) {
		return "invalid"
	}
	return "error"
}
