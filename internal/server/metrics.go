package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements the observability hook interfaces on a prometheus
// registry. One instance is registered globally at server startup, so the
// pipeline and cache emit metrics without importing prometheus themselves.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	layoutsTotal   prometheus.Counter
	layoutDuration prometheus.Histogram

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec
}

// NewMetrics creates the metric set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.httpRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infraflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.httpRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "infraflow_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.layoutsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "infraflow_layouts_total",
			Help: "Total number of layout computations",
		},
	)

	m.layoutDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "infraflow_layout_duration_seconds",
			Help:    "Layout computation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.cacheHits = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infraflow_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"key_type"},
	)

	m.cacheMisses = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infraflow_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"key_type"},
	)

	m.cacheWrites = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infraflow_cache_writes_total",
			Help: "Total number of cache writes",
		},
		[]string{"key_type"},
	)

	return m
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// =============================================================================
// observability.HTTPHooks
// =============================================================================

func (m *Metrics) OnRequest(ctx context.Context, method, path string) {}

func (m *Metrics) OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

func (m *Metrics) OnLoadStart(ctx context.Context, source string) {}
func (m *Metrics) OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error) {
}

func (m *Metrics) OnLayoutStart(ctx context.Context, nodeCount int) {}

func (m *Metrics) OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration, err error) {
	if err != nil {
		return
	}
	m.layoutsTotal.Inc()
	m.layoutDuration.Observe(duration.Seconds())
}

func (m *Metrics) OnExportStart(ctx context.Context, formats []string) {}
func (m *Metrics) OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error) {
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

func (m *Metrics) OnCacheHit(ctx context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(ctx context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.cacheWrites.WithLabelValues(keyType).Inc()
}
