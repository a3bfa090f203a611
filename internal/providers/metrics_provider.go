package providers

import (
	"activitydash/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncBackendCalls(resource string, status int)
	ObserveBackendDuration(resource string, duration time.Duration)
	SetBackendUp(up bool)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	backendUp       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

// IncBackendCalls counts an upstream call; status 0 means the request never
// produced a response.
func (m *MetricsProvider) IncBackendCalls(resource string, status int) {
	bucket := "error"
	if status > 0 {
		bucket = httpStatusBucket(status)
	}
	m.backendCalls.WithLabelValues(resource, bucket).Inc()
}

func (m *MetricsProvider) ObserveBackendDuration(resource string, duration time.Duration) {
	m.backendDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetBackendUp(up bool) {
	if up {
		m.backendUp.Set(1)
		return
	}
	m.backendUp.Set(0)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dash_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dash_viewstate_hits_total",
			Help: "Total number of view state lookups that found a value",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dash_viewstate_misses_total",
			Help: "Total number of view state lookups that found nothing",
		}),
		backendCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dash_backend_calls_total",
			Help: "Total number of calls to the backend service",
		}, []string{"resource", "status"}),
		backendDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dash_backend_call_duration_seconds",
			Help:    "Backend call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		backendUp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dash_backend_up",
			Help: "1 when the last backend health check succeeded",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncBackendCalls(_ string, _ int)                  {}
func (n *noopMetrics) ObserveBackendDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetBackendUp(_ bool)                              {}
