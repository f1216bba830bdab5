package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles prometheus collectors used by the model server.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	ResponseBytesTotal *prometheus.CounterVec

	registry    *prometheus.Registry
	metricsPath string
}

// New registers the collectors on registry. metricsPath is the route the
// exposition handler is mounted on; it gets its own route label.
func New(registry *prometheus.Registry, metricsPath string) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "model_server_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "model_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		ResponseBytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "model_server_response_bytes_total",
			Help: "Total number of response body bytes written.",
		}, []string{"route"}),
		registry:    registry,
		metricsPath: metricsPath,
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.ResponseBytesTotal,
	)

	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		route := m.normalizeRoute(r.URL.Path)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
		m.ResponseBytesTotal.WithLabelValues(route).Add(float64(wrapped.bytes))
	})
}

// normalizeRoute keeps label cardinality bounded: folder and model names
// never become label values.
func (m *Metrics) normalizeRoute(path string) string {
	switch {
	case m.metricsPath != "" && path == m.metricsPath:
		return "/metrics"
	case path == "/health":
		return "/health"
	case path == "/model":
		return "/model"
	case strings.HasPrefix(path, "/model/"):
		return "/model/*"
	case strings.HasPrefix(path, "/models/"):
		return "/models/*"
	default:
		return "other"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Flush keeps streaming behavior for handlers that require it.
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
