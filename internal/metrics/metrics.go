package metrics

import (
	"net/http"
	"strconv"
	"time"

	"thermostat_panel/internal/device"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PanelMetrics tracks device traffic and reported failures.
type PanelMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	reported *prometheus.CounterVec
}

var _ device.Observer = (*PanelMetrics)(nil)

// New registers the panel collectors on reg.
func New(reg prometheus.Registerer) *PanelMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "panel_device_requests_total",
		Help: "Requests sent to the device, by method, path and outcome.",
	}, []string{"method", "path", "outcome", "code"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "panel_device_request_duration_seconds",
		Help:    "Round-trip time of device requests.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"path"})
	reported := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "panel_errors_reported_total",
		Help: "Failures surfaced to the operator, by operation.",
	}, []string{"operation"})

	reg.MustRegister(requests, latency, reported)

	return &PanelMetrics{requests: requests, latency: latency, reported: reported}
}

// ObserveRequest implements device.Observer.
func (m *PanelMetrics) ObserveRequest(method, path string, kind device.ResultKind, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, path, kind.String(), strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(path).Observe(elapsed.Seconds())
}

// ErrorReported counts one failure shown to the operator.
func (m *PanelMetrics) ErrorReported(operation string) {
	m.reported.WithLabelValues(operation).Inc()
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
