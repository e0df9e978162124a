package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds the Prometheus metrics of the API layer.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	requestDuration      *prometheus.HistogramVec
	apiErrors            *prometheus.CounterVec
	sessionInvalidations prometheus.Counter
	logins               *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// metrics in it. A private registry lets tests call NewMetrics repeatedly.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "digtec_api_request_duration_seconds",
				Help:    "Duration of outbound API requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "outcome"},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digtec_api_errors_total",
				Help: "Failed API requests by error kind.",
			},
			[]string{"kind"},
		),
		sessionInvalidations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "digtec_session_invalidations_total",
				Help: "Sessions cleared after a 401 response.",
			},
		),
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digtec_logins_total",
				Help: "Login attempts by result.",
			},
			[]string{"result"},
		),
	}
}

// RecordRequest records one outbound request. outcome is "ok" or the error kind.
func (m *Metrics) RecordRequest(method, outcome string, d time.Duration) {
	m.requestDuration.WithLabelValues(method, outcome).Observe(d.Seconds())
	if outcome != "ok" {
		m.apiErrors.WithLabelValues(outcome).Inc()
	}
}

// IncrSessionInvalidation counts a 401-triggered session wipe.
func (m *Metrics) IncrSessionInvalidation() {
	m.sessionInvalidations.Inc()
}

// IncrLogin counts a login attempt with result "success" or "failure".
func (m *Metrics) IncrLogin(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// ErrorCount returns the cumulative number of errors of the given kind.
func (m *Metrics) ErrorCount(kind string) float64 {
	return counterValue(m.apiErrors.WithLabelValues(kind))
}

// LoginCount returns the cumulative number of logins with the given result.
func (m *Metrics) LoginCount(result string) float64 {
	return counterValue(m.logins.WithLabelValues(result))
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func counterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}
