package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the service
type Metrics struct {
	// Draft bridge outcomes by kind and outcome (ok, empty, error)
	DraftRequests *prometheus.CounterVec

	// Draft generation latency by kind
	DraftLatency *prometheus.HistogramVec

	// Role elevation attempts by result
	Elevations *prometheus.CounterVec

	// HTTP requests by method, route and status code
	HTTPRequests *prometheus.CounterVec
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DraftRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smartrt_draft_requests_total",
			Help: "Total draft generation requests by kind and outcome",
		}, []string{"kind", "outcome"}),

		DraftLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smartrt_draft_duration_seconds",
			Help:    "Duration of draft generation calls by kind",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"kind"}),

		Elevations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smartrt_role_elevations_total",
			Help: "Total role elevation attempts by result",
		}, []string{"result"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smartrt_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// IncrementDraft records a draft outcome
func (m *Metrics) IncrementDraft(kind, outcome string) {
	if m != nil {
		m.DraftRequests.WithLabelValues(kind, outcome).Inc()
	}
}

// ObserveDraftLatency records the duration of a generation call
func (m *Metrics) ObserveDraftLatency(kind string, d time.Duration) {
	if m != nil {
		m.DraftLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementElevation records a role elevation attempt
func (m *Metrics) IncrementElevation(result string) {
	if m != nil {
		m.Elevations.WithLabelValues(result).Inc()
	}
}

// IncrementHTTPRequest records a served request
func (m *Metrics) IncrementHTTPRequest(method, route, status string) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	}
}
