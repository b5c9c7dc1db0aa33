// Package metrics holds the Prometheus collectors the service exports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service's collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	transitions     *prometheus.CounterVec
	filesGenerated  *prometheus.CounterVec
	fileValidations *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_batch_transitions_total",
			Help: "Committed batch lifecycle transitions by audit action.",
		}, []string{"action"}),
		filesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_files_generated_total",
			Help: "EFT files produced by format.",
		}, []string{"format"}),
		fileValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_file_validations_total",
			Help: "EFT file validations by result.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eft_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.transitions, m.filesGenerated, m.fileValidations, m.requestDuration)
	return m
}

func (m *Metrics) IncTransition(action string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action).Inc()
}

func (m *Metrics) IncFileGenerated(format string) {
	if m == nil {
		return
	}
	m.filesGenerated.WithLabelValues(format).Inc()
}

// IncFileValidation records a validation outcome: "valid" or the failure kind.
func (m *Metrics) IncFileValidation(result string) {
	if m == nil {
		return
	}
	m.fileValidations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
