// Package metrics exposes Prometheus counters for audit recording and authentication.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Audit entry results
const (
	ResultSaved  = "saved"
	ResultFailed = "failed"
)

// Metrics holds the service's collectors on a private registry
type Metrics struct {
	registry     *prometheus.Registry
	AuditEntries *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		AuditEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actionlog",
			Name:      "audit_entries_total",
			Help:      "Audit entries recorded, by persistence result.",
		}, []string{"result"}),
		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actionlog",
			Name:      "auth_failures_total",
			Help:      "Rejected API requests, by reason.",
		}, []string{"reason"}),
	}

	registry.MustRegister(
		m.AuditEntries,
		m.AuthFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// AuditRecorded counts one audit entry outcome
func (m *Metrics) AuditRecorded(err error) {
	if err != nil {
		m.AuditEntries.WithLabelValues(ResultFailed).Inc()
		return
	}
	m.AuditEntries.WithLabelValues(ResultSaved).Inc()
}

// AuthFailed counts one rejected request
func (m *Metrics) AuthFailed(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}
