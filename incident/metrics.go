// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package incident

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the injected counter sink incidents and quarantine actions
// report through (spec §4.12). Implementations must be safe for concurrent
// use.
type Metrics interface {
	RecordIncident(typ Type, severity Severity)
	RecordQuarantine()
	RecordBoundaryViolation()
	RecordTokenVerificationFailure()
}

// PrometheusMetrics implements Metrics against the reserved metric names
// of spec §4.12, mirroring the registration pattern the teacher's
// metrics.NewAverager uses for its own counters.
type PrometheusMetrics struct {
	boundaryViolations     prometheus.Counter
	tokenVerificationFails prometheus.Counter
	quarantinedTokens      prometheus.Counter
	incidentTotal          *prometheus.CounterVec
}

// NewPrometheusMetrics registers the reserved incident metrics against reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		boundaryViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graph_kernel_slice_boundary_violations_total",
			Help: "Number of slice boundary guard violations.",
		}),
		tokenVerificationFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graph_kernel_token_verification_failures_total",
			Help: "Number of admissibility token verification failures.",
		}),
		quarantinedTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graph_kernel_quarantined_tokens_total",
			Help: "Number of tokens placed into quarantine.",
		}),
		incidentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graph_kernel_incident_total",
			Help: "Number of incidents raised, by type and severity.",
		}, []string{"type", "severity"}),
	}

	for _, c := range []prometheus.Collector{m.boundaryViolations, m.tokenVerificationFails, m.quarantinedTokens, m.incidentTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordIncident(typ Type, severity Severity) {
	m.incidentTotal.WithLabelValues(typ.String(), severity.String()).Inc()
}

func (m *PrometheusMetrics) RecordQuarantine() {
	m.quarantinedTokens.Inc()
}

func (m *PrometheusMetrics) RecordBoundaryViolation() {
	m.boundaryViolations.Inc()
}

func (m *PrometheusMetrics) RecordTokenVerificationFailure() {
	m.tokenVerificationFails.Inc()
}

var _ Metrics = (*PrometheusMetrics)(nil)
