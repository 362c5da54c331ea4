// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slicer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes slicer call-count and duration observability, the detail
// the distilled spec.md drops but the original admissibility-kernel's
// operational surface expects (SPEC_FULL §3 C6x). It is registered against
// a prometheus.Registerer the way the teacher's metrics.NewAverager
// registers its count/sum pair.
type Metrics struct {
	duration             prometheus.Histogram
	candidatesConsidered prometheus.Histogram
}

// NewMetrics registers the slicer's metrics against reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graph_kernel_slice_duration_seconds",
			Help:    "Wall-clock time spent producing a single slice.",
			Buckets: prometheus.DefBuckets,
		}),
		candidatesConsidered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graph_kernel_slice_candidates_considered_total",
			Help:    "Number of candidates popped from the frontier per slice.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	if err := reg.Register(m.candidatesConsidered); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observeSlice(d time.Duration, candidates int) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	m.candidatesConsidered.Observe(float64(candidates))
}
