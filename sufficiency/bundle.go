// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sufficiency

import (
	"fmt"
	"strings"

	"github.com/luxfi/graphkernel/bundle"
)

// InsufficientError carries every violated rule, not just the first (spec
// §4.9).
type InsufficientError struct {
	Violations []ViolationKind
}

func (e *InsufficientError) Error() string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = v.String()
	}
	return fmt.Sprintf("sufficiency: insufficient evidence: %s", strings.Join(names, ", "))
}

// EvidenceBundle wraps an AdmissibleEvidenceBundle that has additionally
// cleared a Policy's diversity thresholds.
type EvidenceBundle struct {
	admissible *bundle.AdmissibleEvidenceBundle
	metrics    DiversityMetrics
}

// FromAdmissible computes DiversityMetrics over b and checks them against
// policy. On any violation it returns an *InsufficientError carrying every
// failed rule and no bundle.
func FromAdmissible(b *bundle.AdmissibleEvidenceBundle, policy Policy) (*EvidenceBundle, error) {
	metrics := Compute(b)
	if violations := policy.Check(metrics); len(violations) > 0 {
		return nil, &InsufficientError{Violations: violations}
	}
	return &EvidenceBundle{admissible: b, metrics: metrics}, nil
}

// Admissible returns the underlying admissible bundle.
func (e *EvidenceBundle) Admissible() *bundle.AdmissibleEvidenceBundle { return e.admissible }

// Metrics returns the diversity metrics that cleared the gating policy.
func (e *EvidenceBundle) Metrics() DiversityMetrics { return e.metrics }
