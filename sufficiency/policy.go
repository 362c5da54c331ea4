// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sufficiency

// ViolationKind names a single failed sufficiency rule. Unlike a bool, a
// slice of these lets Check report every breach in one pass instead of
// stopping at the first, the way the teacher's confidence checks surface
// every threshold miss rather than the first.
type ViolationKind uint8

const (
	ViolationMinTurns ViolationKind = iota
	ViolationMinRoles
	ViolationMinPhases
	ViolationMinHighSalience
	ViolationRequireExchange
	ViolationMinMeanSalience
)

var violationNames = [...]string{
	"min_turns",
	"min_roles",
	"min_phases",
	"min_high_salience",
	"require_exchange",
	"min_mean_salience",
}

func (v ViolationKind) String() string {
	if int(v) < len(violationNames) {
		return violationNames[v]
	}
	return "unknown_violation"
}

// Policy is the threshold configuration a DiversityMetrics must clear.
type Policy struct {
	MinTurns         int
	MinRoles         int
	MinPhases        int
	MinHighSalience  int
	RequireExchange  bool
	MinMeanSalience  float64
}

// Default returns the spec §4.9 default policy.
func Default() Policy {
	return Policy{
		MinTurns:        3,
		MinRoles:        2,
		MinPhases:       1,
		MinHighSalience: 1,
		RequireExchange: true,
		MinMeanSalience: 0.3,
	}
}

// Lenient returns a relaxed policy: every threshold halved (integer
// thresholds rounded down, floor 0) and the exchange requirement dropped.
func Lenient() Policy {
	d := Default()
	return Policy{
		MinTurns:        d.MinTurns / 2,
		MinRoles:        d.MinRoles / 2,
		MinPhases:       d.MinPhases / 2,
		MinHighSalience: d.MinHighSalience / 2,
		RequireExchange: false,
		MinMeanSalience: d.MinMeanSalience / 2,
	}
}

// Strict returns a tightened policy.
func Strict() Policy {
	d := Default()
	return Policy{
		MinTurns:        d.MinTurns * 2,
		MinRoles:        d.MinRoles,
		MinPhases:       d.MinPhases + 1,
		MinHighSalience: d.MinHighSalience * 2,
		RequireExchange: true,
		MinMeanSalience: d.MinMeanSalience * 2,
	}
}

// Check evaluates metrics against p, returning every violated rule.
func (p Policy) Check(metrics DiversityMetrics) []ViolationKind {
	var violations []ViolationKind

	if metrics.TurnCount < p.MinTurns {
		violations = append(violations, ViolationMinTurns)
	}
	if metrics.UniqueRoles < p.MinRoles {
		violations = append(violations, ViolationMinRoles)
	}
	if metrics.UniquePhases < p.MinPhases {
		violations = append(violations, ViolationMinPhases)
	}
	if metrics.Salience.HighCount < p.MinHighSalience {
		violations = append(violations, ViolationMinHighSalience)
	}
	if p.RequireExchange && !metrics.HasExchange {
		violations = append(violations, ViolationRequireExchange)
	}
	if metrics.Salience.Mean < p.MinMeanSalience {
		violations = append(violations, ViolationMinMeanSalience)
	}

	return violations
}
