// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sufficiency implements the sufficiency gate (spec §4.9): diversity
// metrics over an admissible bundle plus a threshold policy that separates
// "authorized" evidence from "qualitatively usable" evidence. The
// threshold-and-violations shape follows the teacher's confidence package,
// whose Threshold compares an observed value against a configured bound and
// reports every breach rather than stopping at the first.
package sufficiency

import (
	"math"

	"github.com/luxfi/graphkernel/bundle"
	"github.com/luxfi/graphkernel/graph"
)

// HighSalienceThreshold is the salience at or above which a turn counts
// toward DiversityMetrics.HighSalienceCount (spec §4.9).
const HighSalienceThreshold = 0.7

// SalienceStats summarizes the salience distribution of a slice.
type SalienceStats struct {
	Min           float64
	Max           float64
	Mean          float64
	StdDev        float64
	HighCount     int
}

// DiversityMetrics measures how varied the evidence in a bundle is.
type DiversityMetrics struct {
	TurnCount       int
	UniqueRoles     int
	RoleDistribution map[graph.Role]int
	UniquePhases    int
	PhaseDistribution map[graph.Phase]int
	UniqueSessions  int
	Salience        SalienceStats
	HasExchange     bool
}

// Compute derives DiversityMetrics from an AdmissibleEvidenceBundle's slice.
func Compute(b *bundle.AdmissibleEvidenceBundle) DiversityMetrics {
	turns := b.Slice().Turns

	roleCounts := make(map[graph.Role]int)
	phaseCounts := make(map[graph.Phase]int)
	sessions := make(map[string]struct{})

	var sum, min, max float64
	min = math.Inf(1)
	max = math.Inf(-1)
	highCount := 0
	hasUser, hasAssistant := false, false

	for _, t := range turns {
		roleCounts[t.Role]++
		phaseCounts[t.Phase]++
		sessions[t.SessionID] = struct{}{}

		sum += t.Salience
		if t.Salience < min {
			min = t.Salience
		}
		if t.Salience > max {
			max = t.Salience
		}
		if t.Salience >= HighSalienceThreshold {
			highCount++
		}

		switch t.Role {
		case graph.RoleUser:
			hasUser = true
		case graph.RoleAssistant:
			hasAssistant = true
		}
	}

	n := len(turns)
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	} else {
		min, max = 0, 0
	}

	var variance float64
	for _, t := range turns {
		d := t.Salience - mean
		variance += d * d
	}
	stdDev := 0.0
	if n > 0 {
		stdDev = math.Sqrt(variance / float64(n))
	}

	return DiversityMetrics{
		TurnCount:        n,
		UniqueRoles:      len(roleCounts),
		RoleDistribution: roleCounts,
		UniquePhases:     len(phaseCounts),
		PhaseDistribution: phaseCounts,
		UniqueSessions:   len(sessions),
		Salience: SalienceStats{
			Min:       min,
			Max:       max,
			Mean:      mean,
			StdDev:    stdDev,
			HighCount: highCount,
		},
		HasExchange: hasUser && hasAssistant,
	}
}
