// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"math"

	"github.com/luxfi/graphkernel/graph"
)

// Priority computes the slicer's candidate priority for turn t at BFS
// distance d, per spec §4.4:
//
//	priority(t, d) = (phase_weight(t.phase) + t.salience * salience_weight)
//	                 * (distance_decay ^ d)
//
// with 0^0 = 1. NaN never arises given the input constraints (salience and
// weights are finite reals), but callers comparing priorities must still
// treat NaN as less than all values (see the slicer's candidateHeap.Less).
func (p SlicePolicy) Priority(t graph.TurnSnapshot, distance int) float64 {
	base := p.PhaseWeights.For(t.Phase) + t.Salience*p.SalienceWeight
	decay := pow(p.DistanceDecay, distance)
	return base * decay
}

// pow computes base^exp for exp >= 0, defining 0^0 = 1 explicitly rather
// than relying on math.Pow's IEEE edge-case handling.
func pow(base float64, exp int) float64 {
	if exp == 0 {
		return 1
	}
	return math.Pow(base, float64(exp))
}
