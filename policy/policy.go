// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package policy defines SlicePolicy — the immutable budget/weighting
// configuration the slicer expands under — following the
// Parameters/DefaultParams/Validate shape the teacher uses for its
// consensus Parameters, but fingerprinted instead of just validated.
package policy

import (
	"errors"
	"fmt"

	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/graph"
)

// DefaultVersion is the fixed policy schema version (spec §4.4).
const DefaultVersion = "slice_policy_v1"

// Validation errors returned by SlicePolicy.Validate.
var (
	ErrInvalidMaxNodes       = errors.New("policy: max_nodes must be >= 1")
	ErrInvalidMaxRadius      = errors.New("policy: max_radius must be >= 0")
	ErrInvalidSalienceWeight = errors.New("policy: salience_weight must be in [0,1]")
	ErrInvalidDistanceDecay  = errors.New("policy: distance_decay must be in [0,1]")
	ErrInvalidMaxSiblings    = errors.New("policy: max_siblings_per_node must be >= 0")
)

// PhaseWeights gives the priority weight assigned to each conversational
// phase. Fields are declared (and therefore wire-encoded) in alphabetical
// order among the five phases, per spec §6.
type PhaseWeights struct {
	Consolidation float64 `json:"consolidation"`
	Debugging     float64 `json:"debugging"`
	Exploration   float64 `json:"exploration"`
	Planning      float64 `json:"planning"`
	Synthesis     float64 `json:"synthesis"`
}

// For returns the weight for the given phase.
func (w PhaseWeights) For(p graph.Phase) float64 {
	switch p {
	case graph.PhaseSynthesis:
		return w.Synthesis
	case graph.PhasePlanning:
		return w.Planning
	case graph.PhaseConsolidation:
		return w.Consolidation
	case graph.PhaseDebugging:
		return w.Debugging
	case graph.PhaseExploration:
		return w.Exploration
	default:
		return 0
	}
}

// DefaultPhaseWeights returns the recommended defaults from spec §4.4.
func DefaultPhaseWeights() PhaseWeights {
	return PhaseWeights{
		Synthesis:     1.0,
		Planning:      0.9,
		Consolidation: 0.6,
		Debugging:     0.5,
		Exploration:   0.3,
	}
}

// SlicePolicy is the immutable budget/weighting configuration the slicer
// expands under. Field order below is the declared order used for the
// wire format and the policy canonical payload (spec §4.2, §6).
type SlicePolicy struct {
	Version             string       `json:"version"`
	MaxNodes            int          `json:"max_nodes"`
	MaxRadius           int          `json:"max_radius"`
	SalienceWeight      float64      `json:"salience_weight"`
	DistanceDecay       float64      `json:"distance_decay"`
	IncludeSiblings     bool         `json:"include_siblings"`
	MaxSiblingsPerNode  int          `json:"max_siblings_per_node"`
	PhaseWeights        PhaseWeights `json:"phase_weights"`
}

// Default returns the spec §4.4 default policy.
func Default() SlicePolicy {
	return SlicePolicy{
		Version:            DefaultVersion,
		MaxNodes:           256,
		MaxRadius:          10,
		SalienceWeight:     0.3,
		DistanceDecay:      0.9,
		IncludeSiblings:    true,
		MaxSiblingsPerNode: 5,
		PhaseWeights:       DefaultPhaseWeights(),
	}
}

// Validate checks field ranges. It does not enforce the "recommended"
// [0,1] range on phase weights (spec marks that recommended, not required).
func (p SlicePolicy) Validate() error {
	if p.MaxNodes < 1 {
		return ErrInvalidMaxNodes
	}
	if p.MaxRadius < 0 {
		return ErrInvalidMaxRadius
	}
	if p.SalienceWeight < 0 || p.SalienceWeight > 1 {
		return ErrInvalidSalienceWeight
	}
	if p.DistanceDecay < 0 || p.DistanceDecay > 1 {
		return ErrInvalidDistanceDecay
	}
	if p.MaxSiblingsPerNode < 0 {
		return ErrInvalidMaxSiblings
	}
	return nil
}

// CanonicalPayload encodes the policy in declared field order, per §4.2.
func (p SlicePolicy) CanonicalPayload() []byte {
	w := codec.NewWriter()
	w.Raw("(")
	w.Str(p.Version)
	w.Raw(",")
	w.Int(int64(p.MaxNodes))
	w.Raw(",")
	w.Int(int64(p.MaxRadius))
	w.Raw(",")
	w.Quantized(p.SalienceWeight)
	w.Raw(",")
	w.Quantized(p.DistanceDecay)
	w.Raw(",")
	w.Bool(p.IncludeSiblings)
	w.Raw(",")
	w.Int(int64(p.MaxSiblingsPerNode))
	w.Raw(",")
	writePhaseWeights(w, p.PhaseWeights)
	w.Raw(")")
	return w.Bytes()
}

func writePhaseWeights(w *codec.Writer, pw PhaseWeights) {
	keys := []string{"consolidation", "debugging", "exploration", "planning", "synthesis"}
	w.SortedMap(keys, func(key string, w *codec.Writer) {
		switch key {
		case "consolidation":
			w.Quantized(pw.Consolidation)
		case "debugging":
			w.Quantized(pw.Debugging)
		case "exploration":
			w.Quantized(pw.Exploration)
		case "planning":
			w.Quantized(pw.Planning)
		case "synthesis":
			w.Quantized(pw.Synthesis)
		}
	})
}

// ParamsHash returns the 16-hex-char xxHash64 fingerprint of the policy's
// canonical payload (spec §4.2).
func (p SlicePolicy) ParamsHash() string {
	return codec.Fingerprint16(p.CanonicalPayload())
}

// Ref returns the PolicyRef naming this policy.
func (p SlicePolicy) Ref() Ref {
	return Ref{PolicyID: p.Version, ParamsHash: p.ParamsHash()}
}

// Ref is an immutable (policy_id, params_hash) pointer into a Registry.
type Ref struct {
	PolicyID   string `json:"policy_id"`
	ParamsHash string `json:"params_hash"`
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%s", r.PolicyID, r.ParamsHash)
}
