// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sliceexport defines SliceExport, the issued artifact the slicer
// produces and everything downstream (token authority, bundles, boundary
// guards, the REST surface) consumes. It is kept dependency-light so it
// can sit underneath slicer, token, and bundle without creating cycles.
package sliceexport

import (
	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

// SchemaVersion is the current wire schema version (spec §6).
const SchemaVersion = "1.0.0"

// SliceExport is the serialized form of a slice: a bounded, sorted turn/edge
// set plus the fingerprint and admissibility token that prove it was issued
// by this kernel. Field order matches the wire format declared in spec §6.
type SliceExport struct {
	SchemaVersion      string              `json:"schema_version"`
	AnchorTurnID       ids.TurnID          `json:"anchor_turn_id"`
	Turns              []graph.TurnSnapshot `json:"turns"`
	Edges              []graph.Edge        `json:"edges"`
	PolicyID           string              `json:"policy_id"`
	PolicyParamsHash   string              `json:"policy_params_hash"`
	GraphSnapshotHash  string              `json:"graph_snapshot_hash"`
	SliceID            string              `json:"slice_id"`
	AdmissibilityToken string              `json:"admissibility_token"`
}

// TurnIDs returns the ids of Turns, in the same (ascending) order.
func (s SliceExport) TurnIDs() []ids.TurnID {
	out := make([]ids.TurnID, len(s.Turns))
	for i, t := range s.Turns {
		out[i] = t.ID
	}
	return out
}

// CanonicalPayload rebuilds the canonical slice payload bytes this export
// was fingerprinted and signed over (spec §4.2). Reconstructing it from the
// exported fields — rather than caching the bytes — is what lets a verifier
// recompute the HMAC from a SliceExport alone.
func (s SliceExport) CanonicalPayload() []byte {
	return codec.SlicePayload(
		s.AnchorTurnID,
		s.TurnIDs(),
		s.Edges,
		s.PolicyID,
		s.PolicyParamsHash,
		s.SchemaVersion,
		s.GraphSnapshotHash,
	)
}

// HasTurn reports whether id is among the exported turns.
func (s SliceExport) HasTurn(id ids.TurnID) bool {
	for _, t := range s.Turns {
		if t.ID == id {
			return true
		}
	}
	return false
}

// IsAdmissible reports whether the export carries a non-empty token. An
// empty token means no signing secret was configured at issuance time, so
// the slice is non-admissible by construction (spec §4.6).
func (s SliceExport) IsAdmissible() bool {
	return s.AdmissibilityToken != ""
}
