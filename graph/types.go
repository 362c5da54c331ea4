// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package graph defines the conversation-turn data model the slicer
// operates over: turns, edges, and the closed enums that classify them.
package graph

import (
	"fmt"

	"github.com/luxfi/graphkernel/ids"
)

// Role is the closed set of turn authors.
type Role uint8

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
	RoleTool
)

var roleNames = [...]string{"user", "assistant", "system", "tool"}

// String returns the canonical lowercase name used in wire and fingerprint
// encodings.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", r)
}

// ParseRole parses the canonical lowercase name.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("graph: unknown role %q", s)
}

// MarshalJSON renders the canonical name.
func (r Role) MarshalJSON() ([]byte, error) { return marshalEnumString(r.String()) }

// UnmarshalJSON parses the canonical name.
func (r *Role) UnmarshalJSON(data []byte) error {
	s, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Phase is the closed set of conversational phases used for priority
// weighting (see policy.SlicePolicy.PhaseWeights).
type Phase uint8

const (
	PhaseExploration Phase = iota
	PhaseDebugging
	PhaseConsolidation
	PhasePlanning
	PhaseSynthesis
)

var phaseNames = [...]string{"exploration", "debugging", "consolidation", "planning", "synthesis"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// ParsePhase parses the canonical lowercase name.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("graph: unknown phase %q", s)
}

func (p Phase) MarshalJSON() ([]byte, error) { return marshalEnumString(p.String()) }

func (p *Phase) UnmarshalJSON(data []byte) error {
	s, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// EdgeType is the closed set of edge kinds between two turns.
type EdgeType uint8

const (
	EdgeReply EdgeType = iota
	EdgeBranch
	EdgeReference
	EdgeDefault
)

var edgeTypeNames = [...]string{"reply", "branch", "reference", "default"}

func (e EdgeType) String() string {
	if int(e) < len(edgeTypeNames) {
		return edgeTypeNames[e]
	}
	return fmt.Sprintf("edge_type(%d)", e)
}

// ParseEdgeType parses the canonical lowercase name.
func ParseEdgeType(s string) (EdgeType, error) {
	for i, name := range edgeTypeNames {
		if name == s {
			return EdgeType(i), nil
		}
	}
	return 0, fmt.Errorf("graph: unknown edge type %q", s)
}

func (e EdgeType) MarshalJSON() ([]byte, error) { return marshalEnumString(e.String()) }

func (e *EdgeType) UnmarshalJSON(data []byte) error {
	s, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	parsed, err := ParseEdgeType(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// TurnSnapshot is the minimal record the slicer and codec operate on.
type TurnSnapshot struct {
	ID          ids.TurnID `json:"id"`
	SessionID   string     `json:"session_id"`
	Role        Role       `json:"role"`
	Phase       Phase      `json:"phase"`
	Salience    float64    `json:"salience"`

	TrajectoryDepth         int     `json:"trajectory_depth"`
	TrajectorySiblingOrder  int     `json:"trajectory_sibling_order"`
	TrajectoryHomogeneity   float64 `json:"trajectory_homogeneity"`
	TrajectoryTemporal      float64 `json:"trajectory_temporal"`
	TrajectoryComplexity    float64 `json:"trajectory_complexity"`

	CreatedAt int64 `json:"created_at"`

	// ContentHash is absent (nil) when unknown, distinct from known-empty.
	ContentHash *string `json:"content_hash,omitempty"`
}

// Edge is a directed connection between two turns.
type Edge struct {
	Parent ids.TurnID `json:"parent"`
	Child  ids.TurnID `json:"child"`
	Type   EdgeType   `json:"edge_type"`
}

// Compare orders edges by (parent, child, type), matching spec §3.
func (e Edge) Compare(other Edge) int {
	if c := e.Parent.Compare(other.Parent); c != 0 {
		return c
	}
	if c := e.Child.Compare(other.Child); c != 0 {
		return c
	}
	switch {
	case e.Type < other.Type:
		return -1
	case e.Type > other.Type:
		return 1
	default:
		return 0
	}
}

// Less reports whether e sorts before other under Compare.
func (e Edge) Less(other Edge) bool { return e.Compare(other) < 0 }

func marshalEnumString(s string) ([]byte, error) {
	return []byte(`"` + s + `"`), nil
}

func unmarshalEnumString(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("graph: invalid enum encoding %q", data)
	}
	return string(data[1 : len(data)-1]), nil
}
