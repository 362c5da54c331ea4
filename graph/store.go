// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package graph

import (
	"context"

	"github.com/luxfi/graphkernel/ids"
)

// Store is the abstract, read-only view of the turn/edge graph the slicer
// expands over. Every operation returns results in the declared order; no
// operation mutates graph state.
type Store interface {
	// GetTurn returns the turn, or (nil, nil) if it does not exist.
	GetTurn(ctx context.Context, id ids.TurnID) (*TurnSnapshot, error)

	// GetParents returns parent ids ordered ascending by id.
	GetParents(ctx context.Context, id ids.TurnID) ([]ids.TurnID, error)

	// GetChildren returns child ids ordered ascending by id.
	GetChildren(ctx context.Context, id ids.TurnID) ([]ids.TurnID, error)

	// GetSiblings returns at most limit sibling ids ordered by
	// (-salience, id): highest salience first, id breaking ties.
	GetSiblings(ctx context.Context, id ids.TurnID, limit int) ([]ids.TurnID, error)

	// GetEdges returns edges with both endpoints in turnIDs, ordered by
	// (parent, child, type).
	GetEdges(ctx context.Context, turnIDs []ids.TurnID) ([]Edge, error)

	// GetTurns returns snapshots for turnIDs, preserving input order and
	// silently dropping ids that do not exist.
	GetTurns(ctx context.Context, turnIDs []ids.TurnID) ([]TurnSnapshot, error)
}
