// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package slicer implements the context slicer: a priority-queue BFS that
// expands around an anchor turn under strict budget discipline and emits
// a SliceExport whose bytes are byte-identical across runs given identical
// inputs (spec §4.5). The shape — a Slicer struct carrying Log/Metrics plus
// a single entry point — follows the teacher's protocol/nova consensus
// engine, whose Context struct likewise bundles a Logger and a
// Registerer alongside the engine's single decision entry point.
package slicer

import (
	"context"
	"time"

	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/policy"
	"github.com/luxfi/graphkernel/sliceexport"
	"github.com/luxfi/graphkernel/token"
)

// Slicer expands a bounded, reproducible subgraph around an anchor turn.
type Slicer struct {
	Store   graph.Store
	Log     gklog.Logger
	Signer  *token.Signer
	Metrics *Metrics
}

// New returns a Slicer over store. log and signer may be nil; a nil signer
// means slices are emitted non-admissible (empty token), per spec §4.6.
func New(store graph.Store, log gklog.Logger, signer *token.Signer) *Slicer {
	if log == nil {
		log = gklog.NewNoOp()
	}
	return &Slicer{Store: store, Log: log, Signer: signer}
}

// Slice runs the algorithm of spec §4.5 for anchorID under p.
func (s *Slicer) Slice(ctx context.Context, anchorID ids.TurnID, p policy.SlicePolicy) (sliceexport.SliceExport, error) {
	start := time.Now()
	candidatesConsidered := 0
	defer func() {
		if s.Metrics != nil {
			s.Metrics.observeSlice(time.Since(start), candidatesConsidered)
		}
	}()

	anchor, err := s.Store.GetTurn(ctx, anchorID)
	if err != nil {
		return sliceexport.SliceExport{}, &ErrStore{Err: err}
	}
	if anchor == nil {
		return sliceexport.SliceExport{}, &ErrAnchorNotFound{AnchorID: anchorID}
	}

	visited := make(visitedSet)
	visited.add(anchorID)

	fr := newFrontier()
	fr.push(candidate{turn: *anchor, distance: 0, priority: p.Priority(*anchor, 0)})

	var selected []graph.TurnSnapshot

	for !fr.empty() && len(selected) < p.MaxNodes {
		c, ok := fr.popHighest()
		if !ok {
			break
		}
		candidatesConsidered++

		if c.distance > p.MaxRadius {
			// Discarded: neither selected nor expanded.
			continue
		}

		selected = append(selected, c.turn)

		if c.distance+1 > p.MaxRadius {
			continue
		}

		if err := s.expandParentsAndChildren(ctx, c, p, visited, fr); err != nil {
			return sliceexport.SliceExport{}, err
		}

		if p.IncludeSiblings {
			if err := s.expandSiblings(ctx, c, p, visited, fr); err != nil {
				return sliceexport.SliceExport{}, err
			}
		}
	}

	sortTurnsByID(selected)
	turnIDs := turnIDsOf(selected)
	edges, err := s.collectEdges(ctx, turnIDs)
	if err != nil {
		return sliceexport.SliceExport{}, err
	}

	snapHash := graphSnapshotHash(selected, s.Log)

	ref := p.Ref()

	export := sliceexport.SliceExport{
		SchemaVersion:     sliceexport.SchemaVersion,
		AnchorTurnID:      anchorID,
		Turns:             selected,
		Edges:             edges,
		PolicyID:          ref.PolicyID,
		PolicyParamsHash:  ref.ParamsHash,
		GraphSnapshotHash: snapHash,
	}
	export.SliceID = fingerprintExport(export)
	if s.Signer != nil {
		export.AdmissibilityToken = s.Signer.Sign(export.CanonicalPayload())
	}

	return export, nil
}

func (s *Slicer) expandParentsAndChildren(ctx context.Context, c candidate, p policy.SlicePolicy, visited visitedSet, fr *frontier) error {
	parents, err := s.Store.GetParents(ctx, c.turn.ID)
	if err != nil {
		return &ErrStore{Err: err}
	}
	children, err := s.Store.GetChildren(ctx, c.turn.ID)
	if err != nil {
		return &ErrStore{Err: err}
	}

	for _, neighborID := range append(append([]ids.TurnID(nil), parents...), children...) {
		if visited.has(neighborID) {
			continue
		}
		turn, err := s.Store.GetTurn(ctx, neighborID)
		if err != nil {
			return &ErrStore{Err: err}
		}
		if turn == nil {
			continue
		}
		visited.add(neighborID)
		fr.push(candidate{turn: *turn, distance: c.distance + 1, priority: p.Priority(*turn, c.distance+1)})
	}
	return nil
}

func (s *Slicer) expandSiblings(ctx context.Context, c candidate, p policy.SlicePolicy, visited visitedSet, fr *frontier) error {
	siblings, err := s.Store.GetSiblings(ctx, c.turn.ID, p.MaxSiblingsPerNode)
	if err != nil {
		return &ErrStore{Err: err}
	}
	for _, siblingID := range siblings {
		if visited.has(siblingID) {
			continue
		}
		visited.add(siblingID)
		turn, err := s.Store.GetTurn(ctx, siblingID)
		if err != nil {
			return &ErrStore{Err: err}
		}
		if turn == nil {
			continue
		}
		// Siblings are lateral: pushed at the discovering turn's distance,
		// not one farther from the anchor (spec §4.5 step 3f, §9 open
		// question retained as documented behavior).
		fr.push(candidate{turn: *turn, distance: c.distance, priority: p.Priority(*turn, c.distance)})
	}
	return nil
}

func (s *Slicer) collectEdges(ctx context.Context, turnIDs []ids.TurnID) ([]graph.Edge, error) {
	edges, err := s.Store.GetEdges(ctx, turnIDs)
	if err != nil {
		return nil, &ErrStore{Err: err}
	}
	inSet := make(map[ids.TurnID]struct{}, len(turnIDs))
	for _, id := range turnIDs {
		inSet[id] = struct{}{}
	}
	filtered := edges[:0:0]
	for _, e := range edges {
		if _, ok := inSet[e.Parent]; !ok {
			continue
		}
		if _, ok := inSet[e.Child]; !ok {
			continue
		}
		filtered = append(filtered, e)
	}
	sortEdges(filtered)
	return filtered, nil
}

