// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memstore is a small, fully in-memory graph.Store meant for tests
// and small-scale deployments (spec component C13). It keeps ordered
// adjacency slices rather than relying on map iteration order, the way the
// teacher's utils/linked.Hashmap preserves insertion order explicitly
// instead of trusting Go's randomized map iteration.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

// Store is a mutable, in-memory graph.Store. Add* methods are for test/
// fixture setup; the Store itself is read-only from the slicer's
// perspective once built, matching "turns/edges are read-only to the
// kernel" (spec §3 Lifecycle).
type Store struct {
	mu       sync.RWMutex
	turns    map[ids.TurnID]graph.TurnSnapshot
	edges    []graph.Edge
	children map[ids.TurnID][]ids.TurnID // ordered by insertion
	parents  map[ids.TurnID][]ids.TurnID // ordered by insertion
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		turns:    make(map[ids.TurnID]graph.TurnSnapshot),
		children: make(map[ids.TurnID][]ids.TurnID),
		parents:  make(map[ids.TurnID][]ids.TurnID),
	}
}

// AddTurn inserts or replaces a turn.
func (s *Store) AddTurn(t graph.TurnSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[t.ID] = t
}

// AddEdge inserts a directed edge and updates adjacency.
func (s *Store) AddEdge(e graph.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, e)
	s.children[e.Parent] = append(s.children[e.Parent], e.Child)
	s.parents[e.Child] = append(s.parents[e.Child], e.Parent)
}

func (s *Store) GetTurn(_ context.Context, id ids.TurnID) (*graph.TurnSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.turns[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (s *Store) GetParents(_ context.Context, id ids.TurnID) ([]ids.TurnID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]ids.TurnID(nil), s.parents[id]...)
	ids.SortTurnIDs(out)
	return out, nil
}

func (s *Store) GetChildren(_ context.Context, id ids.TurnID) ([]ids.TurnID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]ids.TurnID(nil), s.children[id]...)
	ids.SortTurnIDs(out)
	return out, nil
}

// GetSiblings returns at most limit ids that share a parent with id
// (excluding id itself), ordered by (-salience, id).
func (s *Store) GetSiblings(_ context.Context, id ids.TurnID, limit int) ([]ids.TurnID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[ids.TurnID]struct{}{id: {}}
	var siblings []ids.TurnID
	for _, parent := range s.parents[id] {
		for _, sibling := range s.children[parent] {
			if _, ok := seen[sibling]; ok {
				continue
			}
			seen[sibling] = struct{}{}
			siblings = append(siblings, sibling)
		}
	}

	sort.Slice(siblings, func(i, j int) bool {
		si, sj := s.turns[siblings[i]], s.turns[siblings[j]]
		if si.Salience != sj.Salience {
			return si.Salience > sj.Salience
		}
		return siblings[i].Less(siblings[j])
	})

	if limit >= 0 && len(siblings) > limit {
		siblings = siblings[:limit]
	}
	return siblings, nil
}

func (s *Store) GetEdges(_ context.Context, turnIDs []ids.TurnID) ([]graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[ids.TurnID]struct{}, len(turnIDs))
	for _, id := range turnIDs {
		set[id] = struct{}{}
	}

	var out []graph.Edge
	for _, e := range s.edges {
		if _, ok := set[e.Parent]; !ok {
			continue
		}
		if _, ok := set[e.Child]; !ok {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

func (s *Store) GetTurns(_ context.Context, turnIDs []ids.TurnID) ([]graph.TurnSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.TurnSnapshot, 0, len(turnIDs))
	for _, id := range turnIDs {
		if t, ok := s.turns[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

var _ graph.Store = (*Store)(nil)
