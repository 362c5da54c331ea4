// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slicer

import (
	"container/heap"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

// candidate is a turn pending selection, at a known BFS distance from the
// anchor with a precomputed priority.
type candidate struct {
	turn     graph.TurnSnapshot
	distance int
	priority float64
}

// candidateHeap is a max-heap ordered per spec §4.5:
//  1. higher priority first
//  2. tie: lower distance first
//  3. tie: lower turn.id first
//
// This total order is what makes the comparator deterministic: two
// candidates can only compare equal if every tiebreak field matches, and
// the visited set guarantees a given turn id is never pushed twice.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.priority != b.priority {
		// NaN never arises (policy/priority inputs are finite), but if it
		// did this comparison would push NaN priorities to the back,
		// matching "NaN treated as less than all values".
		if isNaN(a.priority) {
			return false
		}
		if isNaN(b.priority) {
			return true
		}
		return a.priority > b.priority
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	return a.turn.ID.Less(b.turn.ID)
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	*h = append(*h, x.(candidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func isNaN(f float64) bool { return f != f }

// frontier wraps candidateHeap behind container/heap's interface, the way
// the teacher's DAG executor drives its downstream-reachability traversal
// off a container/heap min-heap for deterministic ordering.
type frontier struct {
	h candidateHeap
}

func newFrontier() *frontier {
	f := &frontier{h: candidateHeap{}}
	heap.Init(&f.h)
	return f
}

func (f *frontier) push(c candidate) {
	heap.Push(&f.h, c)
}

func (f *frontier) popHighest() (candidate, bool) {
	if f.h.Len() == 0 {
		return candidate{}, false
	}
	return heap.Pop(&f.h).(candidate), true
}

func (f *frontier) empty() bool { return f.h.Len() == 0 }

// visitedSet is a hash-based set, permitted by spec §9 because it never
// contributes to output bytes — only to whether a turn has already been
// queued.
type visitedSet map[ids.TurnID]struct{}

func (v visitedSet) has(id ids.TurnID) bool {
	_, ok := v[id]
	return ok
}

func (v visitedSet) add(id ids.TurnID) {
	v[id] = struct{}{}
}
