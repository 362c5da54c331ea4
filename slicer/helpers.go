// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slicer

import (
	"sort"

	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/sliceexport"
)

func turnIDsOf(turns []graph.TurnSnapshot) []ids.TurnID {
	out := make([]ids.TurnID, len(turns))
	for i, t := range turns {
		out[i] = t.ID
	}
	return out
}

func sortTurnsByID(turns []graph.TurnSnapshot) {
	sort.Slice(turns, func(i, j int) bool {
		return turns[i].ID.Less(turns[j].ID)
	})
}

func sortEdges(edges []graph.Edge) {
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Less(edges[j])
	})
}

func fingerprintExport(export sliceexport.SliceExport) string {
	return codec.SliceID(export.CanonicalPayload())
}
