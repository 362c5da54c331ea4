package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

func turnID(t *testing.T, n int) ids.TurnID {
	t.Helper()
	s := "00000000-0000-0000-0000-" + padID(n)
	id, err := ids.ParseTurnID(s)
	require.NoError(t, err)
	return id
}

func padID(n int) string {
	const hex = "0123456789abcdef"
	s := make([]byte, 12)
	for i := 11; i >= 0; i-- {
		s[i] = hex[n%16]
		n /= 16
	}
	return string(s)
}

func TestGetTurnMissingReturnsNilNil(t *testing.T) {
	s := New()
	turn, err := s.GetTurn(context.Background(), turnID(t, 1))
	require.NoError(t, err)
	require.Nil(t, turn)
}

func TestParentsAndChildrenOrderedByID(t *testing.T) {
	s := New()
	anchor := turnID(t, 1)
	c2, c3 := turnID(t, 2), turnID(t, 3)
	s.AddTurn(graph.TurnSnapshot{ID: anchor})
	s.AddTurn(graph.TurnSnapshot{ID: c2})
	s.AddTurn(graph.TurnSnapshot{ID: c3})
	s.AddEdge(graph.Edge{Parent: anchor, Child: c3, Type: graph.EdgeReply})
	s.AddEdge(graph.Edge{Parent: anchor, Child: c2, Type: graph.EdgeReply})

	children, err := s.GetChildren(context.Background(), anchor)
	require.NoError(t, err)
	require.Equal(t, []ids.TurnID{c2, c3}, children)

	parents, err := s.GetParents(context.Background(), c2)
	require.NoError(t, err)
	require.Equal(t, []ids.TurnID{anchor}, parents)
}

func TestSiblingsOrderedBySalienceThenID(t *testing.T) {
	s := New()
	parent := turnID(t, 1)
	a, b, c := turnID(t, 2), turnID(t, 3), turnID(t, 4)
	s.AddTurn(graph.TurnSnapshot{ID: parent})
	s.AddTurn(graph.TurnSnapshot{ID: a, Salience: 0.5})
	s.AddTurn(graph.TurnSnapshot{ID: b, Salience: 0.9})
	s.AddTurn(graph.TurnSnapshot{ID: c, Salience: 0.9})
	s.AddEdge(graph.Edge{Parent: parent, Child: a})
	s.AddEdge(graph.Edge{Parent: parent, Child: b})
	s.AddEdge(graph.Edge{Parent: parent, Child: c})

	siblings, err := s.GetSiblings(context.Background(), a, 10)
	require.NoError(t, err)
	require.Equal(t, []ids.TurnID{b, c}, siblings)
}

func TestSiblingsRespectsLimit(t *testing.T) {
	s := New()
	parent := turnID(t, 1)
	a, b, c := turnID(t, 2), turnID(t, 3), turnID(t, 4)
	s.AddTurn(graph.TurnSnapshot{ID: parent})
	s.AddTurn(graph.TurnSnapshot{ID: a})
	s.AddTurn(graph.TurnSnapshot{ID: b})
	s.AddTurn(graph.TurnSnapshot{ID: c})
	s.AddEdge(graph.Edge{Parent: parent, Child: a})
	s.AddEdge(graph.Edge{Parent: parent, Child: b})
	s.AddEdge(graph.Edge{Parent: parent, Child: c})

	siblings, err := s.GetSiblings(context.Background(), a, 1)
	require.NoError(t, err)
	require.Len(t, siblings, 1)
}

func TestGetEdgesFiltersToTurnSet(t *testing.T) {
	s := New()
	x, y, z := turnID(t, 1), turnID(t, 2), turnID(t, 3)
	s.AddEdge(graph.Edge{Parent: x, Child: y})
	s.AddEdge(graph.Edge{Parent: y, Child: z})

	edges, err := s.GetEdges(context.Background(), []ids.TurnID{x, y})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, x, edges[0].Parent)
	require.Equal(t, y, edges[0].Child)
}

func TestGetTurnsDropsMissingPreservesOrder(t *testing.T) {
	s := New()
	a, b := turnID(t, 1), turnID(t, 2)
	s.AddTurn(graph.TurnSnapshot{ID: a})

	out, err := s.GetTurns(context.Background(), []ids.TurnID{b, a})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, a, out[0].ID)
}
