// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pgstore is a Postgres-backed graph.Store reading from the
// turns/edges schema of spec §6. It never writes: content_hash population
// is the responsibility of an external trigger. The database/sql +
// driver-registration pattern follows the teacher pack's
// Hardonian-Reach/storage.go, adapted from SQLite to Postgres via
// jackc/pgx/v5's stdlib driver instead of hand-rolling a pgx.Pool wrapper.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

// Store is a read-only graph.Store backed by Postgres.
type Store struct {
	db *sql.DB
}

// Open connects to databaseURL using the pgx stdlib driver.
func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgstore: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const turnColumns = `id, session_id, role, phase, salience,
	trajectory_depth, trajectory_sibling_order, trajectory_homogeneity,
	trajectory_temporal, trajectory_complexity, created_at, content_hash`

func scanTurn(row interface{ Scan(...any) error }) (graph.TurnSnapshot, error) {
	var (
		t           graph.TurnSnapshot
		idStr       string
		roleStr     string
		phaseStr    string
		createdAt   int64
		contentHash sql.NullString
	)
	if err := row.Scan(&idStr, &t.SessionID, &roleStr, &phaseStr, &t.Salience,
		&t.TrajectoryDepth, &t.TrajectorySiblingOrder, &t.TrajectoryHomogeneity,
		&t.TrajectoryTemporal, &t.TrajectoryComplexity, &createdAt, &contentHash); err != nil {
		return graph.TurnSnapshot{}, err
	}

	id, err := ids.ParseTurnID(idStr)
	if err != nil {
		return graph.TurnSnapshot{}, fmt.Errorf("pgstore: parse turn id %q: %w", idStr, err)
	}
	role, err := graph.ParseRole(roleStr)
	if err != nil {
		return graph.TurnSnapshot{}, err
	}
	phase, err := graph.ParsePhase(phaseStr)
	if err != nil {
		return graph.TurnSnapshot{}, err
	}

	t.ID = id
	t.Role = role
	t.Phase = phase
	t.CreatedAt = createdAt
	if contentHash.Valid {
		h := contentHash.String
		t.ContentHash = &h
	}
	return t, nil
}

func (s *Store) GetTurn(ctx context.Context, id ids.TurnID) (*graph.TurnSnapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+turnColumns+" FROM turns WHERE id = $1", id.String())
	t, err := scanTurn(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pgstore: get turn: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTurns(ctx context.Context, turnIDs []ids.TurnID) ([]graph.TurnSnapshot, error) {
	byID := make(map[ids.TurnID]graph.TurnSnapshot, len(turnIDs))
	rawIDs := make([]string, len(turnIDs))
	for i, id := range turnIDs {
		rawIDs[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+turnColumns+" FROM turns WHERE id = ANY($1)", rawIDs)
	if err != nil {
		return nil, fmt.Errorf("pgstore: get turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("pgstore: scan turn: %w", err)
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]graph.TurnSnapshot, 0, len(turnIDs))
	for _, id := range turnIDs {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) GetParents(ctx context.Context, id ids.TurnID) ([]ids.TurnID, error) {
	return s.queryNeighborIDs(ctx, "SELECT parent_id FROM edges WHERE child_id = $1 ORDER BY parent_id", id)
}

func (s *Store) GetChildren(ctx context.Context, id ids.TurnID) ([]ids.TurnID, error) {
	return s.queryNeighborIDs(ctx, "SELECT child_id FROM edges WHERE parent_id = $1 ORDER BY child_id", id)
}

func (s *Store) queryNeighborIDs(ctx context.Context, query string, id ids.TurnID) ([]ids.TurnID, error) {
	rows, err := s.db.QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("pgstore: query neighbors: %w", err)
	}
	defer rows.Close()

	var out []ids.TurnID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		parsed, err := ids.ParseTurnID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, rows.Err()
}

func (s *Store) GetSiblings(ctx context.Context, id ids.TurnID, limit int) ([]ids.TurnID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT sibling.child_id
		FROM edges AS parent_edge
		JOIN edges AS sibling ON sibling.parent_id = parent_edge.parent_id
		JOIN turns ON turns.id = sibling.child_id
		WHERE parent_edge.child_id = $1 AND sibling.child_id != $1
		ORDER BY turns.salience DESC, sibling.child_id ASC
		LIMIT $2`, id.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("pgstore: get siblings: %w", err)
	}
	defer rows.Close()

	var out []ids.TurnID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		parsed, err := ids.ParseTurnID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, rows.Err()
}

func (s *Store) GetEdges(ctx context.Context, turnIDs []ids.TurnID) ([]graph.Edge, error) {
	rawIDs := make([]string, len(turnIDs))
	for i, id := range turnIDs {
		rawIDs[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT parent_id, child_id, edge_type FROM edges
		WHERE parent_id = ANY($1) AND child_id = ANY($1)
		ORDER BY parent_id, child_id, edge_type`, rawIDs)
	if err != nil {
		return nil, fmt.Errorf("pgstore: get edges: %w", err)
	}
	defer rows.Close()

	var out []graph.Edge
	for rows.Next() {
		var parentRaw, childRaw, edgeTypeRaw string
		if err := rows.Scan(&parentRaw, &childRaw, &edgeTypeRaw); err != nil {
			return nil, err
		}
		parent, err := ids.ParseTurnID(parentRaw)
		if err != nil {
			return nil, err
		}
		child, err := ids.ParseTurnID(childRaw)
		if err != nil {
			return nil, err
		}
		edgeType, err := graph.ParseEdgeType(edgeTypeRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, graph.Edge{Parent: parent, Child: child, Type: edgeType})
	}
	return out, rows.Err()
}

var _ graph.Store = (*Store)(nil)
