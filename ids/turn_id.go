// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the identifiers used by the graph kernel: turn
// identifiers and the total ordering the slicer and codec depend on.
package ids

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// TurnID is a 128-bit identifier for a conversational turn. It is totally
// ordered by its raw byte representation; identity is stable under content
// changes because the id never encodes turn content.
type TurnID uuid.UUID

// Empty is the zero-value TurnID.
var Empty TurnID

// NewTurnID returns a new random (v4) TurnID.
func NewTurnID() (TurnID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return Empty, fmt.Errorf("ids: generate turn id: %w", err)
	}
	return TurnID(u), nil
}

// ParseTurnID parses the canonical lowercase hyphenated 36-char form and
// rejects any other form.
func ParseTurnID(s string) (TurnID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Empty, fmt.Errorf("ids: parse turn id %q: %w", s, err)
	}
	if u.String() != s {
		return Empty, fmt.Errorf("ids: parse turn id %q: not in canonical lowercase hyphenated form", s)
	}
	return TurnID(u), nil
}

// String returns the lowercase hyphenated 36-char canonical form.
func (id TurnID) String() string {
	return uuid.UUID(id).String()
}

// Compare returns -1, 0, or 1 as id is less than, equal to, or greater than
// other, ordering by raw byte representation.
func (id TurnID) Compare(other TurnID) int {
	return bytes.Compare(id[:], other[:])
}

// Less reports whether id sorts before other.
func (id TurnID) Less(other TurnID) bool {
	return id.Compare(other) < 0
}

// IsEmpty reports whether id is the zero value.
func (id TurnID) IsEmpty() bool {
	return id == Empty
}

// MarshalJSON renders the canonical string form.
func (id TurnID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON parses the canonical string form.
func (id *TurnID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTurnID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SortTurnIDs sorts ids ascending in place using the total byte order.
func SortTurnIDs(ids []TurnID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}
