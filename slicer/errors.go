// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slicer

import (
	"fmt"

	"github.com/luxfi/graphkernel/ids"
)

// ErrAnchorNotFound is returned when the anchor turn does not exist in the
// store.
type ErrAnchorNotFound struct {
	AnchorID ids.TurnID
}

func (e *ErrAnchorNotFound) Error() string {
	return fmt.Sprintf("slicer: anchor turn %s not found", e.AnchorID)
}

// ErrStore wraps an opaque store-level failure. The slicer recovers from
// nothing: store errors propagate unchanged to the caller (spec §7).
type ErrStore struct {
	Err error
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("slicer: store error: %s", e.Err)
}

func (e *ErrStore) Unwrap() error { return e.Err }
