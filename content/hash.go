// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package content normalizes turn text and fingerprints it with SHA-256,
// the way crypto/binding chains SHA-256 over domain-separated inputs for
// the consensus binding digest — here there is a single input, so the
// chaining collapses to one Write.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/luxfi/graphkernel/ids"
)

// CanonicalVersion identifies the normalization rules CanonicalContent
// applies. Bump it whenever those rules change; provenance records pin this
// value so a replayed retrieval can detect a normalization drift.
const CanonicalVersion = "content-canonical-v1"

// CanonicalContent normalizes text for hashing: CRLF and bare CR become LF,
// leading/trailing whitespace is trimmed, and the result is UTF-8 bytes.
func CanonicalContent(text string) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.TrimSpace(normalized)
}

// Hash returns the lowercase-hex SHA-256 of CanonicalContent(text), or
// ("", false) when the canonical content is empty — callers must
// distinguish "unknown" (absent) from "known-empty" (the hash of "").
func Hash(text string) (string, bool) {
	canonical := CanonicalContent(text)
	if canonical == "" {
		return "", false
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:]), true
}

// MismatchError is spec §7's ContentHashError::Mismatch: the hash recomputed
// from a turn's stored content text does not match the hash the store
// recorded for it.
type MismatchError struct {
	TurnID   ids.TurnID
	Stored   string
	Computed string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("content: hash mismatch for turn %s: stored %s, computed %s",
		e.TurnID, e.Stored, e.Computed)
}

// Verify recomputes the content hash of text and compares it against
// stored, the hash a backing store recorded for turnID. It returns nil if
// stored is empty (unknown, not a mismatch) or if the recomputed hash
// matches; otherwise it returns a *MismatchError naming the turn and both
// hash values.
func Verify(turnID ids.TurnID, text, stored string) error {
	if stored == "" {
		return nil
	}
	computed, ok := Hash(text)
	if !ok || computed != stored {
		return &MismatchError{TurnID: turnID, Stored: stored, Computed: computed}
	}
	return nil
}
