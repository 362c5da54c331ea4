// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec implements the canonical, platform-independent byte
// encoding used to fingerprint slices and policies. Equal-valued inputs
// always produce byte-identical output: map keys sort ascending by byte
// value, sequences preserve declared order, floats are quantized before
// encoding, and the result carries no whitespace.
package codec

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/luxfi/graphkernel/graph"
	"github.com/luxfi/graphkernel/ids"
)

// QuantizationScale is the factor applied to real fields before they enter
// a fingerprint: round(x * QuantizationScale).
const QuantizationScale = 1_000_000

// QuantizeFloat converts a real number in a fingerprint input into the
// signed integer round(x * 1_000_000).
func QuantizeFloat(x float64) int64 {
	return int64(math.Round(x * QuantizationScale))
}

// Writer builds a canonical byte sequence incrementally. The zero value is
// not usable; use NewWriter.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated canonical bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) raw(s string) *Writer {
	w.buf.WriteString(s)
	return w
}

// Raw writes s verbatim. Exposed for structural punctuation (separators,
// parens) that callers outside this package need when composing their own
// canonical payloads, e.g. policy.SlicePolicy.CanonicalPayload.
func (w *Writer) Raw(s string) *Writer {
	return w.raw(s)
}

// Int writes a decimal integer with no leading zeros.
func (w *Writer) Int(n int64) *Writer {
	return w.raw(strconv.FormatInt(n, 10))
}

// Quantized writes QuantizeFloat(x) as a decimal integer.
func (w *Writer) Quantized(x float64) *Writer {
	return w.Int(QuantizeFloat(x))
}

// Str writes a quoted, escaped string literal.
func (w *Writer) Str(s string) *Writer {
	return w.raw(strconv.Quote(s))
}

// TurnID writes a turn id in its lowercase hyphenated 36-char form.
func (w *Writer) TurnID(id ids.TurnID) *Writer {
	return w.Str(id.String())
}

// Enum writes an enum's canonical lowercase name.
func (w *Writer) Enum(name string) *Writer {
	return w.Str(name)
}

// Bool writes a JSON-style boolean literal.
func (w *Writer) Bool(b bool) *Writer {
	if b {
		return w.raw("true")
	}
	return w.raw("false")
}

// Array writes n comma-separated elements, declared order preserved.
func (w *Writer) Array(n int, emit func(i int, w *Writer)) *Writer {
	w.raw("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			w.raw(",")
		}
		emit(i, w)
	}
	return w.raw("]")
}

// SortedMap writes a map canonically: keys sorted ascending by byte value.
func (w *Writer) SortedMap(keys []string, emitValue func(key string, w *Writer)) *Writer {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	w.raw("{")
	for i, k := range sorted {
		if i > 0 {
			w.raw(",")
		}
		w.Str(k)
		w.raw(":")
		emitValue(k, w)
	}
	return w.raw("}")
}

// Fingerprint16 returns the lowercase 16-hex-char xxHash64 (seed 0) of b.
func Fingerprint16(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// SlicePayload builds the canonical slice payload of spec §4.2:
//
//	(anchor_turn_id, sorted_turn_ids, sorted_edges, policy_id,
//	 policy_params_hash, schema_version, graph_snapshot_hash)
//
// turnIDs and edges must already be sorted by the caller (ascending by id,
// and by (parent, child, type) respectively); SlicePayload does not sort,
// it only encodes, so that callers own the single source of truth for
// ordering.
func SlicePayload(anchor ids.TurnID, turnIDs []ids.TurnID, edges []graph.Edge, policyID, policyParamsHash, schemaVersion, graphSnapshotHash string) []byte {
	w := NewWriter()
	w.raw("(")
	w.TurnID(anchor)
	w.raw(",")
	w.Array(len(turnIDs), func(i int, w *Writer) { w.TurnID(turnIDs[i]) })
	w.raw(",")
	w.Array(len(edges), func(i int, w *Writer) {
		e := edges[i]
		w.raw("(")
		w.TurnID(e.Parent)
		w.raw(",")
		w.TurnID(e.Child)
		w.raw(",")
		w.Enum(e.Type.String())
		w.raw(")")
	})
	w.raw(",")
	w.Str(policyID)
	w.raw(",")
	w.Str(policyParamsHash)
	w.raw(",")
	w.Str(schemaVersion)
	w.raw(",")
	w.Str(graphSnapshotHash)
	w.raw(")")
	return w.Bytes()
}

// SliceID computes the 16-hex-char xxHash64 fingerprint of a slice payload.
func SliceID(payload []byte) string {
	return Fingerprint16(payload)
}

// TurnFingerprintFields encodes a turn's content_hash (or a stable null
// marker when absent) followed by its numeric fields in canonical form, for
// use by graph_snapshot_hash (spec §4.7). Trajectory/salience reals are
// quantized; ids, role, and phase are included so the hash reflects the
// selected turn's full non-content state.
func TurnFingerprintFields(t graph.TurnSnapshot) []byte {
	w := NewWriter()
	w.raw("(")
	w.TurnID(t.ID)
	w.raw(",")
	if t.ContentHash != nil {
		w.Str(*t.ContentHash)
	} else {
		w.raw("null")
	}
	w.raw(",")
	w.Enum(t.Role.String())
	w.raw(",")
	w.Enum(t.Phase.String())
	w.raw(",")
	w.Quantized(t.Salience)
	w.raw(",")
	w.Int(int64(t.TrajectoryDepth))
	w.raw(",")
	w.Int(int64(t.TrajectorySiblingOrder))
	w.raw(",")
	w.Quantized(t.TrajectoryHomogeneity)
	w.raw(",")
	w.Quantized(t.TrajectoryTemporal)
	w.raw(",")
	w.Quantized(t.TrajectoryComplexity)
	w.raw(",")
	w.Int(t.CreatedAt)
	w.raw(")")
	return w.Bytes()
}
