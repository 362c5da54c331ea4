// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slicer

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/graph"
)

// GraphSnapshotHashStatsFallback is the warning-level log marker emitted
// when no turn in a slice carries a content_hash and the kernel falls back
// to a stats-based fingerprint (spec §4.7). Deprecated: planned for
// removal once every turn is guaranteed a content_hash; its presence means
// the slice is only best-effort replayable.
const GraphSnapshotHashStatsFallback = "GRAPH_SNAPSHOT_HASH_STATS_FALLBACK"

// graphSnapshotHash computes the fingerprint over the turns selected in a
// slice. Preferred form: sha256 of each turn's content_hash-or-null-marker
// followed by its numeric fields, concatenated in sorted TurnID order
// (turns is assumed already sorted). When turns is non-empty and no turn
// has a content_hash at all, it falls back to a stats-based hash and logs
// GraphSnapshotHashStatsFallback at warn level; an empty turn list takes
// the preferred form (the sha256 of no input).
func graphSnapshotHash(turns []graph.TurnSnapshot, log gklog.Logger) string {
	anyContentHash := false
	for _, t := range turns {
		if t.ContentHash != nil {
			anyContentHash = true
			break
		}
	}

	if anyContentHash || len(turns) == 0 {
		h := sha256.New()
		for _, t := range turns {
			h.Write(codec.TurnFingerprintFields(t))
		}
		return hex.EncodeToString(h.Sum(nil))
	}

	if log != nil {
		log.Warn(GraphSnapshotHashStatsFallback,
			gklog.Int("turn_count", len(turns)),
		)
	}
	return statsFallbackHash(turns)
}

// statsFallbackHash fingerprints turn count plus aggregate trajectory
// stats when no content hash exists to anchor a content-derived digest.
func statsFallbackHash(turns []graph.TurnSnapshot) string {
	var sumSalience, sumHomogeneity, sumTemporal, sumComplexity float64
	var sumDepth int64

	for _, t := range turns {
		sumSalience += t.Salience
		sumHomogeneity += t.TrajectoryHomogeneity
		sumTemporal += t.TrajectoryTemporal
		sumComplexity += t.TrajectoryComplexity
		sumDepth += int64(t.TrajectoryDepth)
	}

	w := codec.NewWriter()
	w.Raw("(")
	w.Int(int64(len(turns)))
	w.Raw(",")
	w.Quantized(sumSalience)
	w.Raw(",")
	w.Quantized(sumHomogeneity)
	w.Raw(",")
	w.Quantized(sumTemporal)
	w.Raw(",")
	w.Quantized(sumComplexity)
	w.Raw(",")
	w.Int(sumDepth)
	w.Raw(")")

	h := sha256.Sum256(w.Bytes())
	return hex.EncodeToString(h[:])
}
