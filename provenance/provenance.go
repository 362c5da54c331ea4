// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package provenance aggregates everything needed to reproduce a retrieval
// (spec §4.11): which embedding model ran, which content-normalization
// rules were in force, and which retrieval parameters drove the slice. The
// (fields, String, fingerprint) shape follows the teacher's
// utils/version.Semantic, which likewise pairs a structured version with a
// stable string form and an equality check that ignores irrelevant fields.
package provenance

import (
	"fmt"
	"strings"
	"time"

	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/content"
)

// EmbeddingModelRef identifies the embedding model used for retrieval.
type EmbeddingModelRef struct {
	ModelID       string
	Version       string
	Dimensions    int
	Quantization  string // empty if not quantized
	Deterministic bool
}

// String renders model_id@version:dDIM[:qQUANT].
func (m EmbeddingModelRef) String() string {
	s := fmt.Sprintf("%s@%s:d%d", m.ModelID, m.Version, m.Dimensions)
	if m.Quantization != "" {
		s += ":q" + m.Quantization
	}
	return s
}

func (m EmbeddingModelRef) isComplete() bool {
	return len(m.missingFields()) == 0
}

func (m EmbeddingModelRef) missingFields() []string {
	var missing []string
	if m.ModelID == "" {
		missing = append(missing, "embedding_model.model_id")
	}
	if m.Version == "" {
		missing = append(missing, "embedding_model.version")
	}
	if m.Dimensions <= 0 {
		missing = append(missing, "embedding_model.dimensions")
	}
	return missing
}

// NormalizationVersion identifies the content-normalization rules applied
// before embedding.
type NormalizationVersion struct {
	Version    string
	ConfigHash string
	Features   []string
}

// Current returns the NormalizationVersion matching content.CanonicalVersion.
func Current() NormalizationVersion {
	return NormalizationVersion{
		Version:  content.CanonicalVersion,
		Features: []string{"crlf_normalize", "trim_whitespace"},
	}
}

func (n NormalizationVersion) isComplete() bool {
	return len(n.missingFields()) == 0
}

func (n NormalizationVersion) missingFields() []string {
	if n.Version == "" {
		return []string{"normalization.version"}
	}
	return nil
}

// RetrievalParams records the parameters a retrieval was run under.
type RetrievalParams struct {
	K                  int
	SimilarityThreshold float64
	Reranking          string // empty if none
	MaxTokens          int    // 0 if unbounded
	PolicyID           string
	PolicyParamsHash   string // empty if unknown
}

func (p RetrievalParams) isComplete() bool {
	return len(p.missingFields()) == 0
}

func (p RetrievalParams) missingFields() []string {
	var missing []string
	if p.K <= 0 {
		missing = append(missing, "retrieval.k")
	}
	if p.PolicyID == "" {
		missing = append(missing, "retrieval.policy_id")
	}
	return missing
}

// Record is the ReplayProvenance of spec §4.11.
type Record struct {
	Timestamp         time.Time
	EmbeddingModel    EmbeddingModelRef
	Normalization     NormalizationVersion
	Retrieval         RetrievalParams
	GraphSnapshotHash string
	SliceFingerprint  string
}

// ProvenanceError is spec §7's ProvenanceError::MissingField(name): the
// replay-provenance builder found one or more unset required fields. Unlike
// a bare bool, it names every missing field in one pass rather than just
// the first, the way sufficiency.Policy.Check reports every failed rule.
type ProvenanceError struct {
	MissingFields []string
}

func (e *ProvenanceError) Error() string {
	return fmt.Sprintf("provenance: missing field(s): %s", strings.Join(e.MissingFields, ", "))
}

// Validate checks r for completeness, returning a *ProvenanceError naming
// every unset required field, or nil if r is complete.
func (r Record) Validate() error {
	var missing []string
	missing = append(missing, r.EmbeddingModel.missingFields()...)
	missing = append(missing, r.Normalization.missingFields()...)
	missing = append(missing, r.Retrieval.missingFields()...)
	if r.GraphSnapshotHash == "" {
		missing = append(missing, "graph_snapshot_hash")
	}
	if r.SliceFingerprint == "" {
		missing = append(missing, "slice_fingerprint")
	}

	if len(missing) == 0 {
		return nil
	}
	return &ProvenanceError{MissingFields: missing}
}

// IsComplete reports whether every required field is populated.
func (r Record) IsComplete() bool {
	return r.Validate() == nil
}

// canonicalPayload encodes r's fields other than Timestamp, which
// Fingerprint and IsReplayCompatible deliberately ignore.
func (r Record) canonicalPayload() []byte {
	w := codec.NewWriter()
	w.Raw("(")
	w.Str(r.EmbeddingModel.String())
	w.Raw(",")
	w.Bool(r.EmbeddingModel.Deterministic)
	w.Raw(",")
	w.Str(r.Normalization.Version)
	w.Raw(",")
	w.Str(r.Normalization.ConfigHash)
	w.Raw(",")
	w.Array(len(r.Normalization.Features), func(i int, w *codec.Writer) { w.Str(r.Normalization.Features[i]) })
	w.Raw(",")
	w.Int(int64(r.Retrieval.K))
	w.Raw(",")
	w.Quantized(r.Retrieval.SimilarityThreshold)
	w.Raw(",")
	w.Str(r.Retrieval.Reranking)
	w.Raw(",")
	w.Int(int64(r.Retrieval.MaxTokens))
	w.Raw(",")
	w.Str(r.Retrieval.PolicyID)
	w.Raw(",")
	w.Str(r.Retrieval.PolicyParamsHash)
	w.Raw(",")
	w.Str(r.GraphSnapshotHash)
	w.Raw(",")
	w.Str(r.SliceFingerprint)
	w.Raw(")")
	return w.Bytes()
}

// Fingerprint returns the 16-hex-char xxHash64 of r's canonical payload,
// excluding Timestamp.
func (r Record) Fingerprint() string {
	return codec.Fingerprint16(r.canonicalPayload())
}

// IsReplayCompatible reports whether r and other fingerprint identically
// modulo Timestamp.
func (r Record) IsReplayCompatible(other Record) bool {
	return r.Fingerprint() == other.Fingerprint()
}
