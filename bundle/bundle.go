// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bundle implements the type-sealed admissibility model (spec
// §4.8): AdmissibleEvidenceBundle can only be produced by FromVerified,
// which re-runs HMAC verification itself. Accepting a *AdmissibleEvidenceBundle
// anywhere downstream is a compile-time proof the caller is holding
// verified evidence, the same way the teacher's validators.Manager keeps
// its internal set unexported so only its own methods can mutate it.
package bundle

import (
	"context"
	"time"

	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/sliceexport"
	"github.com/luxfi/graphkernel/token"
)

// AdmissibleEvidenceBundle wraps a verified SliceExport. The slice field is
// unexported and this file is the only place that constructs one: there is
// no other way to obtain a populated bundle.
type AdmissibleEvidenceBundle struct {
	slice      sliceexport.SliceExport
	verifiedAt time.Time
	admitted   map[ids.TurnID]struct{}
}

// FromVerified is the bundle's sole constructor. It recomputes the HMAC
// over slice's canonical payload and compares it in constant time against
// slice.AdmissibilityToken; on any mismatch or missing field it returns a
// VerificationError and no bundle.
func FromVerified(ctx context.Context, slice sliceexport.SliceExport, secret []byte) (*AdmissibleEvidenceBundle, error) {
	if slice.SliceID == "" {
		return nil, Malformed("slice_id")
	}
	if slice.PolicyID == "" {
		return nil, Malformed("policy_id")
	}
	if slice.AdmissibilityToken == "" {
		return nil, Malformed("admissibility_token")
	}

	verifier := token.LocalSecret{Secret: secret}
	outcome, err := verifier.Verify(ctx, slice)
	if err != nil {
		return nil, &VerificationError{Reason: err.Error()}
	}
	switch outcome.Result {
	case token.Malformed:
		return nil, Malformed(outcome.Reason)
	case token.InvalidToken:
		return nil, TokenMismatch()
	case token.Valid:
	default:
		return nil, &VerificationError{Reason: "verifier returned an unexpected result"}
	}

	admitted := make(map[ids.TurnID]struct{}, len(slice.Turns))
	for _, t := range slice.Turns {
		admitted[t.ID] = struct{}{}
	}

	return &AdmissibleEvidenceBundle{
		slice:      slice,
		verifiedAt: time.Now(),
		admitted:   admitted,
	}, nil
}

// Slice returns the verified SliceExport.
func (b *AdmissibleEvidenceBundle) Slice() sliceexport.SliceExport { return b.slice }

// AnchorID returns the slice's anchor turn id.
func (b *AdmissibleEvidenceBundle) AnchorID() ids.TurnID { return b.slice.AnchorTurnID }

// SliceID returns the slice's fingerprint.
func (b *AdmissibleEvidenceBundle) SliceID() string { return b.slice.SliceID }

// GraphSnapshotHash returns the slice's graph snapshot hash.
func (b *AdmissibleEvidenceBundle) GraphSnapshotHash() string { return b.slice.GraphSnapshotHash }

// VerifiedAt returns when this bundle was sealed.
func (b *AdmissibleEvidenceBundle) VerifiedAt() time.Time { return b.verifiedAt }

// AdmittedTurnIDs returns the set of turn ids carried by the verified
// slice, in ascending order.
func (b *AdmissibleEvidenceBundle) AdmittedTurnIDs() []ids.TurnID {
	out := make([]ids.TurnID, 0, len(b.admitted))
	for id := range b.admitted {
		out = append(out, id)
	}
	ids.SortTurnIDs(out)
	return out
}

// IsTurnAdmissible reports whether id is a member of this bundle's turn set.
func (b *AdmissibleEvidenceBundle) IsTurnAdmissible(id ids.TurnID) bool {
	_, ok := b.admitted[id]
	return ok
}
