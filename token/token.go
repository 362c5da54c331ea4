// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token implements the admissibility token authority: HMAC-SHA256
// signing of canonical slice bytes, and the closed set of verification
// modes (local secret, LRU-cached, remote) spec §4.6 describes.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/luxfi/graphkernel/sliceexport"
)

// Signer holds the HMAC secret loaded once at startup into read-only
// memory (spec §5, "HMAC secret"). Rotation requires constructing a new
// Signer (assumption A-003: rotation requires restart).
type Signer struct {
	secret []byte
}

// NewSigner wraps secret. An empty secret is valid and means "do not sign":
// callers should check Signer.Configured before trusting Sign's output.
func NewSigner(secret []byte) *Signer {
	cp := make([]byte, len(secret))
	copy(cp, secret)
	return &Signer{secret: cp}
}

// Configured reports whether a non-empty secret was supplied.
func (s *Signer) Configured() bool {
	return s != nil && len(s.secret) > 0
}

// Sign returns the lowercase-hex-64 HMAC-SHA256 of payload under the
// configured secret, or "" if no secret is configured.
func (s *Signer) Sign(payload []byte) string {
	if !s.Configured() {
		return ""
	}
	return computeHMAC(s.secret, payload)
}

func computeHMAC(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// constantTimeEqualHex compares two hex-encoded digests byte for byte in
// constant time (spec §4.6/§4.8). The comparison is case-sensitive: an
// uppercase encoding of the same digest does not compare equal.
func constantTimeEqualHex(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// verifyLocal recomputes the HMAC over the SliceExport's canonical payload
// and compares it in constant time against the stored token.
func verifyLocal(secret []byte, export sliceexport.SliceExport) Outcome {
	if export.AdmissibilityToken == "" || export.SliceID == "" || export.PolicyID == "" {
		return Outcome{Result: Malformed, Reason: "missing required field"}
	}
	expected := computeHMAC(secret, export.CanonicalPayload())
	if constantTimeEqualHex(expected, export.AdmissibilityToken) {
		return Outcome{Result: Valid}
	}
	return Outcome{Result: InvalidToken}
}
