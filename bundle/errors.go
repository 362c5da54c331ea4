// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bundle

import "fmt"

// VerificationError is returned when FromVerified cannot seal a bundle.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("bundle: verification failed: %s", e.Reason)
}

// TokenMismatch is the VerificationError produced by a failed HMAC compare.
func TokenMismatch() *VerificationError {
	return &VerificationError{Reason: "token mismatch"}
}

// Malformed is the VerificationError produced by a structurally incomplete
// SliceExport (missing slice_id, policy_id, or admissibility_token).
func Malformed(field string) *VerificationError {
	return &VerificationError{Reason: fmt.Sprintf("malformed export: missing %s", field)}
}
