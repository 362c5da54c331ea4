// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package incident

// Type enumerates the eight invariant violations the kernel can raise
// (spec §4.12), one per INV-GK-001..008. Each carries its own contextual
// payload (see Incident.Context); this package only fixes the closed set
// and its severity/invariant-id mapping.
type Type uint8

const (
	// DeterminismViolation: slice(a, P, G) produced different bytes across
	// identical invocations.
	DeterminismViolation Type = iota
	// AnchorMissing: a slice was emitted without its own anchor turn.
	AnchorMissing
	// BudgetExceeded: a slice exceeded policy.MaxNodes.
	BudgetExceeded
	// DanglingEdge: an edge referenced a turn id outside the slice's turns.
	DanglingEdge
	// OrderingViolation: turns or edges were not emitted in canonical order.
	OrderingViolation
	// TokenVerificationFailure: an admissibility token failed HMAC
	// verification.
	TokenVerificationFailure
	// PolicyRebindAttempted: Registry.Register was called with an existing
	// PolicyRef bound to different parameters.
	PolicyRebindAttempted
	// BoundaryViolation: a query attempted to reference a turn id outside
	// a SliceBoundaryGuard's authorized set.
	BoundaryViolation
)

type typeInfo struct {
	invariant string
	severity  Severity
}

var typeInfos = [...]typeInfo{
	DeterminismViolation:     {"INV-GK-001", Critical},
	AnchorMissing:            {"INV-GK-002", Critical},
	BudgetExceeded:           {"INV-GK-003", High},
	DanglingEdge:             {"INV-GK-004", High},
	OrderingViolation:        {"INV-GK-005", Medium},
	TokenVerificationFailure: {"INV-GK-006", High},
	PolicyRebindAttempted:    {"INV-GK-007", Critical},
	BoundaryViolation:        {"INV-GK-008", Critical},
}

// Invariant returns the stable invariant id string, e.g. "INV-GK-001".
func (t Type) Invariant() string {
	if int(t) < len(typeInfos) {
		return typeInfos[t].invariant
	}
	return "INV-GK-UNKNOWN"
}

// Severity returns the severity bound to this invariant.
func (t Type) Severity() Severity {
	if int(t) < len(typeInfos) {
		return typeInfos[t].severity
	}
	return Low
}

var typeNames = [...]string{
	"determinism_violation",
	"anchor_missing",
	"budget_exceeded",
	"dangling_edge",
	"ordering_violation",
	"token_verification_failure",
	"policy_rebind_attempted",
	"boundary_violation",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}
