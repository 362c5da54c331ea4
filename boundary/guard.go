// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package boundary implements the slice boundary guard (spec §4.10): a
// fixed, authorized set of turn ids that downstream queries may never
// expand past, plus a query builder that can only reference that set
// through a typed parameter. The guard's allow-then-check shape follows
// the teacher's validators.Manager, which likewise keeps an authorized set
// and reports membership rather than letting callers query it directly.
package boundary

import (
	"fmt"
	"time"

	"github.com/luxfi/graphkernel/bundle"
	"github.com/luxfi/graphkernel/codec"
	"github.com/luxfi/graphkernel/gklog"
	"github.com/luxfi/graphkernel/ids"
	"github.com/luxfi/graphkernel/incident"
)

// Guard is the (slice_fingerprint, authorized_turn_ids, boundary_hash)
// tuple of spec §4.10. The authorized set is fixed at construction and
// never mutated afterward.
type Guard struct {
	SliceFingerprint string
	AuthorizedIDs    []ids.TurnID
	BoundaryHash     uint64

	authorized map[ids.TurnID]struct{}
	log        gklog.Logger
	metrics    incident.Metrics
}

// NewGuard builds a Guard over the admitted turn ids of b. Violations are
// logged through a no-op logger and skip metrics until WithAlerting is
// called; callers that care about incident reporting (the REST layer,
// cmd/graphkerneld) should always chain WithAlerting.
func NewGuard(b *bundle.AdmissibleEvidenceBundle) *Guard {
	authorizedIDs := b.AdmittedTurnIDs()

	set := make(map[ids.TurnID]struct{}, len(authorizedIDs))
	for _, id := range authorizedIDs {
		set[id] = struct{}{}
	}

	w := codec.NewWriter()
	w.Array(len(authorizedIDs), func(i int, w *codec.Writer) { w.TurnID(authorizedIDs[i]) })

	return &Guard{
		SliceFingerprint: b.SliceID(),
		AuthorizedIDs:    authorizedIDs,
		BoundaryHash:     xxhashSum(w.Bytes()),
		authorized:       set,
		log:              gklog.NewNoOp(),
	}
}

// WithAlerting wires g's violation path to log and metrics, so a boundary
// violation raises an incident.Incident instead of only returning a
// CheckResult to the caller.
func (g *Guard) WithAlerting(log gklog.Logger, metrics incident.Metrics) *Guard {
	if log != nil {
		g.log = log
	}
	g.metrics = metrics
	return g
}

// CheckResult is the closed sum type returned by CheckAccess.
type CheckResult struct {
	Authorized      bool
	UnauthorizedIDs []ids.TurnID
	SliceFingerprint string
	Timestamp       time.Time
	Context         map[string]string
}

// CheckAccess reports whether every id in requested belongs to g's
// authorized set. On any violation it returns every unauthorized id, not
// just the first.
func (g *Guard) CheckAccess(requested []ids.TurnID, context map[string]string) CheckResult {
	var unauthorized []ids.TurnID
	for _, id := range requested {
		if _, ok := g.authorized[id]; !ok {
			unauthorized = append(unauthorized, id)
		}
	}

	if len(unauthorized) == 0 {
		return CheckResult{Authorized: true, SliceFingerprint: g.SliceFingerprint}
	}

	ids.SortTurnIDs(unauthorized)
	result := CheckResult{
		Authorized:       false,
		UnauthorizedIDs:  unauthorized,
		SliceFingerprint: g.SliceFingerprint,
		Timestamp:        time.Now(),
		Context:          context,
	}
	g.raiseViolation(result)
	return result
}

// raiseViolation reports a boundary violation the way spec §4.10 requires:
// a structured log record tagged SLICE_BOUNDARY_VIOLATION and an
// incremented counter (§4.12). Boundary violations are never recoverable
// (§7), so every violation becomes an incident.Incident regardless of
// whether alerting was wired via WithAlerting.
func (g *Guard) raiseViolation(result CheckResult) {
	incidentContext := map[string]string{
		"slice_fingerprint": g.SliceFingerprint,
		"unauthorized_ids":  fmt.Sprint(result.UnauthorizedIDs),
	}
	for k, v := range result.Context {
		incidentContext[k] = v
	}

	inc := incident.New(
		fmt.Sprintf("boundary-%s-%d", g.SliceFingerprint, result.Timestamp.UnixNano()),
		incident.BoundaryViolation,
		incidentContext,
	)
	inc.Alert(g.log)
	g.log.Error("SLICE_BOUNDARY_VIOLATION", gklog.String("slice_fingerprint", g.SliceFingerprint))

	if g.metrics != nil {
		g.metrics.RecordBoundaryViolation()
		g.metrics.RecordIncident(incident.BoundaryViolation, incident.BoundaryViolation.Severity())
	}
}
