// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package incident

import (
	"fmt"
	"time"

	"github.com/luxfi/graphkernel/gklog"
)

// Incident is a single occurrence of one of the eight named invariant
// violations.
type Incident struct {
	ID       string
	Timestamp time.Time
	Type      Type
	Severity  Severity
	Context   map[string]string

	AcknowledgedAt *time.Time
	AcknowledgedBy string
}

// New constructs an Incident for typ, stamping severity from the type's
// fixed mapping.
func New(id string, typ Type, context map[string]string) Incident {
	return Incident{
		ID:        id,
		Timestamp: time.Now(),
		Type:      typ,
		Severity:  typ.Severity(),
		Context:   context,
	}
}

// Alert emits a structured log record at the level the incident's severity
// demands: error for Critical/High, warn for Medium, info for Low.
func (i Incident) Alert(log gklog.Logger) {
	fields := []gklog.Field{
		gklog.String("incident_id", i.ID),
		gklog.String("invariant", i.Type.Invariant()),
		gklog.String("incident_type", i.Type.String()),
		gklog.String("severity", i.Severity.String()),
	}
	msg := fmt.Sprintf("incident: %s (%s)", i.Type.Invariant(), i.Type.String())

	switch i.Severity {
	case Critical, High:
		log.Error(msg, fields...)
	case Medium:
		log.Warn(msg, fields...)
	default:
		log.Info(msg, fields...)
	}
}

// Acknowledge records that by acknowledged the incident at the given time.
func (i *Incident) Acknowledge(at time.Time, by string) {
	i.AcknowledgedAt = &at
	i.AcknowledgedBy = by
}

// QuarantinedToken records an admissibility token withheld from further use
// pending review (spec §4.12).
type QuarantinedToken struct {
	SliceFingerprint string
	Token            string
	Reason           string
	IncidentID       string
	QuarantinedAt    time.Time

	ReviewedAt *time.Time
	ReviewedBy string
	Approved   *bool
}

// Review records a reviewer's decision on a quarantined token.
func (q *QuarantinedToken) Review(at time.Time, by string, approved bool) {
	q.ReviewedAt = &at
	q.ReviewedBy = by
	q.Approved = &approved
}
