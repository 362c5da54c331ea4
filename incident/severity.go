// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package incident implements the kernel's incident model (spec §4.12):
// the eight named invariant violations, their severities, and the alerting/
// metrics surface that turns a violation into an operator-visible signal.
// The closed-enum-plus-alert shape follows the teacher's snow/choices
// decision types, which likewise pair a small closed set of outcomes with a
// single method that reports them.
package incident

import "time"

// Severity bounds how quickly an incident demands a response (spec §4.12).
type Severity uint8

const (
	Critical Severity = iota
	High
	Medium
	Low
)

var severityNames = [...]string{"critical", "high", "medium", "low"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// ResponseWindow returns the maximum time this severity tolerates before a
// response, per spec §4.12.
func (s Severity) ResponseWindow() time.Duration {
	switch s {
	case Critical:
		return 15 * time.Minute
	case High:
		return time.Hour
	case Medium:
		return 4 * time.Hour
	case Low:
		return 24 * time.Hour
	default:
		return 0
	}
}
