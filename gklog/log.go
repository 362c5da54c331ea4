// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gklog wraps go.uber.org/zap behind a small Logger interface, the
// way the teacher wraps zap behind github.com/luxfi/log.Logger (see
// log/nolog.go): callers depend on the interface, production wires a real
// zap core, and tests get a no-op implementation for free.
package gklog

import "go.uber.org/zap"

// Field is re-exported so callers never need their own zap import.
type Field = zap.Field

// Logger is the structured logging surface the kernel's components use for
// incident alerts (§4.12), boundary violations (§4.10), and the
// graph_snapshot_hash fallback warning (§4.7).
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type zapLogger struct {
	l *zap.Logger
}

// New wraps an existing *zap.Logger.
func New(l *zap.Logger) Logger {
	return &zapLogger{l: l}
}

// NewProduction returns a Logger backed by zap's production configuration.
func NewProduction() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// NewNoOp returns a Logger that discards everything, for tests and
// components run without an operator-facing log sink.
func NewNoOp() Logger {
	return New(zap.NewNop())
}

func (z *zapLogger) Debug(msg string, fields ...Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.l.Error(msg, fields...) }

func (z *zapLogger) With(fields ...Field) Logger {
	return New(z.l.With(fields...))
}

// String, Int, and the other field constructors are re-exported so callers
// write gklog.String(...) instead of importing zap directly.
var (
	String = zap.String
	Int    = zap.Int
	Bool   = zap.Bool
	Err    = zap.Error
)
