// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

// NoOp is a logger implementation that discards everything. It is the
// default used by tests and by callers who want a silent engine.
type NoOp struct{}

// NewNoOpLogger returns a logger that doesn't log anything.
func NewNoOpLogger() Logger {
	return NoOp{}
}

func (NoOp) Debug(msg string, fields ...interface{}) {}
func (NoOp) Info(msg string, fields ...interface{})  {}
func (NoOp) Warn(msg string, fields ...interface{})  {}
func (NoOp) Error(msg string, fields ...interface{}) {}

func (n NoOp) With(fields ...interface{}) Logger {
	return n
}
