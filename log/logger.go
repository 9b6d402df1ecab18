// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log provides the structured logger interface used by the
// interpreter engine and its supporting packages.
package log

// Logger is the structured, leveled logger the engine accepts. Fields
// are variadic key/value pairs, following the zap sugared-logger
// convention.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})

	// With returns a child logger that always includes the given
	// key/value pairs.
	With(fields ...interface{}) Logger
}
