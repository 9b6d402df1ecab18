// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ir

import "github.com/latticeql/engine/value"

// EdgeParameters carries the arguments a query passed to an edge
// (e.g. `successor(max: 10)`), resolved to concrete FieldValues by the
// time the IR reaches the interpreter.
type EdgeParameters map[string]value.Value

// Get returns the named parameter, if present.
func (p EdgeParameters) Get(name string) (value.Value, bool) {
	v, ok := p[name]
	return v, ok
}
