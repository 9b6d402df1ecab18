// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ir defines the intermediate representation the interpreter
// engine consumes: vertices, edges, folds, filter operations, and the
// query components they form. The IR is produced by an out-of-scope
// frontend/schema-validation pass; this package only models its shape.
package ir

import "fmt"

// Vid is an opaque, monotonically assigned identifier for an IR
// vertex. Vids are totally ordered by their underlying integer value;
// that order is the canonical query order (depth-first preorder) used
// throughout the engine to reason about "earlier" scopes, e.g. when
// deciding whether a @tag's source vertex has already been resolved.
type Vid uint32

func (v Vid) String() string { return fmt.Sprintf("v%d", uint32(v)) }

// Eid is an opaque, monotonically assigned identifier for an IR edge
// or fold, totally ordered the same way as Vid.
type Eid uint32

func (e Eid) String() string { return fmt.Sprintf("e%d", uint32(e)) }
