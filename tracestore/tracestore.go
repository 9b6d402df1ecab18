// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tracestore persists recorded traces so a trace captured in
// one process can be replayed in another: each TraceOp is gob-encoded
// under a key scoped to a run id and ordered by opid, using a
// key-prefix/range-scan layout over a pebble.DB.
package tracestore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/latticeql/engine/interpreter/trace"
)

// Store persists trace.Trace[V] recordings, one run per run id, in a
// pebble.DB. The zero value is not usable; construct with NewStore.
type Store[V any] struct {
	db *pebble.DB
}

// NewStore wraps an already-open pebble.DB. The store does not own
// db's lifecycle; callers close it themselves.
func NewStore[V any](db *pebble.DB) *Store[V] {
	return &Store[V]{db: db}
}

const runPrefix = "trace/"

// opKey builds the big-endian-ordered key for runID's opid, so a
// prefix range scan over a run yields ops in opid order without
// needing a separate index.
func opKey(runID string, opid trace.Opid) []byte {
	key := make([]byte, 0, len(runPrefix)+len(runID)+1+8)
	key = append(key, runPrefix...)
	key = append(key, runID...)
	key = append(key, 0) // NUL separator: runID may not contain NUL
	key = binary.BigEndian.AppendUint64(key, uint64(opid))
	return key
}

func runLowerBound(runID string) []byte {
	return opKey(runID, 0)
}

func runUpperBound(runID string) []byte {
	return opKey(runID, ^trace.Opid(0))
}

// Save persists every op of t under runID, overwriting any trace
// previously saved under the same run id.
func (s *Store[V]) Save(runID string, t *trace.Trace[V]) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	// Clear any prior recording first so a shorter re-save doesn't
	// leave stale high-opid records behind.
	if err := batch.DeleteRange(runLowerBound(runID), runUpperBound(runID), nil); err != nil {
		return fmt.Errorf("tracestore: clear run %s: %w", runID, err)
	}

	for _, op := range t.Ops {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(op); err != nil {
			return fmt.Errorf("tracestore: encode op %d: %w", op.Opid, err)
		}
		if err := batch.Set(opKey(runID, op.Opid), buf.Bytes(), nil); err != nil {
			return fmt.Errorf("tracestore: stage op %d: %w", op.Opid, err)
		}
	}
	return batch.Commit(pebble.Sync)
}

// Load reconstructs the trace recorded under runID, ops ordered by
// opid. It returns a nil Trace and no error if nothing was saved
// under that run id.
func (s *Store[V]) Load(runID string) (*trace.Trace[V], error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: runLowerBound(runID),
		UpperBound: runUpperBound(runID),
	})
	if err != nil {
		return nil, fmt.Errorf("tracestore: open iterator: %w", err)
	}
	defer iter.Close()

	var ops []trace.TraceOp[V]
	for valid := iter.First(); valid; valid = iter.Next() {
		var op trace.TraceOp[V]
		if err := gob.NewDecoder(bytes.NewReader(iter.Value())).Decode(&op); err != nil {
			return nil, fmt.Errorf("tracestore: decode op: %w", err)
		}
		ops = append(ops, op)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("tracestore: iterate run %s: %w", runID, err)
	}
	if ops == nil {
		return nil, nil
	}
	return &trace.Trace[V]{Ops: ops}, nil
}

// Delete removes every op saved under runID.
func (s *Store[V]) Delete(runID string) error {
	return s.db.DeleteRange(runLowerBound(runID), runUpperBound(runID), pebble.Sync)
}
