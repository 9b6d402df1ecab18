// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter

import "context"

// SliceIterator adapts a plain slice into a VertexIterator, useful for
// small fixtures and tests.
type SliceIterator[V any] struct {
	items []V
	pos   int
}

// FromSlice returns a VertexIterator over items, in order.
func FromSlice[V any](items []V) *SliceIterator[V] {
	return &SliceIterator[V]{items: items}
}

func (s *SliceIterator[V]) Next(ctx context.Context) (V, bool, error) {
	var zero V
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

// FuncIterator adapts a generator function into an Iterator[T]. The
// function must itself honor the "false once exhausted, forever
// after" contract.
type FuncIterator[T any] struct {
	next func(ctx context.Context) (T, bool, error)
}

// FromFunc builds an Iterator[T] out of a plain pull function.
func FromFunc[T any](next func(ctx context.Context) (T, bool, error)) *FuncIterator[T] {
	return &FuncIterator[T]{next: next}
}

func (f *FuncIterator[T]) Next(ctx context.Context) (T, bool, error) {
	return f.next(ctx)
}

// MapIterator lazily applies fn to each element pulled from inner.
type MapIterator[T, U any] struct {
	inner Iterator[T]
	fn    func(T) U
}

// Map returns an Iterator that applies fn to each element of inner on
// demand.
func Map[T, U any](inner Iterator[T], fn func(T) U) *MapIterator[T, U] {
	return &MapIterator[T, U]{inner: inner, fn: fn}
}

func (m *MapIterator[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	item, ok, err := m.inner.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	return m.fn(item), true, nil
}
