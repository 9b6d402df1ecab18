// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hints implements the optimizer-hint views (VertexInfo,
// QueryInfo, EdgeInfo) adapters may use to narrow the vertices or
// neighbors they resolve, plus the CandidateValue lattice those views
// are expressed in. Every hint is advisory: the engine re-applies
// every filter regardless of what an adapter does with these hints.
package hints

import "github.com/latticeql/engine/value"

// CandidateKind discriminates a CandidateValue's variant.
type CandidateKind uint8

const (
	// Impossible means no value can satisfy the vertex's filters; an
	// adapter seeing this may short-circuit to an empty result set.
	Impossible CandidateKind = iota
	// Single means exactly one value can satisfy the filters.
	Single
	// Multiple means any of a known, finite set of values can.
	Multiple
	// RangeKind means any value within a bound (open or closed on
	// either side) can.
	RangeKind
	// All means no static information narrows the candidates: every
	// value is possible as far as this hint can tell.
	All
)

// Bound is one side of a Range candidate: a value plus whether the
// bound includes that value.
type Bound struct {
	Value     value.Value
	Inclusive bool
}

// RangeBoundKind bounds a field's possible values from below and/or
// above. A nil Start or End means that side is unbounded.
type RangeBoundKind struct {
	Start *Bound
	End   *Bound
}

// CandidateValue is the small closed lattice the engine's static and
// dynamic hints are expressed in: {Impossible, Single, Multiple,
// Range, All}, ordered from most to least restrictive.
type CandidateValue struct {
	kind     CandidateKind
	single   value.Value
	multiple []value.Value
	rng      RangeBoundKind
}

// ImpossibleValue builds the Impossible candidate.
func ImpossibleValue() CandidateValue { return CandidateValue{kind: Impossible} }

// SingleValue builds a Single candidate.
func SingleValue(v value.Value) CandidateValue { return CandidateValue{kind: Single, single: v} }

// MultipleValue builds a Multiple candidate. The slice is not copied.
// An empty slice collapses to Impossible and a one-element slice to
// Single.
func MultipleValue(vs []value.Value) CandidateValue {
	if len(vs) == 0 {
		return ImpossibleValue()
	}
	if len(vs) == 1 {
		return SingleValue(vs[0])
	}
	return CandidateValue{kind: Multiple, multiple: vs}
}

// RangeValue builds a Range candidate.
func RangeValue(r RangeBoundKind) CandidateValue { return CandidateValue{kind: RangeKind, rng: r} }

// AllValue builds the All candidate (no information).
func AllValue() CandidateValue { return CandidateValue{kind: All} }

// Kind returns the active variant.
func (c CandidateValue) Kind() CandidateKind { return c.kind }

// AsSingle returns the wrapped value if c is Single.
func (c CandidateValue) AsSingle() (value.Value, bool) {
	if c.kind == Single {
		return c.single, true
	}
	return value.Value{}, false
}

// AsMultiple returns the wrapped values if c is Multiple.
func (c CandidateValue) AsMultiple() ([]value.Value, bool) {
	if c.kind == Multiple {
		return c.multiple, true
	}
	return nil, false
}

// AsRange returns the wrapped range if c is Range.
func (c CandidateValue) AsRange() (RangeBoundKind, bool) {
	if c.kind == RangeKind {
		return c.rng, true
	}
	return RangeBoundKind{}, false
}

// Contains reports whether v satisfies c, used to test set membership
// when merging a Single or Multiple candidate with a Multiple one.
func (c CandidateValue) Contains(v value.Value) bool {
	switch c.kind {
	case Impossible:
		return false
	case All:
		return true
	case Single:
		return c.single.Equal(v)
	case Multiple:
		for _, m := range c.multiple {
			if m.Equal(v) {
				return true
			}
		}
		return false
	case RangeKind:
		return rangeContains(c.rng, v)
	default:
		return false
	}
}

func rangeContains(r RangeBoundKind, v value.Value) bool {
	fv, ok := numeric(v)
	if !ok {
		return false
	}
	if r.Start != nil {
		sv, ok := numeric(r.Start.Value)
		if ok {
			if r.Start.Inclusive {
				if fv < sv {
					return false
				}
			} else if fv <= sv {
				return false
			}
		}
	}
	if r.End != nil {
		ev, ok := numeric(r.End.Value)
		if ok {
			if r.End.Inclusive {
				if fv > ev {
					return false
				}
			} else if fv >= ev {
				return false
			}
		}
	}
	return true
}

func numeric(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindInt64:
		i, _ := v.AsInt64()
		return float64(i), true
	case value.KindUint64:
		u, _ := v.AsUint64()
		return float64(u), true
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		return f, true
	default:
		return 0, false
	}
}

// Merge intersects two candidates, tightening the set of possible
// values: merge(A, B) is always a subset of both A and B.
// merge(Impossible, _) = Impossible; merge(All, X) = X.
func Merge(a, b CandidateValue) CandidateValue {
	if a.kind == Impossible || b.kind == Impossible {
		return ImpossibleValue()
	}
	if a.kind == All {
		return b
	}
	if b.kind == All {
		return a
	}

	switch {
	case a.kind == Single && b.kind == Single:
		if a.single.Equal(b.single) {
			return a
		}
		return ImpossibleValue()
	case a.kind == Single && b.kind == Multiple:
		if b.Contains(a.single) {
			return a
		}
		return ImpossibleValue()
	case a.kind == Multiple && b.kind == Single:
		return Merge(b, a)
	case a.kind == Single && b.kind == RangeKind:
		if rangeContains(b.rng, a.single) {
			return a
		}
		return ImpossibleValue()
	case a.kind == RangeKind && b.kind == Single:
		return Merge(b, a)
	case a.kind == Multiple && b.kind == Multiple:
		var out []value.Value
		for _, v := range a.multiple {
			if b.Contains(v) {
				out = append(out, v)
			}
		}
		return MultipleValue(out)
	case a.kind == Multiple && b.kind == RangeKind:
		var out []value.Value
		for _, v := range a.multiple {
			if rangeContains(b.rng, v) {
				out = append(out, v)
			}
		}
		return MultipleValue(out)
	case a.kind == RangeKind && b.kind == Multiple:
		return Merge(b, a)
	case a.kind == RangeKind && b.kind == RangeKind:
		return CandidateValue{kind: RangeKind, rng: intersectRanges(a.rng, b.rng)}
	default:
		return ImpossibleValue()
	}
}

func intersectRanges(a, b RangeBoundKind) RangeBoundKind {
	out := RangeBoundKind{Start: a.Start, End: a.End}
	if b.Start != nil {
		if out.Start == nil || tighterLowerBound(*b.Start, *out.Start) {
			out.Start = b.Start
		}
	}
	if b.End != nil {
		if out.End == nil || tighterUpperBound(*b.End, *out.End) {
			out.End = b.End
		}
	}
	return out
}

func tighterLowerBound(candidate, current Bound) bool {
	cv, cok := numeric(candidate.Value)
	uv, uok := numeric(current.Value)
	if !cok || !uok {
		return false
	}
	if cv != uv {
		return cv > uv
	}
	return !candidate.Inclusive && current.Inclusive
}

func tighterUpperBound(candidate, current Bound) bool {
	cv, cok := numeric(candidate.Value)
	uv, uok := numeric(current.Value)
	if !cok || !uok {
		return false
	}
	if cv != uv {
		return cv < uv
	}
	return !candidate.Inclusive && current.Inclusive
}
