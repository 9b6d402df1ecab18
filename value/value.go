// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package value implements FieldValue, the tagged-union scalar/list
// value type flowing through the interpreter: vertex properties,
// filter operands, tag bindings, and output rows are all FieldValues.
package value

import (
	"fmt"
	"math"
	"time"
)

// Kind discriminates the variant a Value currently holds. Order
// matters for untagged JSON decoding: Int64 is tried before Uint64,
// which is tried before Float64, so integer literals keep their exact
// type instead of losing precision to a float round-trip.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindBoolean
	KindDateTimeUtc
	KindEnum
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindDateTimeUtc:
		return "DateTimeUtc"
	case KindEnum:
		return "Enum"
	case KindList:
		return "List"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a FieldValue: exactly one of Null, Int64, Uint64, Float64,
// String, Boolean, DateTimeUtc, Enum, or List is active at a time,
// selected by Kind(). The zero Value is Null.
type Value struct {
	kind Kind
	i64  int64
	u64  uint64
	f64  float64
	str  string // also backs Enum
	b    bool
	t    time.Time
	list []Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Int64 wraps a signed 64-bit integer.
func Int64(v int64) Value { return Value{kind: KindInt64, i64: v} }

// Uint64 wraps an unsigned 64-bit integer.
func Uint64(v uint64) Value { return Value{kind: KindUint64, u64: v} }

// Float64 wraps a finite float. It panics if v is NaN or infinite:
// FieldValue::Float64 is specified to never hold a non-finite value,
// so construction is where that invariant is enforced.
func Float64(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("value: Float64 must be finite, got %v", v))
	}
	return Value{kind: KindFloat64, f64: v}
}

// TryFloat64 is the non-panicking form of Float64.
func TryFloat64(v float64) (Value, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}, fmt.Errorf("value: %v is not a finite (non-infinite, not-NaN) value", v)
	}
	return Value{kind: KindFloat64, f64: v}, nil
}

// String wraps a string.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Boolean wraps a bool.
func Boolean(v bool) Value { return Value{kind: KindBoolean, b: v} }

// DateTimeUtc wraps a UTC timestamp.
func DateTimeUtc(v time.Time) Value { return Value{kind: KindDateTimeUtc, t: v.UTC()} }

// Enum wraps an enum member name.
func Enum(name string) Value { return Value{kind: KindEnum, str: name} }

// List wraps a list of values. The slice is not copied.
func List(vs []Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt64 returns the Int64 payload, or the Uint64 payload if it fits
// in an int64, matching the original's "accept either exact integer
// representation" leniency.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt64:
		return v.i64, true
	case KindUint64:
		if v.u64 <= math.MaxInt64 {
			return int64(v.u64), true
		}
	}
	return 0, false
}

// AsUint64 returns the Uint64 payload, or the Int64 payload if
// non-negative.
func (v Value) AsUint64() (uint64, bool) {
	switch v.kind {
	case KindUint64:
		return v.u64, true
	case KindInt64:
		if v.i64 >= 0 {
			return uint64(v.i64), true
		}
	}
	return 0, false
}

// AsFloat64 returns the Float64 payload verbatim, or widens an
// integer variant to float64.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindFloat64:
		return v.f64, true
	case KindInt64:
		return float64(v.i64), true
	case KindUint64:
		return float64(v.u64), true
	}
	return 0, false
}

// AsString returns the String payload.
func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

// AsBool returns the Boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBoolean {
		return v.b, true
	}
	return false, false
}

// AsDateTime returns the DateTimeUtc payload.
func (v Value) AsDateTime() (time.Time, bool) {
	if v.kind == KindDateTimeUtc {
		return v.t, true
	}
	return time.Time{}, false
}

// AsEnum returns the Enum payload.
func (v Value) AsEnum() (string, bool) {
	if v.kind == KindEnum {
		return v.str, true
	}
	return "", false
}

// AsList returns the List payload.
func (v Value) AsList() ([]Value, bool) {
	if v.kind == KindList {
		return v.list, true
	}
	return nil, false
}

// Equal implements FieldValue equality: same Kind and same payload;
// differing Kinds are always unequal, even when one could be
// numerically coerced into the other (Int64(1) != Uint64(1)).
// Float64 equality asserts both operands are finite, defensively
// re-checking the construction-time invariant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt64:
		return v.i64 == other.i64
	case KindUint64:
		return v.u64 == other.u64
	case KindFloat64:
		if math.IsNaN(v.f64) || math.IsInf(v.f64, 0) || math.IsNaN(other.f64) || math.IsInf(other.f64, 0) {
			panic("value: Float64 equality requires both operands to be finite")
		}
		return v.f64 == other.f64
	case KindString:
		return v.str == other.str
	case KindBoolean:
		return v.b == other.b
	case KindDateTimeUtc:
		return v.t.Equal(other.t)
	case KindEnum:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt64:
		return fmt.Sprintf("%d", v.i64)
	case KindUint64:
		return fmt.Sprintf("%d", v.u64)
	case KindFloat64:
		return fmt.Sprintf("%v", v.f64)
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindBoolean:
		return fmt.Sprintf("%v", v.b)
	case KindDateTimeUtc:
		return v.t.Format(time.RFC3339Nano)
	case KindEnum:
		return v.str
	case KindList:
		return fmt.Sprintf("%v", v.list)
	default:
		return "<invalid value>"
	}
}

// GoString supports %#v for debugging/trace equality failure messages.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Kind=%s(%s)", v.kind, v.String())
}
