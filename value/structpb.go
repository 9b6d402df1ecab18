// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package value

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts a Value into a google.protobuf.Value, giving
// FieldValue a wire-friendly, language-agnostic encoding alongside
// the untagged JSON form. structpb has no native
// integer, enum, or timestamp kind, so Int64/Uint64 round-trip as
// numbers, DateTimeUtc round-trips as an RFC3339 string, and Enum
// round-trips as its bare member name. FromStruct recovers the numeric
// Kind of integral numbers; DateTimeUtc and Enum come back as String.
func (v Value) ToStruct() (*structpb.Value, error) {
	switch v.kind {
	case KindNull:
		return structpb.NewNullValue(), nil
	case KindInt64:
		return structpb.NewNumberValue(float64(v.i64)), nil
	case KindUint64:
		return structpb.NewNumberValue(float64(v.u64)), nil
	case KindFloat64:
		return structpb.NewNumberValue(v.f64), nil
	case KindString:
		return structpb.NewStringValue(v.str), nil
	case KindBoolean:
		return structpb.NewBoolValue(v.b), nil
	case KindDateTimeUtc:
		return structpb.NewStringValue(v.t.Format(time.RFC3339Nano)), nil
	case KindEnum:
		return structpb.NewStringValue(v.str), nil
	case KindList:
		elts := make([]*structpb.Value, len(v.list))
		for i, elt := range v.list {
			converted, err := elt.ToStruct()
			if err != nil {
				return nil, err
			}
			elts[i] = converted
		}
		return structpb.NewListValue(&structpb.ListValue{Values: elts}), nil
	default:
		return nil, fmt.Errorf("value: cannot convert invalid Kind %d to structpb.Value", v.kind)
	}
}

// FromStruct is the inverse of ToStruct. Numbers decode as Float64
// unless they hold an exact integer, in which case they decode as
// Int64 (or Uint64 if negative doesn't apply and the value exceeds
// math.MaxInt64), matching the JSON decoding priority.
func FromStruct(s *structpb.Value) (Value, error) {
	switch kind := s.GetKind().(type) {
	case *structpb.Value_NullValue, nil:
		return Null(), nil
	case *structpb.Value_NumberValue:
		return numberFromFloat(kind.NumberValue), nil
	case *structpb.Value_StringValue:
		return String(kind.StringValue), nil
	case *structpb.Value_BoolValue:
		return Boolean(kind.BoolValue), nil
	case *structpb.Value_ListValue:
		elts := kind.ListValue.GetValues()
		list := make([]Value, len(elts))
		for i, elt := range elts {
			converted, err := FromStruct(elt)
			if err != nil {
				return Value{}, err
			}
			list[i] = converted
		}
		return List(list), nil
	case *structpb.Value_StructValue:
		return Value{}, fmt.Errorf("value: structpb.Struct values are not supported")
	default:
		return Value{}, fmt.Errorf("value: unrecognized structpb.Value kind %T", kind)
	}
}

func numberFromFloat(f float64) Value {
	switch {
	case f >= -(1<<63) && f < 1<<63 && f == float64(int64(f)):
		return Int64(int64(f))
	case f >= 1<<63 && f < 1<<64 && f == float64(uint64(f)):
		return Uint64(uint64(f))
	}
	return Value{kind: KindFloat64, f64: f}
}
