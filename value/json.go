// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MarshalJSON renders a Value as an untagged JSON value with no Kind
// discriminator. Enum values render
// as their bare member name, indistinguishable on the wire from a
// String; that's expected since JSON has no enum type of its own.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt64:
		return json.Marshal(v.i64)
	case KindUint64:
		return json.Marshal(v.u64)
	case KindFloat64:
		return json.Marshal(v.f64)
	case KindString:
		return json.Marshal(v.str)
	case KindBoolean:
		return json.Marshal(v.b)
	case KindDateTimeUtc:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	case KindEnum:
		return json.Marshal(v.str)
	case KindList:
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("value: cannot marshal invalid Kind %d", v.kind)
	}
}

// UnmarshalJSON decodes an untagged JSON value into a Value, trying
// Int64 before Uint64 before Float64 for numbers so that exact
// integer literals keep their exact type rather than losing precision
// by always decoding through float64.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	decoded, err := fromJSONAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func fromJSONAny(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case json.Number:
		return convertJSONNumber(x)
	case string:
		return String(x), nil
	case bool:
		return Boolean(x), nil
	case []interface{}:
		list := make([]Value, len(x))
		for i, elt := range x {
			converted, err := fromJSONAny(elt)
			if err != nil {
				return Value{}, err
			}
			list[i] = converted
		}
		return List(list), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON value of type %T", raw)
	}
}

// convertJSONNumber tries Int64, then Uint64, then Float64, so exact
// integers never degrade to floats.
func convertJSONNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int64(i), nil
	}
	if u, ok := parseUint64(string(n)); ok {
		return Uint64(u), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("value: JSON number %q is neither an integer nor a finite float", n)
	}
	return TryFloat64(f)
}

func parseUint64(s string) (uint64, bool) {
	var u uint64
	if len(s) == 0 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		digit := uint64(r - '0')
		if u > (^uint64(0)-digit)/10 {
			return 0, false
		}
		u = u*10 + digit
	}
	return u, true
}
