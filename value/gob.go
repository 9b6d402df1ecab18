// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package value

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// wireValue is the exported-field form a Value gob-encodes through.
// Unlike the JSON encoding, it is tagged: Int64, Uint64, Enum, and
// DateTimeUtc all survive a round-trip with their exact Kind.
type wireValue struct {
	Kind Kind
	I64  int64
	U64  uint64
	F64  float64
	Str  string
	B    bool
	T    time.Time
	List []Value
}

// GobEncode implements gob.GobEncoder. Value carries its payload in
// unexported fields, so gob needs this explicit form; anything that
// embeds a Value (trace ops, edge parameters, rows) encodes through
// it transparently.
func (v Value) GobEncode() ([]byte, error) {
	w := wireValue{Kind: v.kind}
	switch v.kind {
	case KindNull:
	case KindInt64:
		w.I64 = v.i64
	case KindUint64:
		w.U64 = v.u64
	case KindFloat64:
		w.F64 = v.f64
	case KindString, KindEnum:
		w.Str = v.str
	case KindBoolean:
		w.B = v.b
	case KindDateTimeUtc:
		w.T = v.t
	case KindList:
		w.List = v.list
	default:
		return nil, fmt.Errorf("value: cannot gob-encode invalid Kind %d", v.kind)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (v *Value) GobDecode(data []byte) error {
	var w wireValue
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	switch w.Kind {
	case KindNull:
		*v = Null()
	case KindInt64:
		*v = Int64(w.I64)
	case KindUint64:
		*v = Uint64(w.U64)
	case KindFloat64:
		decoded, err := TryFloat64(w.F64)
		if err != nil {
			return err
		}
		*v = decoded
	case KindString:
		*v = String(w.Str)
	case KindEnum:
		*v = Enum(w.Str)
	case KindBoolean:
		*v = Boolean(w.B)
	case KindDateTimeUtc:
		*v = DateTimeUtc(w.T)
	case KindList:
		*v = List(w.List)
	default:
		return fmt.Errorf("value: cannot gob-decode invalid Kind %d", w.Kind)
	}
	return nil
}
