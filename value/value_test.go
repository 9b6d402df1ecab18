// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualCrossVariant(t *testing.T) {
	require.False(t, Int64(1).Equal(Uint64(1)))
	require.False(t, Int64(1).Equal(Float64(1)))
	require.True(t, Int64(1).Equal(Int64(1)))
	require.True(t, Null().Equal(Null()))
	require.False(t, Null().Equal(Int64(0)))
}

func TestEqualList(t *testing.T) {
	a := List([]Value{Int64(1), String("x")})
	b := List([]Value{Int64(1), String("x")})
	c := List([]Value{Int64(1), String("y")})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestFloat64RejectsNonFinite(t *testing.T) {
	_, err := TryFloat64(math.NaN())
	require.Error(t, err)
	require.Panics(t, func() { Float64(math.Inf(1)) })
}

func TestJSONNumberPriority(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte("123"), &v))
	require.Equal(t, KindInt64, v.Kind())

	var big Value
	require.NoError(t, json.Unmarshal([]byte("18446744073709551615"), &big))
	require.Equal(t, KindUint64, big.Kind())
	u, ok := big.AsUint64()
	require.True(t, ok)
	require.Equal(t, uint64(18446744073709551615), u)

	var f Value
	require.NoError(t, json.Unmarshal([]byte("1.5"), &f))
	require.Equal(t, KindFloat64, f.Kind())
}

func TestJSONRoundTrip(t *testing.T) {
	original := List([]Value{Int64(1), String("a"), Boolean(true), Null()})
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, original.Equal(decoded))
}

func TestStructRoundTripPreservesIntegers(t *testing.T) {
	original := Int64(42)
	s, err := original.ToStruct()
	require.NoError(t, err)

	decoded, err := FromStruct(s)
	require.NoError(t, err)
	require.True(t, original.Equal(decoded))
}

func TestStructRoundTripList(t *testing.T) {
	original := List([]Value{Int64(1), Int64(2), String("x")})
	s, err := original.ToStruct()
	require.NoError(t, err)

	decoded, err := FromStruct(s)
	require.NoError(t, err)
	require.True(t, original.Equal(decoded))
}
