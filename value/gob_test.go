// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package value

import (
	"bytes"
	"encoding/gob"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func gobRoundTrip(t *testing.T, v Value) Value {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(v))
	var decoded Value
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
	return decoded
}

// Unlike the untagged JSON form, the gob encoding carries the Kind:
// Int64 vs Uint64, Enum vs String, and DateTimeUtc all survive.
func TestGobRoundTripPreservesKind(t *testing.T) {
	when := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	values := []Value{
		Null(),
		Int64(-7),
		Uint64(18446744073709551615),
		Float64(2.5),
		String("seven"),
		Boolean(true),
		DateTimeUtc(when),
		Enum("ASCENDING"),
		List([]Value{Int64(1), Enum("X"), Null()}),
	}
	for _, v := range values {
		decoded := gobRoundTrip(t, v)
		require.Equal(t, v.Kind(), decoded.Kind())
		require.True(t, v.Equal(decoded), "round-trip changed %s", v)
	}
}

func TestGobDistinguishesStringFromEnum(t *testing.T) {
	require.Equal(t, KindString, gobRoundTrip(t, String("A")).Kind())
	require.Equal(t, KindEnum, gobRoundTrip(t, Enum("A")).Kind())
}

func TestGobRoundTripInsideMap(t *testing.T) {
	original := map[string]Value{
		"count": Int64(4),
		"seq":   List([]Value{Int64(2), Int64(3)}),
	}
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(original))
	var decoded map[string]Value
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))

	require.Len(t, decoded, 2)
	for k, v := range original {
		require.True(t, v.Equal(decoded[k]), "key %q", k)
	}
}
