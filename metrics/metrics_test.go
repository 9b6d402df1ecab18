// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilRegistererDisablesMetrics(t *testing.T) {
	m, err := NewInterpreter("interpreter", nil)
	require.NoError(t, err)
	require.Nil(t, m)

	// Every recording method must be safe on the nil result.
	m.RecordAdapterCall(PrimitiveResolveProperty)
	m.RecordRowProduced()
	m.RecordTraceOp()
	m.QueryStarted()
	m.QueryFinished()
}

func gatherValue(t *testing.T, registry Registry, name string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				total += g.GetValue()
			}
		}
		return total
	}
	t.Fatalf("metric family %q not gathered", name)
	return 0
}

func TestInterpreterCountersGather(t *testing.T) {
	registry := NewRegistry()
	m, err := NewInterpreter("interpreter", registry)
	require.NoError(t, err)
	require.NotNil(t, m)

	m.QueryStarted()
	m.RecordAdapterCall(PrimitiveResolveStartingVertices)
	m.RecordAdapterCall(PrimitiveResolveProperty)
	m.RecordAdapterCall(PrimitiveResolveProperty)
	m.RecordRowProduced()
	m.RecordTraceOp()
	m.QueryFinished()

	require.Equal(t, 3.0, gatherValue(t, registry, "interpreter_adapter_calls_total"))
	require.Equal(t, 1.0, gatherValue(t, registry, "interpreter_rows_produced_total"))
	require.Equal(t, 1.0, gatherValue(t, registry, "interpreter_trace_ops_total"))
	require.Equal(t, 0.0, gatherValue(t, registry, "interpreter_active_queries"))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	registry := NewRegistry()
	_, err := NewInterpreter("interpreter", registry)
	require.NoError(t, err)
	_, err = NewInterpreter("interpreter", registry)
	require.Error(t, err)
}

func TestMultiGathererMergesFamilies(t *testing.T) {
	first := NewRegistry()
	_, err := NewInterpreter("engine_a", first)
	require.NoError(t, err)

	second := NewRegistry()
	_, err = NewInterpreter("engine_b", second)
	require.NoError(t, err)

	mg := NewMultiGatherer()
	require.NoError(t, mg.Register("a", first))
	require.NoError(t, mg.Register("b", second))

	families, err := mg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["engine_a_rows_produced_total"])
	require.True(t, names["engine_b_rows_produced_total"])
}
