// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires the interpreter engine into Prometheus. It is
// entirely optional: every constructor accepts a nil Registerer, in
// which case metrics collection is a no-op and the engine behaves
// exactly as it would without this package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registerer is an interface for registering prometheus metrics.
type Registerer interface {
	prometheus.Registerer
}

// Registry is a prometheus registry exposing both registration and
// gathering.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRegistry creates a new prometheus registry.
func NewRegistry() Registry {
	return prometheus.NewRegistry()
}

// Primitive names a pull-based adapter primitive, used as a metric
// label so per-primitive call counts can be broken out in a single
// counter vector.
type Primitive string

const (
	PrimitiveResolveStartingVertices Primitive = "resolve_starting_vertices"
	PrimitiveResolveProperty         Primitive = "resolve_property"
	PrimitiveResolveNeighbors        Primitive = "resolve_neighbors"
	PrimitiveResolveCoercion         Primitive = "resolve_coercion"
)

// Interpreter is the set of counters/gauges the engine updates while
// running a query. A nil *Interpreter is safe to use: every method is
// a no-op on a nil receiver.
type Interpreter struct {
	adapterCalls *prometheus.CounterVec
	rowsProduced prometheus.Counter
	traceOps     prometheus.Counter
	activeQuery  prometheus.Gauge
}

// NewInterpreter registers the interpreter's metrics under namespace
// on registerer. A nil registerer yields a nil *Interpreter, which all
// recording methods tolerate.
func NewInterpreter(namespace string, registerer Registerer) (*Interpreter, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &Interpreter{
		adapterCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_calls_total",
			Help:      "Number of adapter primitive calls made by the interpreter, by primitive.",
		}, []string{"primitive"}),
		rowsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_produced_total",
			Help:      "Number of output rows produced by the interpreter.",
		}),
		traceOps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trace_ops_total",
			Help:      "Number of trace operations recorded while tracing was enabled.",
		}),
		activeQuery: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_queries",
			Help:      "Number of queries currently being interpreted.",
		}),
	}

	collectors := []prometheus.Collector{m.adapterCalls, m.rowsProduced, m.traceOps, m.activeQuery}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Interpreter) RecordAdapterCall(p Primitive) {
	if m == nil {
		return
	}
	m.adapterCalls.WithLabelValues(string(p)).Inc()
}

func (m *Interpreter) RecordRowProduced() {
	if m == nil {
		return
	}
	m.rowsProduced.Inc()
}

func (m *Interpreter) RecordTraceOp() {
	if m == nil {
		return
	}
	m.traceOps.Inc()
}

func (m *Interpreter) QueryStarted() {
	if m == nil {
		return
	}
	m.activeQuery.Inc()
}

func (m *Interpreter) QueryFinished() {
	if m == nil {
		return
	}
	m.activeQuery.Dec()
}
