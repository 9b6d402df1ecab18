// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapter_test

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/latticeql/engine/interpreter/adapter"
)

// MockVertexIterator is a mock of VertexIterator[int].
type MockVertexIterator struct {
	ctrl     *gomock.Controller
	recorder *MockVertexIteratorMockRecorder
}

// MockVertexIteratorMockRecorder is the mock recorder for
// MockVertexIterator.
type MockVertexIteratorMockRecorder struct {
	mock *MockVertexIterator
}

// NewMockVertexIterator creates a new mock instance.
func NewMockVertexIterator(ctrl *gomock.Controller) *MockVertexIterator {
	mock := &MockVertexIterator{ctrl: ctrl}
	mock.recorder = &MockVertexIteratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVertexIterator) EXPECT() *MockVertexIteratorMockRecorder {
	return m.recorder
}

// Next mocks base method.
func (m *MockVertexIterator) Next(ctx context.Context) (int, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Next", ctx)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Next indicates an expected call of Next.
func (mr *MockVertexIteratorMockRecorder) Next(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Next", reflect.TypeOf((*MockVertexIterator)(nil).Next), ctx)
}

var _ adapter.VertexIterator[int] = (*MockVertexIterator)(nil)
