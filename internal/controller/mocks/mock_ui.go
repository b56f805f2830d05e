// Package mocks holds a testify mock of the UI.
package mocks

import (
	context "context"

	controller "codeaug.dev/pkg/codeaug/internal/controller"
	mock "github.com/stretchr/testify/mock"

	model "codeaug.dev/pkg/codeaug/internal/model"
)

// MockUI is a mock type for the UI type
type MockUI struct {
	mock.Mock
}

// Close provides a mock function with given fields: ctx
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayFileCompleted provides a mock function with given fields: ctx, file
func (_m *MockUI) DisplayFileCompleted(ctx context.Context, file model.FileProgress) {
	_m.Called(ctx, file)
}

// DisplayFileStarted provides a mock function with given fields: ctx, file
func (_m *MockUI) DisplayFileStarted(ctx context.Context, file model.FileProgress) {
	_m.Called(ctx, file)
}

// DisplayRecordCompleted provides a mock function with given fields: ctx, file
func (_m *MockUI) DisplayRecordCompleted(ctx context.Context, file model.FileProgress) {
	_m.Called(ctx, file)
}

// DisplayRunInfo provides a mock function with given fields: ctx, info
func (_m *MockUI) DisplayRunInfo(ctx context.Context, info model.RunInfo) {
	_m.Called(ctx, info)
}

// DisplayStatistics provides a mock function with given fields: ctx, summary
func (_m *MockUI) DisplayStatistics(ctx context.Context, summary model.StatsSummary) {
	_m.Called(ctx, summary)
}

// DisplayWarning provides a mock function with given fields: ctx, message
func (_m *MockUI) DisplayWarning(ctx context.Context, message string) {
	_m.Called(ctx, message)
}

// Start provides a mock function with given fields: ctx, options
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	_va := make([]interface{}, len(options))
	for _i := range options {
		_va[_i] = options[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, ctx)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	if len(ret) == 0 {
		panic("no return value specified for Start")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, ...controller.StartOption) error); ok {
		r0 = rf(ctx, options...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Wait provides a mock function with given fields: ctx
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
