// Package mocks holds testify mocks of the domain interfaces.
package mocks

import (
	context "context"

	domain "codeaug.dev/pkg/codeaug/internal/domain"
	mock "github.com/stretchr/testify/mock"

	model "codeaug.dev/pkg/codeaug/internal/model"
)

// MockWorkflow is a mock type for the Workflow type
type MockWorkflow struct {
	mock.Mock
}

// Explain provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Explain(ctx context.Context, args domain.ExplainArgs) (model.Explanation, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Explain")
	}

	var r0 model.Explanation
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ExplainArgs) (model.Explanation, error)); ok {
		return rf(ctx, args)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.ExplainArgs) model.Explanation); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Get(0).(model.Explanation)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.ExplainArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Preview provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Preview(ctx context.Context, args domain.PreviewArgs) (domain.PreviewResult, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Preview")
	}

	var r0 domain.PreviewResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.PreviewArgs) (domain.PreviewResult, error)); ok {
		return rf(ctx, args)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.PreviewArgs) domain.PreviewResult); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Get(0).(domain.PreviewResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.PreviewArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Run provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) (model.StatsSummary, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	var r0 model.StatsSummary
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) (model.StatsSummary, error)); ok {
		return rf(ctx, args)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) model.StatsSummary); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Get(0).(model.StatsSummary)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.RunArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
