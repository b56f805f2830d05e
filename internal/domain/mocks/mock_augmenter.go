package mocks

import (
	context "context"

	domain "codeaug.dev/pkg/codeaug/internal/domain"
	mock "github.com/stretchr/testify/mock"

	model "codeaug.dev/pkg/codeaug/internal/model"
)

// MockAugmenter is a mock type for the Augmenter type
type MockAugmenter struct {
	mock.Mock
}

// Augment provides a mock function with given fields: ctx, args
func (_m *MockAugmenter) Augment(ctx context.Context, args domain.AugmentArgs) (model.AugmentResult, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Augment")
	}

	var r0 model.AugmentResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.AugmentArgs) (model.AugmentResult, error)); ok {
		return rf(ctx, args)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.AugmentArgs) model.AugmentResult); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Get(0).(model.AugmentResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.AugmentArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAugmenter creates a new instance of MockAugmenter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAugmenter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAugmenter {
	mock := &MockAugmenter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
