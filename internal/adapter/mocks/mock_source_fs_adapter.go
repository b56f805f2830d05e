// Package mocks holds a testify mock of the filesystem adapter.
package mocks

import (
	context "context"
	os "os"

	mock "github.com/stretchr/testify/mock"

	model "codeaug.dev/pkg/codeaug/internal/model"
)

// MockSourceFSAdapter is a mock type for the SourceFSAdapter type
type MockSourceFSAdapter struct {
	mock.Mock
}

// FileInfo provides a mock function with given fields: path
func (_m *MockSourceFSAdapter) FileInfo(path model.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for FileInfo")
	}

	var r0 os.FileInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(os.FileInfo)
	}

	return r0, ret.Error(1)
}

// JoinPath provides a mock function with given fields: elem
func (_m *MockSourceFSAdapter) JoinPath(elem ...string) model.Path {
	_va := make([]interface{}, len(elem))
	for _i := range elem {
		_va[_i] = elem[_i]
	}
	ret := _m.Called(_va...)

	if len(ret) == 0 {
		panic("no return value specified for JoinPath")
	}

	var r0 model.Path
	if rf, ok := ret.Get(0).(func(...string) model.Path); ok {
		r0 = rf(elem...)
	} else {
		r0 = ret.Get(0).(model.Path)
	}

	return r0
}

// ListRecordFiles provides a mock function with given fields: ctx, dir
func (_m *MockSourceFSAdapter) ListRecordFiles(ctx context.Context, dir model.Path) ([]model.Path, error) {
	ret := _m.Called(ctx, dir)

	if len(ret) == 0 {
		panic("no return value specified for ListRecordFiles")
	}

	var r0 []model.Path
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Path)
	}

	return r0, ret.Error(1)
}

// MkdirAll provides a mock function with given fields: dir
func (_m *MockSourceFSAdapter) MkdirAll(dir model.Path) error {
	ret := _m.Called(dir)

	if len(ret) == 0 {
		panic("no return value specified for MkdirAll")
	}

	return ret.Error(0)
}

// ReadFile provides a mock function with given fields: path
func (_m *MockSourceFSAdapter) ReadFile(path model.Path) ([]byte, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for ReadFile")
	}

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// Remove provides a mock function with given fields: path
func (_m *MockSourceFSAdapter) Remove(path model.Path) error {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for Remove")
	}

	return ret.Error(0)
}

// Rename provides a mock function with given fields: from, to
func (_m *MockSourceFSAdapter) Rename(from model.Path, to model.Path) error {
	ret := _m.Called(from, to)

	if len(ret) == 0 {
		panic("no return value specified for Rename")
	}

	return ret.Error(0)
}

// SamePath provides a mock function with given fields: a, b
func (_m *MockSourceFSAdapter) SamePath(a model.Path, b model.Path) bool {
	ret := _m.Called(a, b)

	if len(ret) == 0 {
		panic("no return value specified for SamePath")
	}

	return ret.Bool(0)
}

// WriteFile provides a mock function with given fields: path, content, perm
func (_m *MockSourceFSAdapter) WriteFile(path model.Path, content []byte, perm os.FileMode) error {
	ret := _m.Called(path, content, perm)

	if len(ret) == 0 {
		panic("no return value specified for WriteFile")
	}

	return ret.Error(0)
}

// NewMockSourceFSAdapter creates a new instance of MockSourceFSAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mock := &MockSourceFSAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
