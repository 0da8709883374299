package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

// MockMutagen is a mock implementation of the Mutagen interface.
type MockMutagen struct {
	mock.Mock
}

type MockMutagen_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMutagen) EXPECT() *MockMutagen_Expecter {
	return &MockMutagen_Expecter{mock: &_m.Mock}
}

// GenerateMutants provides a mock function with given fields: ctx, class
func (_m *MockMutagen) GenerateMutants(ctx context.Context, class *domain.Class) error {
	ret := _m.Called(ctx, class)

	if len(ret) == 0 {
		panic("no return value specified for GenerateMutants")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Class) error); ok {
		r0 = rf(ctx, class)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockMutagen_GenerateMutants_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GenerateMutants'
type MockMutagen_GenerateMutants_Call struct {
	*mock.Call
}

// GenerateMutants is a helper method to define mock.On call
//   - ctx context.Context
//   - class *domain.Class
func (_e *MockMutagen_Expecter) GenerateMutants(ctx interface{}, class interface{}) *MockMutagen_GenerateMutants_Call {
	return &MockMutagen_GenerateMutants_Call{Call: _e.mock.On("GenerateMutants", ctx, class)}
}

func (_c *MockMutagen_GenerateMutants_Call) Run(run func(ctx context.Context, class *domain.Class)) *MockMutagen_GenerateMutants_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 *domain.Class
		if args[1] != nil {
			arg1 = args[1].(*domain.Class)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockMutagen_GenerateMutants_Call) Return(_a0 error) *MockMutagen_GenerateMutants_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockMutagen_GenerateMutants_Call) RunAndReturn(run func(context.Context, *domain.Class) error) *MockMutagen_GenerateMutants_Call {
	_c.Call.Return(run)

	return _c
}

// LoadClass provides a mock function with given fields: ctx, path
func (_m *MockMutagen) LoadClass(ctx context.Context, path m.Path) (*domain.Class, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for LoadClass")
	}

	var (
		r0 *domain.Class
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) (*domain.Class, error)); ok {
		return rf(ctx, path)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) *domain.Class); ok {
		r0 = rf(ctx, path)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Class)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path) error); ok {
		r1 = rf(ctx, path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockMutagen_LoadClass_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'LoadClass'
type MockMutagen_LoadClass_Call struct {
	*mock.Call
}

// LoadClass is a helper method to define mock.On call
//   - ctx context.Context
//   - path m.Path
func (_e *MockMutagen_Expecter) LoadClass(ctx interface{}, path interface{}) *MockMutagen_LoadClass_Call {
	return &MockMutagen_LoadClass_Call{Call: _e.mock.On("LoadClass", ctx, path)}
}

func (_c *MockMutagen_LoadClass_Call) Run(run func(ctx context.Context, path m.Path)) *MockMutagen_LoadClass_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.Path
		if args[1] != nil {
			arg1 = args[1].(m.Path)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockMutagen_LoadClass_Call) Return(_a0 *domain.Class, _a1 error) *MockMutagen_LoadClass_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockMutagen_LoadClass_Call) RunAndReturn(run func(context.Context, m.Path) (*domain.Class, error)) *MockMutagen_LoadClass_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockMutagen creates a new instance of MockMutagen. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMutagen(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMutagen {
	mock := &MockMutagen{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockWorkflow is a mock implementation of the Workflow interface.
type MockWorkflow struct {
	mock.Mock
}

type MockWorkflow_Expecter struct {
	mock *mock.Mock
}

func (_m *MockWorkflow) EXPECT() *MockWorkflow_Expecter {
	return &MockWorkflow_Expecter{mock: &_m.Mock}
}

// ConvertCoverage provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) ConvertCoverage(ctx context.Context, args domain.ConvertArgs) (m.CoverageSnapshot, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for ConvertCoverage")
	}

	var (
		r0 m.CoverageSnapshot
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, domain.ConvertArgs) (m.CoverageSnapshot, error)); ok {
		return rf(ctx, args)
	}

	if rf, ok := ret.Get(0).(func(context.Context, domain.ConvertArgs) m.CoverageSnapshot); ok {
		r0 = rf(ctx, args)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(m.CoverageSnapshot)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.ConvertArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWorkflow_ConvertCoverage_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ConvertCoverage'
type MockWorkflow_ConvertCoverage_Call struct {
	*mock.Call
}

// ConvertCoverage is a helper method to define mock.On call
//   - ctx context.Context
//   - args domain.ConvertArgs
func (_e *MockWorkflow_Expecter) ConvertCoverage(ctx interface{}, args interface{}) *MockWorkflow_ConvertCoverage_Call {
	return &MockWorkflow_ConvertCoverage_Call{Call: _e.mock.On("ConvertCoverage", ctx, args)}
}

func (_c *MockWorkflow_ConvertCoverage_Call) Run(run func(ctx context.Context, args domain.ConvertArgs)) *MockWorkflow_ConvertCoverage_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 domain.ConvertArgs
		if args[1] != nil {
			arg1 = args[1].(domain.ConvertArgs)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockWorkflow_ConvertCoverage_Call) Return(_a0 m.CoverageSnapshot, _a1 error) *MockWorkflow_ConvertCoverage_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockWorkflow_ConvertCoverage_Call) RunAndReturn(run func(context.Context, domain.ConvertArgs) (m.CoverageSnapshot, error)) *MockWorkflow_ConvertCoverage_Call {
	_c.Call.Return(run)

	return _c
}

// List provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ListArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWorkflow_List_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'List'
type MockWorkflow_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
//   - ctx context.Context
//   - args domain.ListArgs
func (_e *MockWorkflow_Expecter) List(ctx interface{}, args interface{}) *MockWorkflow_List_Call {
	return &MockWorkflow_List_Call{Call: _e.mock.On("List", ctx, args)}
}

func (_c *MockWorkflow_List_Call) Run(run func(ctx context.Context, args domain.ListArgs)) *MockWorkflow_List_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 domain.ListArgs
		if args[1] != nil {
			arg1 = args[1].(domain.ListArgs)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockWorkflow_List_Call) Return(_a0 error) *MockWorkflow_List_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockWorkflow_List_Call) RunAndReturn(run func(context.Context, domain.ListArgs) error) *MockWorkflow_List_Call {
	_c.Call.Return(run)

	return _c
}

// Merge provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Merge(ctx context.Context, args domain.MergeArgs) (string, error) {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Merge")
	}

	var (
		r0 string
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, domain.MergeArgs) (string, error)); ok {
		return rf(ctx, args)
	}

	if rf, ok := ret.Get(0).(func(context.Context, domain.MergeArgs) string); ok {
		r0 = rf(ctx, args)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.MergeArgs) error); ok {
		r1 = rf(ctx, args)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockWorkflow_Merge_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Merge'
type MockWorkflow_Merge_Call struct {
	*mock.Call
}

// Merge is a helper method to define mock.On call
//   - ctx context.Context
//   - args domain.MergeArgs
func (_e *MockWorkflow_Expecter) Merge(ctx interface{}, args interface{}) *MockWorkflow_Merge_Call {
	return &MockWorkflow_Merge_Call{Call: _e.mock.On("Merge", ctx, args)}
}

func (_c *MockWorkflow_Merge_Call) Run(run func(ctx context.Context, args domain.MergeArgs)) *MockWorkflow_Merge_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 domain.MergeArgs
		if args[1] != nil {
			arg1 = args[1].(domain.MergeArgs)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockWorkflow_Merge_Call) Return(_a0 string, _a1 error) *MockWorkflow_Merge_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockWorkflow_Merge_Call) RunAndReturn(run func(context.Context, domain.MergeArgs) (string, error)) *MockWorkflow_Merge_Call {
	_c.Call.Return(run)

	return _c
}

// Run provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.RunArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWorkflow_Run_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Run'
type MockWorkflow_Run_Call struct {
	*mock.Call
}

// Run is a helper method to define mock.On call
//   - ctx context.Context
//   - args domain.RunArgs
func (_e *MockWorkflow_Expecter) Run(ctx interface{}, args interface{}) *MockWorkflow_Run_Call {
	return &MockWorkflow_Run_Call{Call: _e.mock.On("Run", ctx, args)}
}

func (_c *MockWorkflow_Run_Call) Run(run func(ctx context.Context, args domain.RunArgs)) *MockWorkflow_Run_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 domain.RunArgs
		if args[1] != nil {
			arg1 = args[1].(domain.RunArgs)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockWorkflow_Run_Call) Return(_a0 error) *MockWorkflow_Run_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockWorkflow_Run_Call) RunAndReturn(run func(context.Context, domain.RunArgs) error) *MockWorkflow_Run_Call {
	_c.Call.Return(run)

	return _c
}

// View provides a mock function with given fields: ctx, args
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)

	if len(ret) == 0 {
		panic("no return value specified for View")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.ViewArgs) error); ok {
		r0 = rf(ctx, args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockWorkflow_View_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'View'
type MockWorkflow_View_Call struct {
	*mock.Call
}

// View is a helper method to define mock.On call
//   - ctx context.Context
//   - args domain.ViewArgs
func (_e *MockWorkflow_Expecter) View(ctx interface{}, args interface{}) *MockWorkflow_View_Call {
	return &MockWorkflow_View_Call{Call: _e.mock.On("View", ctx, args)}
}

func (_c *MockWorkflow_View_Call) Run(run func(ctx context.Context, args domain.ViewArgs)) *MockWorkflow_View_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 domain.ViewArgs
		if args[1] != nil {
			arg1 = args[1].(domain.ViewArgs)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockWorkflow_View_Call) Return(_a0 error) *MockWorkflow_View_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockWorkflow_View_Call) RunAndReturn(run func(context.Context, domain.ViewArgs) error) *MockWorkflow_View_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
