package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mutest.dev/pkg/mutest/internal/controller"
	m "mutest.dev/pkg/mutest/internal/model"
)

// MockUI is a mock implementation of the UI interface.
type MockUI struct {
	mock.Mock
}

type MockUI_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUI) EXPECT() *MockUI_Expecter {
	return &MockUI_Expecter{mock: &_m.Mock}
}

// Close provides a mock function with given fields: ctx
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// MockUI_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockUI_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockUI_Expecter) Close(ctx interface{}) *MockUI_Close_Call {
	return &MockUI_Close_Call{Call: _e.mock.On("Close", ctx)}
}

func (_c *MockUI_Close_Call) Run(run func(ctx context.Context)) *MockUI_Close_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		run(arg0)
	})

	return _c
}

func (_c *MockUI_Close_Call) Return() *MockUI_Close_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_Close_Call) RunAndReturn(run func(context.Context)) *MockUI_Close_Call {
	_c.Run(run)

	return _c
}

// DisplayCompletedTestInfo provides a mock function with given fields: ctx, result
func (_m *MockUI) DisplayCompletedTestInfo(ctx context.Context, result m.MutantResult) {
	_m.Called(ctx, result)
}

// MockUI_DisplayCompletedTestInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayCompletedTestInfo'
type MockUI_DisplayCompletedTestInfo_Call struct {
	*mock.Call
}

// DisplayCompletedTestInfo is a helper method to define mock.On call
//   - ctx context.Context
//   - result m.MutantResult
func (_e *MockUI_Expecter) DisplayCompletedTestInfo(ctx interface{}, result interface{}) *MockUI_DisplayCompletedTestInfo_Call {
	return &MockUI_DisplayCompletedTestInfo_Call{Call: _e.mock.On("DisplayCompletedTestInfo", ctx, result)}
}

func (_c *MockUI_DisplayCompletedTestInfo_Call) Run(run func(ctx context.Context, result m.MutantResult)) *MockUI_DisplayCompletedTestInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.MutantResult
		if args[1] != nil {
			arg1 = args[1].(m.MutantResult)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockUI_DisplayCompletedTestInfo_Call) Return() *MockUI_DisplayCompletedTestInfo_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayCompletedTestInfo_Call) RunAndReturn(run func(context.Context, m.MutantResult)) *MockUI_DisplayCompletedTestInfo_Call {
	_c.Run(run)

	return _c
}

// DisplayConcurrencyInfo provides a mock function with given fields: ctx, threads, shardIndex, shardCount
func (_m *MockUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	_m.Called(ctx, threads, shardIndex, shardCount)
}

// MockUI_DisplayConcurrencyInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayConcurrencyInfo'
type MockUI_DisplayConcurrencyInfo_Call struct {
	*mock.Call
}

// DisplayConcurrencyInfo is a helper method to define mock.On call
//   - ctx context.Context
//   - threads int
//   - shardIndex int
//   - shardCount int
func (_e *MockUI_Expecter) DisplayConcurrencyInfo(ctx interface{}, threads interface{}, shardIndex interface{}, shardCount interface{}) *MockUI_DisplayConcurrencyInfo_Call {
	return &MockUI_DisplayConcurrencyInfo_Call{Call: _e.mock.On("DisplayConcurrencyInfo", ctx, threads, shardIndex, shardCount)}
}

func (_c *MockUI_DisplayConcurrencyInfo_Call) Run(run func(ctx context.Context, threads int, shardIndex int, shardCount int)) *MockUI_DisplayConcurrencyInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 int
		if args[1] != nil {
			arg1 = args[1].(int)
		}

		var arg2 int
		if args[2] != nil {
			arg2 = args[2].(int)
		}

		var arg3 int
		if args[3] != nil {
			arg3 = args[3].(int)
		}
		run(arg0, arg1, arg2, arg3)
	})

	return _c
}

func (_c *MockUI_DisplayConcurrencyInfo_Call) Return() *MockUI_DisplayConcurrencyInfo_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayConcurrencyInfo_Call) RunAndReturn(run func(context.Context, int, int, int)) *MockUI_DisplayConcurrencyInfo_Call {
	_c.Run(run)

	return _c
}

// DisplayEstimation provides a mock function with given fields: ctx, estimates, err
func (_m *MockUI) DisplayEstimation(ctx context.Context, estimates []m.ClassEstimate, err error) error {
	ret := _m.Called(ctx, estimates, err)

	if len(ret) == 0 {
		panic("no return value specified for DisplayEstimation")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []m.ClassEstimate, error) error); ok {
		r0 = rf(ctx, estimates, err)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockUI_DisplayEstimation_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayEstimation'
type MockUI_DisplayEstimation_Call struct {
	*mock.Call
}

// DisplayEstimation is a helper method to define mock.On call
//   - ctx context.Context
//   - estimates []m.ClassEstimate
//   - err error
func (_e *MockUI_Expecter) DisplayEstimation(ctx interface{}, estimates interface{}, err interface{}) *MockUI_DisplayEstimation_Call {
	return &MockUI_DisplayEstimation_Call{Call: _e.mock.On("DisplayEstimation", ctx, estimates, err)}
}

func (_c *MockUI_DisplayEstimation_Call) Run(run func(ctx context.Context, estimates []m.ClassEstimate, err error)) *MockUI_DisplayEstimation_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 []m.ClassEstimate
		if args[1] != nil {
			arg1 = args[1].([]m.ClassEstimate)
		}

		var arg2 error
		if args[2] != nil {
			arg2 = args[2].(error)
		}
		run(arg0, arg1, arg2)
	})

	return _c
}

func (_c *MockUI_DisplayEstimation_Call) Return(_a0 error) *MockUI_DisplayEstimation_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockUI_DisplayEstimation_Call) RunAndReturn(run func(context.Context, []m.ClassEstimate, error) error) *MockUI_DisplayEstimation_Call {
	_c.Call.Return(run)

	return _c
}

// DisplayMethodReport provides a mock function with given fields: ctx, report
func (_m *MockUI) DisplayMethodReport(ctx context.Context, report m.MethodReport) {
	_m.Called(ctx, report)
}

// MockUI_DisplayMethodReport_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayMethodReport'
type MockUI_DisplayMethodReport_Call struct {
	*mock.Call
}

// DisplayMethodReport is a helper method to define mock.On call
//   - ctx context.Context
//   - report m.MethodReport
func (_e *MockUI_Expecter) DisplayMethodReport(ctx interface{}, report interface{}) *MockUI_DisplayMethodReport_Call {
	return &MockUI_DisplayMethodReport_Call{Call: _e.mock.On("DisplayMethodReport", ctx, report)}
}

func (_c *MockUI_DisplayMethodReport_Call) Run(run func(ctx context.Context, report m.MethodReport)) *MockUI_DisplayMethodReport_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.MethodReport
		if args[1] != nil {
			arg1 = args[1].(m.MethodReport)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockUI_DisplayMethodReport_Call) Return() *MockUI_DisplayMethodReport_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayMethodReport_Call) RunAndReturn(run func(context.Context, m.MethodReport)) *MockUI_DisplayMethodReport_Call {
	_c.Run(run)

	return _c
}

// DisplayMutationScore provides a mock function with given fields: ctx, score
func (_m *MockUI) DisplayMutationScore(ctx context.Context, score m.MutationScore) {
	_m.Called(ctx, score)
}

// MockUI_DisplayMutationScore_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayMutationScore'
type MockUI_DisplayMutationScore_Call struct {
	*mock.Call
}

// DisplayMutationScore is a helper method to define mock.On call
//   - ctx context.Context
//   - score m.MutationScore
func (_e *MockUI_Expecter) DisplayMutationScore(ctx interface{}, score interface{}) *MockUI_DisplayMutationScore_Call {
	return &MockUI_DisplayMutationScore_Call{Call: _e.mock.On("DisplayMutationScore", ctx, score)}
}

func (_c *MockUI_DisplayMutationScore_Call) Run(run func(ctx context.Context, score m.MutationScore)) *MockUI_DisplayMutationScore_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.MutationScore
		if args[1] != nil {
			arg1 = args[1].(m.MutationScore)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockUI_DisplayMutationScore_Call) Return() *MockUI_DisplayMutationScore_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayMutationScore_Call) RunAndReturn(run func(context.Context, m.MutationScore)) *MockUI_DisplayMutationScore_Call {
	_c.Run(run)

	return _c
}

// DisplayReports provides a mock function with given fields: ctx, reports
func (_m *MockUI) DisplayReports(ctx context.Context, reports []m.MethodReport) error {
	ret := _m.Called(ctx, reports)

	if len(ret) == 0 {
		panic("no return value specified for DisplayReports")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []m.MethodReport) error); ok {
		r0 = rf(ctx, reports)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockUI_DisplayReports_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayReports'
type MockUI_DisplayReports_Call struct {
	*mock.Call
}

// DisplayReports is a helper method to define mock.On call
//   - ctx context.Context
//   - reports []m.MethodReport
func (_e *MockUI_Expecter) DisplayReports(ctx interface{}, reports interface{}) *MockUI_DisplayReports_Call {
	return &MockUI_DisplayReports_Call{Call: _e.mock.On("DisplayReports", ctx, reports)}
}

func (_c *MockUI_DisplayReports_Call) Run(run func(ctx context.Context, reports []m.MethodReport)) *MockUI_DisplayReports_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 []m.MethodReport
		if args[1] != nil {
			arg1 = args[1].([]m.MethodReport)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockUI_DisplayReports_Call) Return(_a0 error) *MockUI_DisplayReports_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockUI_DisplayReports_Call) RunAndReturn(run func(context.Context, []m.MethodReport) error) *MockUI_DisplayReports_Call {
	_c.Call.Return(run)

	return _c
}

// DisplayStartingMethodInfo provides a mock function with given fields: ctx, class, method, mutants
func (_m *MockUI) DisplayStartingMethodInfo(ctx context.Context, class string, method string, mutants int) {
	_m.Called(ctx, class, method, mutants)
}

// MockUI_DisplayStartingMethodInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayStartingMethodInfo'
type MockUI_DisplayStartingMethodInfo_Call struct {
	*mock.Call
}

// DisplayStartingMethodInfo is a helper method to define mock.On call
//   - ctx context.Context
//   - class string
//   - method string
//   - mutants int
func (_e *MockUI_Expecter) DisplayStartingMethodInfo(ctx interface{}, class interface{}, method interface{}, mutants interface{}) *MockUI_DisplayStartingMethodInfo_Call {
	return &MockUI_DisplayStartingMethodInfo_Call{Call: _e.mock.On("DisplayStartingMethodInfo", ctx, class, method, mutants)}
}

func (_c *MockUI_DisplayStartingMethodInfo_Call) Run(run func(ctx context.Context, class string, method string, mutants int)) *MockUI_DisplayStartingMethodInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 string
		if args[1] != nil {
			arg1 = args[1].(string)
		}

		var arg2 string
		if args[2] != nil {
			arg2 = args[2].(string)
		}

		var arg3 int
		if args[3] != nil {
			arg3 = args[3].(int)
		}
		run(arg0, arg1, arg2, arg3)
	})

	return _c
}

func (_c *MockUI_DisplayStartingMethodInfo_Call) Return() *MockUI_DisplayStartingMethodInfo_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayStartingMethodInfo_Call) RunAndReturn(run func(context.Context, string, string, int)) *MockUI_DisplayStartingMethodInfo_Call {
	_c.Run(run)

	return _c
}

// DisplayUpcomingTestsInfo provides a mock function with given fields: ctx, total
func (_m *MockUI) DisplayUpcomingTestsInfo(ctx context.Context, total int) {
	_m.Called(ctx, total)
}

// MockUI_DisplayUpcomingTestsInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DisplayUpcomingTestsInfo'
type MockUI_DisplayUpcomingTestsInfo_Call struct {
	*mock.Call
}

// DisplayUpcomingTestsInfo is a helper method to define mock.On call
//   - ctx context.Context
//   - total int
func (_e *MockUI_Expecter) DisplayUpcomingTestsInfo(ctx interface{}, total interface{}) *MockUI_DisplayUpcomingTestsInfo_Call {
	return &MockUI_DisplayUpcomingTestsInfo_Call{Call: _e.mock.On("DisplayUpcomingTestsInfo", ctx, total)}
}

func (_c *MockUI_DisplayUpcomingTestsInfo_Call) Run(run func(ctx context.Context, total int)) *MockUI_DisplayUpcomingTestsInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 int
		if args[1] != nil {
			arg1 = args[1].(int)
		}
		run(arg0, arg1)
	})

	return _c
}

func (_c *MockUI_DisplayUpcomingTestsInfo_Call) Return() *MockUI_DisplayUpcomingTestsInfo_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_DisplayUpcomingTestsInfo_Call) RunAndReturn(run func(context.Context, int)) *MockUI_DisplayUpcomingTestsInfo_Call {
	_c.Run(run)

	return _c
}

// Start provides a mock function with given fields: ctx, options
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	ret := _m.Called(ctx, options)

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

// MockUI_Start_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Start'
type MockUI_Start_Call struct {
	*mock.Call
}

// Start is a helper method to define mock.On call
//   - ctx context.Context
//   - options ...controller.StartOption
func (_e *MockUI_Expecter) Start(ctx interface{}, options interface{}) *MockUI_Start_Call {
	return &MockUI_Start_Call{Call: _e.mock.On("Start", ctx, options)}
}

func (_c *MockUI_Start_Call) Run(run func(ctx context.Context, options ...controller.StartOption)) *MockUI_Start_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 []controller.StartOption
		if args[1] != nil {
			arg1 = args[1].([]controller.StartOption)
		}
		run(arg0, arg1...)
	})

	return _c
}

func (_c *MockUI_Start_Call) Return(_a0 error) *MockUI_Start_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockUI_Start_Call) RunAndReturn(run func(context.Context, ...controller.StartOption) error) *MockUI_Start_Call {
	_c.Call.Return(run)

	return _c
}

// Wait provides a mock function with given fields: ctx
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// MockUI_Wait_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Wait'
type MockUI_Wait_Call struct {
	*mock.Call
}

// Wait is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockUI_Expecter) Wait(ctx interface{}) *MockUI_Wait_Call {
	return &MockUI_Wait_Call{Call: _e.mock.On("Wait", ctx)}
}

func (_c *MockUI_Wait_Call) Run(run func(ctx context.Context)) *MockUI_Wait_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		run(arg0)
	})

	return _c
}

func (_c *MockUI_Wait_Call) Return() *MockUI_Wait_Call {
	_c.Call.Return()

	return _c
}

func (_c *MockUI_Wait_Call) RunAndReturn(run func(context.Context)) *MockUI_Wait_Call {
	_c.Run(run)

	return _c
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
