package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

// MockBuildAdapter is a mock implementation of the BuildAdapter interface.
type MockBuildAdapter struct {
	mock.Mock
}

type MockBuildAdapter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBuildAdapter) EXPECT() *MockBuildAdapter_Expecter {
	return &MockBuildAdapter_Expecter{mock: &_m.Mock}
}

// Build provides a mock function with given fields: ctx, dir, packages
func (_m *MockBuildAdapter) Build(ctx context.Context, dir m.Path, packages []string) (m.BuildResult, error) {
	ret := _m.Called(ctx, dir, packages)

	if len(ret) == 0 {
		panic("no return value specified for Build")
	}

	var (
		r0 m.BuildResult
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, []string) (m.BuildResult, error)); ok {
		return rf(ctx, dir, packages)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, []string) m.BuildResult); ok {
		r0 = rf(ctx, dir, packages)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(m.BuildResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path, []string) error); ok {
		r1 = rf(ctx, dir, packages)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockBuildAdapter_Build_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Build'
type MockBuildAdapter_Build_Call struct {
	*mock.Call
}

// Build is a helper method to define mock.On call
//   - ctx context.Context
//   - dir m.Path
//   - packages []string
func (_e *MockBuildAdapter_Expecter) Build(ctx interface{}, dir interface{}, packages interface{}) *MockBuildAdapter_Build_Call {
	return &MockBuildAdapter_Build_Call{Call: _e.mock.On("Build", ctx, dir, packages)}
}

func (_c *MockBuildAdapter_Build_Call) Run(run func(ctx context.Context, dir m.Path, packages []string)) *MockBuildAdapter_Build_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.Path
		if args[1] != nil {
			arg1 = args[1].(m.Path)
		}

		var arg2 []string
		if args[2] != nil {
			arg2 = args[2].([]string)
		}
		run(arg0, arg1, arg2)
	})

	return _c
}

func (_c *MockBuildAdapter_Build_Call) Return(_a0 m.BuildResult, _a1 error) *MockBuildAdapter_Build_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockBuildAdapter_Build_Call) RunAndReturn(run func(context.Context, m.Path, []string) (m.BuildResult, error)) *MockBuildAdapter_Build_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockBuildAdapter creates a new instance of MockBuildAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockBuildAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBuildAdapter {
	mock := &MockBuildAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockChangeAdapter is a mock implementation of the ChangeAdapter interface.
type MockChangeAdapter struct {
	mock.Mock
}

type MockChangeAdapter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockChangeAdapter) EXPECT() *MockChangeAdapter_Expecter {
	return &MockChangeAdapter_Expecter{mock: &_m.Mock}
}

// ChangedLines provides a mock function with given fields: ctx, path, rev
func (_m *MockChangeAdapter) ChangedLines(ctx context.Context, path m.Path, rev string) ([]int, error) {
	ret := _m.Called(ctx, path, rev)

	if len(ret) == 0 {
		panic("no return value specified for ChangedLines")
	}

	var (
		r0 []int
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, string) ([]int, error)); ok {
		return rf(ctx, path, rev)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, string) []int); ok {
		r0 = rf(ctx, path, rev)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path, string) error); ok {
		r1 = rf(ctx, path, rev)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockChangeAdapter_ChangedLines_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ChangedLines'
type MockChangeAdapter_ChangedLines_Call struct {
	*mock.Call
}

// ChangedLines is a helper method to define mock.On call
//   - ctx context.Context
//   - path m.Path
//   - rev string
func (_e *MockChangeAdapter_Expecter) ChangedLines(ctx interface{}, path interface{}, rev interface{}) *MockChangeAdapter_ChangedLines_Call {
	return &MockChangeAdapter_ChangedLines_Call{Call: _e.mock.On("ChangedLines", ctx, path, rev)}
}

func (_c *MockChangeAdapter_ChangedLines_Call) Run(run func(ctx context.Context, path m.Path, rev string)) *MockChangeAdapter_ChangedLines_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.Path
		if args[1] != nil {
			arg1 = args[1].(m.Path)
		}

		var arg2 string
		if args[2] != nil {
			arg2 = args[2].(string)
		}
		run(arg0, arg1, arg2)
	})

	return _c
}

func (_c *MockChangeAdapter_ChangedLines_Call) Return(_a0 []int, _a1 error) *MockChangeAdapter_ChangedLines_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockChangeAdapter_ChangedLines_Call) RunAndReturn(run func(context.Context, m.Path, string) ([]int, error)) *MockChangeAdapter_ChangedLines_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockChangeAdapter creates a new instance of MockChangeAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockChangeAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChangeAdapter {
	mock := &MockChangeAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockCoverageAnalyzer is a mock implementation of the CoverageAnalyzer interface.
type MockCoverageAnalyzer struct {
	mock.Mock
}

type MockCoverageAnalyzer_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCoverageAnalyzer) EXPECT() *MockCoverageAnalyzer_Expecter {
	return &MockCoverageAnalyzer_Expecter{mock: &_m.Mock}
}

// TryFindCoverage provides a mock function with given fields: ctx, className, candidatePaths, packageName, timestamp
func (_m *MockCoverageAnalyzer) TryFindCoverage(ctx context.Context, className string, candidatePaths []m.Path, packageName string, timestamp time.Time) (m.FindCoverageResult, m.Coverage) {
	ret := _m.Called(ctx, className, candidatePaths, packageName, timestamp)

	if len(ret) == 0 {
		panic("no return value specified for TryFindCoverage")
	}

	var (
		r0 m.FindCoverageResult
		r1 m.Coverage
	)

	if rf, ok := ret.Get(0).(func(context.Context, string, []m.Path, string, time.Time) (m.FindCoverageResult, m.Coverage)); ok {
		return rf(ctx, className, candidatePaths, packageName, timestamp)
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, []m.Path, string, time.Time) m.FindCoverageResult); ok {
		r0 = rf(ctx, className, candidatePaths, packageName, timestamp)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(m.FindCoverageResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, []m.Path, string, time.Time) m.Coverage); ok {
		r1 = rf(ctx, className, candidatePaths, packageName, timestamp)
	} else if ret.Get(1) != nil {
		r1 = ret.Get(1).(m.Coverage)
	}

	return r0, r1
}

// MockCoverageAnalyzer_TryFindCoverage_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'TryFindCoverage'
type MockCoverageAnalyzer_TryFindCoverage_Call struct {
	*mock.Call
}

// TryFindCoverage is a helper method to define mock.On call
//   - ctx context.Context
//   - className string
//   - candidatePaths []m.Path
//   - packageName string
//   - timestamp time.Time
func (_e *MockCoverageAnalyzer_Expecter) TryFindCoverage(ctx interface{}, className interface{}, candidatePaths interface{}, packageName interface{}, timestamp interface{}) *MockCoverageAnalyzer_TryFindCoverage_Call {
	return &MockCoverageAnalyzer_TryFindCoverage_Call{Call: _e.mock.On("TryFindCoverage", ctx, className, candidatePaths, packageName, timestamp)}
}

func (_c *MockCoverageAnalyzer_TryFindCoverage_Call) Run(run func(ctx context.Context, className string, candidatePaths []m.Path, packageName string, timestamp time.Time)) *MockCoverageAnalyzer_TryFindCoverage_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 string
		if args[1] != nil {
			arg1 = args[1].(string)
		}

		var arg2 []m.Path
		if args[2] != nil {
			arg2 = args[2].([]m.Path)
		}

		var arg3 string
		if args[3] != nil {
			arg3 = args[3].(string)
		}

		var arg4 time.Time
		if args[4] != nil {
			arg4 = args[4].(time.Time)
		}
		run(arg0, arg1, arg2, arg3, arg4)
	})

	return _c
}

func (_c *MockCoverageAnalyzer_TryFindCoverage_Call) Return(_a0 m.FindCoverageResult, _a1 m.Coverage) *MockCoverageAnalyzer_TryFindCoverage_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockCoverageAnalyzer_TryFindCoverage_Call) RunAndReturn(run func(context.Context, string, []m.Path, string, time.Time) (m.FindCoverageResult, m.Coverage)) *MockCoverageAnalyzer_TryFindCoverage_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockCoverageAnalyzer creates a new instance of MockCoverageAnalyzer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCoverageAnalyzer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCoverageAnalyzer {
	mock := &MockCoverageAnalyzer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockReportStore is a mock implementation of the ReportStore interface.
type MockReportStore struct {
	mock.Mock
}

type MockReportStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockReportStore) EXPECT() *MockReportStore_Expecter {
	return &MockReportStore_Expecter{mock: &_m.Mock}
}

// Close provides a mock function with given fields: 
func (_m *MockReportStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockReportStore_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockReportStore_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockReportStore_Expecter) Close() *MockReportStore_Close_Call {
	return &MockReportStore_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockReportStore_Close_Call) Run(run func()) *MockReportStore_Close_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})

	return _c
}

func (_c *MockReportStore_Close_Call) Return(_a0 error) *MockReportStore_Close_Call {
	_c.Call.Return(_a0)

	return _c
}

func (_c *MockReportStore_Close_Call) RunAndReturn(run func() error) *MockReportStore_Close_Call {
	_c.Call.Return(run)

	return _c
}

// LatestRun provides a mock function with given fields: ctx
func (_m *MockReportStore) LatestRun(ctx context.Context) (m.Path, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for LatestRun")
	}

	var (
		r0 m.Path
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context) (m.Path, error)); ok {
		return rf(ctx)
	}

	if rf, ok := ret.Get(0).(func(context.Context) m.Path); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(m.Path)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockReportStore_LatestRun_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'LatestRun'
type MockReportStore_LatestRun_Call struct {
	*mock.Call
}

// LatestRun is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockReportStore_Expecter) LatestRun(ctx interface{}) *MockReportStore_LatestRun_Call {
	return &MockReportStore_LatestRun_Call{Call: _e.mock.On("LatestRun", ctx)}
}

func (_c *MockReportStore_LatestRun_Call) Run(run func(ctx context.Context)) *MockReportStore_LatestRun_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}
		run(arg0)
	})

	return _c
}

func (_c *MockReportStore_LatestRun_Call) Return(_a0 m.Path, _a1 error) *MockReportStore_LatestRun_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockReportStore_LatestRun_Call) RunAndReturn(run func(context.Context) (m.Path, error)) *MockReportStore_LatestRun_Call {
	_c.Call.Return(run)

	return _c
}

// LoadReports provides a mock function with given fields: ctx, dir
func (_m *MockReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.MethodReport, error) {
	ret := _m.Called(ctx, dir)

	if len(ret) == 0 {
		panic("no return value specified for LoadReports")
	}

	var (
		r0 []m.MethodReport
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) ([]m.MethodReport, error)); ok {
		return rf(ctx, dir)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) []m.MethodReport); ok {
		r0 = rf(ctx, dir)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]m.MethodReport)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path) error); ok {
		r1 = rf(ctx, dir)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockReportStore_LoadReports_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'LoadReports'
type MockReportStore_LoadReports_Call struct {
	*mock.Call
}

// LoadReports is a helper method to define mock.On call
//   - ctx context.Context
//   - dir m.Path
func (_e *MockReportStore_Expecter) LoadReports(ctx interface{}, dir interface{}) *MockReportStore_LoadReports_Call {
	return &MockReportStore_LoadReports_Call{Call: _e.mock.On("LoadReports", ctx, dir)}
}

func (_c *MockReportStore_LoadReports_Call) Run(run func(ctx context.Context, dir m.Path)) *MockReportStore_LoadReports_Call {
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

func (_c *MockReportStore_LoadReports_Call) Return(_a0 []m.MethodReport, _a1 error) *MockReportStore_LoadReports_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockReportStore_LoadReports_Call) RunAndReturn(run func(context.Context, m.Path) ([]m.MethodReport, error)) *MockReportStore_LoadReports_Call {
	_c.Call.Return(run)

	return _c
}

// SaveReport provides a mock function with given fields: ctx, report
func (_m *MockReportStore) SaveReport(ctx context.Context, report m.MethodReport) (m.Path, error) {
	ret := _m.Called(ctx, report)

	if len(ret) == 0 {
		panic("no return value specified for SaveReport")
	}

	var (
		r0 m.Path
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.MethodReport) (m.Path, error)); ok {
		return rf(ctx, report)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.MethodReport) m.Path); ok {
		r0 = rf(ctx, report)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(m.Path)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.MethodReport) error); ok {
		r1 = rf(ctx, report)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockReportStore_SaveReport_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SaveReport'
type MockReportStore_SaveReport_Call struct {
	*mock.Call
}

// SaveReport is a helper method to define mock.On call
//   - ctx context.Context
//   - report m.MethodReport
func (_e *MockReportStore_Expecter) SaveReport(ctx interface{}, report interface{}) *MockReportStore_SaveReport_Call {
	return &MockReportStore_SaveReport_Call{Call: _e.mock.On("SaveReport", ctx, report)}
}

func (_c *MockReportStore_SaveReport_Call) Run(run func(ctx context.Context, report m.MethodReport)) *MockReportStore_SaveReport_Call {
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

func (_c *MockReportStore_SaveReport_Call) Return(_a0 m.Path, _a1 error) *MockReportStore_SaveReport_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockReportStore_SaveReport_Call) RunAndReturn(run func(context.Context, m.MethodReport) (m.Path, error)) *MockReportStore_SaveReport_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockReportStore creates a new instance of MockReportStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	mock := &MockReportStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockTargetsAdapter is a mock implementation of the TargetsAdapter interface.
type MockTargetsAdapter struct {
	mock.Mock
}

type MockTargetsAdapter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTargetsAdapter) EXPECT() *MockTargetsAdapter_Expecter {
	return &MockTargetsAdapter_Expecter{mock: &_m.Mock}
}

// Load provides a mock function with given fields: ctx, path
func (_m *MockTargetsAdapter) Load(ctx context.Context, path m.Path) ([]m.Target, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for Load")
	}

	var (
		r0 []m.Target
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) ([]m.Target, error)); ok {
		return rf(ctx, path)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path) []m.Target); ok {
		r0 = rf(ctx, path)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]m.Target)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path) error); ok {
		r1 = rf(ctx, path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTargetsAdapter_Load_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Load'
type MockTargetsAdapter_Load_Call struct {
	*mock.Call
}

// Load is a helper method to define mock.On call
//   - ctx context.Context
//   - path m.Path
func (_e *MockTargetsAdapter_Expecter) Load(ctx interface{}, path interface{}) *MockTargetsAdapter_Load_Call {
	return &MockTargetsAdapter_Load_Call{Call: _e.mock.On("Load", ctx, path)}
}

func (_c *MockTargetsAdapter_Load_Call) Run(run func(ctx context.Context, path m.Path)) *MockTargetsAdapter_Load_Call {
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

func (_c *MockTargetsAdapter_Load_Call) Return(_a0 []m.Target, _a1 error) *MockTargetsAdapter_Load_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockTargetsAdapter_Load_Call) RunAndReturn(run func(context.Context, m.Path) ([]m.Target, error)) *MockTargetsAdapter_Load_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockTargetsAdapter creates a new instance of MockTargetsAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTargetsAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTargetsAdapter {
	mock := &MockTargetsAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockTestRunnerAdapter is a mock implementation of the TestRunnerAdapter interface.
type MockTestRunnerAdapter struct {
	mock.Mock
}

type MockTestRunnerAdapter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTestRunnerAdapter) EXPECT() *MockTestRunnerAdapter_Expecter {
	return &MockTestRunnerAdapter_Expecter{mock: &_m.Mock}
}

// RunTests provides a mock function with given fields: ctx, dir, pkg, filter
func (_m *MockTestRunnerAdapter) RunTests(ctx context.Context, dir m.Path, pkg string, filter string) (adapter.Process, error) {
	ret := _m.Called(ctx, dir, pkg, filter)

	if len(ret) == 0 {
		panic("no return value specified for RunTests")
	}

	var (
		r0 adapter.Process
		r1 error
	)

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, string, string) (adapter.Process, error)); ok {
		return rf(ctx, dir, pkg, filter)
	}

	if rf, ok := ret.Get(0).(func(context.Context, m.Path, string, string) adapter.Process); ok {
		r0 = rf(ctx, dir, pkg, filter)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(adapter.Process)
	}

	if rf, ok := ret.Get(1).(func(context.Context, m.Path, string, string) error); ok {
		r1 = rf(ctx, dir, pkg, filter)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockTestRunnerAdapter_RunTests_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RunTests'
type MockTestRunnerAdapter_RunTests_Call struct {
	*mock.Call
}

// RunTests is a helper method to define mock.On call
//   - ctx context.Context
//   - dir m.Path
//   - pkg string
//   - filter string
func (_e *MockTestRunnerAdapter_Expecter) RunTests(ctx interface{}, dir interface{}, pkg interface{}, filter interface{}) *MockTestRunnerAdapter_RunTests_Call {
	return &MockTestRunnerAdapter_RunTests_Call{Call: _e.mock.On("RunTests", ctx, dir, pkg, filter)}
}

func (_c *MockTestRunnerAdapter_RunTests_Call) Run(run func(ctx context.Context, dir m.Path, pkg string, filter string)) *MockTestRunnerAdapter_RunTests_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var arg0 context.Context
		if args[0] != nil {
			arg0 = args[0].(context.Context)
		}

		var arg1 m.Path
		if args[1] != nil {
			arg1 = args[1].(m.Path)
		}

		var arg2 string
		if args[2] != nil {
			arg2 = args[2].(string)
		}

		var arg3 string
		if args[3] != nil {
			arg3 = args[3].(string)
		}
		run(arg0, arg1, arg2, arg3)
	})

	return _c
}

func (_c *MockTestRunnerAdapter_RunTests_Call) Return(_a0 adapter.Process, _a1 error) *MockTestRunnerAdapter_RunTests_Call {
	_c.Call.Return(_a0, _a1)

	return _c
}

func (_c *MockTestRunnerAdapter_RunTests_Call) RunAndReturn(run func(context.Context, m.Path, string, string) (adapter.Process, error)) *MockTestRunnerAdapter_RunTests_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockTestRunnerAdapter creates a new instance of MockTestRunnerAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTestRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTestRunnerAdapter {
	mock := &MockTestRunnerAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
