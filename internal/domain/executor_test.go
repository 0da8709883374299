package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

type fakeWorkspace struct {
	mu     sync.Mutex
	err    error
	writes map[int][][]byte
}

func (w *fakeWorkspace) Slots(_ context.Context, _ *m.SourceClass, count int) ([]Slot, error) {
	if w.err != nil {
		return nil, w.err
	}

	slots := make([]Slot, count)
	for i := range slots {
		slots[i] = Slot{
			Index:      i,
			Root:       "/workspace",
			Package:    fmt.Sprintf("./sample/sample_mutest_src_%d", i),
			ImportPath: fmt.Sprintf("example.com/sample/sample_mutest_src_%d", i),
			Original:   []byte(greetingSource),
		}
	}

	return slots, nil
}

func (w *fakeWorkspace) Write(_ context.Context, slot Slot, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writes == nil {
		w.writes = make(map[int][][]byte)
	}

	if content == nil {
		content = slot.Original
	}

	w.writes[slot.Index] = append(w.writes[slot.Index], content)

	return nil
}

func (w *fakeWorkspace) Close(context.Context) error { return nil }

func (w *fakeWorkspace) last(slot int) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	writes := w.writes[slot]
	if len(writes) == 0 {
		return ""
	}

	return string(writes[len(writes)-1])
}

type fakeBuild struct {
	mu     sync.Mutex
	result m.BuildResult
	calls  [][]string
}

func (b *fakeBuild) Build(_ context.Context, _ m.Path, packages []string) (m.BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, packages)

	return b.result, nil
}

type runCall struct {
	pkg    string
	filter string
}

type fakeRunner struct {
	mu     sync.Mutex
	script processScript
	calls  []runCall
}

func (r *fakeRunner) RunTests(_ context.Context, _ m.Path, pkg, filter string) (adapter.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, runCall{pkg: pkg, filter: filter})

	return startFakeProcess(r.script), nil
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

// executorClass returns the sample class with count arithmetic mutants on Sum.
func executorClass(t *testing.T, count int) (*Class, *m.MethodDetail) {
	t.Helper()

	class := greetingClass(t)
	method := class.Source.Methods[1]
	template := method.Mutants[0]
	method.Mutants = nil
	method.Tests = []m.TestMethod{{Name: "TestSum"}, {Name: "TestSum_overflow"}}

	for id := 1; id <= count; id++ {
		method.Mutants = append(method.Mutants, &m.Mutant{
			ID:            id,
			Method:        "Sum",
			Mutation:      template.Mutation,
			CoveringTests: method.Tests,
		})
	}

	return class, method
}

func collectResults(t *testing.T, results <-chan m.MutantResult) []m.MutantResult {
	t.Helper()

	var collected []m.MutantResult

	timeout := time.After(10 * time.Second)

	for {
		select {
		case result, ok := <-results:
			if !ok {
				return collected
			}

			collected = append(collected, result)
		case <-timeout:
			t.Fatal("timed out waiting for mutant results")
		}
	}
}

func mutantStatuses(method *m.MethodDetail) []m.MutantStatus {
	result := make([]m.MutantStatus, 0, len(method.Mutants))
	for _, mutant := range method.Mutants {
		result = append(result, mutant.Status)
	}

	return result
}

func testSettings(parallelism int) m.ExecutionSettings {
	settings := m.DefaultExecutionSettings()
	settings.Parallelism = parallelism
	settings.TestTimeout = 5 * time.Second

	return settings
}

func TestMutantExecutor_ExecuteMutants(t *testing.T) {
	t.Run("batches survive", func(t *testing.T) {
		class, method := executorClass(t, 5)
		ws := &fakeWorkspace{}
		build := &fakeBuild{}
		runner := &fakeRunner{script: processScript{output: []string{"PASS"}}}

		results := collectResults(t, NewMutantExecutor(build, runner, ws, testSettings(2)).ExecuteMutants(context.Background(), class, method))

		require.Len(t, results, 5)
		assert.Equal(t, []m.MutantStatus{m.Survived, m.Survived, m.Survived, m.Survived, m.Survived}, mutantStatuses(method))

		assert.Equal(t, [][]string{
			{"./sample/sample_mutest_src_0", "./sample/sample_mutest_src_1"},
			{"./sample/sample_mutest_src_0", "./sample/sample_mutest_src_1"},
			{"./sample/sample_mutest_src_0"},
		}, build.calls)

		require.Len(t, runner.calls, 5)

		for _, call := range runner.calls {
			assert.Equal(t, "^(TestSum|TestSum_overflow)$", call.filter)
		}

		assert.Equal(t, greetingSource, ws.last(0), "slots are restored after the method")
		assert.Equal(t, greetingSource, ws.last(1), "slots are restored after the method")

		for _, result := range results {
			assert.Equal(t, "Sum", result.Method)
			assert.Equal(t, m.Survived, result.Status)
		}
	})

	t.Run("mutated source is written to the slot", func(t *testing.T) {
		class, method := executorClass(t, 1)
		ws := &fakeWorkspace{}

		collectResults(t, NewMutantExecutor(&fakeBuild{}, &fakeRunner{}, ws, testSettings(1)).ExecuteMutants(context.Background(), class, method))

		require.NotEmpty(t, ws.writes[0])
		assert.Contains(t, string(ws.writes[0][0]), "return a\n")
	})

	t.Run("failed build without package names", func(t *testing.T) {
		class, method := executorClass(t, 3)
		build := &fakeBuild{result: m.BuildResult{Status: m.BuildFailed, Log: "syntax error"}}
		runner := &fakeRunner{}

		results := collectResults(t, NewMutantExecutor(build, runner, &fakeWorkspace{}, testSettings(2)).ExecuteMutants(context.Background(), class, method))

		assert.Len(t, results, 3)
		assert.Equal(t, []m.MutantStatus{m.BuildError, m.BuildError, m.BuildError}, mutantStatuses(method))
		assert.Equal(t, 0, runner.callCount())
	})

	t.Run("failed build of one slot", func(t *testing.T) {
		class, method := executorClass(t, 2)
		build := &fakeBuild{result: m.BuildResult{
			Status:         m.BuildFailed,
			FailedPackages: []string{"example.com/sample/sample_mutest_src_1"},
		}}
		runner := &fakeRunner{script: processScript{code: 1}}

		collectResults(t, NewMutantExecutor(build, runner, &fakeWorkspace{}, testSettings(2)).ExecuteMutants(context.Background(), class, method))

		assert.Equal(t, []m.MutantStatus{m.Killed, m.BuildError}, mutantStatuses(method))
		assert.Equal(t, 1, runner.callCount())
	})

	t.Run("hanging tests time out", func(t *testing.T) {
		class, method := executorClass(t, 1)
		settings := testSettings(1)
		settings.TestTimeout = 50 * time.Millisecond

		collectResults(t, NewMutantExecutor(&fakeBuild{}, &fakeRunner{script: processScript{hang: true}}, &fakeWorkspace{}, settings).ExecuteMutants(context.Background(), class, method))

		assert.Equal(t, m.Timeout, method.Mutants[0].Status)
	})

	t.Run("survived threshold stops dispatch", func(t *testing.T) {
		class, method := executorClass(t, 5)
		settings := testSettings(1)
		settings.SurvivedThreshold = 0.1
		runner := &fakeRunner{}

		results := collectResults(t, NewMutantExecutor(&fakeBuild{}, runner, &fakeWorkspace{}, settings).ExecuteMutants(context.Background(), class, method))

		assert.Len(t, results, 1)
		assert.Equal(t, []m.MutantStatus{m.Survived, m.NotRun, m.NotRun, m.NotRun, m.NotRun}, mutantStatuses(method))
	})

	t.Run("killed threshold stops dispatch", func(t *testing.T) {
		class, method := executorClass(t, 4)
		settings := testSettings(1)
		settings.KilledThreshold = 0.4
		runner := &fakeRunner{script: processScript{code: 1}}

		collectResults(t, NewMutantExecutor(&fakeBuild{}, runner, &fakeWorkspace{}, settings).ExecuteMutants(context.Background(), class, method))

		assert.Equal(t, []m.MutantStatus{m.Killed, m.Killed, m.NotRun, m.NotRun}, mutantStatuses(method))
	})

	t.Run("thresholds count each method on its own", func(t *testing.T) {
		settings := testSettings(1)
		settings.KilledThreshold = 0.5
		executor := NewMutantExecutor(&fakeBuild{}, &fakeRunner{script: processScript{code: 1}}, &fakeWorkspace{}, settings)

		firstClass, first := executorClass(t, 2)
		collectResults(t, executor.ExecuteMutants(context.Background(), firstClass, first))

		secondClass, second := executorClass(t, 3)
		collectResults(t, executor.ExecuteMutants(context.Background(), secondClass, second))

		assert.Equal(t, []m.MutantStatus{m.Killed, m.Killed}, mutantStatuses(first))
		assert.Equal(t, []m.MutantStatus{m.Killed, m.Killed, m.NotRun}, mutantStatuses(second))
	})

	t.Run("setup failure named by relative package", func(t *testing.T) {
		class, method := executorClass(t, 2)
		build := &fakeBuild{result: m.BuildResult{
			Status:         m.BuildFailed,
			FailedPackages: []string{"./sample/sample_mutest_src_0"},
		}}
		runner := &fakeRunner{}

		collectResults(t, NewMutantExecutor(build, runner, &fakeWorkspace{}, testSettings(2)).ExecuteMutants(context.Background(), class, method))

		assert.Equal(t, []m.MutantStatus{m.BuildError, m.Survived}, mutantStatuses(method))
		assert.Equal(t, 1, runner.callCount())
	})

	t.Run("cancelled context dispatches nothing", func(t *testing.T) {
		class, method := executorClass(t, 3)
		build := &fakeBuild{}
		runner := &fakeRunner{}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := collectResults(t, NewMutantExecutor(build, runner, &fakeWorkspace{}, testSettings(2)).ExecuteMutants(ctx, class, method))

		assert.Empty(t, results)
		assert.Empty(t, build.calls)
		assert.Equal(t, []m.MutantStatus{m.NotRun, m.NotRun, m.NotRun}, mutantStatuses(method))
	})

	t.Run("only not run mutants execute", func(t *testing.T) {
		class, method := executorClass(t, 3)
		method.Mutants[0].Status = m.Skipped
		method.Mutants[2].Status = m.NotCovered
		runner := &fakeRunner{}

		results := collectResults(t, NewMutantExecutor(&fakeBuild{}, runner, &fakeWorkspace{}, testSettings(4)).ExecuteMutants(context.Background(), class, method))

		require.Len(t, results, 1)
		assert.Equal(t, 2, results[0].Mutant.ID)
		assert.Equal(t, []m.MutantStatus{m.Skipped, m.Survived, m.NotCovered}, mutantStatuses(method))
	})

	t.Run("execute all tests uses no filter", func(t *testing.T) {
		class, method := executorClass(t, 1)
		settings := testSettings(1)
		settings.ExecuteAllTests = true
		runner := &fakeRunner{}

		collectResults(t, NewMutantExecutor(&fakeBuild{}, runner, &fakeWorkspace{}, settings).ExecuteMutants(context.Background(), class, method))

		require.Len(t, runner.calls, 1)
		assert.Empty(t, runner.calls[0].filter)
	})

	t.Run("diagnostics keep the test output", func(t *testing.T) {
		class, method := executorClass(t, 1)
		settings := testSettings(1)
		settings.EnableDiagnostics = true
		runner := &fakeRunner{script: processScript{output: []string{"--- FAIL: TestSum (0.00s)"}, hang: true}}

		collectResults(t, NewMutantExecutor(&fakeBuild{}, runner, &fakeWorkspace{}, settings).ExecuteMutants(context.Background(), class, method))

		assert.Equal(t, m.Killed, method.Mutants[0].Status)
		assert.Contains(t, method.Mutants[0].Log, "--- FAIL: TestSum")
	})

	t.Run("workspace failure marks build errors", func(t *testing.T) {
		class, method := executorClass(t, 2)
		ws := &fakeWorkspace{err: errors.New("disk full")}

		results := collectResults(t, NewMutantExecutor(&fakeBuild{}, &fakeRunner{}, ws, testSettings(2)).ExecuteMutants(context.Background(), class, method))

		assert.Len(t, results, 2)
		assert.Equal(t, []m.MutantStatus{m.BuildError, m.BuildError}, mutantStatuses(method))
	})
}

func TestTestFilter(t *testing.T) {
	assert.Empty(t, testFilter(nil))
	assert.Equal(t, "^(TestAdd)$", testFilter([]m.TestMethod{{Name: "TestAdd"}}))
	assert.Equal(t, "^(TestAdd|TestDescribe)$", testFilter([]m.TestMethod{{Name: "TestAdd"}, {Name: "TestDescribe"}}))
}
