package domain

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

// MutantExecutor builds and tests mutants.
type MutantExecutor interface {
	// ExecuteMutants runs every NotRun mutant of method and emits one result
	// per finished mutant. The channel is closed once the method is done.
	// Cancelling ctx stops new dispatches; running tests are left to finish.
	ExecuteMutants(ctx context.Context, class *Class, method *m.MethodDetail) <-chan m.MutantResult
}

type mutantExecutor struct {
	build     adapter.BuildAdapter
	runner    adapter.TestRunnerAdapter
	workspace Workspace
	settings  m.ExecutionSettings
}

// tally counts the outcomes of one method against its early stop thresholds.
type tally struct {
	mu       sync.Mutex
	total    int
	survived int
	killed   int
}

func (t *tally) add(status m.MutantStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch status {
	case m.Survived:
		t.survived++
	case m.Killed:
		t.killed++
	}
}

// exceeded compares the survived and killed ratios of the method against the
// thresholds. The denominator is every mutant of the method that was queued.
func (t *tally) exceeded(settings m.ExecutionSettings) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.total == 0 {
		return false
	}

	total := float64(t.total)

	return float64(t.survived)/total > settings.SurvivedThreshold ||
		float64(t.killed)/total > settings.KilledThreshold
}

// NewMutantExecutor creates a MutantExecutor. Early stop counters are kept
// per method.
func NewMutantExecutor(build adapter.BuildAdapter, runner adapter.TestRunnerAdapter, workspace Workspace, settings m.ExecutionSettings) MutantExecutor {
	if settings.Parallelism <= 0 {
		settings.Parallelism = 1
	}

	if settings.TestTimeout <= 0 {
		settings.TestTimeout = m.DefaultExecutionSettings().TestTimeout
	}

	return &mutantExecutor{
		build:     build,
		runner:    runner,
		workspace: workspace,
		settings:  settings,
	}
}

func (e *mutantExecutor) ExecuteMutants(ctx context.Context, class *Class, method *m.MethodDetail) <-chan m.MutantResult {
	results := make(chan m.MutantResult, e.settings.Parallelism)

	go func() {
		defer close(results)

		if class == nil || class.Source == nil || method == nil {
			slog.Error("Cannot execute mutants without a class and a method")
			return
		}

		e.execute(ctx, class, method, results)
	}()

	return results
}

func (e *mutantExecutor) execute(ctx context.Context, class *Class, method *m.MethodDetail, results chan<- m.MutantResult) {
	var pending []*m.Mutant

	for _, mutant := range method.Mutants {
		if mutant.Status == m.NotRun {
			pending = append(pending, mutant)
		}
	}

	if len(pending) == 0 || ctx.Err() != nil {
		return
	}

	counts := &tally{total: len(pending)}
	size := min(e.settings.Parallelism, len(pending))

	slots, err := e.workspace.Slots(ctx, class.Source, size)
	if err != nil {
		slog.Error("Failed to prepare workspace", "class", class.Source.Path, "error", err)

		for _, mutant := range pending {
			e.finish(results, counts, method, mutant, m.BuildError, -1, time.Now(), err.Error())
		}

		return
	}

	defer e.restore(context.WithoutCancel(ctx), slots)

	for start := 0; start < len(pending); start += size {
		if err := ctx.Err(); err != nil {
			slog.Info("Execution cancelled", "method", method.QualifiedName(), "remaining", len(pending)-start)
			return
		}

		if counts.exceeded(e.settings) {
			slog.Info("Early stop threshold exceeded", "method", method.QualifiedName(), "remaining", len(pending)-start)
			return
		}

		e.runBatch(ctx, counts, class, method, slots, pending[start:min(start+size, len(pending))], results)
	}
}

// runBatch writes one mutant per slot, builds every written slot at once and
// tests the slots that compiled.
func (e *mutantExecutor) runBatch(ctx context.Context, counts *tally, class *Class, method *m.MethodDetail, slots []Slot, batch []*m.Mutant, results chan<- m.MutantResult) {
	detached := context.WithoutCancel(ctx)
	started := time.Now()
	written := make([]bool, len(batch))
	packages := make([]string, 0, len(batch))

	for i, mutant := range batch {
		content, err := class.Tree.Splice(mutant.Mutation.OriginalNode, mutant.Mutation.Replacement)
		if err == nil {
			err = e.workspace.Write(detached, slots[i], content)
		}

		if err != nil {
			slog.Error("Failed to apply mutant", "method", method.QualifiedName(), "mutant", mutant.ID, "error", err)
			e.finish(results, counts, method, mutant, m.BuildError, i, started, err.Error())

			continue
		}

		written[i] = true
		packages = append(packages, slots[i].Package)
	}

	for i := len(batch); i < len(slots); i++ {
		if err := e.workspace.Write(detached, slots[i], nil); err != nil {
			slog.Warn("Failed to restore unused slot", "slot", i, "error", err)
		}
	}

	if len(packages) == 0 {
		return
	}

	build, err := e.build.Build(detached, slots[0].Root, packages)
	if err != nil {
		build = m.BuildResult{Status: m.BuildFailed, Log: err.Error()}
	}

	if build.Status == m.BuildFailed {
		slog.Debug("Batch build failed", "method", method.QualifiedName(), "failed", build.FailedPackages)
	}

	var group errgroup.Group

	for i, mutant := range batch {
		if !written[i] {
			continue
		}

		if unbuildable(build, slots[i]) {
			e.finish(results, counts, method, mutant, m.BuildError, i, started, build.Log)
			continue
		}

		if ctx.Err() != nil || counts.exceeded(e.settings) {
			continue
		}

		slot := slots[i]

		group.Go(func() error {
			e.runTests(detached, counts, method, slot, mutant, results)
			return nil
		})
	}

	_ = group.Wait()
}

// unbuildable reports whether the slot is among the packages that failed to
// compile. go names broken packages by import path, or by the relative
// pattern when setup fails. A failure that names no package takes down every
// slot.
func unbuildable(build m.BuildResult, slot Slot) bool {
	if build.Status != m.BuildFailed {
		return false
	}

	if len(build.FailedPackages) == 0 || slot.ImportPath == "" {
		return true
	}

	return slices.Contains(build.FailedPackages, slot.ImportPath) ||
		slices.Contains(build.FailedPackages, slot.Package)
}

func (e *mutantExecutor) runTests(ctx context.Context, counts *tally, method *m.MethodDetail, slot Slot, mutant *m.Mutant, results chan<- m.MutantResult) {
	started := time.Now()

	filter := ""
	if !e.settings.ExecuteAllTests {
		filter = testFilter(mutant.CoveringTests)
	}

	process, err := e.runner.RunTests(ctx, slot.Root, slot.Package, filter)
	if err != nil {
		slog.Error("Failed to start tests", "method", method.QualifiedName(), "mutant", mutant.ID, "error", err)
		e.finish(results, counts, method, mutant, m.Killed, slot.Index, started, err.Error())

		return
	}

	dog := watchdog{timeout: e.settings.TestTimeout, killOnFirstFailure: e.settings.KillOnFirstFailure}
	if e.settings.EnableDiagnostics {
		dog.output = &strings.Builder{}
	}

	status := dog.watch(process)

	var log string
	if dog.output != nil {
		log = dog.output.String()
	}

	e.finish(results, counts, method, mutant, m.MutantStatusFor(status), slot.Index, started, log)
}

// testFilter builds the -run expression selecting the given tests.
func testFilter(tests []m.TestMethod) string {
	if len(tests) == 0 {
		return ""
	}

	names := make([]string, 0, len(tests))
	for _, test := range tests {
		names = append(names, test.Name)
	}

	return "^(" + strings.Join(names, "|") + ")$"
}

func (e *mutantExecutor) finish(results chan<- m.MutantResult, counts *tally, method *m.MethodDetail, mutant *m.Mutant, status m.MutantStatus, slot int, started time.Time, log string) {
	if !mutant.SetStatus(status) {
		return
	}

	if e.settings.EnableDiagnostics {
		mutant.Log = log
	}

	counts.add(status)

	results <- m.MutantResult{
		Method:   method.QualifiedName(),
		Mutant:   mutant,
		Status:   status,
		Duration: time.Since(started),
		Slot:     slot,
	}
}

func (e *mutantExecutor) restore(ctx context.Context, slots []Slot) {
	for _, slot := range slots {
		if err := e.workspace.Write(ctx, slot, nil); err != nil {
			slog.Warn("Failed to restore slot", "slot", slot.Index, "error", err)
		}
	}
}
