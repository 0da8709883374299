package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"mutest.dev/pkg/mutest/internal/adapter"
	"mutest.dev/pkg/mutest/internal/controller"
	m "mutest.dev/pkg/mutest/internal/model"
)

// CoverageFormat selects the coverage backend used by Run.
type CoverageFormat string

// Supported coverage formats.
const (
	CoverageProfile CoverageFormat = "profile"
	CoverageBinary  CoverageFormat = "binary"
)

// ReportStoreOpener opens the report store rooted at a reports directory.
type ReportStoreOpener func(ctx context.Context, root m.Path) (adapter.ReportStore, error)

// TargetArgs selects the source files to work on.
type TargetArgs struct {
	Paths       []m.Path
	TargetsFile m.Path
	Exclude     []string
}

// ListArgs holds the arguments of List.
type ListArgs struct {
	TargetArgs
	Mapper m.MapperOptions
}

// RunArgs holds the arguments of Run.
type RunArgs struct {
	TargetArgs
	Reports        m.Path `validate:"required"`
	Coverage       []m.Path
	CoverageFormat CoverageFormat `validate:"omitempty,oneof=profile binary"`

	// RunID names the run directory. A random id is used when empty.
	RunID string `validate:"omitempty,excludesall=/"`

	// Since restricts mutation to lines changed since this git revision.
	Since string

	Mapper          m.MapperOptions
	Settings        m.ExecutionSettings
	ShardIndex      int `validate:"gte=0"`
	TotalShardCount int `validate:"gte=0"`
}

// ViewArgs holds the arguments of View. An empty RunID shows the latest run.
type ViewArgs struct {
	Reports m.Path `validate:"required"`
	RunID   string
}

// MergeArgs holds the arguments of Merge. An empty Into creates a new run id.
type MergeArgs struct {
	Reports m.Path   `validate:"required"`
	RunIDs  []string `validate:"min=1,dive,required"`
	Into    string   `validate:"omitempty,excludesall=/"`
}

// ConvertArgs holds the arguments of ConvertCoverage.
type ConvertArgs struct {
	Profile m.Path `validate:"required"`
	Output  m.Path `validate:"required"`
}

// Workflow drives the mutest commands.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) (string, error)
	ConvertCoverage(ctx context.Context, args ConvertArgs) (m.CoverageSnapshot, error)
}

// Dependencies are the collaborators of a Workflow.
type Dependencies struct {
	FS              adapter.SourceFSAdapter
	UI              controller.UI
	Streamer        MutationStreamer
	Build           adapter.BuildAdapter
	Runner          adapter.TestRunnerAdapter
	Changes         adapter.ChangeAdapter
	Targets         adapter.TargetsAdapter
	ProfileCoverage adapter.CoverageAnalyzer
	BinaryCoverage  adapter.CoverageAnalyzer
	OpenReports     ReportStoreOpener
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	MutationStreamer

	build       adapter.BuildAdapter
	runner      adapter.TestRunnerAdapter
	changes     adapter.ChangeAdapter
	targets     adapter.TargetsAdapter
	profiles    adapter.CoverageAnalyzer
	snapshots   adapter.CoverageAnalyzer
	openReports ReportStoreOpener
	newRunID    func() string
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(deps Dependencies) Workflow {
	return &workflow{
		SourceFSAdapter:  deps.FS,
		UI:               deps.UI,
		MutationStreamer: deps.Streamer,
		build:            deps.Build,
		runner:           deps.Runner,
		changes:          deps.Changes,
		targets:          deps.Targets,
		profiles:         deps.ProfileCoverage,
		snapshots:        deps.BinaryCoverage,
		openReports:      deps.OpenReports,
		newRunID:         uuid.NewString,
	}
}

// List estimates the mutants of every target without running anything.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	targets, err := w.resolveTargets(ctx, args.TargetArgs)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(context.WithoutCancel(ctx))

	classes, err := w.loadClasses(ctx, targets, 1, 0, 0)
	if err != nil {
		_ = w.DisplayEstimation(ctx, nil, err)
		return fmt.Errorf("generate mutations: %w", err)
	}

	mapper := NewCoverageMapper(args.Mapper)
	estimates := make([]m.ClassEstimate, 0, len(classes))

	for _, class := range classes {
		mapper.MapTests(class)
		estimates = append(estimates, m.NewClassEstimate(class.Source))
	}

	if err := w.DisplayEstimation(ctx, estimates, nil); err != nil {
		slog.Error("Failed to display estimation", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// Run mutates every target, executes the covering tests and saves one
// report per method. Reports of methods finished before a cancellation are
// kept.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := validateRunArgs(args); err != nil {
		return err
	}

	targets, err := w.resolveTargets(ctx, args.TargetArgs)
	if err != nil {
		return err
	}

	store, err := w.openReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("open reports: %w", err)
	}

	defer closeStore(store)

	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(context.WithoutCancel(ctx))

	w.DisplayConcurrencyInfo(ctx, args.Settings.Parallelism, args.ShardIndex, max(args.TotalShardCount, 1))

	classes, err := w.loadClasses(ctx, targets, args.Settings.Parallelism, args.ShardIndex, args.TotalShardCount)
	if err != nil {
		return fmt.Errorf("generate mutations: %w", err)
	}

	upcoming := 0

	for _, class := range classes {
		if err := w.prepareClass(ctx, class, args); err != nil {
			return err
		}

		for _, method := range class.Source.Methods {
			upcoming += pendingCount(method)
		}
	}

	w.DisplayUpcomingTestsInfo(ctx, upcoming)

	workspace := NewWorkspace(w.SourceFSAdapter)

	defer func() {
		if err := workspace.Close(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to remove mutation workspace", "error", err)
		}
	}()

	executor := NewMutantExecutor(w.build, w.runner, workspace, args.Settings)
	runID := args.RunID
	if runID == "" {
		runID = w.newRunID()
	}

	var reports []m.MethodReport

	for _, class := range classes {
		for _, method := range class.Source.Methods {
			if ctx.Err() != nil {
				break
			}

			if !reportable(method) {
				continue
			}

			report, err := w.testMethod(ctx, runID, store, executor, class, method)
			if err != nil {
				return err
			}

			reports = append(reports, report)
		}
	}

	w.DisplayMutationScore(context.WithoutCancel(ctx), AggregateScore(reports))

	return ctx.Err()
}

// View displays the reports of a previous run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := validateArgs(args); err != nil {
		return err
	}

	store, err := w.openReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("open reports: %w", err)
	}

	defer closeStore(store)

	var dir m.Path

	if args.RunID != "" {
		dir = runDir(args.Reports, args.RunID)
	} else {
		dir, err = store.LatestRun(ctx)
		if err != nil {
			return fmt.Errorf("find latest run: %w", err)
		}
	}

	reports, err := store.LoadReports(ctx, dir)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(context.WithoutCancel(ctx))

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// Merge copies the reports of several runs, typically one per shard, into a
// single run and returns its id.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) (string, error) {
	if err := validateArgs(args); err != nil {
		return "", err
	}

	store, err := w.openReports(ctx, args.Reports)
	if err != nil {
		return "", fmt.Errorf("open reports: %w", err)
	}

	defer closeStore(store)

	runID := args.Into
	if runID == "" {
		runID = w.newRunID()
	}

	merged := 0

	for _, id := range args.RunIDs {
		reports, err := store.LoadReports(ctx, runDir(args.Reports, id))
		if err != nil {
			return "", fmt.Errorf("load run %s: %w", id, err)
		}

		if len(reports) == 0 {
			slog.Warn("Run has no reports", "run", id)
		}

		for _, report := range reports {
			report.RunID = runID
			if _, err := store.SaveReport(ctx, report); err != nil {
				return "", fmt.Errorf("save merged report: %w", err)
			}

			merged++
		}
	}

	slog.Info("Merged runs", "runs", len(args.RunIDs), "reports", merged, "into", runID)

	return runID, nil
}

// ConvertCoverage turns a text coverprofile into the binary snapshot format.
func (w *workflow) ConvertCoverage(ctx context.Context, args ConvertArgs) (m.CoverageSnapshot, error) {
	if err := validateArgs(args); err != nil {
		return m.CoverageSnapshot{}, err
	}

	if err := ctx.Err(); err != nil {
		return m.CoverageSnapshot{}, err
	}

	return adapter.ConvertProfile(args.Profile, args.Output)
}

func validateRunArgs(args RunArgs) error {
	if err := validateArgs(args); err != nil {
		return err
	}

	if args.TotalShardCount > 0 && args.ShardIndex >= args.TotalShardCount {
		return m.NewConfigError("shard", fmt.Errorf("index %d out of range for %d shards", args.ShardIndex, args.TotalShardCount))
	}

	if args.Settings.KilledThreshold == 0 || args.Settings.SurvivedThreshold == 0 {
		slog.Warn("A zero threshold stops execution after the first matching mutant")
	}

	return nil
}

// resolveTargets merges the targets file with the path arguments and
// expands directories. Without any target the current module is used.
func (w *workflow) resolveTargets(ctx context.Context, args TargetArgs) ([]m.Target, error) {
	var targets []m.Target

	if args.TargetsFile != "" {
		loaded, err := w.targets.Load(ctx, args.TargetsFile)
		if err != nil {
			return nil, err
		}

		targets = append(targets, loaded...)
	}

	for _, path := range args.Paths {
		targets = append(targets, m.Target{Path: path})
	}

	if len(targets) == 0 {
		targets = []m.Target{{Path: "./..."}}
	}

	return w.Discover(ctx, targets, args.Exclude)
}

// loadClasses collects the classes of the shard. Targets that fail with an
// InputError are logged and skipped.
func (w *workflow) loadClasses(ctx context.Context, targets []m.Target, threads, shardIndex, totalShardCount int) ([]*Class, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	works := w.ShardMethods(ctx, w.Get(ctx, targets, threads), threads, shardIndex, totalShardCount)

	var classes []*Class

	for work := range works {
		if work.Err != nil {
			if errors.Is(work.Err, m.ErrInvalidInput) {
				slog.Warn("Skipping target", "path", work.Target.Path, "error", work.Err)
				continue
			}

			return nil, work.Err
		}

		classes = append(classes, work.Class)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

func (w *workflow) prepareClass(ctx context.Context, class *Class, args RunArgs) error {
	options := args.Mapper

	if args.Since != "" {
		lines, err := w.changes.ChangedLines(ctx, class.Source.Path, args.Since)
		if err != nil {
			return m.NewConfigError("since", err)
		}

		options.SpecificLines = changedRanges(lines, options.SpecificLines)
		if len(options.SpecificLines) == 0 {
			slog.Debug("No changed lines", "class", class.Source.Path, "since", args.Since)
			skipAll(class)
		}
	}

	w.attachCoverage(ctx, class, args)
	NewCoverageMapper(options).MapTests(class)

	return nil
}

func (w *workflow) attachCoverage(ctx context.Context, class *Class, args RunArgs) {
	if len(args.Coverage) == 0 {
		return
	}

	analyzer := w.profiles
	if args.CoverageFormat == CoverageBinary {
		analyzer = w.snapshots
	}

	var timestamp time.Time

	if info, err := w.FileInfo(ctx, class.Source.Path); err == nil {
		timestamp = info.ModTime()
	}

	name := class.Source.FullyQualifiedName()

	result, coverage := analyzer.TryFindCoverage(ctx, name, args.Coverage, class.Source.Package, timestamp)
	if result != m.CoverageFound {
		slog.Info("No usable coverage", "class", name, "result", result)
		return
	}

	for _, method := range class.Source.Methods {
		method.Coverage = coverage.Slice(method.StartLine, method.EndLine)
	}
}

func (w *workflow) testMethod(ctx context.Context, runID string, store adapter.ReportStore, executor MutantExecutor, class *Class, method *m.MethodDetail) (m.MethodReport, error) {
	startedAt := time.Now()
	className := class.Source.FullyQualifiedName()

	w.DisplayStartingMethodInfo(ctx, className, method.QualifiedName(), pendingCount(method))

	for result := range executor.ExecuteMutants(ctx, class, method) {
		result.Mutant.Diff = mutantDiff(class, result.Mutant)
		w.DisplayCompletedTestInfo(ctx, result)
	}

	report := newMethodReport(runID, class, method, startedAt)

	// A cancelled run still records the mutants finished so far.
	if _, err := store.SaveReport(context.WithoutCancel(ctx), report); err != nil {
		slog.Error("Failed to save report", "class", className, "method", report.Method, "error", err)
		return report, fmt.Errorf("save report for %s: %w", report.Method, err)
	}

	w.DisplayMethodReport(ctx, report)

	return report, nil
}

func newMethodReport(runID string, class *Class, method *m.MethodDetail, startedAt time.Time) m.MethodReport {
	report := m.MethodReport{
		RunID:         runID,
		Source:        class.Source.Path,
		Class:         class.Source.FullyQualifiedName(),
		Method:        method.QualifiedName(),
		StartedAt:     startedAt,
		ExecutionTime: time.Since(startedAt),
		Score:         NewMutationScore(method.Mutants),
		Mutators:      MutatorSummaries(method.Mutants),
		Mutants:       make([]m.MutantReport, 0, len(method.Mutants)),
	}

	for _, mutant := range method.Mutants {
		if mutant.Diff == "" && mutant.Status != m.Skipped {
			mutant.Diff = mutantDiff(class, mutant)
		}

		tests := make([]string, 0, len(mutant.CoveringTests))
		for _, test := range mutant.CoveringTests {
			tests = append(tests, test.Name)
		}

		report.Mutants = append(report.Mutants, m.MutantReport{
			ID:       mutant.ID,
			Mutation: mutant.Mutation.Text(),
			Type:     mutant.Mutation.Type,
			Line:     mutant.Mutation.Line,
			Status:   mutant.Status,
			Tests:    tests,
			Diff:     mutant.Diff,
			Log:      mutant.Log,
		})
	}

	return report
}

// mutantDiff renders the mutated source against the original with one line
// of context.
func mutantDiff(class *Class, mutant *m.Mutant) string {
	mutated, err := class.Tree.Splice(mutant.Mutation.OriginalNode, mutant.Mutation.Replacement)
	if err != nil {
		slog.Debug("Failed to render mutant", "id", mutant.ID, "error", err)
		return ""
	}

	name := filepath.Base(string(class.Source.Path))

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(class.Tree.Src)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: name,
		ToFile:   name,
		Context:  1,
	})
	if err != nil {
		return ""
	}

	return diff
}

// changedRanges keeps the changed lines inside the requested ranges. With no
// requested ranges every changed line is kept.
func changedRanges(changed []int, requested []m.LineRange) []m.LineRange {
	if len(requested) == 0 {
		return m.LineRangesOf(changed)
	}

	var kept []int

	for _, line := range changed {
		for _, r := range requested {
			if r.Contains(line) {
				kept = append(kept, line)
				break
			}
		}
	}

	return m.LineRangesOf(kept)
}

func skipAll(class *Class) {
	for _, method := range class.Source.Methods {
		for _, mutant := range method.Mutants {
			mutant.SetStatus(m.Skipped)
		}
	}
}

func pendingCount(method *m.MethodDetail) int {
	count := 0

	for _, mutant := range method.Mutants {
		if mutant.Status == m.NotRun {
			count++
		}
	}

	return count
}

// reportable reports whether a method has any mutant that was not skipped.
func reportable(method *m.MethodDetail) bool {
	for _, mutant := range method.Mutants {
		if mutant.Status != m.Skipped {
			return true
		}
	}

	return false
}

func runDir(reports m.Path, runID string) m.Path {
	return m.Path(filepath.Join(string(reports), runID))
}

func closeStore(store adapter.ReportStore) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close report store", "error", err)
	}
}
