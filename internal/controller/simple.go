package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "mutest.dev/pkg/mutest/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(context.Context) {}

// Wait returns immediately; SimpleUI never blocks.
func (s *SimpleUI) Wait(context.Context) {}

// DisplayEstimation prints the estimation results or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, estimates []m.ClassEstimate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(estimates))

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Running with %d worker(s) (shard %d/%d)\n", threads, shardIndex, shardCount)
}

// DisplayUpcomingTestsInfo shows the number of mutants about to be tested.
func (s *SimpleUI) DisplayUpcomingTestsInfo(ctx context.Context, total int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Upcoming mutants: %d\n", total)
}

// DisplayStartingMethodInfo announces the method whose mutants run next.
func (s *SimpleUI) DisplayStartingMethodInfo(ctx context.Context, class string, method string, mutants int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Testing %s %s (%d mutants)\n", class, method, mutants)
}

// DisplayCompletedTestInfo shows the outcome of one mutant. The diff of
// surviving mutants is printed as well.
func (s *SimpleUI) DisplayCompletedTestInfo(ctx context.Context, result m.MutantResult) {
	if ctx.Err() != nil || result.Mutant == nil {
		return
	}

	mutant := result.Mutant
	s.printf("Mutant %d (%s) line %d -> %s\n", mutant.ID, mutant.Mutation.Type, mutant.Mutation.Line, result.Status)

	if result.Status == m.Survived && mutant.Diff != "" {
		s.printf("%s\n", mutant.Diff)
	}
}

// DisplayMethodReport prints the score of a finished method.
func (s *SimpleUI) DisplayMethodReport(ctx context.Context, report m.MethodReport) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s %s: %s in %s\n", report.Class, report.Method, formatScore(report.Score), report.ExecutionTime)
}

// DisplayMutationScore prints the final mutation score.
func (s *SimpleUI) DisplayMutationScore(ctx context.Context, score m.MutationScore) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Mutation score: %s\n", formatScore(score))
}

// DisplayReports prints stored reports, their mutator breakdown and the
// diffs of surviving mutants.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.MethodReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	s.printf("\n%s\n%s", renderReportsTable(reports), renderMutatorTable(mergeSummaries(reports)))

	for _, report := range reports {
		for _, mutant := range report.Mutants {
			if mutant.Status != m.Survived {
				continue
			}

			s.printf("\nSurvived %s %s #%d: %s\n", report.Class, report.Method, mutant.ID, mutant.Mutation)

			if mutant.Diff != "" {
				s.printf("%s\n", mutant.Diff)
			}
		}
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
