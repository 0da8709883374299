package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "mutest.dev/pkg/mutest/internal/model"
)

func newBufferedSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func sampleReports() []m.MethodReport {
	return []m.MethodReport{
		{
			Class:  "example.com/calculator/calculator.go",
			Method: "Add",
			Score:  m.MutationScore{Killed: 1, Survived: 1, Total: 2, Coverage: 0.5},
			Mutators: []m.MutatorSummary{
				{Type: m.MutatorArithmetic, Total: 2, Killed: 1, Survived: 1},
			},
			Mutants: []m.MutantReport{
				{ID: 1, Mutation: `Arithmetic operator: "a + b" -> "a"`, Status: m.Killed},
				{ID: 2, Mutation: `Arithmetic operator: "a - b" -> "a + b"`, Status: m.Survived, Diff: "-\treturn a - b\n+\treturn a + b"},
			},
		},
		{
			Class:  "example.com/calculator/calculator.go",
			Method: "IsLarge",
			Score:  m.MutationScore{Killed: 2, Total: 2, Coverage: 1},
			Mutators: []m.MutatorSummary{
				{Type: m.MutatorEquality, Total: 2, Killed: 2},
				{Type: m.MutatorArithmetic, Total: 1, Killed: 1},
			},
		},
	}
}

func TestSimpleUI_DisplayEstimation(t *testing.T) {
	tests := []struct {
		name         string
		estimates    []m.ClassEstimate
		wantContains []string
	}{
		{
			name:         "empty estimation",
			estimates:    nil,
			wantContains: []string{"TOTAL FILES 0"},
		},
		{
			name: "several files",
			estimates: []m.ClassEstimate{
				{Path: "pkg/b.go", Methods: 2, Mutants: 7, Skipped: 1},
				{Path: "pkg/a.go", Methods: 1, Mutants: 3},
			},
			wantContains: []string{"pkg/a.go", "pkg/b.go", "TOTAL FILES 2", "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newBufferedSimpleUI()

			if err := ui.DisplayEstimation(context.Background(), tt.estimates, nil); err != nil {
				t.Fatalf("DisplayEstimation() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}

	t.Run("sorted by path", func(t *testing.T) {
		ui, buf := newBufferedSimpleUI()

		_ = ui.DisplayEstimation(context.Background(), []m.ClassEstimate{{Path: "z.go"}, {Path: "a.go"}}, nil)

		output := buf.String()
		if strings.Index(output, "a.go") > strings.Index(output, "z.go") {
			t.Errorf("expected a.go before z.go:\n%s", output)
		}
	})

	t.Run("error is reported", func(t *testing.T) {
		ui, buf := newBufferedSimpleUI()
		wantErr := errors.New("boom")

		if err := ui.DisplayEstimation(context.Background(), nil, wantErr); !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}

		if !strings.Contains(buf.String(), "estimation error: boom") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestSimpleUI_RunProgress(t *testing.T) {
	ui, buf := newBufferedSimpleUI()
	ctx := context.Background()

	if err := ui.Start(ctx, WithTestMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayConcurrencyInfo(ctx, 4, 1, 3)
	ui.DisplayUpcomingTestsInfo(ctx, 12)
	ui.DisplayStartingMethodInfo(ctx, "example.com/calculator/calculator.go", "Add", 2)

	survivor := &m.Mutant{
		ID:       2,
		Mutation: m.Mutation{Type: m.MutatorArithmetic, Line: 11},
		Diff:     "+\treturn a",
	}
	ui.DisplayCompletedTestInfo(ctx, m.MutantResult{Mutant: survivor, Status: m.Survived})
	ui.DisplayCompletedTestInfo(ctx, m.MutantResult{Mutant: &m.Mutant{ID: 3, Mutation: m.Mutation{Type: m.MutatorBlock, Line: 12}}, Status: m.Killed})
	ui.DisplayMethodReport(ctx, m.MethodReport{Class: "calc.go", Method: "Add", ExecutionTime: time.Second, Score: m.MutationScore{Killed: 1, Survived: 1, Coverage: 0.5}})
	ui.DisplayMutationScore(ctx, m.MutationScore{Killed: 1, Survived: 1, Coverage: 0.5})
	ui.Wait(ctx)
	ui.Close(ctx)

	output := buf.String()

	for _, want := range []string{
		"Running with 4 worker(s) (shard 1/3)",
		"Upcoming mutants: 12",
		"Testing example.com/calculator/calculator.go Add (2 mutants)",
		"Mutant 2 (arithmetic) line 11 -> survived",
		"+\treturn a",
		"Mutant 3 (block) line 12 -> killed",
		"calc.go Add: 50.00%",
		"Mutation score: 50.00% (killed 1, survived 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	t.Run("no reports", func(t *testing.T) {
		ui, buf := newBufferedSimpleUI()

		if err := ui.DisplayReports(context.Background(), nil); err != nil {
			t.Fatalf("DisplayReports() error = %v", err)
		}

		if !strings.Contains(buf.String(), "No reports found") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("tables and survivors", func(t *testing.T) {
		ui, buf := newBufferedSimpleUI()

		if err := ui.DisplayReports(context.Background(), sampleReports()); err != nil {
			t.Fatalf("DisplayReports() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{"IsLarge", "50.00%", "100.00%", "arithmetic", "equality", "Survived example.com/calculator/calculator.go Add #2", "+\treturn a + b"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}

		if strings.Contains(output, "#1:") {
			t.Errorf("killed mutants must not be listed:\n%s", output)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ui, _ := newBufferedSimpleUI()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := ui.DisplayReports(ctx, sampleReports()); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestMergeSummaries(t *testing.T) {
	merged := mergeSummaries(sampleReports())

	want := []m.MutatorSummary{
		{Type: m.MutatorArithmetic, Total: 3, Killed: 2, Survived: 1},
		{Type: m.MutatorEquality, Total: 2, Killed: 2},
	}

	if len(merged) != len(want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}

	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("summary %d = %+v, want %+v", i, merged[i], want[i])
		}
	}
}
