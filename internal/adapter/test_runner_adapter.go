package adapter

import (
	"context"
	"strings"

	m "mutest.dev/pkg/mutest/internal/model"
)

// FailureMarker starts every failed test line of `go test -v` output.
const FailureMarker = "--- FAIL"

// TestRunnerAdapter starts test processes for a single package.
type TestRunnerAdapter interface {
	// RunTests runs the tests of pkg inside dir. An empty filter runs every
	// test of the package.
	RunTests(ctx context.Context, dir m.Path, pkg, filter string) (Process, error)
}

// LocalTestRunnerAdapter runs `go test` through os/exec.
type LocalTestRunnerAdapter struct {
	goBinary string
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter using the go
// binary found on PATH.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{goBinary: "go"}
}

// RunTests starts `go test -v` for pkg. The process is not bound to ctx:
// once started it is only stopped through Kill.
func (a *LocalTestRunnerAdapter) RunTests(ctx context.Context, dir m.Path, pkg, filter string) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return StartProcess(string(dir), a.goBinary, TestArgs(pkg, filter)...)
}

// TestArgs returns the `go` arguments used to run the tests of pkg.
func TestArgs(pkg, filter string) []string {
	args := []string{"test", "-count=1", "-vet=off", "-v"}
	if filter != "" {
		args = append(args, "-run", filter)
	}

	return append(args, pkg)
}

// IsFailureLine reports whether an output line announces a failed test.
func IsFailureLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FailureMarker)
}
