package adapter

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	m "mutest.dev/pkg/mutest/internal/model"
)

var buildFailedPattern = regexp.MustCompile(`(?m)^FAIL\s+(\S+)\s+\[(?:build|setup) failed\]`)

// BuildAdapter compiles packages without running their tests.
type BuildAdapter interface {
	// Build compiles the test binaries of every package in one invocation.
	// A compilation failure is reported through the result, not the error.
	Build(ctx context.Context, dir m.Path, packages []string) (m.BuildResult, error)
}

// LocalBuildAdapter compiles through `go test -run ^$`.
type LocalBuildAdapter struct {
	goBinary string
}

// NewLocalBuildAdapter constructs a LocalBuildAdapter using the go binary on PATH.
func NewLocalBuildAdapter() *LocalBuildAdapter {
	return &LocalBuildAdapter{goBinary: "go"}
}

// Build implements BuildAdapter.
func (a *LocalBuildAdapter) Build(ctx context.Context, dir m.Path, packages []string) (m.BuildResult, error) {
	if len(packages) == 0 {
		return m.BuildResult{Status: m.BuildSucceeded}, nil
	}

	args := append([]string{"test", "-count=1", "-vet=off", "-run", "^$"}, packages...)

	// #nosec G204 - package paths are slot directories created by mutest
	cmd := exec.CommandContext(ctx, a.goBinary, args...)
	cmd.Dir = string(dir)

	output, err := cmd.CombinedOutput()
	if err == nil {
		return m.BuildResult{Status: m.BuildSucceeded, Log: string(output)}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return m.BuildResult{}, fmt.Errorf("failed to run build in %s: %w", dir, err)
	}

	return m.BuildResult{
		Status:         m.BuildFailed,
		Log:            string(output),
		FailedPackages: FailedPackages(string(output)),
	}, nil
}

// FailedPackages extracts the import paths go test reports as unbuildable.
func FailedPackages(output string) []string {
	var packages []string

	for _, match := range buildFailedPattern.FindAllStringSubmatch(output, -1) {
		packages = append(packages, match[1])
	}

	return packages
}
