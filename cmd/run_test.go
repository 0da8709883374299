package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	var got domain.RunArgs

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).
		Run(func(_ context.Context, args domain.RunArgs) { got = args }).
		Return(nil).Once()

	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.Execute())

	assert.Empty(t, got.Paths)
	assert.Equal(t, m.Path(".mutest-reports"), got.Reports)
	assert.Equal(t, domain.CoverageProfile, got.CoverageFormat)
	assert.Empty(t, got.Coverage)
	assert.Empty(t, got.RunID)
	assert.Empty(t, got.Since)
	assert.Equal(t, m.DefaultExecutionSettings(), got.Settings)
	assert.Equal(t, 0, got.ShardIndex)
	assert.Equal(t, 1, got.TotalShardCount)
}

func TestRunCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Settings.Parallelism == 2 &&
			args.Settings.TestTimeout == 90*time.Second &&
			args.Settings.SurvivedThreshold == 0.25 &&
			!args.Settings.KillOnFirstFailure &&
			args.Settings.EnableDiagnostics &&
			args.RunID == "nightly" &&
			args.Since == "main" &&
			args.CoverageFormat == domain.CoverageBinary &&
			len(args.Coverage) == 1 && args.Coverage[0] == m.Path("cover.bin")
	})).Return(nil).Once()

	cmd.SetArgs([]string{
		"run",
		"--parallel", "2",
		"--timeout", "90s",
		"--survived-threshold", "0.25",
		"--kill-on-first-failure=false",
		"--diagnostics",
		"--run-id", "nightly",
		"--since", "main",
		"--coverage", "cover.bin",
		"--coverage-format", "binary",
	})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithSharding(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.ShardIndex == 1 && args.TotalShardCount == 3
	})).Return(nil).Once()

	cmd.SetArgs([]string{"run", "--shard", "1/3", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Paths) == 3 &&
			args.Paths[0] == m.Path("./cmd") &&
			args.Paths[1] == m.Path("./pkg") &&
			args.Paths[2] == m.Path("./internal")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"run", "./cmd", "./pkg", "./internal"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_RootFlags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Reports == m.Path("out") &&
			args.TargetsFile == m.Path("targets.yaml") &&
			len(args.Exclude) == 1 && args.Exclude[0] == "_gen\\.go$" &&
			len(args.Mapper.SpecificLines) == 1 && args.Mapper.SpecificLines[0] == m.LineRange{Start: 10, End: 12} &&
			len(args.Mapper.IgnoreIDs) == 2
	})).Return(nil).Once()

	cmd.SetArgs([]string{
		"run",
		"-o", "out",
		"-t", "targets.yaml",
		"-x", "_gen\\.go$",
		"--lines", "10:12",
		"--ignore-ids", "3,4",
	})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_InvalidFilter(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newRunCmd())

	cmd.SetArgs([]string{"run", "--only", "("})
	err := cmd.Execute()

	var configErr *m.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, onlyFlagName, configErr.Key)
}

func TestRunCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newRunCmd())

	runErr := errors.New("build failed")
	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(runErr).Once()

	cmd.SetArgs([]string{"run"})
	require.ErrorIs(t, cmd.Execute(), runErr)
}
