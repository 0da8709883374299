package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path(".mutest-reports") && args.RunID == ""
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view", "--output", "./reports-dir"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_SelectsRun(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.RunID == "shard-1"
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view", "shard-1"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RejectsSeveralRuns(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newViewCmd())

	cmd.SetArgs([]string{"view", "run-1", "run-2"})
	require.Error(t, cmd.Execute())
}
