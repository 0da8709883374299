package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

func TestCoverageConvertCmd(t *testing.T) {
	cmd, mockWorkflow, out := newTestRoot(t, newCoverageCmd())

	mockWorkflow.EXPECT().
		ConvertCoverage(mock.Anything, domain.ConvertArgs{Profile: "cover.out", Output: "cover.bin"}).
		Return(m.CoverageSnapshot{Mode: "set", Blocks: 12}, nil).
		Once()

	cmd.SetArgs([]string{"coverage", "convert", "cover.out", "--out", "cover.bin"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wrote 12 blocks (set mode) to cover.bin")
}

func TestCoverageConvertCmd_RequiresProfile(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newCoverageCmd())

	cmd.SetArgs([]string{"coverage", "convert"})
	require.Error(t, cmd.Execute())
}
