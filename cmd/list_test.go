package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/domain"
	m "mutest.dev/pkg/mutest/internal/model"
)

func TestListCmd_PassesTargetsAndFilters(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newListCmd())

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./pkg/...") &&
			len(args.Mapper.SpecificIDs) == 2 &&
			len(args.Mapper.SkipPatterns) == 1
	})).Return(nil).Once()

	cmd.SetArgs([]string{"list", "--ids", "1,2", "--skip", "fmt\\.", "./pkg/..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_InvalidLines(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newListCmd())

	cmd.SetArgs([]string{"list", "--lines", "0:3"})

	var configErr *m.ConfigError
	require.ErrorAs(t, cmd.Execute(), &configErr)
	assert.Equal(t, linesFlagName, configErr.Key)
}
