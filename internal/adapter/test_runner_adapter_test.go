package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestArgs(t *testing.T) {
	t.Run("with filter", func(t *testing.T) {
		assert.Equal(t,
			[]string{"test", "-count=1", "-vet=off", "-v", "-run", "^(TestAdd)$", "./calc_mutest_src_0"},
			TestArgs("./calc_mutest_src_0", "^(TestAdd)$"),
		)
	})

	t.Run("without filter", func(t *testing.T) {
		assert.Equal(t, []string{"test", "-count=1", "-vet=off", "-v", "./calc"}, TestArgs("./calc", ""))
	})
}

func TestIsFailureLine(t *testing.T) {
	assert.True(t, IsFailureLine("--- FAIL: TestAdd (0.00s)"))
	assert.True(t, IsFailureLine("    --- FAIL: TestAdd/sub (0.00s)"))
	assert.False(t, IsFailureLine("FAIL\texample.com/calc\t0.01s"))
	assert.False(t, IsFailureLine("--- PASS: TestAdd (0.00s)"))
}

func TestLocalTestRunnerAdapter_RunTests_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalTestRunnerAdapter().RunTests(ctx, "", "./...", "")
	require.ErrorIs(t, err, context.Canceled)
}
