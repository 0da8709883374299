//go:build !windows

package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectLines(t *testing.T, p Process) []string {
	t.Helper()

	var lines []string

	timeout := time.After(10 * time.Second)

	for {
		select {
		case line, ok := <-p.Lines():
			if !ok {
				return lines
			}

			lines = append(lines, line)
		case <-timeout:
			t.Fatal("timed out reading process output")
		}
	}
}

func TestStartProcess(t *testing.T) {
	t.Run("streams combined output and exit code", func(t *testing.T) {
		p, err := StartProcess(t.TempDir(), "sh", "-c", "echo one; echo two 1>&2; exit 3")
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"one", "two"}, collectLines(t, p))

		status := <-p.Done()
		assert.Equal(t, 3, status.Code)
		assert.Error(t, status.Err)
	})

	t.Run("successful process", func(t *testing.T) {
		p, err := StartProcess(t.TempDir(), "sh", "-c", "echo ok")
		require.NoError(t, err)

		assert.Equal(t, []string{"ok"}, collectLines(t, p))
		assert.Equal(t, 0, (<-p.Done()).Code)
	})

	t.Run("kill terminates the process group", func(t *testing.T) {
		p, err := StartProcess(t.TempDir(), "sh", "-c", "echo started; sleep 30 & wait")
		require.NoError(t, err)

		select {
		case line := <-p.Lines():
			assert.Equal(t, "started", line)
		case <-time.After(10 * time.Second):
			t.Fatal("process did not start")
		}

		require.NoError(t, p.Kill())
		require.NoError(t, p.Kill())

		DrainLines(p)

		select {
		case status := <-p.Done():
			assert.Equal(t, -1, status.Code)
		case <-time.After(10 * time.Second):
			t.Fatal("process survived kill")
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := StartProcess(t.TempDir(), "mutest-no-such-binary")
		require.Error(t, err)
	})
}
