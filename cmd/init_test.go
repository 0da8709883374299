package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// chdirTemp moves the test into an empty directory.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return dir
}

func TestInitCmd_WritesConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	cmd, _, out := newTestRoot(t, newInitCmd())
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), configFileName)

	contents, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &doc))
	assert.Contains(t, doc, "run")
	assert.Contains(t, doc, "filter")
	assert.Contains(t, doc, "reports")
	assert.Contains(t, doc, "log")
}

func TestInitCmd_ExistingFile(t *testing.T) {
	dir := chdirTemp(t)
	target := filepath.Join(dir, configFileName)

	t.Run("kept without force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(target, []byte("existing: true\n"), 0o600))

		cmd, _, _ := newTestRoot(t, newInitCmd())
		cmd.SetArgs([]string{"init"})
		require.Error(t, cmd.Execute())

		contents, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "existing: true\n", string(contents))
	})

	t.Run("replaced with force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(target, []byte("existing: true\n"), 0o600))

		cmd, _, _ := newTestRoot(t, newInitCmd())
		cmd.SetArgs([]string{"init", "--force"})
		require.NoError(t, cmd.Execute())

		contents, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(contents), "run:")
	})
}
