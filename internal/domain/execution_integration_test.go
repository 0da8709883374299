package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/domain/mutagens"
	m "mutest.dev/pkg/mutest/internal/model"
)

var tallyModule = map[string]string{
	"go.mod": "module example.com/tally\n\ngo 1.21\n",
	"tally.go": `package tally

func Add(a, b int) int {
	return a + b
}

func Sub(a, b int) int {
	return a - b
}
`,
	"tally_test.go": `package tally

import "testing"

func TestAdd(t *testing.T) {
	_ = Add(2, 3)
}

func TestSub(t *testing.T) {
	if got := Sub(9, 4); got != 5 {
		t.Fatalf("Sub(9, 4) = %d", got)
	}
}
`,
	"loop/loop.go": `package loop

func Count(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total++
	}

	return total
}
`,
	"loop/loop_test.go": `package loop

import "testing"

func TestCount(t *testing.T) {
	if got := Count(3); got != 3 {
		t.Fatalf("Count(3) = %d", got)
	}
}
`,
}

// writeModule lays files out under dir and returns the module root.
func writeModule(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	root := filepath.Join(dir, "module")

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func writeTargets(t *testing.T, dir string, entries ...string) m.Path {
	t.Helper()

	var doc strings.Builder

	doc.WriteString("targets:\n")

	for _, entry := range entries {
		doc.WriteString(entry)
	}

	path := filepath.Join(dir, "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc.String()), 0o600))

	return m.Path(path)
}

func targetEntry(path string, methods ...string) string {
	return "  - path: " + filepath.ToSlash(path) + "\n    methods: [" + strings.Join(methods, ", ") + "]\n"
}

func TestExecutionIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and tests a generated module")
	}

	t.Run("module root package", func(t *testing.T) {
		dir := t.TempDir()
		root := writeModule(t, dir, tallyModule)
		targets := writeTargets(t, dir, targetEntry(filepath.Join(root, "tally.go"), "Add", "Sub"))

		settings := m.DefaultExecutionSettings()
		settings.Parallelism = 2
		settings.EnableDiagnostics = true

		reports := m.Path(filepath.Join(dir, "reports"))
		require.NoError(t, newLocalWorkflow(t).Run(context.Background(), RunArgs{
			TargetArgs: TargetArgs{TargetsFile: targets},
			Reports:    reports,
			Settings:   settings,
		}))

		loaded := latestReports(t, reports)
		require.Len(t, loaded, 2)

		add := loaded["Add"]
		require.NotEmpty(t, add.Mutants)

		for _, mutant := range add.Mutants {
			assert.Equal(t, m.Survived, mutant.Status, "an unchecked result cannot kill %s", mutant.Mutation)
		}

		assert.Zero(t, add.Score.Killed)

		sub := loaded["Sub"]
		require.NotEmpty(t, sub.Mutants)

		for _, mutant := range sub.Mutants {
			assertCleanKill(t, mutant)
		}
	})

	t.Run("infinite loop times out", func(t *testing.T) {
		dir := t.TempDir()
		root := writeModule(t, dir, tallyModule)
		targets := writeTargets(t, dir, targetEntry(filepath.Join(root, "loop", "loop.go"), "Count"))

		settings := m.DefaultExecutionSettings()
		settings.Parallelism = 2
		settings.TestTimeout = 5 * time.Second

		reports := m.Path(filepath.Join(dir, "reports"))
		require.NoError(t, newLocalWorkflow(t, mutagens.NewUpdateMutator()).Run(context.Background(), RunArgs{
			TargetArgs: TargetArgs{TargetsFile: targets},
			Reports:    reports,
			Settings:   settings,
		}))

		count, ok := latestReports(t, reports)["Count"]
		require.True(t, ok)

		var decrement *m.MutantReport

		for i, mutant := range count.Mutants {
			if strings.HasSuffix(mutant.Mutation, `"i++" -> "i--"`) {
				decrement = &count.Mutants[i]
			}
		}

		require.NotNil(t, decrement, "mutants: %+v", count.Mutants)
		assert.Equal(t, m.Timeout, decrement.Status)
		assert.Positive(t, count.Score.Timeout)
	})
}
