package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutest.dev/pkg/mutest/internal/model"
)

const sampleProfile = `mode: set
example.com/calc/calc.go:10.24,12.2 1 1
example.com/calc/calc.go:14.30,16.2 1 0
example.com/other/other.go:1.1,2.2 1 1
`

const calcClass = "example.com/calc/calc.go"

func writeProfile(t *testing.T, dir, name string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0o600))

	return m.Path(path)
}

func assertCalcCoverage(t *testing.T, coverage m.Coverage) {
	t.Helper()

	assert.Equal(t, uint(3), coverage.LinesCovered)
	assert.Equal(t, uint(3), coverage.LinesNotCovered)
	assert.Equal(t, uint(1), coverage.BranchesCovered)
	assert.Equal(t, uint(1), coverage.BranchesNotCovered)
	assert.True(t, coverage.IsLineCovered(11))
	assert.False(t, coverage.IsLineCovered(15))
}

func TestProfileCoverageAnalyzer(t *testing.T) {
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	analyzer := NewProfileCoverageAnalyzer()

	t.Run("found", func(t *testing.T) {
		profile := writeProfile(t, t.TempDir(), "cover.out")

		result, coverage := analyzer.TryFindCoverage(ctx, calcClass, []m.Path{profile}, "calc", past)

		require.Equal(t, m.CoverageFound, result)
		assertCalcCoverage(t, coverage)
	})

	t.Run("same report listed twice", func(t *testing.T) {
		profile := writeProfile(t, t.TempDir(), "cover.out")

		result, _ := analyzer.TryFindCoverage(ctx, calcClass, []m.Path{profile, profile}, "calc", past)

		assert.Equal(t, m.CoverageFound, result)
	})

	t.Run("several reports are ambiguous", func(t *testing.T) {
		dir := t.TempDir()
		first := writeProfile(t, dir, "unit.out")
		second := writeProfile(t, dir, "integration.out")

		result, coverage := analyzer.TryFindCoverage(ctx, calcClass, []m.Path{first, second}, "calc", past)

		assert.Equal(t, m.CoverageMultipleFound, result)
		assert.Zero(t, coverage.LinesCovered)
	})

	t.Run("stale report", func(t *testing.T) {
		profile := writeProfile(t, t.TempDir(), "cover.out")

		result, _ := analyzer.TryFindCoverage(ctx, calcClass, []m.Path{profile}, "calc", time.Now().Add(time.Hour))

		assert.Equal(t, m.CoverageNotFound, result)
	})

	t.Run("unknown class", func(t *testing.T) {
		profile := writeProfile(t, t.TempDir(), "cover.out")

		result, _ := analyzer.TryFindCoverage(ctx, "example.com/calc/missing.go", []m.Path{profile}, "calc", past)

		assert.Equal(t, m.CoverageNotFound, result)
	})

	t.Run("missing report", func(t *testing.T) {
		result, _ := analyzer.TryFindCoverage(ctx, calcClass, []m.Path{m.Path(filepath.Join(t.TempDir(), "none.out"))}, "calc", past)

		assert.Equal(t, m.CoverageNotFound, result)
	})

	t.Run("file name matched through package name", func(t *testing.T) {
		profile := writeProfile(t, t.TempDir(), "cover.out")

		result, coverage := analyzer.TryFindCoverage(ctx, "calc.go", []m.Path{profile}, "calc", past)

		require.Equal(t, m.CoverageFound, result)
		assertCalcCoverage(t, coverage)
	})
}

func TestBinaryCoverageAnalyzer(t *testing.T) {
	dir := t.TempDir()
	profile := writeProfile(t, dir, "cover.out")
	snapshotPath := m.Path(filepath.Join(dir, "coverage.gob"))

	snapshot, err := ConvertProfile(profile, snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "set", snapshot.Mode)
	assert.Equal(t, 3, snapshot.Blocks)

	result, coverage := NewBinaryCoverageAnalyzer().TryFindCoverage(
		context.Background(), calcClass, []m.Path{snapshotPath}, "calc", time.Now().Add(-time.Hour),
	)

	require.Equal(t, m.CoverageFound, result)
	assertCalcCoverage(t, coverage)

	t.Run("text profile is not a snapshot", func(t *testing.T) {
		result, _ := NewBinaryCoverageAnalyzer().TryFindCoverage(
			context.Background(), calcClass, []m.Path{profile}, "calc", time.Now().Add(-time.Hour),
		)

		assert.Equal(t, m.CoverageNotFound, result)
	})
}

func TestConvertProfile_InvalidProfile(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.out")
	require.NoError(t, os.WriteFile(broken, []byte("not a profile\n"), 0o600))

	_, err := ConvertProfile(m.Path(broken), m.Path(filepath.Join(dir, "out.gob")))
	require.Error(t, err)
}
