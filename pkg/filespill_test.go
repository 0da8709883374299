package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill", func(t *testing.T) {
		path, err := NewFileSpill[int]("")
		require.NoError(t, err)
		require.NotNil(t, path)
		require.Contains(t, path.Path(), "filespill")
		defer path.Close()
	})

	t.Run("FileSpill Append and Get", func(t *testing.T) {
		spill, err := NewFileSpill[string]("")
		require.NoError(t, err)
		defer spill.Close()

		err = spill.Append("first")
		require.NoError(t, err)

		err = spill.Append("second")
		require.NoError(t, err)

		val1, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val1)

		val2, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val2)

		val3, err := spill.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val3)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		spill.Append(1)
		require.Equal(t, uint64(1), spill.Len())

		spill.Append(2)
		spill.Append(3)
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("AppendBatch adds multiple items", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Close()

		items := []int{10, 20, 30, 40, 50}
		err = spill.AppendBatch(items)
		require.NoError(t, err)

		require.Equal(t, uint64(5), spill.Len())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 10, val)

		val, err = spill.Get(4)
		require.NoError(t, err)
		require.Equal(t, 50, val)
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Close()

		expected := []int{100, 200, 300}
		for _, v := range expected {
			spill.Append(v)
		}

		var collected []int
		err = spill.Range(func(index uint64, item int) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Close()

		spill.Append(1)
		spill.Append(2)
		spill.Append(3)

		count := 0
		rangeErr := spill.Range(func(index uint64, item int) error {
			count++
			if index == 1 {
				return errors.New("stop at index 1")
			}
			return nil
		})

		require.Error(t, rangeErr)
		require.Equal(t, 2, count) // Should stop after processing index 1
	})

	t.Run("Close keeps data readable", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)

		spill.Append(1)
		err = spill.Close()
		require.NoError(t, err)

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 1, val)

		require.ErrorIs(t, spill.Append(2), ErrReadOnly)
		require.NoError(t, spill.Close())
	})

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "blocks.gob")

		spill, err := NewFileSpill[string](path)
		require.NoError(t, err)
		require.Equal(t, path, spill.Path())
		require.NoError(t, spill.AppendBatch([]string{"a", "b"}))
		require.NoError(t, spill.Close())

		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("Generic types work with different types", func(t *testing.T) {
		// Test with float64
		spillFloat, err := NewFileSpill[float64]("")
		require.NoError(t, err)
		defer spillFloat.Close()

		spillFloat.Append(3.14)
		spillFloat.Append(2.71)

		val1, err := spillFloat.Get(0)
		require.NoError(t, err)
		require.InDelta(t, 3.14, val1, 0.001)

		val2, err := spillFloat.Get(1)
		require.NoError(t, err)
		require.InDelta(t, 2.71, val2, 0.001)

		// Test with custom struct
		type Point struct {
			X, Y int
		}

		spillPoint, err := NewFileSpill[Point]("")
		require.NoError(t, err)
		defer spillPoint.Close()

		p1 := Point{X: 10, Y: 20}
		p2 := Point{X: 30, Y: 40}

		spillPoint.Append(p1)
		spillPoint.Append(p2)

		retrieved, err := spillPoint.Get(0)
		require.NoError(t, err)
		require.Equal(t, p1, retrieved)
	})
}

// BenchmarkAppend measures the performance of appending items.
func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[int]("")
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spill.Append(i)
	}
}

// BenchmarkGet measures the performance of getting items by index.
func BenchmarkGet(b *testing.B) {
	spill, err := NewFileSpill[int]("")
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	// Pre-populate with 1000 items
	for i := 0; i < 1000; i++ {
		_ = spill.Append(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = spill.Get(uint64(i % 1000))
	}
}

// BenchmarkRange measures the performance of iterating all items.
func BenchmarkRange(b *testing.B) {
	spill, err := NewFileSpill[int]("")
	if err != nil {
		b.Fatalf("failed to create filespill: %v", err)
	}
	defer spill.Close()

	// Pre-populate with 1000 items
	for i := 0; i < 1000; i++ {
		_ = spill.Append(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spill.Range(func(index uint64, item int) error {
			return nil
		})
	}
}

func TestOpenFileSpill(t *testing.T) {
	type block struct {
		FileName  string
		StartLine int
		Count     int
	}

	path := filepath.Join(t.TempDir(), "coverage.gob")

	spill, err := NewFileSpill[block](path)
	require.NoError(t, err)
	require.NoError(t, spill.AppendBatch([]block{
		{FileName: "a.go", StartLine: 1, Count: 1},
		{FileName: "b.go", StartLine: 7, Count: 0},
	}))
	require.NoError(t, spill.Close())

	t.Run("reads existing items", func(t *testing.T) {
		opened, err := OpenFileSpill[block](path)
		require.NoError(t, err)

		require.Equal(t, uint64(2), opened.Len())

		second, err := opened.Get(1)
		require.NoError(t, err)
		require.Equal(t, "b.go", second.FileName)
	})

	t.Run("is read-only", func(t *testing.T) {
		opened, err := OpenFileSpill[block](path)
		require.NoError(t, err)

		require.ErrorIs(t, opened.Append(block{}), ErrReadOnly)
		require.NoError(t, opened.Close())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenFileSpill[block](filepath.Join(t.TempDir(), "missing.gob"))
		require.Error(t, err)
	})

	t.Run("corrupt file", func(t *testing.T) {
		corrupt := filepath.Join(t.TempDir(), "corrupt.gob")
		require.NoError(t, os.WriteFile(corrupt, []byte("not gob"), 0o600))

		_, err := OpenFileSpill[block](corrupt)
		require.Error(t, err)
	})
}
