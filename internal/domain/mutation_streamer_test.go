package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutest.dev/pkg/mutest/internal/adapter"
	"mutest.dev/pkg/mutest/internal/domain"
	domainmocks "mutest.dev/pkg/mutest/internal/domain/mocks"
	m "mutest.dev/pkg/mutest/internal/model"
)

func writeSourceTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("package sample\n"), 0o600))
	}

	return root
}

func targetPaths(root string, targets []m.Target) []string {
	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		rel, err := filepath.Rel(root, string(target.Path))
		if err != nil {
			rel = string(target.Path)
		}

		paths = append(paths, filepath.ToSlash(rel))
	}

	return paths
}

func newDiscoverStreamer(t *testing.T) domain.MutationStreamer {
	return domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), domainmocks.NewMockMutagen(t))
}

func TestMutationStreamer_Discover(t *testing.T) {
	root := writeSourceTree(t,
		"a.go",
		"a_test.go",
		"notes.txt",
		"sub/b.go",
		"sub/deeper/c.go",
		"vendor/v.go",
		"testdata/fixture.go",
		".hidden/h.go",
		"sample_mutest_src_0/a.go",
	)

	tests := []struct {
		name    string
		targets []m.Target
		exclude []string
		want    []string
	}{
		{
			name:    "recursive",
			targets: []m.Target{{Path: m.Path(root + "/...")}},
			want:    []string{"a.go", "sub/b.go", "sub/deeper/c.go"},
		},
		{
			name:    "single directory",
			targets: []m.Target{{Path: m.Path(root)}},
			want:    []string{"a.go"},
		},
		{
			name:    "exclude pattern",
			targets: []m.Target{{Path: m.Path(root + "/...")}},
			exclude: []string{"/deeper/"},
			want:    []string{"a.go", "sub/b.go"},
		},
		{
			name:    "duplicates",
			targets: []m.Target{{Path: m.Path(filepath.Join(root, "a.go"))}, {Path: m.Path(root)}},
			want:    []string{"a.go"},
		},
		{
			name:    "missing file is kept",
			targets: []m.Target{{Path: m.Path(filepath.Join(root, "missing.go"))}},
			want:    []string{"missing.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := newDiscoverStreamer(t).Discover(context.Background(), tt.targets, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, targetPaths(root, targets))
		})
	}
}

func TestMutationStreamer_Discover_KeepsMethodSelection(t *testing.T) {
	root := writeSourceTree(t, "a.go", "b.go")

	targets, err := newDiscoverStreamer(t).Discover(context.Background(), []m.Target{{Path: m.Path(root), Methods: []string{"Add"}}}, nil)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	for _, target := range targets {
		assert.Equal(t, []string{"Add"}, target.Methods)
	}
}

func TestMutationStreamer_Discover_InvalidExclude(t *testing.T) {
	_, err := newDiscoverStreamer(t).Discover(context.Background(), []m.Target{{Path: "."}}, []string{"("})

	var configErr *m.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "exclude", configErr.Key)
}

func sampleClass(path m.Path, methods ...string) *domain.Class {
	source := &m.SourceClass{Path: path}
	for _, name := range methods {
		source.Methods = append(source.Methods, &m.MethodDetail{Name: name})
	}

	return &domain.Class{Source: source}
}

func methodNames(class *domain.Class) []string {
	names := make([]string, 0, len(class.Source.Methods))
	for _, method := range class.Source.Methods {
		names = append(names, method.QualifiedName())
	}

	return names
}

func collectWork(ch <-chan domain.ClassWork) []domain.ClassWork {
	var works []domain.ClassWork
	for work := range ch {
		works = append(works, work)
	}

	return works
}

func TestMutationStreamer_Get(t *testing.T) {
	t.Run("loads and mutates every target", func(t *testing.T) {
		ctx := context.Background()
		mutagen := domainmocks.NewMockMutagen(t)
		first := sampleClass("a.go", "A")
		second := sampleClass("b.go", "B")

		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("a.go")).Return(first, nil).Once()
		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("b.go")).Return(second, nil).Once()
		mutagen.EXPECT().GenerateMutants(mock.Anything, first).Return(nil).Once()
		mutagen.EXPECT().GenerateMutants(mock.Anything, second).Return(nil).Once()

		streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), mutagen)
		works := collectWork(streamer.Get(ctx, []m.Target{{Path: "a.go"}, {Path: "b.go"}}, 4))

		require.Len(t, works, 2)
		assert.Same(t, first, works[0].Class)
		assert.Same(t, second, works[1].Class)
		assert.NoError(t, works[0].Err)
	})

	t.Run("selects methods", func(t *testing.T) {
		mutagen := domainmocks.NewMockMutagen(t)
		class := sampleClass("a.go", "A", "B", "C")

		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("a.go")).Return(class, nil).Once()
		mutagen.EXPECT().GenerateMutants(mock.Anything, class).Return(nil).Once()

		streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), mutagen)
		works := collectWork(streamer.Get(context.Background(), []m.Target{{Path: "a.go", Methods: []string{"C", "A"}}}, 0))

		require.Len(t, works, 1)
		assert.Equal(t, []string{"A", "C"}, methodNames(works[0].Class))
	})

	t.Run("reports load errors per target", func(t *testing.T) {
		mutagen := domainmocks.NewMockMutagen(t)
		loadErr := m.NewInputError("bad.go", errors.New("syntax error"))
		class := sampleClass("a.go", "A")

		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("bad.go")).Return(nil, loadErr).Once()
		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("a.go")).Return(class, nil).Once()
		mutagen.EXPECT().GenerateMutants(mock.Anything, class).Return(nil).Once()

		streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), mutagen)
		works := collectWork(streamer.Get(context.Background(), []m.Target{{Path: "bad.go"}, {Path: "a.go"}}, 1))

		require.Len(t, works, 2)
		assert.ErrorIs(t, works[0].Err, m.ErrInvalidInput)
		assert.Nil(t, works[0].Class)
		assert.NoError(t, works[1].Err)
	})

	t.Run("reports mutation errors", func(t *testing.T) {
		mutagen := domainmocks.NewMockMutagen(t)
		class := sampleClass("a.go", "A")
		genErr := errors.New("boom")

		mutagen.EXPECT().LoadClass(mock.Anything, m.Path("a.go")).Return(class, nil).Once()
		mutagen.EXPECT().GenerateMutants(mock.Anything, class).Return(genErr).Once()

		streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), mutagen)
		works := collectWork(streamer.Get(context.Background(), []m.Target{{Path: "a.go"}}, 1))

		require.Len(t, works, 1)
		assert.ErrorIs(t, works[0].Err, genErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		streamer := domain.NewMutationStreamer(adapter.NewLocalSourceFSAdapter(), domainmocks.NewMockMutagen(t))

		assert.Empty(t, collectWork(streamer.Get(ctx, []m.Target{{Path: "a.go"}}, 2)))
	})
}

func shardInput(works ...domain.ClassWork) <-chan domain.ClassWork {
	ch := make(chan domain.ClassWork, len(works))
	for _, work := range works {
		ch <- work
	}

	close(ch)

	return ch
}

func TestMutationStreamer_ShardMethods(t *testing.T) {
	newInput := func() <-chan domain.ClassWork {
		return shardInput(
			domain.ClassWork{Class: sampleClass("a.go", "A1", "A2", "A3")},
			domain.ClassWork{Target: m.Target{Path: "bad.go"}, Err: errors.New("bad")},
			domain.ClassWork{Class: sampleClass("b.go", "B1", "B2")},
		)
	}

	tests := []struct {
		name       string
		shardIndex int
		shardCount int
		want       [][]string
	}{
		{name: "disabled", shardIndex: 0, shardCount: 0, want: [][]string{{"A1", "A2", "A3"}, {"B1", "B2"}}},
		{name: "negative count", shardIndex: 0, shardCount: -1, want: [][]string{{"A1", "A2", "A3"}, {"B1", "B2"}}},
		{name: "single shard", shardIndex: 0, shardCount: 1, want: [][]string{{"A1", "A2", "A3"}, {"B1", "B2"}}},
		{name: "first of two", shardIndex: 0, shardCount: 2, want: [][]string{{"A1", "A3"}, {"B2"}}},
		{name: "second of two", shardIndex: 1, shardCount: 2, want: [][]string{{"A2"}, {"B1"}}},
		{name: "last of three", shardIndex: 2, shardCount: 3, want: [][]string{{"A3"}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streamer := newDiscoverStreamer(t)
			works := collectWork(streamer.ShardMethods(context.Background(), newInput(), 2, tt.shardIndex, tt.shardCount))

			require.Len(t, works, 3)
			assert.Error(t, works[1].Err, "errors pass through")

			got := [][]string{methodNames(works[0].Class), methodNames(works[2].Class)}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMutationStreamer_ShardMethods_AllShardsCoverEveryMethod(t *testing.T) {
	const shards = 3

	seen := make(map[string]int)

	for index := range shards {
		input := shardInput(
			domain.ClassWork{Class: sampleClass("a.go", "A1", "A2", "A3", "A4")},
			domain.ClassWork{Class: sampleClass("b.go", "B1", "B2", "B3")},
		)

		for work := range newDiscoverStreamer(t).ShardMethods(context.Background(), input, 1, index, shards) {
			for _, name := range methodNames(work.Class) {
				seen[name]++
			}
		}
	}

	assert.Len(t, seen, 7)

	for name, count := range seen {
		assert.Equal(t, 1, count, name)
	}
}
