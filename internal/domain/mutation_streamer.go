package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

// ClassWork is one loaded class with its mutants, or the error that
// prevented loading it.
type ClassWork struct {
	Target m.Target
	Class  *Class
	Err    error
}

// MutationStreamer defines the interface for streaming mutated classes.
type MutationStreamer interface {
	// Discover expands directory targets into the Go source files they hold.
	// A directory ending in "/..." is walked recursively.
	Discover(ctx context.Context, targets []m.Target, exclude []string) ([]m.Target, error)

	// Get loads each target and generates its mutants. The channel closes
	// when done or when ctx is cancelled.
	Get(ctx context.Context, targets []m.Target, threads int) <-chan ClassWork

	// ShardMethods keeps only the methods belonging to shardIndex when the
	// methods of all classes are dealt round-robin over totalShardCount shards.
	ShardMethods(ctx context.Context, all <-chan ClassWork, threads int, shardIndex, totalShardCount int) <-chan ClassWork
}

type mutationStreamer struct {
	adapter.SourceFSAdapter
	Mutagen
}

// NewMutationStreamer creates a new MutationStreamer instance with the provided dependencies.
func NewMutationStreamer(fsAdapter adapter.SourceFSAdapter, mutagen Mutagen) MutationStreamer {
	return &mutationStreamer{
		SourceFSAdapter: fsAdapter,
		Mutagen:         mutagen,
	}
}

func (ms *mutationStreamer) Discover(ctx context.Context, targets []m.Target, exclude []string) ([]m.Target, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, m.NewConfigError("exclude", fmt.Errorf("invalid pattern %q: %w", pattern, err))
		}

		patterns = append(patterns, re)
	}

	var expanded []m.Target

	seen := make(map[m.Path]bool)
	add := func(target m.Target) {
		if seen[target.Path] || excluded(target.Path, patterns) {
			return
		}

		seen[target.Path] = true
		expanded = append(expanded, target)
	}

	for _, target := range targets {
		root, recursive := strings.CutSuffix(string(target.Path), "/...")
		if root == "" {
			root = "."
		}

		info, err := ms.FileInfo(ctx, m.Path(root))
		if err != nil || !info.IsDir() {
			// Missing files surface as input errors when loaded.
			add(target)
			continue
		}

		var files []m.Path

		err = ms.Walk(ctx, m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && skipSourceDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if isSourceFile(path) {
				files = append(files, m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to discover sources in %s: %w", root, err)
		}

		sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

		for _, file := range files {
			add(m.Target{Path: file, Methods: target.Methods})
		}
	}

	slog.Debug("Discovered sources", "count", len(expanded))

	return expanded, nil
}

func excluded(path m.Path, patterns []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(string(path))

	for _, re := range patterns {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

func skipSourceDir(name string) bool {
	return name == "vendor" ||
		name == "testdata" ||
		strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_") ||
		strings.Contains(name, adapter.SlotSuffix)
}

func isSourceFile(path string) bool {
	return filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go")
}

func (ms *mutationStreamer) Get(ctx context.Context, targets []m.Target, threads int) <-chan ClassWork {
	ch := make(chan ClassWork, ms.normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		for _, target := range targets {
			if ctx.Err() != nil {
				slog.Debug("Class streaming cancelled")
				return
			}

			work := ms.load(ctx, target)

			select {
			case <-ctx.Done():
				return
			case ch <- work:
			}
		}
	}()

	return ch
}

func (ms *mutationStreamer) load(ctx context.Context, target m.Target) ClassWork {
	class, err := ms.LoadClass(ctx, target.Path)
	if err != nil {
		return ClassWork{Target: target, Err: err}
	}

	if err := ms.GenerateMutants(ctx, class); err != nil {
		return ClassWork{Target: target, Err: err}
	}

	if len(target.Methods) > 0 {
		class.Source.Methods = selectMethods(class.Source.Methods, target.Methods)
	}

	return ClassWork{Target: target, Class: class}
}

// selectMethods keeps the methods matching one of names, by qualified or plain name.
func selectMethods(methods []*m.MethodDetail, names []string) []*m.MethodDetail {
	var selected []*m.MethodDetail

	for _, method := range methods {
		for _, name := range names {
			if method.QualifiedName() == name || method.Name == name {
				selected = append(selected, method)
				break
			}
		}
	}

	return selected
}

// normalizeBufferSize ensures the buffer size is at least 1.
func (ms *mutationStreamer) normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

func (ms *mutationStreamer) ShardMethods(ctx context.Context, all <-chan ClassWork, threads int, shardIndex, totalShardCount int) <-chan ClassWork {
	ch := make(chan ClassWork, ms.normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		if totalShardCount <= 0 {
			slog.Debug("Sharding disabled, passing through all classes")
		} else {
			slog.Debug("Starting method sharding", "shardIndex", shardIndex, "totalShardCount", totalShardCount)
		}

		index := 0

		for work := range all {
			if totalShardCount > 0 && work.Class != nil {
				var kept []*m.MethodDetail

				for _, method := range work.Class.Source.Methods {
					if index%totalShardCount == shardIndex {
						kept = append(kept, method)
					}

					index++
				}

				work.Class.Source.Methods = kept
			}

			select {
			case <-ctx.Done():
				slog.Debug("Method sharding cancelled")
				return
			case ch <- work:
			}
		}
	}()

	return ch
}
