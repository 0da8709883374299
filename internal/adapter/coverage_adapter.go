package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/tools/cover"

	m "mutest.dev/pkg/mutest/internal/model"
	"mutest.dev/pkg/mutest/pkg"
)

// CoverageAnalyzer looks up the coverage of one source file among several
// candidate report files.
type CoverageAnalyzer interface {
	// TryFindCoverage returns the coverage recorded for className, the
	// `<import path>/<file>` key used by Go coverage profiles. Reports older
	// than timestamp are ignored. When more than one report holds the file
	// the result is CoverageMultipleFound and the coverage must not be used.
	TryFindCoverage(ctx context.Context, className string, candidatePaths []m.Path, packageName string, timestamp time.Time) (m.FindCoverageResult, m.Coverage)
}

type blockLoader func(path m.Path) ([]m.CoverageBlock, error)

type coverageAnalyzer struct {
	load blockLoader
	kind string
}

// NewProfileCoverageAnalyzer reads text profiles written by `go test -coverprofile`.
func NewProfileCoverageAnalyzer() CoverageAnalyzer {
	return &coverageAnalyzer{load: loadProfileBlocks, kind: "profile"}
}

// NewBinaryCoverageAnalyzer reads block snapshots written by ConvertProfile.
func NewBinaryCoverageAnalyzer() CoverageAnalyzer {
	return &coverageAnalyzer{load: loadBinaryBlocks, kind: "binary"}
}

func (a *coverageAnalyzer) TryFindCoverage(ctx context.Context, className string, candidatePaths []m.Path, packageName string, timestamp time.Time) (m.FindCoverageResult, m.Coverage) {
	var (
		matches []m.Path
		blocks  []m.CoverageBlock
	)

	for _, candidate := range candidatePaths {
		if ctx.Err() != nil {
			break
		}

		info, err := os.Stat(string(candidate))
		if err != nil {
			continue
		}

		if info.ModTime().Before(timestamp) {
			slog.Debug("Ignoring stale coverage report", "kind", a.kind, "path", candidate, "modified", info.ModTime(), "source", timestamp)
			continue
		}

		all, err := a.load(candidate)
		if err != nil {
			slog.Warn("Failed to read coverage report", "kind", a.kind, "path", candidate, "error", err)
			continue
		}

		fileBlocks := blocksFor(all, className, packageName)
		if len(fileBlocks) == 0 || containsCoveragePath(matches, candidate) {
			continue
		}

		matches = append(matches, candidate)
		blocks = fileBlocks
	}

	switch len(matches) {
	case 0:
		return m.CoverageNotFound, m.Coverage{}
	case 1:
		return m.CoverageFound, m.CoverageFromBlocks(blocks)
	default:
		slog.Warn("Coverage found in several reports", "class", className, "reports", matches)
		return m.CoverageMultipleFound, m.Coverage{}
	}
}

// blocksFor selects the blocks of one file. A class name without an import
// path matches any file of that name inside a package named packageName.
func blocksFor(blocks []m.CoverageBlock, className, packageName string) []m.CoverageBlock {
	var selected []m.CoverageBlock

	for _, block := range blocks {
		if matchesClass(block.FileName, className, packageName) {
			selected = append(selected, block)
		}
	}

	return selected
}

func matchesClass(fileName, className, packageName string) bool {
	if fileName == className {
		return true
	}

	if strings.Contains(className, "/") || packageName == "" {
		return false
	}

	return strings.HasSuffix(fileName, "/"+packageName+"/"+className)
}

func loadProfileBlocks(path m.Path) ([]m.CoverageBlock, error) {
	profiles, err := cover.ParseProfiles(string(path))
	if err != nil {
		return nil, err
	}

	var blocks []m.CoverageBlock

	for _, profile := range profiles {
		blocks = append(blocks, profileBlocks(profile)...)
	}

	return blocks, nil
}

func profileBlocks(profile *cover.Profile) []m.CoverageBlock {
	blocks := make([]m.CoverageBlock, 0, len(profile.Blocks))

	for _, b := range profile.Blocks {
		blocks = append(blocks, m.CoverageBlock{
			FileName:  profile.FileName,
			StartLine: b.StartLine,
			StartCol:  b.StartCol,
			EndLine:   b.EndLine,
			EndCol:    b.EndCol,
			NumStmt:   b.NumStmt,
			Count:     b.Count,
		})
	}

	return blocks
}

func loadBinaryBlocks(path m.Path) ([]m.CoverageBlock, error) {
	spill, err := pkg.OpenFileSpill[m.CoverageBlock](string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = spill.Close() }()

	blocks := make([]m.CoverageBlock, 0, spill.Len())

	err = spill.Range(func(_ uint64, block m.CoverageBlock) error {
		blocks = append(blocks, block)
		return nil
	})

	return blocks, err
}

// ConvertProfile writes the blocks of a text profile into a binary snapshot
// readable by the binary analyzer.
func ConvertProfile(profilePath, outputPath m.Path) (m.CoverageSnapshot, error) {
	profiles, err := cover.ParseProfiles(string(profilePath))
	if err != nil {
		return m.CoverageSnapshot{}, fmt.Errorf("failed to parse profile %s: %w", profilePath, err)
	}

	spill, err := pkg.NewFileSpill[m.CoverageBlock](string(outputPath))
	if err != nil {
		return m.CoverageSnapshot{}, err
	}

	snapshot := m.CoverageSnapshot{CreatedAt: time.Now()}

	for _, profile := range profiles {
		snapshot.Mode = profile.Mode

		if err := spill.AppendBatch(profileBlocks(profile)); err != nil {
			_ = spill.Close()
			return m.CoverageSnapshot{}, fmt.Errorf("failed to write snapshot %s: %w", outputPath, err)
		}
	}

	snapshot.Blocks = int(spill.Len())

	if err := spill.Close(); err != nil {
		return m.CoverageSnapshot{}, err
	}

	return snapshot, nil
}

func containsCoveragePath(paths []m.Path, target m.Path) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
