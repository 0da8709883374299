package model

import (
	"time"
)

// FindCoverageResult is the outcome of a coverage lookup.
type FindCoverageResult int

// Available FindCoverageResult values. MultipleFound means the lookup was
// ambiguous and the coverage must not be used.
const (
	CoverageNotFound FindCoverageResult = iota
	CoverageFound
	CoverageMultipleFound
)

func (r FindCoverageResult) String() string {
	switch r {
	case CoverageFound:
		return "found"
	case CoverageMultipleFound:
		return "multiple_found"
	case CoverageNotFound:
		return "not_found"
	}

	return "unknown"
}

// Coverage aggregates line and branch coverage for a file or a method.
type Coverage struct {
	LinesCovered       uint
	LinesNotCovered    uint
	BranchesCovered    uint
	BranchesNotCovered uint

	// Lines maps an instrumented line to whether it was executed.
	Lines map[int]bool

	Blocks []CoverageBlock
}

// IsLineCovered reports whether the line was executed at least once.
func (c *Coverage) IsLineCovered(line int) bool {
	if c == nil {
		return false
	}

	return c.Lines[line]
}

// HasLineData reports whether per-line information is available.
func (c *Coverage) HasLineData() bool {
	return c != nil && len(c.Lines) > 0
}

// Slice restricts the coverage to the inclusive line range. Branches are the
// profile blocks starting inside the range.
func (c *Coverage) Slice(startLine, endLine int) *Coverage {
	if c == nil {
		return nil
	}

	sliced := &Coverage{Lines: make(map[int]bool)}

	for line, covered := range c.Lines {
		if line < startLine || line > endLine {
			continue
		}

		sliced.Lines[line] = covered
		if covered {
			sliced.LinesCovered++
		} else {
			sliced.LinesNotCovered++
		}
	}

	for _, block := range c.Blocks {
		if block.StartLine < startLine || block.StartLine > endLine {
			continue
		}

		sliced.Blocks = append(sliced.Blocks, block)
		if block.Count > 0 {
			sliced.BranchesCovered++
		} else {
			sliced.BranchesNotCovered++
		}
	}

	return sliced
}

// CoverageBlock is one instrumented statement block of a coverage profile.
type CoverageBlock struct {
	FileName  string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	NumStmt   int
	Count     int
}

// CoverageSnapshot describes a persisted binary coverage report.
type CoverageSnapshot struct {
	Mode      string
	CreatedAt time.Time
	Blocks    int
}

// CoverageFromBlocks aggregates profile blocks of a single file. A line is
// covered when any block spanning it was executed.
func CoverageFromBlocks(blocks []CoverageBlock) Coverage {
	coverage := Coverage{Lines: make(map[int]bool)}

	for _, block := range blocks {
		coverage.Blocks = append(coverage.Blocks, block)

		if block.Count > 0 {
			coverage.BranchesCovered++
		} else {
			coverage.BranchesNotCovered++
		}

		for line := block.StartLine; line <= block.EndLine; line++ {
			coverage.Lines[line] = coverage.Lines[line] || block.Count > 0
		}
	}

	for _, covered := range coverage.Lines {
		if covered {
			coverage.LinesCovered++
		} else {
			coverage.LinesNotCovered++
		}
	}

	return coverage
}
