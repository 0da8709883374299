package model

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LineRange is an inclusive range of source lines.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether the line lies inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ParseLineRange parses "min:max" or a single line number.
func ParseLineRange(value string) (LineRange, error) {
	minText, maxText, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		maxText = minText
	}

	start, err := strconv.Atoi(strings.TrimSpace(minText))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: %w", value, err)
	}

	end, err := strconv.Atoi(strings.TrimSpace(maxText))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: %w", value, err)
	}

	if start < 1 || end < start {
		return LineRange{}, fmt.Errorf("invalid line range %q: expected 1 <= min <= max", value)
	}

	return LineRange{Start: start, End: end}, nil
}

// LineRangesOf merges individual line numbers into contiguous ranges.
func LineRangesOf(lines []int) []LineRange {
	if len(lines) == 0 {
		return nil
	}

	sorted := append([]int(nil), lines...)
	sort.Ints(sorted)

	ranges := []LineRange{{Start: sorted[0], End: sorted[0]}}

	for _, line := range sorted[1:] {
		last := &ranges[len(ranges)-1]
		if line <= last.End+1 {
			if line > last.End {
				last.End = line
			}

			continue
		}

		ranges = append(ranges, LineRange{Start: line, End: line})
	}

	return ranges
}

// MapperOptions controls which mutants are kept and which tests cover them.
type MapperOptions struct {
	// SpecificLines restricts mutation to these ranges. When set, every other
	// filter is ignored.
	SpecificLines []LineRange

	// IgnoreIDs and SpecificIDs filter mutants by their sequential id.
	IgnoreIDs   []int
	SpecificIDs []int

	// SkipPatterns skip mutants whose text, or the text of the enclosing
	// call or composite literal, matches.
	SkipPatterns []*regexp.Regexp

	// SpecificPatterns keep only mutants whose text matches.
	SpecificPatterns []*regexp.Regexp

	ExecuteAllTests bool
}

// ExecutionSettings tunes the execution engine.
type ExecutionSettings struct {
	Parallelism        int           `validate:"gte=1"`
	SurvivedThreshold  float64       `validate:"gte=0,lte=1"`
	KilledThreshold    float64       `validate:"gte=0,lte=1"`
	TestTimeout        time.Duration `validate:"gt=0"`
	KillOnFirstFailure bool
	ExecuteAllTests    bool
	EnableDiagnostics  bool
}

// DefaultExecutionSettings returns the settings used when nothing is configured.
func DefaultExecutionSettings() ExecutionSettings {
	return ExecutionSettings{
		Parallelism:        5,
		SurvivedThreshold:  1,
		KilledThreshold:    1,
		TestTimeout:        time.Minute,
		KillOnFirstFailure: true,
	}
}

// Target is one source file to mutate, optionally restricted to some methods.
type Target struct {
	Path    Path     `yaml:"path"`
	Methods []string `yaml:"methods,omitempty"`
}
