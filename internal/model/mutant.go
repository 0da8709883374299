package model

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"time"
)

// MutantStatus is the lifecycle state of a mutant.
type MutantStatus int

// Available MutantStatus values. Skipped and NotCovered are assigned before
// execution; Survived, Killed, Timeout and BuildError after it.
const (
	NotRun MutantStatus = iota
	Skipped
	NotCovered
	Survived
	Killed
	Timeout
	BuildError
)

var mutantStatusNames = map[MutantStatus]string{
	NotRun:     "not_run",
	Skipped:    "skipped",
	NotCovered: "not_covered",
	Survived:   "survived",
	Killed:     "killed",
	Timeout:    "timeout",
	BuildError: "build_error",
}

func (s MutantStatus) String() string {
	if name, ok := mutantStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// IsTerminal reports whether the status can no longer change.
func (s MutantStatus) IsTerminal() bool {
	return s != NotRun
}

// MarshalJSON encodes the status by name.
func (s MutantStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *MutantStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for status, statusName := range mutantStatusNames {
		if statusName == name {
			*s = status
			return nil
		}
	}

	return fmt.Errorf("unknown mutant status %q", name)
}

// MutatorType is the family a mutation belongs to.
type MutatorType string

// Available MutatorType values.
const (
	MutatorArithmetic MutatorType = "arithmetic"
	MutatorEquality   MutatorType = "equality"
	MutatorBoolean    MutatorType = "boolean"
	MutatorLogical    MutatorType = "logical"
	MutatorAssignment MutatorType = "assignment"
	MutatorUnary      MutatorType = "unary"
	MutatorUpdate     MutatorType = "update"
	MutatorChecked    MutatorType = "checked"
	MutatorLinq       MutatorType = "linq"
	MutatorNegate     MutatorType = "negate"
	MutatorString     MutatorType = "string"
	MutatorMethodCall MutatorType = "method_call"
	MutatorBlock      MutatorType = "block"
	MutatorBitwise    MutatorType = "bitwise"
)

// MutatorTypes lists every known mutator type in reporting order.
var MutatorTypes = []MutatorType{
	MutatorArithmetic,
	MutatorEquality,
	MutatorBoolean,
	MutatorLogical,
	MutatorAssignment,
	MutatorUnary,
	MutatorUpdate,
	MutatorChecked,
	MutatorLinq,
	MutatorNegate,
	MutatorString,
	MutatorMethodCall,
	MutatorBlock,
	MutatorBitwise,
}

// Mutation is a single replacement of one syntax node by another.
type Mutation struct {
	OriginalNode    ast.Node
	ReplacementNode ast.Node

	Line        int
	Type        MutatorType
	DisplayName string

	// Original and Replacement hold the rendered source text of both nodes.
	Original    string
	Replacement string
}

// Text returns the human readable form of the mutation.
func (mu Mutation) Text() string {
	return fmt.Sprintf("%s: %q -> %q", mu.DisplayName, mu.Original, mu.Replacement)
}

// Mutant is a candidate change paired with its execution outcome.
type Mutant struct {
	ID            int
	Mutation      Mutation
	Method        string
	Status        MutantStatus
	CoveringTests []TestMethod

	// Diff is a unified diff of the mutated source, filled lazily.
	Diff string

	// Log holds build or test output when diagnostics are enabled.
	Log string
}

// SetStatus transitions the mutant unless it already reached a terminal state.
// It reports whether the status changed.
func (mt *Mutant) SetStatus(status MutantStatus) bool {
	if mt.Status.IsTerminal() {
		return false
	}

	mt.Status = status

	return true
}

// TestExecutionStatus is the outcome of one test-runner process.
type TestExecutionStatus int

// Available TestExecutionStatus values.
const (
	TestSuccess TestExecutionStatus = iota
	TestFailed
	TestTimeout
)

func (s TestExecutionStatus) String() string {
	switch s {
	case TestSuccess:
		return "success"
	case TestFailed:
		return "failed"
	case TestTimeout:
		return "timeout"
	}

	return "unknown"
}

// MutantStatusFor converts a test execution outcome into a mutant status.
func MutantStatusFor(status TestExecutionStatus) MutantStatus {
	switch status {
	case TestSuccess:
		return Survived
	case TestTimeout:
		return Timeout
	case TestFailed:
		return Killed
	}

	return Killed
}

// BuildStatus is the outcome of compiling the mutated workspace.
type BuildStatus int

// Available BuildStatus values.
const (
	BuildSucceeded BuildStatus = iota
	BuildFailed
)

// BuildResult holds the build outcome and its combined output.
// FailedPackages names the packages that did not compile when the build
// output identifies them; an empty list means the whole build failed.
type BuildResult struct {
	Status         BuildStatus
	Log            string
	FailedPackages []string
}

// MutantResult is emitted by the execution engine once per completed mutant.
type MutantResult struct {
	Method   string
	Mutant   *Mutant
	Status   MutantStatus
	Duration time.Duration
	Slot     int
}
