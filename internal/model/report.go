package model

import "time"

// MutationScore is the status breakdown of a set of mutants.
type MutationScore struct {
	Survived    int     `json:"survived"`
	Killed      int     `json:"killed"`
	NotCovered  int     `json:"notCovered"`
	Timeout     int     `json:"timeout"`
	BuildErrors int     `json:"buildErrors"`
	Skipped     int     `json:"skipped"`
	NotRun      int     `json:"notRun"`
	Total       int     `json:"total"`
	Coverage    float64 `json:"coverage"`
}

// MutantReport is the serialized form of a mutant.
type MutantReport struct {
	ID       int          `json:"id"`
	Mutation string       `json:"mutation"`
	Type     MutatorType  `json:"type"`
	Line     int          `json:"line"`
	Status   MutantStatus `json:"status"`
	Tests    []string     `json:"tests,omitempty"`
	Diff     string       `json:"diff,omitempty"`
	Log      string       `json:"log,omitempty"`
}

// MutatorSummary counts mutants of one mutator type by outcome.
type MutatorSummary struct {
	Type     MutatorType `json:"type"`
	Total    int         `json:"total"`
	Killed   int         `json:"killed"`
	Survived int         `json:"survived"`
}

// MethodReport is the result artifact written for each analyzed method.
type MethodReport struct {
	RunID         string           `json:"runId"`
	Source        Path             `json:"source"`
	Class         string           `json:"class"`
	Method        string           `json:"method"`
	StartedAt     time.Time        `json:"startedAt"`
	ExecutionTime time.Duration    `json:"executionTime"`
	Score         MutationScore    `json:"score"`
	Mutators      []MutatorSummary `json:"mutators,omitempty"`
	Mutants       []MutantReport   `json:"mutants"`
}
