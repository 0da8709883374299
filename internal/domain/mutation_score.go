package domain

import (
	m "mutest.dev/pkg/mutest/internal/model"
)

// NewMutationScore counts mutants by status. Coverage is the share of killed
// mutants among those that were not excluded by a timeout, a build error or
// a skip.
func NewMutationScore(mutants []*m.Mutant) m.MutationScore {
	var score m.MutationScore

	for _, mutant := range mutants {
		countStatus(&score, mutant.Status)
	}

	return finishScore(score)
}

func countStatus(score *m.MutationScore, status m.MutantStatus) {
	score.Total++

	switch status {
	case m.Survived:
		score.Survived++
	case m.Killed:
		score.Killed++
	case m.NotCovered:
		score.NotCovered++
	case m.Timeout:
		score.Timeout++
	case m.BuildError:
		score.BuildErrors++
	case m.Skipped:
		score.Skipped++
	case m.NotRun:
		score.NotRun++
	}
}

// AggregateScore sums the scores of several reports.
func AggregateScore(reports []m.MethodReport) m.MutationScore {
	var total m.MutationScore

	for _, report := range reports {
		s := report.Score
		total.Survived += s.Survived
		total.Killed += s.Killed
		total.NotCovered += s.NotCovered
		total.Timeout += s.Timeout
		total.BuildErrors += s.BuildErrors
		total.Skipped += s.Skipped
		total.NotRun += s.NotRun
		total.Total += s.Total
	}

	return finishScore(total)
}

func finishScore(score m.MutationScore) m.MutationScore {
	denominator := score.Total - score.Timeout - score.BuildErrors - score.Skipped
	if denominator <= 0 {
		denominator = 1
	}

	score.Coverage = float64(score.Killed) / float64(denominator)

	return score
}

// MutatorSummaries counts killed and survived mutants per mutator type, in
// reporting order. Types without mutants are omitted.
func MutatorSummaries(mutants []*m.Mutant) []m.MutatorSummary {
	byType := make(map[m.MutatorType]*m.MutatorSummary)

	for _, mutant := range mutants {
		summary, ok := byType[mutant.Mutation.Type]
		if !ok {
			summary = &m.MutatorSummary{Type: mutant.Mutation.Type}
			byType[mutant.Mutation.Type] = summary
		}

		summary.Total++

		switch mutant.Status {
		case m.Killed:
			summary.Killed++
		case m.Survived:
			summary.Survived++
		}
	}

	summaries := make([]m.MutatorSummary, 0, len(byType))

	for _, mutatorType := range m.MutatorTypes {
		if summary, ok := byType[mutatorType]; ok {
			summaries = append(summaries, *summary)
		}
	}

	return summaries
}
