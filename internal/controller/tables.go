package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	m "mutest.dev/pkg/mutest/internal/model"
)

func newTable(buffer *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func renderEstimationTable(estimates []m.ClassEstimate) string {
	sorted := append([]m.ClassEstimate(nil), estimates...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Path", "Methods", "Mutants", "Skipped"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	methods, mutants, skipped := 0, 0, 0

	for _, estimate := range sorted {
		table.Append([]string{
			string(estimate.Path),
			strconv.Itoa(estimate.Methods),
			strconv.Itoa(estimate.Mutants),
			strconv.Itoa(estimate.Skipped),
		})

		methods += estimate.Methods
		mutants += estimate.Mutants
		skipped += estimate.Skipped
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		strconv.Itoa(methods),
		strconv.Itoa(mutants),
		strconv.Itoa(skipped),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportsTable(reports []m.MethodReport) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Class", "Method", "Killed", "Survived", "Not Covered", "Timeout", "Build Errors", "Skipped", "Score"})

	for _, report := range reports {
		score := report.Score
		table.Append([]string{
			report.Class,
			report.Method,
			strconv.Itoa(score.Killed),
			strconv.Itoa(score.Survived),
			strconv.Itoa(score.NotCovered),
			strconv.Itoa(score.Timeout),
			strconv.Itoa(score.BuildErrors),
			strconv.Itoa(score.Skipped),
			formatPercent(score.Coverage),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderMutatorTable(summaries []m.MutatorSummary) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Mutator", "Total", "Killed", "Survived"})

	for _, summary := range summaries {
		table.Append([]string{
			string(summary.Type),
			strconv.Itoa(summary.Total),
			strconv.Itoa(summary.Killed),
			strconv.Itoa(summary.Survived),
		})
	}

	table.Render()

	return tableBuffer.String()
}

// mergeSummaries adds up the per mutator counts of several reports, keeping
// the reporting order of mutator types.
func mergeSummaries(reports []m.MethodReport) []m.MutatorSummary {
	totals := make(map[m.MutatorType]m.MutatorSummary)

	for _, report := range reports {
		for _, summary := range report.Mutators {
			total := totals[summary.Type]
			total.Type = summary.Type
			total.Total += summary.Total
			total.Killed += summary.Killed
			total.Survived += summary.Survived
			totals[summary.Type] = total
		}
	}

	merged := make([]m.MutatorSummary, 0, len(totals))

	for _, mutatorType := range m.MutatorTypes {
		if summary, ok := totals[mutatorType]; ok {
			merged = append(merged, summary)
		}
	}

	return merged
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

func formatScore(score m.MutationScore) string {
	return fmt.Sprintf("%s (killed %d, survived %d, not covered %d, timeout %d, build errors %d, skipped %d)",
		formatPercent(score.Coverage), score.Killed, score.Survived, score.NotCovered, score.Timeout, score.BuildErrors, score.Skipped)
}
