package domain

import (
	"go/ast"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// CoverageMapper associates methods with the tests that exercise them and
// decides which mutants are worth executing.
type CoverageMapper interface {
	// MapTests filters the mutants of every method, fills MethodDetail.Tests
	// and marks mutants outside the covered code NotCovered. Mutants that
	// are already Skipped keep their status.
	MapTests(class *Class)
}

type coverageMapper struct {
	options m.MapperOptions
}

// NewCoverageMapper creates a CoverageMapper.
func NewCoverageMapper(options m.MapperOptions) CoverageMapper {
	return &coverageMapper{options: options}
}

func (cm *coverageMapper) MapTests(class *Class) {
	if class == nil || class.Source == nil {
		return
	}

	source := class.Source

	for _, method := range source.Methods {
		for _, mutant := range method.Mutants {
			if cm.skip(class.Tree, mutant) {
				mutant.SetStatus(m.Skipped)
			}
		}
	}

	direct := make(map[*m.MethodDetail]bool)

	for _, method := range source.Methods {
		method.Tests = nil
		method.ParentMethodNames = nil

		if hasNoCoveredLines(method) {
			continue
		}

		if cm.options.ExecuteAllTests || method.IsProperty {
			method.AddTests(source.Tests...)
			continue
		}

		for _, test := range source.Tests {
			if matchesTestName(test.Name, method) {
				method.AddTests(test)
			}
		}

		direct[method] = len(method.Tests) > 0
	}

	propagateThroughCallers(source.Methods, direct)

	for _, method := range source.Methods {
		if len(method.Tests) == 0 && !hasNoCoveredLines(method) {
			slog.Debug("No test matched, using every test", "method", method.QualifiedName())
			method.AddTests(source.Tests...)
		}

		markNotCovered(method)

		for _, mutant := range method.Mutants {
			mutant.CoveringTests = method.Tests
		}
	}
}

// skip applies the mutant filters. Specific lines, when given, replace the
// id and pattern filters.
func (cm *coverageMapper) skip(tree *syntax.Tree, mutant *m.Mutant) bool {
	opts := cm.options
	line := mutant.Mutation.Line

	if len(opts.SpecificLines) > 0 {
		return !slices.ContainsFunc(opts.SpecificLines, func(r m.LineRange) bool { return r.Contains(line) })
	}

	if slices.Contains(opts.IgnoreIDs, mutant.ID) {
		return true
	}

	if len(opts.SpecificIDs) > 0 && !slices.Contains(opts.SpecificIDs, mutant.ID) {
		return true
	}

	texts := candidateTexts(tree, mutant.Mutation)

	if anyMatch(opts.SkipPatterns, texts) {
		return true
	}

	return len(opts.SpecificPatterns) > 0 && !anyMatch(opts.SpecificPatterns, texts)
}

// candidateTexts returns the original text of the mutation followed by the
// text of the nearest call or composite literal enclosing it inside the same
// statement.
func candidateTexts(tree *syntax.Tree, mutation m.Mutation) []string {
	texts := []string{mutation.Original}

	node := mutation.OriginalNode
	if tree == nil || node == nil || !node.Pos().IsValid() {
		return texts
	}

	path, _ := astutil.PathEnclosingInterval(tree.File, node.Pos(), node.End())

	for _, enclosing := range path {
		if enclosing == node {
			continue
		}

		switch n := enclosing.(type) {
		case *ast.CallExpr, *ast.CompositeLit:
			return append(texts, tree.Text(n))
		case ast.Stmt:
			return texts
		}
	}

	return texts
}

func anyMatch(patterns []*regexp.Regexp, texts []string) bool {
	for _, re := range patterns {
		for _, text := range texts {
			if re.MatchString(text) {
				return true
			}
		}
	}

	return false
}

func hasNoCoveredLines(method *m.MethodDetail) bool {
	return method.Coverage != nil && method.Coverage.LinesCovered == 0
}

// matchesTestName links TestAdd, TestCalculator_Add and TestCalculatorAdd to
// Calculator.Add, each optionally followed by an underscore suffix.
func matchesTestName(testName string, method *m.MethodDetail) bool {
	rest, ok := strings.CutPrefix(testName, "Test")
	if !ok {
		return false
	}

	candidates := []string{method.Name}
	if method.Receiver != "" {
		candidates = append(candidates, method.Receiver+"_"+method.Name, method.Receiver+method.Name)
	}

	for _, candidate := range candidates {
		if rest == candidate || strings.HasPrefix(rest, candidate+"_") {
			return true
		}
	}

	return false
}

// propagateThroughCallers gives a method without tests the tests of every
// directly tested sibling that calls it. Only one level of calls is followed.
func propagateThroughCallers(methods []*m.MethodDetail, direct map[*m.MethodDetail]bool) {
	for _, method := range methods {
		if len(method.Tests) > 0 || hasNoCoveredLines(method) {
			continue
		}

		for _, caller := range methods {
			if caller == method || !direct[caller] || !slices.Contains(caller.ChildMethodNames, method.Name) {
				continue
			}

			method.ParentMethodNames = append(method.ParentMethodNames, caller.QualifiedName())
			method.AddTests(caller.Tests...)
		}
	}
}

// markNotCovered excludes mutants of untested methods and, when line data
// exists, mutants on lines no test executed.
func markNotCovered(method *m.MethodDetail) {
	for _, mutant := range method.Mutants {
		if len(method.Tests) == 0 {
			mutant.SetStatus(m.NotCovered)
			continue
		}

		if method.Coverage.HasLineData() && !method.Coverage.IsLineCovered(mutant.Mutation.Line) {
			mutant.SetStatus(m.NotCovered)
		}
	}
}
