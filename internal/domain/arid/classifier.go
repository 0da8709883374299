// Package arid labels syntax nodes that are irrelevant to mutation testing:
// diagnostic, console and logging calls, and constructs made only of them.
package arid

import (
	"go/ast"
	"slices"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// Result is the immutable verdict for one node.
type Result struct {
	IsArid      bool
	TriggeredBy []FilterID
}

var liveResult = Result{}

// Classification maps every node of a file to its verdict.
type Classification struct {
	results map[ast.Node]Result
}

// Result returns the verdict for node. Unknown nodes are live.
func (c *Classification) Result(node ast.Node) Result {
	if c == nil {
		return liveResult
	}

	return c.results[node]
}

// IsArid is a shorthand for Result(node).IsArid.
func (c *Classification) IsArid(node ast.Node) bool {
	return c.Result(node).IsArid
}

// Len returns the number of classified nodes.
func (c *Classification) Len() int {
	return len(c.results)
}

// Classifier builds classifications for parsed files.
type Classifier interface {
	Classify(tree *syntax.Tree, root ast.Node) (*Classification, error)
}

type classifier struct {
	newFilters func(Resolver) []NodeFilter
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*classifier)

// WithFilters replaces the built-in filters.
func WithFilters(newFilters func(Resolver) []NodeFilter) ClassifierOption {
	return func(c *classifier) {
		c.newFilters = newFilters
	}
}

// NewClassifier creates a Classifier using the built-in filters.
func NewClassifier(options ...ClassifierOption) Classifier {
	c := &classifier{newFilters: DefaultFilters}
	for _, option := range options {
		option(c)
	}

	return c
}

func (c *classifier) Classify(tree *syntax.Tree, root ast.Node) (*Classification, error) {
	if tree == nil || root == nil {
		return nil, m.NewInputError("classify", m.ErrInvalidInput)
	}

	chk := &checker{
		tree:    tree,
		filters: c.newFilters(NewResolver(tree)),
		memo:    make(map[ast.Node]Result),
	}

	classification := &Classification{results: make(map[ast.Node]Result)}

	for node := range syntax.Descendants(root) {
		if inherited, ok := aridAncestor(tree, classification, node); ok {
			classification.results[node] = inherited
			continue
		}

		classification.results[node] = chk.check(node)
	}

	return classification, nil
}

// aridAncestor looks at the ancestors strictly between node and its nearest
// statement or function boundary.
func aridAncestor(tree *syntax.Tree, classification *Classification, node ast.Node) (Result, bool) {
	for parent := range tree.Ancestors(node) {
		if syntax.IsBoundary(parent) {
			return liveResult, false
		}

		if result, ok := classification.results[parent]; ok && result.IsArid {
			return result, true
		}
	}

	return liveResult, false
}

type checker struct {
	tree    *syntax.Tree
	filters []NodeFilter
	memo    map[ast.Node]Result
}

func (chk *checker) check(node ast.Node) Result {
	if result, ok := chk.memo[node]; ok {
		return result
	}

	var result Result
	if isCompound(node) {
		result = chk.checkCompound(node)
	} else {
		result = chk.checkSimple(node)
	}

	chk.memo[node] = result

	return result
}

func (chk *checker) checkCompound(node ast.Node) Result {
	children := compoundChildren(node)
	if len(children) == 0 {
		return liveResult
	}

	var triggered []FilterID

	for _, child := range children {
		result := chk.check(child)
		if !result.IsArid {
			return result
		}

		for _, id := range result.TriggeredBy {
			if !slices.Contains(triggered, id) {
				triggered = append(triggered, id)
			}
		}
	}

	return Result{IsArid: true, TriggeredBy: triggered}
}

func (chk *checker) checkSimple(node ast.Node) Result {
	for _, filter := range chk.filters {
		if filter.IsSatisfied(chk.tree, node) {
			return Result{IsArid: true, TriggeredBy: []FilterID{filter.ID()}}
		}
	}

	return liveResult
}

func isCompound(node ast.Node) bool {
	switch node.(type) {
	case *ast.BlockStmt, *ast.ForStmt, *ast.RangeStmt, *ast.IfStmt,
		*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt,
		*ast.CaseClause, *ast.CommClause, *ast.LabeledStmt,
		*ast.ExprStmt, *ast.GoStmt, *ast.DeferStmt, *ast.FuncLit:
		return true
	}

	return false
}

// compoundChildren returns the children that decide a compound's verdict.
// Statement labels are names, not behavior.
func compoundChildren(node ast.Node) []ast.Node {
	if labeled, ok := node.(*ast.LabeledStmt); ok {
		return []ast.Node{labeled.Stmt}
	}

	return syntax.Children(node)
}
