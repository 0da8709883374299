package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

var comparisonReplacements = map[token.Token][]token.Token{
	token.LSS: {token.GTR, token.LEQ},
	token.LEQ: {token.GTR, token.LSS},
	token.GTR: {token.LSS, token.GEQ},
	token.GEQ: {token.LSS, token.GTR},
	token.EQL: {token.NEQ},
	token.NEQ: {token.EQL},
}

type comparisonMutator struct{}

// NewComparisonMutator swaps relational and equality operators.
func NewComparisonMutator() Mutator {
	return comparisonMutator{}
}

func (comparisonMutator) Type() m.MutatorType { return m.MutatorEquality }

func (comparisonMutator) Description() string { return "Relational and equality operator" }

func (comparisonMutator) Default() bool { return true }

func (mu comparisonMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		expr, ok := node.(*ast.BinaryExpr)
		if !ok {
			return
		}

		for _, replacement := range comparisonReplacements[expr.Op] {
			display := "Relational operator"
			if expr.Op == token.EQL || expr.Op == token.NEQ {
				display = "Equality operator"
			}

			if !yield(newMutation(tree, mu.Type(), display, expr, withOperator(tree, expr, replacement))) {
				return
			}
		}
	}
}
