package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

var arithmeticReplacements = map[token.Token]token.Token{
	token.SUB: token.ADD,
	token.MUL: token.QUO,
	token.QUO: token.MUL,
	token.REM: token.MUL,
}

type arithmeticMutator struct{}

// NewArithmeticMutator swaps arithmetic operators. An addition is replaced
// by its left operand.
func NewArithmeticMutator() Mutator {
	return arithmeticMutator{}
}

func (arithmeticMutator) Type() m.MutatorType { return m.MutatorArithmetic }

func (arithmeticMutator) Description() string { return "Arithmetic operator" }

func (arithmeticMutator) Default() bool { return true }

func (mu arithmeticMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		expr, ok := node.(*ast.BinaryExpr)
		if !ok {
			return
		}

		if expr.Op == token.ADD {
			yield(newMutation(tree, mu.Type(), "Arithmetic operator", expr, expr.X))
			return
		}

		replacement, ok := arithmeticReplacements[expr.Op]
		if !ok {
			return
		}

		yield(newMutation(tree, mu.Type(), "Arithmetic operator", expr, withOperator(tree, expr, replacement)))
	}
}
