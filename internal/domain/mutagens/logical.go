package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

type logicalMutator struct{}

// NewLogicalMutator swaps && and ||, and complements exclusive or.
func NewLogicalMutator() Mutator {
	return logicalMutator{}
}

func (logicalMutator) Type() m.MutatorType { return m.MutatorLogical }

func (logicalMutator) Description() string { return "Logical operator" }

func (logicalMutator) Default() bool { return true }

func (mu logicalMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		expr, ok := node.(*ast.BinaryExpr)
		if !ok {
			return
		}

		switch expr.Op {
		case token.LAND:
			yield(newMutation(tree, mu.Type(), "Logical operator", expr, withOperator(tree, expr, token.LOR)))
		case token.LOR:
			yield(newMutation(tree, mu.Type(), "Logical operator", expr, withOperator(tree, expr, token.LAND)))
		case token.XOR:
			// Go only defines ^ on integers, so an equality rewrite never
			// type checks. The complement keeps the operand type.
			inverted := &ast.UnaryExpr{OpPos: expr.Pos(), Op: token.XOR, X: &ast.ParenExpr{X: expr}}
			yield(newMutation(tree, mu.Type(), "Logical operator", expr, inverted))
		}
	}
}
