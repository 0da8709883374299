package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

type updateMutator struct{}

// NewUpdateMutator swaps increments and decrements.
func NewUpdateMutator() Mutator {
	return updateMutator{}
}

func (updateMutator) Type() m.MutatorType { return m.MutatorUpdate }

func (updateMutator) Description() string { return "Increment and decrement" }

func (updateMutator) Default() bool { return false }

func (mu updateMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		stmt, ok := node.(*ast.IncDecStmt)
		if !ok {
			return
		}

		tok := token.DEC
		if stmt.Tok == token.DEC {
			tok = token.INC
		}

		swapped := &ast.IncDecStmt{X: stmt.X, TokPos: stmt.TokPos, Tok: tok}
		yield(newMutation(tree, mu.Type(), "Update operator", stmt, swapped))
	}
}

type unaryMutator struct{}

// NewUnaryMutator drops negation, logical not and bitwise complement.
func NewUnaryMutator() Mutator {
	return unaryMutator{}
}

func (unaryMutator) Type() m.MutatorType { return m.MutatorUnary }

func (unaryMutator) Description() string { return "Unary operator" }

func (unaryMutator) Default() bool { return false }

func (mu unaryMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		expr, ok := node.(*ast.UnaryExpr)
		if !ok {
			return
		}

		switch expr.Op {
		case token.SUB, token.NOT, token.XOR:
			yield(newMutation(tree, mu.Type(), "Unary operator", expr, expr.X))
		}
	}
}
