package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

var bitwiseReplacements = map[token.Token]token.Token{
	token.SHL:     token.SHR,
	token.SHR:     token.SHL,
	token.OR:      token.AND,
	token.AND:     token.OR,
	token.AND_NOT: token.AND,
}

type bitwiseMutator struct{}

// NewBitwiseMutator swaps shift and bitwise operators.
func NewBitwiseMutator() Mutator {
	return bitwiseMutator{}
}

func (bitwiseMutator) Type() m.MutatorType { return m.MutatorBitwise }

func (bitwiseMutator) Description() string { return "Bitwise operator" }

func (bitwiseMutator) Default() bool { return false }

func (mu bitwiseMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		expr, ok := node.(*ast.BinaryExpr)
		if !ok {
			return
		}

		if replacement, ok := bitwiseReplacements[expr.Op]; ok {
			yield(newMutation(tree, mu.Type(), "Bitwise operator", expr, withOperator(tree, expr, replacement)))
		}
	}
}
