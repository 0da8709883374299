package mutagens

import (
	"go/ast"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

type blockMutator struct{}

// NewBlockMutator empties non-empty blocks. The body of a function with
// results is left alone since removing it removes the required return.
func NewBlockMutator() Mutator {
	return blockMutator{}
}

func (blockMutator) Type() m.MutatorType { return m.MutatorBlock }

func (blockMutator) Description() string { return "Statement block" }

func (blockMutator) Default() bool { return true }

func (mu blockMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		block, ok := node.(*ast.BlockStmt)
		if !ok || len(block.List) == 0 {
			return
		}

		if returnsValues(tree.Parent(block)) {
			return
		}

		empty := &ast.BlockStmt{Lbrace: block.Lbrace, Rbrace: block.Lbrace + 1}

		mutation := newMutation(tree, mu.Type(), "Block removal", block, empty)
		mutation.Replacement = "{}"

		yield(mutation)
	}
}

func returnsValues(parent ast.Node) bool {
	var fnType *ast.FuncType

	switch fn := parent.(type) {
	case *ast.FuncDecl:
		fnType = fn.Type
	case *ast.FuncLit:
		fnType = fn.Type
	default:
		return false
	}

	return fnType.Results != nil && len(fnType.Results.List) > 0
}
