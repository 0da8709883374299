package mutagens

import (
	"go/ast"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

type checkedMutator struct{}

// NewCheckedMutator is registered so checked mutations can be selected and
// reported by type. Go has no checked arithmetic context, so it never
// proposes a mutation.
func NewCheckedMutator() Mutator {
	return checkedMutator{}
}

func (checkedMutator) Type() m.MutatorType { return m.MutatorChecked }

func (checkedMutator) Description() string { return "Checked expression" }

func (checkedMutator) Default() bool { return false }

func (checkedMutator) ApplyMutations(*syntax.Tree, ast.Node) iter.Seq[m.Mutation] {
	return func(func(m.Mutation) bool) {}
}
