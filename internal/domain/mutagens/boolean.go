package mutagens

import (
	"go/ast"
	"go/types"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

type booleanMutator struct{}

// NewBooleanMutator inverts the predeclared boolean constants.
func NewBooleanMutator() Mutator {
	return booleanMutator{}
}

func (booleanMutator) Type() m.MutatorType { return m.MutatorBoolean }

func (booleanMutator) Description() string { return "Boolean literal" }

func (booleanMutator) Default() bool { return true }

func (mu booleanMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		ident, ok := node.(*ast.Ident)
		if !ok || !isBooleanLiteral(tree, ident) {
			return
		}

		flipped := &ast.Ident{NamePos: ident.NamePos, Name: flipBoolean(ident.Name)}
		yield(newMutation(tree, mu.Type(), "Boolean literal", ident, flipped))
	}
}

// isBooleanLiteral reports whether ident refers to the predeclared true or
// false. Without type information a shadowing declaration goes unnoticed.
func isBooleanLiteral(tree *syntax.Tree, ident *ast.Ident) bool {
	if ident.Name != trueStr && ident.Name != falseStr {
		return false
	}

	if sel, ok := tree.Parent(ident).(*ast.SelectorExpr); ok && sel.Sel == ident {
		return false
	}

	if tree.Info != nil {
		if obj, ok := tree.Info.Uses[ident]; ok {
			return obj == types.Universe.Lookup(ident.Name)
		}
	}

	return true
}

func flipBoolean(original string) string {
	if original == trueStr {
		return falseStr
	}

	return trueStr
}
