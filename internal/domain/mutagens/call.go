package mutagens

import (
	"go/ast"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// terminatingCalls must stay in place: removing them changes control flow
// in ways the compiler rejects (missing return).
var terminatingCalls = map[string]bool{"panic": true}

type methodCallMutator struct{}

// NewMethodCallMutator removes calls used as statements.
func NewMethodCallMutator() Mutator {
	return methodCallMutator{}
}

func (methodCallMutator) Type() m.MutatorType { return m.MutatorMethodCall }

func (methodCallMutator) Description() string { return "Method call removal" }

func (methodCallMutator) Default() bool { return true }

func (mu methodCallMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return
		}

		if _, ok := tree.Parent(call).(*ast.ExprStmt); !ok {
			return
		}

		if ident, ok := ast.Unparen(call.Fun).(*ast.Ident); ok && terminatingCalls[ident.Name] {
			return
		}

		yield(newMutation(tree, mu.Type(), "Method call removal", call, &ast.EmptyStmt{Semicolon: call.Pos(), Implicit: true}))
	}
}

type chainMutator struct{}

// NewChainMutator drops the last call of a fluent chain such as
// query.Where(a).OrderBy(b), keeping the receiver call.
func NewChainMutator() Mutator {
	return chainMutator{}
}

func (chainMutator) Type() m.MutatorType { return m.MutatorLinq }

func (chainMutator) Description() string { return "Chained call removal" }

func (chainMutator) Default() bool { return false }

func (mu chainMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return
		}

		sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
		if !ok {
			return
		}

		inner, ok := ast.Unparen(sel.X).(*ast.CallExpr)
		if !ok {
			return
		}

		if _, ok := ast.Unparen(inner.Fun).(*ast.SelectorExpr); !ok {
			return
		}

		yield(newMutation(tree, mu.Type(), "Chained call removal", call, inner))
	}
}
