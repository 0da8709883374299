package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

type negateConditionMutator struct{}

// NewNegateConditionMutator negates the condition of if and for statements.
func NewNegateConditionMutator() Mutator {
	return negateConditionMutator{}
}

func (negateConditionMutator) Type() m.MutatorType { return m.MutatorNegate }

func (negateConditionMutator) Description() string { return "Negate condition" }

func (negateConditionMutator) Default() bool { return false }

func (mu negateConditionMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		cond, ok := node.(ast.Expr)
		if !ok || !isCondition(tree, cond) {
			return
		}

		if not, ok := ast.Unparen(cond).(*ast.UnaryExpr); ok && not.Op == token.NOT {
			yield(newMutation(tree, mu.Type(), "Negate condition", cond, not.X))
			return
		}

		negated := &ast.UnaryExpr{OpPos: cond.Pos(), Op: token.NOT, X: &ast.ParenExpr{X: cond}}
		yield(newMutation(tree, mu.Type(), "Negate condition", cond, negated))
	}
}

func isCondition(tree *syntax.Tree, expr ast.Expr) bool {
	switch parent := tree.Parent(expr).(type) {
	case *ast.IfStmt:
		return parent.Cond == expr
	case *ast.ForStmt:
		return parent.Cond == expr
	}

	return false
}
