package mutagens

import (
	"go/ast"
	"go/token"
	"iter"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

var assignmentReplacements = map[token.Token]token.Token{
	token.ADD_ASSIGN:     token.SUB_ASSIGN,
	token.SUB_ASSIGN:     token.ADD_ASSIGN,
	token.MUL_ASSIGN:     token.QUO_ASSIGN,
	token.QUO_ASSIGN:     token.MUL_ASSIGN,
	token.REM_ASSIGN:     token.MUL_ASSIGN,
	token.AND_ASSIGN:     token.OR_ASSIGN,
	token.OR_ASSIGN:      token.AND_ASSIGN,
	token.XOR_ASSIGN:     token.AND_ASSIGN,
	token.SHL_ASSIGN:     token.SHR_ASSIGN,
	token.SHR_ASSIGN:     token.SHL_ASSIGN,
	token.AND_NOT_ASSIGN: token.AND_ASSIGN,
}

type assignmentMutator struct{}

// NewAssignmentMutator swaps compound assignment operators and drops plain
// assignments by redirecting the value to the blank identifier.
func NewAssignmentMutator() Mutator {
	return assignmentMutator{}
}

func (assignmentMutator) Type() m.MutatorType { return m.MutatorAssignment }

func (assignmentMutator) Description() string { return "Assignment statement" }

func (assignmentMutator) Default() bool { return true }

func (mu assignmentMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		stmt, ok := node.(*ast.AssignStmt)
		if !ok {
			return
		}

		if replacement, ok := assignmentReplacements[stmt.Tok]; ok {
			swapped := &ast.AssignStmt{Lhs: stmt.Lhs, TokPos: stmt.TokPos, Tok: replacement, Rhs: stmt.Rhs}
			yield(newMutation(tree, mu.Type(), "Assignment statement", stmt, swapped))

			return
		}

		if stmt.Tok != token.ASSIGN || len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
			return
		}

		if ident, ok := stmt.Lhs[0].(*ast.Ident); ok && ident.Name == "_" {
			return
		}

		dropped := &ast.AssignStmt{
			Lhs:    []ast.Expr{&ast.Ident{NamePos: stmt.Pos(), Name: "_"}},
			TokPos: stmt.TokPos,
			Tok:    token.ASSIGN,
			Rhs:    stmt.Rhs,
		}
		yield(newMutation(tree, mu.Type(), "Assignment removal", stmt, dropped))
	}
}
