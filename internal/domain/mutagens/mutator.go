// Package mutagens provides the mutation rules applied to Go syntax nodes.
package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"strconv"
	"strings"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// Mutator proposes replacements for a single node. ApplyMutations derives
// its sequence from the node alone, so iterating it twice yields the same
// mutations.
type Mutator interface {
	Type() m.MutatorType
	Description() string
	// Default reports whether the mutator belongs to the reduced default set.
	Default() bool
	ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation]
}

// All returns every built-in mutator in evaluation order.
func All() []Mutator {
	return []Mutator{
		NewAssignmentMutator(),
		NewArithmeticMutator(),
		NewComparisonMutator(),
		NewLogicalMutator(),
		NewBlockMutator(),
		NewBitwiseMutator(),
		NewBooleanMutator(),
		NewCheckedMutator(),
		NewStringMutator(),
		NewChainMutator(),
		NewMethodCallMutator(),
		NewNegateConditionMutator(),
		NewUpdateMutator(),
		NewUnaryMutator(),
	}
}

// Defaults returns the mutators of the reduced default set.
func Defaults() []Mutator {
	var mutators []Mutator

	for _, mutator := range All() {
		if mutator.Default() {
			mutators = append(mutators, mutator)
		}
	}

	return mutators
}

// ByTypes returns the mutators of the requested types in evaluation order.
func ByTypes(types ...m.MutatorType) ([]Mutator, error) {
	if len(types) == 0 {
		return Defaults(), nil
	}

	requested := make(map[m.MutatorType]bool, len(types))

	for _, mutatorType := range types {
		if !isKnownType(mutatorType) {
			return nil, fmt.Errorf("unsupported mutator type: %s", mutatorType)
		}

		requested[mutatorType] = true
	}

	var mutators []Mutator

	for _, mutator := range All() {
		if requested[mutator.Type()] {
			mutators = append(mutators, mutator)
		}
	}

	return mutators, nil
}

func isKnownType(mutatorType m.MutatorType) bool {
	for _, known := range m.MutatorTypes {
		if known == mutatorType {
			return true
		}
	}

	return false
}

func newMutation(tree *syntax.Tree, mutatorType m.MutatorType, displayName string, original, replacement ast.Node) m.Mutation {
	return m.Mutation{
		OriginalNode:    original,
		ReplacementNode: replacement,
		Line:            tree.Line(original),
		Type:            mutatorType,
		DisplayName:     displayName,
		Original:        tree.Text(original),
		Replacement:     tree.Render(replacement),
	}
}

// withOperator copies expr with a different operator, adding parentheses
// when the new operator binds differently inside the surrounding expression.
func withOperator(tree *syntax.Tree, expr *ast.BinaryExpr, op token.Token) ast.Expr {
	replaced := &ast.BinaryExpr{X: expr.X, OpPos: expr.OpPos, Op: op, Y: expr.Y}

	return parenthesize(tree, expr, replaced, op.Precedence())
}

func parenthesize(tree *syntax.Tree, original *ast.BinaryExpr, replacement ast.Expr, precedence int) ast.Expr {
	if original.Op.Precedence() == precedence {
		return replacement
	}

	switch tree.Parent(original).(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.StarExpr, *ast.SelectorExpr,
		*ast.IndexExpr, *ast.SliceExpr, *ast.TypeAssertExpr:
		return &ast.ParenExpr{X: replacement}
	}

	return replacement
}

func isStringLiteral(lit *ast.BasicLit) bool {
	return lit != nil && lit.Kind == token.STRING
}

func isEmptyString(lit *ast.BasicLit) bool {
	value, err := strconv.Unquote(lit.Value)

	return err == nil && value == ""
}

// isPackageCall reports whether call invokes pkgPath.name through the
// file's import of pkgPath.
func isPackageCall(tree *syntax.Tree, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}

	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}

	if tree.Info != nil {
		if pkgName, ok := tree.Info.Uses[ident].(*types.PkgName); ok {
			return pkgName.Imported().Path() == pkgPath
		}
	}

	for _, imp := range tree.File.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != pkgPath {
			continue
		}

		local := path[strings.LastIndex(path, "/")+1:]
		if imp.Name != nil {
			local = imp.Name.Name
		}

		return local == ident.Name
	}

	return false
}
