package mutagens

import (
	"go/ast"
	"go/token"
	"iter"
	"strconv"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// SentinelString replaces empty string literals.
const SentinelString = "Mutest was here!"

type stringMutator struct{}

// NewStringMutator empties string literals, fills empty ones with a
// sentinel and blanks fmt.Sprintf interpolations.
func NewStringMutator() Mutator {
	return stringMutator{}
}

func (stringMutator) Type() m.MutatorType { return m.MutatorString }

func (stringMutator) Description() string { return "String literal" }

func (stringMutator) Default() bool { return true }

func (mu stringMutator) ApplyMutations(tree *syntax.Tree, node ast.Node) iter.Seq[m.Mutation] {
	return func(yield func(m.Mutation) bool) {
		switch n := node.(type) {
		case *ast.BasicLit:
			if !isStringLiteral(n) || !isMutableStringPosition(tree, n) {
				return
			}

			value := `""`
			if isEmptyString(n) {
				value = strconv.Quote(SentinelString)
			}

			replaced := &ast.BasicLit{ValuePos: n.ValuePos, Kind: token.STRING, Value: value}
			yield(newMutation(tree, mu.Type(), "String literal", n, replaced))
		case *ast.CallExpr:
			if len(n.Args) == 0 || !isPackageCall(tree, n, "fmt", "Sprintf") {
				return
			}

			replaced := &ast.BasicLit{ValuePos: n.Pos(), Kind: token.STRING, Value: `""`}
			yield(newMutation(tree, mu.Type(), "Interpolated string", n, replaced))
		}
	}
}

// isMutableStringPosition excludes literals that must stay constant: import
// paths, struct tags and the format argument of an interpolation, which is
// mutated as a whole call instead.
func isMutableStringPosition(tree *syntax.Tree, lit *ast.BasicLit) bool {
	switch parent := tree.Parent(lit).(type) {
	case *ast.ImportSpec, *ast.Field:
		return false
	case *ast.CallExpr:
		return len(parent.Args) == 0 || parent.Args[0] != lit || !isPackageCall(tree, parent, "fmt", "Sprintf")
	}

	return true
}
