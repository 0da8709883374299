// Package syntax exposes the structural queries the mutation engine needs on
// top of go/ast: parents, children, positions and source text.
package syntax

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"iter"
	"strings"
)

// Tree is a parsed Go file with a parent index. Info is nil when the file
// could not be type-checked.
type Tree struct {
	Fset *token.FileSet
	File *ast.File
	Src  []byte
	Info *types.Info

	parents map[ast.Node]ast.Node
}

// NewTree indexes an already parsed file.
func NewTree(fset *token.FileSet, file *ast.File, src []byte, info *types.Info) *Tree {
	tree := &Tree{
		Fset:    fset,
		File:    file,
		Src:     src,
		Info:    info,
		parents: make(map[ast.Node]ast.Node),
	}

	var stack []ast.Node

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}

		if len(stack) > 0 {
			tree.parents[n] = stack[len(stack)-1]
		}

		stack = append(stack, n)

		return true
	})

	return tree
}

// Parse parses src and indexes it without type information.
func Parse(filename string, src []byte) (*Tree, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return NewTree(fset, file, src, nil), nil
}

// Parent returns the direct parent of n, or nil for the file root.
func (t *Tree) Parent(n ast.Node) ast.Node {
	return t.parents[n]
}

// Ancestors yields the parents of n from the nearest outwards.
func (t *Tree) Ancestors(n ast.Node) iter.Seq[ast.Node] {
	return func(yield func(ast.Node) bool) {
		for p := t.parents[n]; p != nil; p = t.parents[p] {
			if !yield(p) {
				return
			}
		}
	}
}

// Children returns the immediate child nodes of n in source order.
// Comments are not part of the child sequence.
func Children(n ast.Node) []ast.Node {
	if n == nil {
		return nil
	}

	var children []ast.Node

	ast.Inspect(n, func(c ast.Node) bool {
		if c == nil {
			return false
		}

		if c == n {
			return true
		}

		switch c.(type) {
		case *ast.CommentGroup, *ast.Comment:
			return false
		}

		children = append(children, c)

		return false
	})

	return children
}

// Descendants yields every node below n in document order.
func Descendants(n ast.Node) iter.Seq[ast.Node] {
	return func(yield func(ast.Node) bool) {
		stopped := false

		ast.Inspect(n, func(c ast.Node) bool {
			if c == nil || stopped {
				return false
			}

			if c == n {
				return true
			}

			switch c.(type) {
			case *ast.CommentGroup, *ast.Comment:
				return false
			}

			if !yield(c) {
				stopped = true
				return false
			}

			return true
		})
	}
}

// Kind returns the go/ast type name of n, e.g. "BinaryExpr".
func Kind(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// IsBoundary reports whether n is a statement or a function. Arid results
// are inherited only up to the nearest boundary.
func IsBoundary(n ast.Node) bool {
	switch n.(type) {
	case ast.Stmt, *ast.FuncDecl, *ast.FuncLit:
		return true
	}

	return false
}

// Line returns the line on which n starts.
func (t *Tree) Line(n ast.Node) int {
	if n == nil || !n.Pos().IsValid() {
		return 0
	}

	return t.Fset.Position(n.Pos()).Line
}

// EndLine returns the line on which n ends.
func (t *Tree) EndLine(n ast.Node) int {
	if n == nil || !n.End().IsValid() {
		return 0
	}

	return t.Fset.Position(n.End()).Line
}

func (t *Tree) offsets(n ast.Node) (int, int, bool) {
	if n == nil || !n.Pos().IsValid() || !n.End().IsValid() {
		return 0, 0, false
	}

	tokFile := t.Fset.File(t.File.Pos())
	if tokFile == nil {
		return 0, 0, false
	}

	base := tokFile.Base()
	if int(n.Pos()) < base || int(n.End()) > base+tokFile.Size() {
		return 0, 0, false
	}

	start, end := tokFile.Offset(n.Pos()), tokFile.Offset(n.End())
	if start < 0 || end > len(t.Src) || start > end {
		return 0, 0, false
	}

	return start, end, true
}

// Text returns the source text of n. Synthetic nodes are printed.
func (t *Tree) Text(n ast.Node) string {
	if start, end, ok := t.offsets(n); ok {
		return string(t.Src[start:end])
	}

	return t.Render(n)
}

// Render prints n with the tree's file set.
func (t *Tree) Render(n ast.Node) string {
	if n == nil {
		return ""
	}

	var buf bytes.Buffer

	cfg := printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&buf, t.Fset, n); err != nil {
		return ""
	}

	return buf.String()
}

// Splice returns a copy of the source with the text of n replaced.
func (t *Tree) Splice(n ast.Node, replacement string) ([]byte, error) {
	start, end, ok := t.offsets(n)
	if !ok {
		return nil, fmt.Errorf("node %s has no position in %s", Kind(n), t.Fset.Position(t.File.Pos()).Filename)
	}

	out := make([]byte, 0, len(t.Src)-(end-start)+len(replacement))
	out = append(out, t.Src[:start]...)
	out = append(out, replacement...)
	out = append(out, t.Src[end:]...)

	return out, nil
}

// EnclosingFunc returns the type of the nearest function declaration or
// literal containing n, or nil at package level.
func (t *Tree) EnclosingFunc(n ast.Node) *ast.FuncType {
	for p := range t.Ancestors(n) {
		switch fn := p.(type) {
		case *ast.FuncDecl:
			return fn.Type
		case *ast.FuncLit:
			return fn.Type
		}
	}

	return nil
}

// FuncDecls returns the top-level function declarations of the file.
func (t *Tree) FuncDecls() []*ast.FuncDecl {
	var decls []*ast.FuncDecl

	for _, decl := range t.File.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			decls = append(decls, fn)
		}
	}

	return decls
}
