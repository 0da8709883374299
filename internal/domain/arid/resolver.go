package arid

import (
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
)

// Callee describes the function a call expression invokes.
type Callee struct {
	// Package is the import path of the callee (or of the receiver type for
	// methods). The syntactic resolver fills it only for package-qualified
	// calls and leaves it empty for calls on local variables.
	Package string

	// Receiver is the receiver type name for methods (semantic) or the root
	// identifier of the selector chain (syntactic).
	Receiver string

	Name    string
	Builtin bool
}

// Resolver identifies the target of call expressions.
type Resolver interface {
	Resolve(tree *syntax.Tree, call *ast.CallExpr) (Callee, bool)
}

// NewResolver returns a semantic resolver backed by the tree's type
// information, falling back to syntactic matching for nodes the type checker
// did not record. Without type information the syntactic resolver is used.
func NewResolver(tree *syntax.Tree) Resolver {
	if tree != nil && tree.Info != nil {
		return &semanticResolver{fallback: &syntacticResolver{}}
	}

	return &syntacticResolver{}
}

type semanticResolver struct {
	fallback Resolver
}

func (r *semanticResolver) Resolve(tree *syntax.Tree, call *ast.CallExpr) (Callee, bool) {
	info := tree.Info

	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		switch obj := info.Uses[fun].(type) {
		case *types.Builtin:
			return Callee{Name: obj.Name(), Builtin: true}, true
		case *types.Func:
			return calleeFromFunc(obj), true
		case nil:
		default:
			// Calls through function-typed variables carry no package identity.
			return Callee{Name: fun.Name}, true
		}
	case *ast.SelectorExpr:
		if selection, ok := info.Selections[fun]; ok {
			callee := Callee{Name: fun.Sel.Name}
			if named := namedType(selection.Recv()); named != nil {
				callee.Receiver = named.Obj().Name()
				if pkg := named.Obj().Pkg(); pkg != nil {
					callee.Package = pkg.Path()
				}
			}

			return callee, true
		}

		if fn, ok := info.Uses[fun.Sel].(*types.Func); ok {
			return calleeFromFunc(fn), true
		}
	}

	return r.fallback.Resolve(tree, call)
}

func calleeFromFunc(fn *types.Func) Callee {
	callee := Callee{Name: fn.Name()}
	if fn.Pkg() != nil {
		callee.Package = fn.Pkg().Path()
	}

	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		if named := namedType(sig.Recv().Type()); named != nil {
			callee.Receiver = named.Obj().Name()
		}
	}

	return callee
}

func namedType(t types.Type) *types.Named {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, _ := types.Unalias(t).(*types.Named)

	return named
}

// syntacticResolver matches identifier names against the file imports. A
// local variable named like an imported package shadows nothing here, which
// is a known source of false positives.
type syntacticResolver struct{}

var builtinNames = map[string]bool{"print": true, "println": true, "panic": true, "len": true, "cap": true, "append": true}

func (r *syntacticResolver) Resolve(tree *syntax.Tree, call *ast.CallExpr) (Callee, bool) {
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		return Callee{Name: fun.Name, Builtin: builtinNames[fun.Name]}, true
	case *ast.SelectorExpr:
		root := rootIdent(fun.X)
		if root == nil {
			return Callee{Name: fun.Sel.Name}, true
		}

		if path, ok := importPathFor(tree.File, root.Name); ok {
			return Callee{Package: path, Receiver: root.Name, Name: fun.Sel.Name}, true
		}

		return Callee{Receiver: root.Name, Name: fun.Sel.Name}, true
	}

	return Callee{}, false
}

// rootIdent walks a selector or call chain such as log.Info().Str("k", v)
// back to its leftmost identifier.
func rootIdent(expr ast.Expr) *ast.Ident {
	for {
		switch e := ast.Unparen(expr).(type) {
		case *ast.Ident:
			return e
		case *ast.SelectorExpr:
			expr = e.X
		case *ast.CallExpr:
			expr = e.Fun
		case *ast.IndexExpr:
			expr = e.X
		case *ast.StarExpr:
			expr = e.X
		default:
			return nil
		}
	}
}

func importPathFor(file *ast.File, name string) (string, bool) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		local := importLocalName(imp, path)
		if local == name {
			return path, true
		}
	}

	return "", false
}

func importLocalName(imp *ast.ImportSpec, path string) string {
	if imp.Name != nil {
		return imp.Name.Name
	}

	base := path[strings.LastIndex(path, "/")+1:]
	if strings.HasPrefix(base, "v") && len(base) > 1 && strings.Trim(base[1:], "0123456789") == "" {
		// Major version suffix: github.com/foo/bar/v2 is imported as bar.
		trimmed := strings.TrimSuffix(path, "/"+base)
		base = trimmed[strings.LastIndex(trimmed, "/")+1:]
	}

	return base
}
