package arid

import (
	"go/ast"
	"strings"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
)

// FilterID names a node filter.
type FilterID string

// Registered filter identifiers.
const (
	FilterByDefinition FilterID = "by_definition"
	FilterDiagnostic   FilterID = "diagnostic"
	FilterConsole      FilterID = "console"
	FilterLogging      FilterID = "logging"
)

// NodeFilter decides whether a simple node is arid.
//
// Filters are evaluated in registration order and the first match wins, so
// a new filter must not accept nodes another filter already accepts.
type NodeFilter interface {
	ID() FilterID
	IsSatisfied(tree *syntax.Tree, node ast.Node) bool
}

// DefaultFilters returns the built-in filters in registration order.
func DefaultFilters(resolver Resolver) []NodeFilter {
	return []NodeFilter{
		byDefinitionFilter{},
		diagnosticFilter{resolver: resolver},
		consoleFilter{resolver: resolver},
		loggingFilter{resolver: resolver},
	}
}

// byDefinitionFilter marks nodes that carry no behavior as arid. Every
// expression or value-carrying statement is live so that nothing mutable
// is hidden by a catch-all default; calls are left to the call filters.
type byDefinitionFilter struct{}

func (byDefinitionFilter) ID() FilterID { return FilterByDefinition }

func (byDefinitionFilter) IsSatisfied(_ *syntax.Tree, node ast.Node) bool {
	switch node.(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.BasicLit, *ast.CallExpr,
		*ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr,
		*ast.SliceExpr, *ast.StarExpr, *ast.ParenExpr, *ast.CompositeLit,
		*ast.KeyValueExpr, *ast.TypeAssertExpr,
		*ast.AssignStmt, *ast.IncDecStmt, *ast.ReturnStmt, *ast.DeclStmt,
		*ast.GenDecl, *ast.ValueSpec, *ast.SendStmt:
		return false
	}

	return true
}

var diagnosticPackages = map[string]bool{
	"runtime/debug": true,
	"runtime/trace": true,
	"runtime/pprof": true,
}

// diagnosticFilter accepts calls into runtime debugging facilities and the
// print/println builtins.
type diagnosticFilter struct {
	resolver Resolver
}

func (diagnosticFilter) ID() FilterID { return FilterDiagnostic }

func (f diagnosticFilter) IsSatisfied(tree *syntax.Tree, node ast.Node) bool {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return false
	}

	callee, ok := f.resolver.Resolve(tree, call)
	if !ok {
		return false
	}

	if callee.Builtin {
		return callee.Name == "print" || callee.Name == "println"
	}

	return diagnosticPackages[callee.Package]
}

var consoleFuncs = map[string]bool{"Print": true, "Printf": true, "Println": true}

var fileConsoleFuncs = map[string]bool{"Fprint": true, "Fprintf": true, "Fprintln": true}

// consoleFilter accepts writes to standard output and standard error.
type consoleFilter struct {
	resolver Resolver
}

func (consoleFilter) ID() FilterID { return FilterConsole }

func (f consoleFilter) IsSatisfied(tree *syntax.Tree, node ast.Node) bool {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return false
	}

	callee, ok := f.resolver.Resolve(tree, call)
	if !ok {
		return false
	}

	switch callee.Package {
	case "fmt":
		if consoleFuncs[callee.Name] {
			return true
		}

		return fileConsoleFuncs[callee.Name] && len(call.Args) > 0 && isStdStream(tree, call.Args[0])
	case "os":
		sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
		return ok && isStdStream(tree, sel.X)
	}

	return false
}

func isStdStream(tree *syntax.Tree, expr ast.Expr) bool {
	text := strings.Join(strings.Fields(tree.Text(expr)), "")

	return text == "os.Stdout" || text == "os.Stderr"
}

var loggingFragments = []string{"log", "slog", "zap", "zerolog", "logrus", "klog", "logr", "glog"}

// loggingFilter accepts calls whose package or receiver type belongs to a
// well-known logging library. Matching uses import paths and type names,
// never the raw call text.
type loggingFilter struct {
	resolver Resolver
}

func (loggingFilter) ID() FilterID { return FilterLogging }

func (f loggingFilter) IsSatisfied(tree *syntax.Tree, node ast.Node) bool {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return false
	}

	callee, ok := f.resolver.Resolve(tree, call)
	if !ok || callee.Builtin {
		return false
	}

	if callee.Package != "" {
		for _, segment := range strings.Split(callee.Package, "/") {
			if isLoggingName(segment) {
				return true
			}
		}

		return strings.HasSuffix(callee.Receiver, "Logger")
	}

	return isLoggingName(callee.Receiver) || strings.HasSuffix(callee.Receiver, "Logger")
}

func isLoggingName(name string) bool {
	name = strings.ToLower(name)
	for _, fragment := range loggingFragments {
		if name == fragment || name == fragment+"ger" {
			return true
		}
	}

	return false
}
