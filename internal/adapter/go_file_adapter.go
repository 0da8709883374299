package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// PackageInfo describes the package that owns a source file together with
// the file's syntax tree. Tree carries type information only when the
// package type-checked cleanly.
type PackageInfo struct {
	Name       string
	ImportPath string
	ModuleRoot m.Path
	Tree       *syntax.Tree
}

// GoFileAdapter encapsulates Go-specific loading and declaration extraction
// so the domain layer can focus on mutation rules.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// LoadPackage type-checks the package holding path and returns the
	// file's tree. It falls back to a plain parse when type checking fails.
	LoadPackage(ctx context.Context, path m.Path) (PackageInfo, error)

	// ExtractMethods lists the function declarations of a tree.
	ExtractMethods(tree *syntax.Tree) []*m.MethodDetail

	// ExtractTests lists the TestXxx functions declared in a test file.
	ExtractTests(fileSet *token.FileSet, file *ast.File, path m.Path) []m.TestMethod
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser
// and golang.org/x/tools/go/packages.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// LoadPackage implements GoFileAdapter.
func (a *LocalGoFileAdapter) LoadPackage(ctx context.Context, path m.Path) (PackageInfo, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return PackageInfo{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return PackageInfo{}, err
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     filepath.Dir(abs),
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil || len(pkgs) == 0 {
		return a.parseOnly(ctx, abs, src, err)
	}

	pkg := pkgs[0]
	info := PackageInfo{Name: pkg.Name, ImportPath: pkg.PkgPath}

	if pkg.Module != nil {
		info.ModuleRoot = m.Path(pkg.Module.Dir)
	}

	file := findSyntax(pkg, abs)
	if file == nil || len(pkg.Errors) > 0 {
		fallback, err := a.parseOnly(ctx, abs, src, packageError(pkg))
		if err != nil {
			return PackageInfo{}, err
		}

		fallback.ImportPath = info.ImportPath
		if info.ModuleRoot != "" {
			fallback.ModuleRoot = info.ModuleRoot
		}

		return fallback, nil
	}

	info.Tree = syntax.NewTree(pkg.Fset, file, src, pkg.TypesInfo)

	return info, nil
}

func (a *LocalGoFileAdapter) parseOnly(ctx context.Context, abs string, src []byte, cause error) (PackageInfo, error) {
	if cause != nil {
		slog.Warn("Type checking unavailable, using syntax only", "path", abs, "error", cause)
	}

	fset := token.NewFileSet()

	file, err := a.Parse(ctx, fset, abs, src)
	if err != nil {
		return PackageInfo{}, fmt.Errorf("failed to parse %s: %w", abs, err)
	}

	return PackageInfo{
		Name:       file.Name.Name,
		ModuleRoot: moduleRootOf(abs),
		Tree:       syntax.NewTree(fset, file, src, nil),
	}, nil
}

func findSyntax(pkg *packages.Package, abs string) *ast.File {
	for _, file := range pkg.Syntax {
		if filepath.Clean(pkg.Fset.File(file.Pos()).Name()) == abs {
			return file
		}
	}

	return nil
}

func packageError(pkg *packages.Package) error {
	if len(pkg.Errors) == 0 {
		return fmt.Errorf("file not part of package %s", pkg.PkgPath)
	}

	return pkg.Errors[0]
}

func moduleRootOf(abs string) m.Path {
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return m.Path(dir)
		}

		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}

// ExtractMethods implements GoFileAdapter. Declarations without a body are
// skipped.
func (a *LocalGoFileAdapter) ExtractMethods(tree *syntax.Tree) []*m.MethodDetail {
	var methods []*m.MethodDetail

	for _, decl := range tree.FuncDecls() {
		if decl.Body == nil {
			continue
		}

		methods = append(methods, &m.MethodDetail{
			Name:             decl.Name.Name,
			Receiver:         receiverName(decl),
			Decl:             decl,
			StartLine:        tree.Line(decl),
			EndLine:          tree.EndLine(decl),
			IsProperty:       isProperty(decl),
			ChildMethodNames: calledNames(decl.Body),
		})
	}

	return methods
}

// ExtractTests implements GoFileAdapter.
func (a *LocalGoFileAdapter) ExtractTests(fileSet *token.FileSet, file *ast.File, path m.Path) []m.TestMethod {
	var tests []m.TestMethod

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !isTestName(fn.Name.Name) {
			continue
		}

		if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
			continue
		}

		tests = append(tests, m.TestMethod{
			Name: fn.Name.Name,
			File: path,
			Line: fileSet.Position(fn.Pos()).Line,
		})
	}

	return tests
}

func isTestName(name string) bool {
	const prefix = "Test"

	if name == "TestMain" || len(name) < len(prefix) || name[:len(prefix)] != prefix {
		return false
	}

	if len(name) == len(prefix) {
		return true
	}

	r, _ := utf8.DecodeRuneInString(name[len(prefix):])

	return !unicode.IsLower(r)
}

func receiverName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return ""
	}

	expr := decl.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// isProperty matches accessors whose body is a single return of a name or
// field selection.
func isProperty(decl *ast.FuncDecl) bool {
	if len(decl.Body.List) != 1 {
		return false
	}

	ret, ok := decl.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return false
	}

	switch ret.Results[0].(type) {
	case *ast.Ident, *ast.SelectorExpr:
		return true
	}

	return false
}

func calledNames(body *ast.BlockStmt) []string {
	var names []string

	seen := make(map[string]bool)

	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		var name string

		switch fun := ast.Unparen(call.Fun).(type) {
		case *ast.Ident:
			name = fun.Name
		case *ast.SelectorExpr:
			name = fun.Sel.Name
		}

		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}

		return true
	})

	return names
}
