// Package model defines the data structures for mutation testing.
package model

import (
	"go/ast"
	"strings"
)

// Path represents a file system path.
type Path string

// TestMethod is a top-level Go test function.
type TestMethod struct {
	Name string `json:"name"`
	File Path   `json:"file"`
	Line int    `json:"line"`
}

// MethodDetail describes one function declared in a source file along with
// the mutants generated for it and the tests that exercise it.
type MethodDetail struct {
	Name     string
	Receiver string
	Decl     *ast.FuncDecl

	StartLine int
	EndLine   int

	// Coverage is nil when no coverage data is available for the method.
	Coverage *Coverage

	// IsProperty marks accessor-like functions whose body only returns a field.
	IsProperty bool

	// ChildMethodNames lists the functions called from this method's body.
	ChildMethodNames []string

	// ParentMethodNames lists sibling methods through which tests were associated.
	ParentMethodNames []string

	Mutants []*Mutant
	Tests   []TestMethod
}

// QualifiedName returns Recv.Method for methods and the plain name for functions.
func (md *MethodDetail) QualifiedName() string {
	if md.Receiver == "" {
		return md.Name
	}

	return md.Receiver + "." + md.Name
}

// HasTest reports whether the test is already associated with the method.
func (md *MethodDetail) HasTest(name string) bool {
	for _, test := range md.Tests {
		if test.Name == name {
			return true
		}
	}

	return false
}

// AddTests associates tests with the method, ignoring duplicates.
func (md *MethodDetail) AddTests(tests ...TestMethod) {
	for _, test := range tests {
		if !md.HasTest(test.Name) {
			md.Tests = append(md.Tests, test)
		}
	}
}

// SourceClass is one Go source file under mutation together with its tests.
type SourceClass struct {
	Path       Path
	TestPaths  []Path
	Package    string
	ImportPath string

	// Dir is the directory holding the source file.
	Dir Path

	// ModuleRoot is the directory holding the go.mod that owns the file.
	ModuleRoot Path

	Content []byte

	Methods []*MethodDetail
	Tests   []TestMethod
}

// FullyQualifiedName returns the key coverage profiles use for the file.
func (sc *SourceClass) FullyQualifiedName() string {
	base := string(sc.Path)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	if sc.ImportPath == "" {
		return base
	}

	return sc.ImportPath + "/" + base
}

// Method returns the method with the given qualified or plain name.
func (sc *SourceClass) Method(name string) *MethodDetail {
	for _, method := range sc.Methods {
		if method.QualifiedName() == name || method.Name == name {
			return method
		}
	}

	return nil
}
