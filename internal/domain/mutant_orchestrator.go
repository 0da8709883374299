package domain

import (
	"go/ast"
	"go/token"
	"log/slog"

	"mutest.dev/pkg/mutest/internal/domain/arid"
	"mutest.dev/pkg/mutest/internal/domain/mutagens"
	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// MutantOrchestrator walks a function and collects the mutants proposed by
// its mutators. Mutate accumulates into a batch that GetLatestMutantBatch
// drains.
type MutantOrchestrator interface {
	Mutate(tree *syntax.Tree, classification *arid.Classification, node ast.Node)
	GetLatestMutantBatch() []*m.Mutant
}

type mutantOrchestrator struct {
	mutators    []mutagens.Mutator
	mutantCount int
	batch       []m.Mutation

	tree           *syntax.Tree
	classification *arid.Classification
}

// NewMutantOrchestrator creates a MutantOrchestrator. Without mutators the
// default set is used.
func NewMutantOrchestrator(mutators ...mutagens.Mutator) MutantOrchestrator {
	if len(mutators) == 0 {
		mutators = mutagens.Defaults()
	}

	return &mutantOrchestrator{mutators: mutators}
}

func (mo *mutantOrchestrator) Mutate(tree *syntax.Tree, classification *arid.Classification, node ast.Node) {
	if tree == nil || node == nil {
		return
	}

	mo.tree = tree
	mo.classification = classification

	mo.mutate(node)
}

// GetLatestMutantBatch numbers the collected mutations and resets the batch.
// A method call removal sharing its line with another mutation is dropped.
func (mo *mutantOrchestrator) GetLatestMutantBatch() []*m.Mutant {
	perLine := make(map[int]int)
	for _, mutation := range mo.batch {
		perLine[mutation.Line]++
	}

	mutants := make([]*m.Mutant, 0, len(mo.batch))

	for _, mutation := range mo.batch {
		if mutation.Type == m.MutatorMethodCall && perLine[mutation.Line] > 1 {
			continue
		}

		mo.mutantCount++
		mutants = append(mutants, &m.Mutant{
			ID:       mo.mutantCount,
			Mutation: mutation,
			Status:   m.NotRun,
		})
	}

	mo.batch = nil

	return mutants
}

func (mo *mutantOrchestrator) mutate(node ast.Node) {
	if node == nil || mo.isArid(node) {
		return
	}

	switch n := node.(type) {
	case *ast.ExprStmt:
		if call, ok := n.X.(*ast.CallExpr); ok && len(call.Args) == 0 {
			mo.addFirstMutant(call)
			return
		}

		mo.findMutants(n.X)
	case *ast.AssignStmt:
		if n.Tok == token.DEFINE {
			mo.findMutantsIn(n.Rhs)
			return
		}

		// Assignments are mutated as whole statements.
		mo.findMutants(n)
	case *ast.IncDecStmt:
		mo.findMutants(n)
	case *ast.ReturnStmt:
		mo.findMutantsIn(n.Results)
	case *ast.DeclStmt:
		mo.mutateDeclaration(n)
	case *ast.SendStmt:
		mo.findMutants(n.Value)
	case *ast.GoStmt:
		mo.findMutants(n.Call)
	case *ast.DeferStmt:
		mo.findMutants(n.Call)
	case *ast.IfStmt:
		mo.mutateIf(n)
	case *ast.LabeledStmt:
		mo.mutate(n.Stmt)
	case *ast.BlockStmt:
		mo.addBlockMutants(n)

		for _, stmt := range n.List {
			mo.mutate(stmt)
		}
	case ast.Stmt:
		mo.mutateStatement(n)
	default:
		for _, child := range syntax.Children(node) {
			mo.mutate(child)
		}
	}
}

func (mo *mutantOrchestrator) mutateDeclaration(stmt *ast.DeclStmt) {
	decl, ok := stmt.Decl.(*ast.GenDecl)
	if !ok || decl.Tok == token.TYPE {
		return
	}

	for _, spec := range decl.Specs {
		if value, ok := spec.(*ast.ValueSpec); ok {
			mo.findMutantsIn(value.Values)
		}
	}
}

// mutateIf mutates the condition, then the else branch, then the then
// branch. An if statement with an empty then branch is not mutated.
func (mo *mutantOrchestrator) mutateIf(stmt *ast.IfStmt) {
	if stmt.Body == nil || len(stmt.Body.List) == 0 {
		return
	}

	if stmt.Init != nil {
		mo.mutate(stmt.Init)
	}

	mo.findMutants(stmt.Cond)

	if stmt.Else != nil {
		mo.mutate(stmt.Else)
	}

	mo.mutate(stmt.Body)
}

// mutateStatement handles loops, switches and selects: header expressions
// are mutated in place and nested statements are walked.
func (mo *mutantOrchestrator) mutateStatement(stmt ast.Stmt) {
	for _, child := range syntax.Children(stmt) {
		switch c := child.(type) {
		case *ast.BlockStmt:
			if isClauseBody(stmt) {
				for _, clause := range c.List {
					mo.mutate(clause)
				}

				continue
			}

			mo.mutate(c)
		case ast.Stmt:
			mo.mutate(c)
		default:
			mo.findMutants(c)
		}
	}
}

// isClauseBody reports statements whose block only holds case clauses;
// emptying such a block is not a statement-block mutation.
func isClauseBody(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		return true
	}

	return false
}

func (mo *mutantOrchestrator) addBlockMutants(block *ast.BlockStmt) {
	for _, mutator := range mo.mutators {
		mo.batch = append(mo.batch, mo.apply(mutator, block)...)
	}
}

// addFirstMutant keeps only the first mutation proposed for a call statement
// without arguments.
func (mo *mutantOrchestrator) addFirstMutant(call *ast.CallExpr) {
	before := len(mo.batch)

	mo.findMutants(call)

	if len(mo.batch) > before+1 {
		mo.batch = mo.batch[:before+1]
	}
}

func (mo *mutantOrchestrator) findMutantsIn(exprs []ast.Expr) {
	for _, expr := range exprs {
		mo.findMutants(expr)
	}
}

// findMutants applies every mutator to node and its descendants, skipping
// arid subtrees.
func (mo *mutantOrchestrator) findMutants(node ast.Node) {
	if node == nil || mo.isArid(node) {
		return
	}

	for _, mutator := range mo.mutators {
		mo.batch = append(mo.batch, mo.apply(mutator, node)...)
	}

	for _, child := range syntax.Children(node) {
		mo.findMutants(child)
	}
}

// isArid consults the classification for statements and expressions only.
// Declarations hold no behavior of their own but contain live bodies.
func (mo *mutantOrchestrator) isArid(node ast.Node) bool {
	switch node.(type) {
	case ast.Stmt, ast.Expr:
		return mo.classification.IsArid(node)
	}

	return false
}

// apply evaluates one mutator on one node. A panicking mutator loses its
// mutations for that node only.
func (mo *mutantOrchestrator) apply(mutator mutagens.Mutator, node ast.Node) (mutations []m.Mutation) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Mutator failed",
				"mutator", mutator.Description(),
				"node", syntax.Kind(node),
				"line", mo.tree.Line(node),
				"panic", r,
			)

			mutations = nil
		}
	}()

	for mutation := range mutator.ApplyMutations(mo.tree, node) {
		mutations = append(mutations, mutation)
	}

	return mutations
}
