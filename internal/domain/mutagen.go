// Package domain contains the core mutation testing workflow and logic.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mutest.dev/pkg/mutest/internal/adapter"
	"mutest.dev/pkg/mutest/internal/domain/arid"
	"mutest.dev/pkg/mutest/internal/domain/mutagens"
	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

// Class is a loaded source file ready for mutation.
type Class struct {
	Source *m.SourceClass
	Tree   *syntax.Tree
}

// Mutagen loads classes and generates their mutants.
type Mutagen interface {
	// LoadClass parses the source file, its tests and its package. A missing
	// or malformed file is reported as an InputError.
	LoadClass(ctx context.Context, path m.Path) (*Class, error)

	// GenerateMutants fills the Mutants of every method of class. Mutants
	// covered by an ignore annotation are marked Skipped.
	GenerateMutants(ctx context.Context, class *Class) error
}

type mutagen struct {
	adapter.GoFileAdapter
	adapter.SourceFSAdapter

	classifier arid.Classifier
	mutators   []mutagens.Mutator
}

// NewMutagen creates a new Mutagen instance. Without mutators the default
// set is used.
func NewMutagen(goFileAdapter adapter.GoFileAdapter, sourceFSAdapter adapter.SourceFSAdapter, classifier arid.Classifier, mutators ...mutagens.Mutator) Mutagen {
	if classifier == nil {
		classifier = arid.NewClassifier()
	}

	return &mutagen{
		GoFileAdapter:   goFileAdapter,
		SourceFSAdapter: sourceFSAdapter,
		classifier:      classifier,
		mutators:        mutators,
	}
}

func (mg *mutagen) LoadClass(ctx context.Context, path m.Path) (*Class, error) {
	target := string(path)

	if filepath.Ext(target) != ".go" || strings.HasSuffix(target, "_test.go") {
		return nil, m.NewInputError(target, errors.New("not a Go source file"))
	}

	info, err := mg.LoadPackage(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if errors.Is(err, os.ErrNotExist) {
			return nil, m.NewInputError(target, err)
		}

		return nil, m.NewInputError(target, fmt.Errorf("failed to load: %w", err))
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, m.NewInputError(target, err)
	}

	testPaths, err := mg.DetectTestFiles(ctx, m.Path(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to detect tests for %s: %w", target, err)
	}

	source := &m.SourceClass{
		Path:       m.Path(abs),
		TestPaths:  testPaths,
		Package:    info.Name,
		ImportPath: info.ImportPath,
		Dir:        m.Path(filepath.Dir(abs)),
		ModuleRoot: info.ModuleRoot,
		Content:    info.Tree.Src,
		Methods:    mg.ExtractMethods(info.Tree),
		Tests:      mg.loadTests(ctx, testPaths),
	}

	slog.Debug("Loaded class",
		"class", source.FullyQualifiedName(),
		"methods", len(source.Methods),
		"tests", len(source.Tests),
		"typed", info.Tree.Info != nil,
	)

	return &Class{Source: source, Tree: info.Tree}, nil
}

// loadTests collects the test functions of every companion test file. An
// unparsable test file contributes nothing.
func (mg *mutagen) loadTests(ctx context.Context, testPaths []m.Path) []m.TestMethod {
	var tests []m.TestMethod

	for _, testPath := range testPaths {
		content, err := mg.ReadFile(ctx, testPath)
		if err != nil {
			slog.Warn("Failed to read test file", "path", testPath, "error", err)
			continue
		}

		tree, err := syntax.Parse(string(testPath), content)
		if err != nil {
			slog.Warn("Failed to parse test file", "path", testPath, "error", err)
			continue
		}

		tests = append(tests, mg.ExtractTests(tree.Fset, tree.File, testPath)...)
	}

	return tests
}

func (mg *mutagen) GenerateMutants(ctx context.Context, class *Class) error {
	if class == nil || class.Tree == nil || class.Source == nil {
		return m.NewInputError("class", m.ErrInvalidInput)
	}

	classification, err := mg.classifier.Classify(class.Tree, class.Tree.File)
	if err != nil {
		return err
	}

	orchestrator := NewMutantOrchestrator(mg.mutators...)
	ignore := buildIgnoreIndex(class.Tree)

	for _, method := range class.Source.Methods {
		if err := ctx.Err(); err != nil {
			return err
		}

		orchestrator.Mutate(class.Tree, classification, method.Decl)

		method.Mutants = orchestrator.GetLatestMutantBatch()

		for _, mutant := range method.Mutants {
			mutant.Method = method.QualifiedName()

			if ignore.ignores(method, mutant) {
				mutant.SetStatus(m.Skipped)
			}
		}

		slog.Debug("Generated mutants", "method", method.QualifiedName(), "count", len(method.Mutants))
	}

	return nil
}
