package domain

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/tools/go/ast/astutil"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

const slotFilePerm = 0o600

// moduleFiles stay out of slots; a copied go.mod would turn the slot into a
// nested module the batch build cannot reach.
var moduleFiles = map[string]bool{
	"go.mod":      true,
	"go.sum":      true,
	"go.work":     true,
	"go.work.sum": true,
}

// Slot is an isolated copy of the package under mutation. Each slot is its
// own Go package nested in the package directory of a module copy, so slots
// compile independently.
type Slot struct {
	Index int
	// Root is the module copy every go command runs in.
	Root m.Path
	Dir  m.Path
	// File is the copy of the mutated source file.
	File m.Path
	// Package is the relative package pattern passed to go commands.
	Package string
	// ImportPath is empty when the module path is unknown.
	ImportPath string
	Original   []byte
}

// Workspace hands out slots and writes mutated sources into them.
type Workspace interface {
	// Slots returns count slots for the class, creating the missing ones.
	Slots(ctx context.Context, class *m.SourceClass, count int) ([]Slot, error)
	// Write replaces the slot's source file; nil content restores the original.
	Write(ctx context.Context, slot Slot, content []byte) error
	// Close removes every module copy.
	Close(ctx context.Context) error
}

type workspace struct {
	adapter.SourceFSAdapter

	mu     sync.Mutex
	copies map[m.Path]m.Path
	slots  map[m.Path][]Slot
}

// NewWorkspace creates a Workspace that copies modules into temporary
// directories on first use.
func NewWorkspace(fsAdapter adapter.SourceFSAdapter) Workspace {
	return &workspace{
		SourceFSAdapter: fsAdapter,
		copies:          make(map[m.Path]m.Path),
		slots:           make(map[m.Path][]Slot),
	}
}

func (w *workspace) Slots(ctx context.Context, class *m.SourceClass, count int) ([]Slot, error) {
	if class == nil {
		return nil, m.NewInputError("workspace", fmt.Errorf("nil class: %w", m.ErrInvalidInput))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	existing := w.slots[class.Path]
	if len(existing) >= count {
		return existing[:count], nil
	}

	root, err := w.moduleCopy(ctx, class)
	if err != nil {
		return nil, err
	}

	for index := len(existing); index < count; index++ {
		slot, err := w.createSlot(ctx, root, class, index)
		if err != nil {
			return nil, err
		}

		existing = append(existing, slot)
	}

	w.slots[class.Path] = existing

	return existing, nil
}

func (w *workspace) Write(ctx context.Context, slot Slot, content []byte) error {
	if content == nil {
		content = slot.Original
	}

	if err := w.WriteFile(ctx, slot.File, content, slotFilePerm); err != nil {
		return fmt.Errorf("failed to write slot %d: %w", slot.Index, err)
	}

	return nil
}

func (w *workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error

	for original, copied := range w.copies {
		if err := w.RemoveAll(ctx, copied); err != nil {
			slog.Warn("Failed to remove module copy", "module", original, "path", copied, "error", err)

			if firstErr == nil {
				firstErr = err
			}
		}
	}

	w.copies = make(map[m.Path]m.Path)
	w.slots = make(map[m.Path][]Slot)

	return firstErr
}

func (w *workspace) moduleCopy(ctx context.Context, class *m.SourceClass) (m.Path, error) {
	moduleRoot := class.ModuleRoot
	if moduleRoot == "" {
		moduleRoot = class.Dir
	}

	if copied, ok := w.copies[moduleRoot]; ok {
		return copied, nil
	}

	copied, err := w.CreateTempDir(ctx, "mutest-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}

	if err := w.CopyDir(ctx, moduleRoot, copied); err != nil {
		_ = w.RemoveAll(ctx, copied)
		return "", fmt.Errorf("failed to copy module %s: %w", moduleRoot, err)
	}

	slog.Debug("Copied module", "module", moduleRoot, "workspace", copied)

	w.copies[moduleRoot] = copied

	return copied, nil
}

// createSlot copies the package files of class into
// <package dir>/<package base>_mutest_src_<index> inside the module copy.
func (w *workspace) createSlot(ctx context.Context, root m.Path, class *m.SourceClass, index int) (Slot, error) {
	moduleRoot := class.ModuleRoot
	if moduleRoot == "" {
		moduleRoot = class.Dir
	}

	relDir, err := w.RelPath(ctx, moduleRoot, class.Dir)
	if err != nil {
		return Slot{}, fmt.Errorf("failed to locate package %s: %w", class.Dir, err)
	}

	base := filepath.Base(string(class.Dir))
	if relDir == "." {
		base = class.Package
	}

	slotName := base + adapter.SlotSuffix + strconv.Itoa(index)
	packageDir := w.JoinPath(ctx, string(root), string(relDir))
	slotDir := w.JoinPath(ctx, string(packageDir), slotName)

	slot := Slot{
		Index:   index,
		Root:    root,
		Dir:     slotDir,
		File:    w.JoinPath(ctx, string(slotDir), filepath.Base(string(class.Path))),
		Package: "./" + filepath.ToSlash(filepath.Join(string(relDir), slotName)),
	}

	if class.ImportPath != "" {
		slot.ImportPath = class.ImportPath + "/" + slotName
	}

	err = w.Walk(ctx, packageDir, false, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || !info.Mode().IsRegular() || moduleFiles[info.Name()] {
			return nil
		}

		content, err := w.ReadFile(ctx, m.Path(path))
		if err != nil {
			return err
		}

		if strings.HasSuffix(path, "_test.go") && class.ImportPath != "" {
			content, err = rewriteImport(path, content, class.ImportPath, slot.ImportPath)
			if err != nil {
				return err
			}
		}

		return w.WriteFile(ctx, w.JoinPath(ctx, string(slotDir), info.Name()), content, slotFilePerm)
	})
	if err != nil {
		return Slot{}, fmt.Errorf("failed to populate slot %d: %w", index, err)
	}

	testdata := w.JoinPath(ctx, string(packageDir), "testdata")
	if info, err := w.FileInfo(ctx, testdata); err == nil && info.IsDir() {
		if err := w.CopyDir(ctx, testdata, w.JoinPath(ctx, string(slotDir), "testdata")); err != nil {
			return Slot{}, fmt.Errorf("failed to copy testdata into slot %d: %w", index, err)
		}
	}

	slot.Original, err = w.ReadFile(ctx, slot.File)
	if err != nil {
		return Slot{}, fmt.Errorf("failed to read slot %d source: %w", index, err)
	}

	return slot, nil
}

// rewriteImport points external test packages at the slot copy instead of
// the original package.
func rewriteImport(filename string, src []byte, oldPath, newPath string) ([]byte, error) {
	if !bytes.Contains(src, []byte(strconv.Quote(oldPath))) {
		return src, nil
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if !astutil.RewriteImport(fset, file, oldPath, newPath) {
		return src, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", filename, err)
	}

	return buf.Bytes(), nil
}
