package domain

import (
	"go/ast"
	"strings"
	"unicode"

	"mutest.dev/pkg/mutest/internal/domain/syntax"
	m "mutest.dev/pkg/mutest/internal/model"
)

const ignoreDirective = "mutest:ignore"

type ignoreRule struct {
	all   bool
	types map[m.MutatorType]struct{}
}

func (r ignoreRule) ignores(mutatorType m.MutatorType) bool {
	if r.all {
		return true
	}

	_, ok := r.types[mutatorType]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.types) == 0
}

func (r *ignoreRule) merge(src ignoreRule) {
	if src.all {
		r.all = true
		r.types = nil

		return
	}

	if r.all || len(src.types) == 0 {
		return
	}

	if r.types == nil {
		r.types = make(map[m.MutatorType]struct{}, len(src.types))
	}

	for name := range src.types {
		r.types[name] = struct{}{}
	}
}

// parseIgnoreDirective reads "//mutest:ignore" optionally followed by a
// comma separated list of mutator types.
func parseIgnoreDirective(text string) (ignoreRule, bool) {
	s := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "/*"), "*/"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(s, ignoreDirective))
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	rule := ignoreRule{types: make(map[m.MutatorType]struct{})}

	for _, part := range strings.Split(rest, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			rule.types[m.MutatorType(name)] = struct{}{}
		}
	}

	if len(rule.types) == 0 {
		return ignoreRule{all: true}, true
	}

	return rule, true
}

// ignoreIndex holds the ignore annotations of a file. A directive above the
// package clause covers the file, one in a function's doc comment covers the
// function, any other covers its own line or, when alone on its line, the
// next one.
type ignoreIndex struct {
	file  ignoreRule
	funcs map[*ast.FuncDecl]ignoreRule
	lines map[int]ignoreRule
}

func buildIgnoreIndex(tree *syntax.Tree) ignoreIndex {
	index := ignoreIndex{
		funcs: make(map[*ast.FuncDecl]ignoreRule),
		lines: make(map[int]ignoreRule),
	}

	docGroups := make(map[*ast.CommentGroup]bool)

	for _, decl := range tree.FuncDecls() {
		if decl.Doc == nil {
			continue
		}

		docGroups[decl.Doc] = true

		if rule := collectRule(decl.Doc); !rule.empty() {
			index.funcs[decl] = rule
		}
	}

	for _, group := range tree.File.Comments {
		if group.End() < tree.File.Package {
			index.file.merge(collectRule(group))
			continue
		}

		if docGroups[group] {
			continue
		}

		for _, comment := range group.List {
			rule, ok := parseIgnoreDirective(comment.Text)
			if !ok {
				continue
			}

			pos := tree.Fset.PositionFor(comment.Slash, true)

			line := pos.Line
			if startsLine(tree.Src, pos.Offset) {
				line++
			}

			current := index.lines[line]
			current.merge(rule)
			index.lines[line] = current
		}
	}

	return index
}

func collectRule(group *ast.CommentGroup) ignoreRule {
	var rule ignoreRule

	for _, comment := range group.List {
		if r, ok := parseIgnoreDirective(comment.Text); ok {
			rule.merge(r)
		}
	}

	return rule
}

// startsLine reports whether only whitespace precedes offset on its line.
func startsLine(src []byte, offset int) bool {
	if offset < 0 || offset > len(src) {
		return false
	}

	for i := offset - 1; i >= 0 && src[i] != '\n'; i-- {
		if !unicode.IsSpace(rune(src[i])) {
			return false
		}
	}

	return true
}

// ignores reports whether the mutant of method is covered by an annotation.
func (idx ignoreIndex) ignores(method *m.MethodDetail, mutant *m.Mutant) bool {
	mutatorType := mutant.Mutation.Type

	if idx.file.ignores(mutatorType) {
		return true
	}

	if rule, ok := idx.funcs[method.Decl]; ok && rule.ignores(mutatorType) {
		return true
	}

	rule, ok := idx.lines[mutant.Mutation.Line]

	return ok && rule.ignores(mutatorType)
}
