package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pmezard/go-difflib/difflib"

	m "mutest.dev/pkg/mutest/internal/model"
)

// ChangeAdapter reports which lines of a file changed since a revision.
type ChangeAdapter interface {
	// ChangedLines returns the working-tree line numbers of path that differ
	// from rev, in ascending order. A file unknown to rev is changed entirely.
	ChangedLines(ctx context.Context, path m.Path, rev string) ([]int, error)
}

// GitChangeAdapter implements ChangeAdapter on top of a git repository.
type GitChangeAdapter struct{}

// NewGitChangeAdapter constructs a GitChangeAdapter.
func NewGitChangeAdapter() *GitChangeAdapter {
	return &GitChangeAdapter{}
}

// ChangedLines implements ChangeAdapter.
func (a *GitChangeAdapter) ChangedLines(ctx context.Context, path m.Path, rev string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(string(path))
	if err != nil {
		return nil, err
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(absPath), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository for %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	root, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}

	previous := ""

	file, err := commit.File(filepath.ToSlash(rel))

	switch {
	case errors.Is(err, object.ErrFileNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s at %s: %w", rel, rev, err)
	default:
		previous, err = file.Contents()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at %s: %w", rel, rev, err)
		}
	}

	current, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	return diffLines(previous, string(current)), nil
}

// diffLines returns the lines of current that were inserted or replaced
// relative to previous. A deletion marks the line that now follows it.
func diffLines(previous, current string) []int {
	currentLines := splitLines(current)
	matcher := difflib.NewMatcher(splitLines(previous), currentLines)

	var lines []int

	seen := make(map[int]bool)
	mark := func(line int) {
		if line < 1 || line > len(currentLines) || seen[line] {
			return
		}

		seen[line] = true
		lines = append(lines, line)
	}

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r', 'i':
			for j := op.J1; j < op.J2; j++ {
				mark(j + 1)
			}
		case 'd':
			mark(op.J1 + 1)
		}
	}

	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
