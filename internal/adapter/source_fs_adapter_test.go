package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "mutest.dev/pkg/mutest/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	root := t.TempDir()
	top := filepath.Join(root, "main.go")
	nestedDir := filepath.Join(root, "nested")
	child := filepath.Join(nestedDir, "child.go")

	writeTestFile(t, top, "package main\n")
	mustMkdir(t, nestedDir)
	writeTestFile(t, child, "package nested\n")

	tests := []struct {
		name      string
		recursive bool
		want      []string
		forbidden []string
	}{
		{name: "flat", recursive: false, want: []string{top}, forbidden: []string{nestedDir, child}},
		{name: "recursive", recursive: true, want: []string{top, nestedDir, child}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string

			err := NewLocalSourceFSAdapter().Walk(context.Background(), m.Path(root), tt.recursive, func(path string, _ os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				visited = append(visited, path)

				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}

			for _, path := range tt.want {
				if !containsPath(visited, path) {
					t.Fatalf("Walk() did not visit %s, visited %v", path, visited)
				}
			}

			for _, path := range tt.forbidden {
				if containsPath(visited, path) {
					t.Fatalf("Walk() visited %s", path)
				}
			}
		})
	}
}

func TestLocalSourceFSAdapter_ReadAndHash(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	content := []byte("package main\nfunc main() {}\n")
	path := filepath.Join(t.TempDir(), "main.go")
	writeTestBytes(t, path, content)

	got, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != string(content) {
		t.Fatalf("ReadFile() = %q, want %q", got, content)
	}

	hash, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	if want := fmt.Sprintf("%x", sha256.Sum256(content)); hash != want {
		t.Fatalf("HashFile() = %s, want %s", hash, want)
	}

	if _, err := adapter.ReadFile(context.Background(), m.Path(path+".missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadFile() on missing file error = %v, want ErrNotExist", err)
	}
}

func TestLocalSourceFSAdapter_DetectTestFiles(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	source := filepath.Join(root, "calc.go")
	testFile := filepath.Join(root, "calc_test.go")
	otherTest := filepath.Join(root, "api_test.go")
	writeTestFile(t, source, "package calc\n")
	writeTestFile(t, testFile, "package calc\n")
	writeTestFile(t, otherTest, "package calc_test\n")

	got, err := adapter.DetectTestFiles(context.Background(), m.Path(source))
	if err != nil {
		t.Fatalf("DetectTestFiles() error = %v", err)
	}

	if len(got) != 2 || got[0] != m.Path(otherTest) || got[1] != m.Path(testFile) {
		t.Fatalf("DetectTestFiles() = %v, want [%s %s]", got, otherTest, testFile)
	}

	t.Run("returns nothing for a test file", func(t *testing.T) {
		got, err := adapter.DetectTestFiles(context.Background(), m.Path(testFile))
		if err != nil {
			t.Fatalf("DetectTestFiles() error = %v", err)
		}

		if len(got) != 0 {
			t.Fatalf("DetectTestFiles() = %v, want none", got)
		}
	})

	t.Run("returns nothing when no tests exist", func(t *testing.T) {
		dir := t.TempDir()
		lonely := filepath.Join(dir, "other.go")
		writeTestFile(t, lonely, "package main\n")

		got, err := adapter.DetectTestFiles(context.Background(), m.Path(lonely))
		if err != nil {
			t.Fatalf("DetectTestFiles() error = %v", err)
		}

		if len(got) != 0 {
			t.Fatalf("DetectTestFiles() = %v, want none", got)
		}
	})
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	writeTestFile(t, path, "package main\n")

	info, err := adapter.FileInfo(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}

	dirInfo, err := adapter.FileInfo(context.Background(), m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !dirInfo.IsDir() {
		t.Fatalf("FileInfo() reported directory as file")
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	goModDir := filepath.Join(root, "project")
	mustMkdir(t, goModDir)
	goModPath := filepath.Join(goModDir, "go.mod")
	writeTestFile(t, goModPath, "module example.com/project\n")

	subDir := filepath.Join(goModDir, "sub", "pkg")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := adapter.FindProjectRoot(context.Background(), m.Path(filepath.Join(subDir, "file.go")))
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}

	if got != m.Path(goModDir) {
		t.Fatalf("FindProjectRoot() = %s, want %s", got, goModDir)
	}
}

func TestLocalSourceFSAdapter_CreateTempDirAndRemoveAll(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	tmp, err := adapter.CreateTempDir(context.Background(), "mutest-test-*")
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}

	if fi, err := os.Stat(string(tmp)); err != nil || !fi.IsDir() {
		t.Fatalf("CreateTempDir() did not create directory, stat err=%v, isDir=%v", err, err == nil && fi.IsDir())
	}

	filePath := filepath.Join(string(tmp), "file.go")
	writeTestFile(t, filePath, "package main\n")

	if err := adapter.RemoveAll(context.Background(), tmp); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	if _, err := os.Stat(string(tmp)); !os.IsNotExist(err) {
		t.Fatalf("RemoveAll() did not remove directory, stat err=%v", err)
	}
}

func TestLocalSourceFSAdapter_CopyDirAndWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	src := t.TempDir()
	dst := t.TempDir()

	subDir := filepath.Join(src, "sub")
	mustMkdir(t, subDir)
	filePath := filepath.Join(subDir, "main.go")
	writeTestFile(t, filePath, "package main\n")

	// Additional file written via adapter.WriteFile
	extraFile := filepath.Join(src, "extra.go")
	if err := adapter.WriteFile(context.Background(), m.Path(extraFile), []byte("package extra\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := adapter.CopyDir(context.Background(), m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	// Check that files exist in destination
	if _, err := os.Stat(filepath.Join(dst, "sub", "main.go")); err != nil {
		t.Fatalf("CopyDir() did not copy nested file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "extra.go")); err != nil {
		t.Fatalf("CopyDir() did not copy top-level file: %v", err)
	}
}

func TestLocalSourceFSAdapter_CopyDirSkipsSlots(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	src := t.TempDir()
	dst := t.TempDir()

	for _, dir := range []string{".git", "calc" + SlotSuffix + "0", "calc"} {
		mustMkdir(t, filepath.Join(src, dir))
		writeTestFile(t, filepath.Join(src, dir, "file.go"), "package calc\n")
	}

	if err := adapter.CopyDir(context.Background(), m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "calc", "file.go")); err != nil {
		t.Fatalf("CopyDir() did not copy package: %v", err)
	}

	for _, skipped := range []string{".git", "calc" + SlotSuffix + "0"} {
		if _, err := os.Stat(filepath.Join(dst, skipped)); !os.IsNotExist(err) {
			t.Fatalf("CopyDir() copied %s, stat err=%v", skipped, err)
		}
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/sub/dir/file.go")

	rel, err := adapter.RelPath(context.Background(), base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("sub", "dir", "file.go") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("sub", "dir", "file.go"))
	}

	joined := adapter.JoinPath(context.Background(), "/tmp", "project", "sub", "file.go")
	if string(joined) != filepath.Join("/tmp", "project", "sub", "file.go") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "sub", "file.go"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
