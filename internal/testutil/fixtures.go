package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/typescan/internal/document"
)

// CreatePythonProject creates a temporary directory populated from files:
// a map of relative path to content. Parent directories are created as
// needed. Returns the project root. The directory is cleaned up via
// t.TempDir().
func CreatePythonProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", rel, err)
		}
	}
	return root
}

// GeneratePythonTree creates a nested package structure under dir with
// filesPerDir modules at each level, down to config.MaxDepth. Every
// directory gets an __init__.py so the tree looks like a real package.
func GeneratePythonTree(dir string, depth, filesPerDir int, config TestConfig) error {
	if depth > config.MaxDepth {
		return nil
	}

	init := filepath.Join(dir, "__init__.py")
	if err := os.WriteFile(init, []byte(""), 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", init, err)
	}

	for i := 0; i < filesPerDir; i++ {
		name := filepath.Join(dir, fmt.Sprintf("module_%d_%d.py", depth, i))
		if err := os.WriteFile(name, []byte(PythonSource(i+depth+1)), 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}

	if depth < config.MaxDepth {
		for i := 0; i < 2; i++ {
			subdir := filepath.Join(dir, fmt.Sprintf("pkg_%d_%d", depth, i))
			if err := os.MkdirAll(subdir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", subdir, err)
			}
			if err := GeneratePythonTree(subdir, depth+1, filesPerDir, config); err != nil {
				return err
			}
		}
	}

	return nil
}

// CreatePythonProjectWithTree creates a temporary project with a nested
// package structure according to the configuration.
func CreatePythonProjectWithTree(t *testing.T, config TestConfig, filesPerDir int) string {
	t.Helper()

	root := t.TempDir()
	if err := GeneratePythonTree(root, 0, filesPerDir, config); err != nil {
		t.Fatalf("Failed to generate python tree: %v", err)
	}
	return root
}

// PythonSource returns a small deterministic Python module with n function
// definitions. Content only needs to be plausible, not type-correct.
func PythonSource(n int) string {
	var b strings.Builder
	b.WriteString("import os\n\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "def func_%d(x: int) -> int:\n    return x + %d\n\n", i, i)
	}
	return b.String()
}

// NewModelWithEdits builds an OverlayModel over the on-disk project and
// applies the given unsaved edits (relative path to buffer content).
// Returns the model plus the resolved handle for each edited file.
func NewModelWithEdits(t *testing.T, root string, edits map[string]string) (*document.OverlayModel, map[string]*document.FileHandle) {
	t.Helper()

	model := document.NewOverlayModel(document.NewOSModel())
	handles := make(map[string]*document.FileHandle, len(edits))
	for rel, text := range edits {
		path := filepath.Join(root, filepath.FromSlash(rel))
		model.SetText(path, text)
		h, ok := model.Resolve(path)
		if !ok {
			t.Fatalf("Failed to resolve edited file %s", path)
		}
		handles[rel] = h
	}
	return model, handles
}

// MustResolve resolves rel under root through model, failing the test if
// the path is unknown.
func MustResolve(t *testing.T, model document.Model, root, rel string) *document.FileHandle {
	t.Helper()

	h, ok := model.Resolve(filepath.Join(root, filepath.FromSlash(rel)))
	if !ok {
		t.Fatalf("Failed to resolve %s under %s", rel, root)
	}
	return h
}

// CountFiles recursively counts all regular files in a directory.
func CountFiles(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}
