package discovery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/testutil"
)

func resolveAll(t *testing.T, model document.Model, paths ...string) []*document.FileHandle {
	t.Helper()
	handles := make([]*document.FileHandle, 0, len(paths))
	for _, p := range paths {
		h, ok := model.Resolve(p)
		if !ok {
			t.Fatalf("Failed to resolve %s", p)
		}
		handles = append(handles, h)
	}
	return handles
}

func TestFilter_ExtensionMatching(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"a.py":       "",
		"stubs.pyi":  "",
		"UPPER.PY":   "",
		"readme.txt": "",
		"noext":      "",
	})

	model := document.NewOSModel()
	filter := NewFilter(root, nil, false)

	cases := []struct {
		rel  string
		want bool
	}{
		{"a.py", true},
		{"stubs.pyi", true},
		{"UPPER.PY", true}, // extensions match case-insensitively
		{"readme.txt", false},
		{"noext", false},
	}
	for _, tc := range cases {
		h := resolveAll(t, model, filepath.Join(root, tc.rel))[0]
		if got := filter.Eligible(h); got != tc.want {
			t.Errorf("Eligible(%s) = %v, want %v", tc.rel, got, tc.want)
		}
	}
}

func TestFilter_SourceRootContainment(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"src/app.py":    "",
		"scripts/x.py":  "",
		"src/sub/y.py":  "",
		"outside.py":    "",
		"src/notes.txt": "",
	})

	model := document.NewOSModel()
	filter := NewFilter(root, []string{filepath.Join(root, "src")}, false)

	inRoot := resolveAll(t, model,
		filepath.Join(root, "src", "app.py"),
		filepath.Join(root, "src", "sub", "y.py"),
	)
	for _, h := range inRoot {
		if !filter.Eligible(h) {
			t.Errorf("Expected %s eligible inside source root", h.Path())
		}
	}

	outRoot := resolveAll(t, model,
		filepath.Join(root, "scripts", "x.py"),
		filepath.Join(root, "outside.py"),
	)
	for _, h := range outRoot {
		if filter.Eligible(h) {
			t.Errorf("Expected %s ineligible outside source roots", h.Path())
		}
	}
}

func TestFilter_CheckAllWidensToProject(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"src/app.py":   "",
		"scripts/x.py": "",
	})

	model := document.NewOSModel()
	filter := NewFilter(root, []string{filepath.Join(root, "src")}, true)

	h := resolveAll(t, model, filepath.Join(root, "scripts", "x.py"))[0]
	if !filter.Eligible(h) {
		t.Error("Expected check-all mode to accept any project-owned python file")
	}
}

func TestFilter_NarrowAfterDiscovery(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"a.py":       "",
		"b.pyi":      "",
		"notes.txt":  "",
		"data/d.csv": "",
	})

	model := document.NewOSModel()
	discovered, err := Discover(context.Background(), model, []string{root})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	filter := NewFilter(root, nil, false)
	eligible := filter.Narrow(discovered)
	if len(eligible) != 2 {
		t.Fatalf("Expected 2 eligible files, got %d", len(eligible))
	}
	for _, h := range eligible {
		ext := filepath.Ext(h.Path())
		if ext != ".py" && ext != ".pyi" {
			t.Errorf("Unexpected eligible file %s", h.Path())
		}
	}
}

func TestFilter_DefaultSourceRootIsProjectRoot(t *testing.T) {
	root := testutil.CreatePythonProject(t, map[string]string{
		"a.py": "",
	})
	other := testutil.CreatePythonProject(t, map[string]string{
		"b.py": "",
	})

	model := document.NewOSModel()
	filter := NewFilter(root, nil, false)

	inside := resolveAll(t, model, filepath.Join(root, "a.py"))[0]
	if !filter.Eligible(inside) {
		t.Error("Expected project root to act as the default source root")
	}

	outside := resolveAll(t, model, filepath.Join(other, "b.py"))[0]
	if filter.Eligible(outside) {
		t.Error("Expected file outside the project to be ineligible")
	}
}
