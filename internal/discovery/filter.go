package discovery

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"

	"github.com/yourusername/typescan/internal/document"
)

// DefaultExtensions are the source file extensions the external checker
// understands.
var DefaultExtensions = []string{".py", ".pyi"}

// Filter decides which discovered files are in scope for a scan.
// Eligibility depends only on the file's extension and on containment in a
// recognized directory; symlinked or generated files get no special
// treatment.
type Filter struct {
	projectRoot string
	sourceRoots []string
	extensions  []string
	checkAll    bool
}

// NewFilter creates a Filter rooted at projectRoot.
//
// Parameters:
//   - projectRoot: the directory the host recognizes as the project
//   - sourceRoots: directories holding checkable sources; empty means the
//     project root itself is the only source root
//   - checkAll: widens containment from the source roots to any
//     project-owned directory ("check all files" mode)
func NewFilter(projectRoot string, sourceRoots []string, checkAll bool) *Filter {
	if len(sourceRoots) == 0 {
		sourceRoots = []string{projectRoot}
	}
	return &Filter{
		projectRoot: filepath.Clean(projectRoot),
		sourceRoots: lo.Map(sourceRoots, func(root string, _ int) string {
			return filepath.Clean(root)
		}),
		extensions: DefaultExtensions,
		checkAll:   checkAll,
	}
}

// Eligible reports whether the file should be handed to the checker.
func (f *Filter) Eligible(h *document.FileHandle) bool {
	if !f.hasCheckableExtension(h.Path()) {
		return false
	}
	if f.checkAll {
		return isContainedIn(h.Path(), f.projectRoot)
	}
	for _, root := range f.sourceRoots {
		if isContainedIn(h.Path(), root) {
			return true
		}
	}
	return false
}

// Narrow filters a discovered handle set down to the eligible files.
func (f *Filter) Narrow(handles []*document.FileHandle) []*document.FileHandle {
	return lo.Filter(handles, func(h *document.FileHandle, _ int) bool {
		return f.Eligible(h)
	})
}

// hasCheckableExtension matches the file extension against the checker's
// source extensions, case-insensitively.
func (f *Filter) hasCheckableExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range f.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// isContainedIn checks if path lies within dir (or is dir itself).
// The comparison is case-insensitive on Windows and case-sensitive on Unix.
func isContainedIn(path, dir string) bool {
	path = filepath.Clean(path)
	dir = filepath.Clean(dir)

	if pathsMatch(path, dir) {
		return true
	}

	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if runtime.GOOS == "windows" {
		return strings.HasPrefix(strings.ToLower(path), strings.ToLower(prefix))
	}
	return strings.HasPrefix(path, prefix)
}

// pathsMatch compares two paths for equality, respecting OS conventions.
func pathsMatch(path1, path2 string) bool {
	clean1 := filepath.Clean(path1)
	clean2 := filepath.Clean(path2)

	if runtime.GOOS == "windows" {
		return strings.EqualFold(clean1, clean2)
	}
	return clean1 == clean2
}
