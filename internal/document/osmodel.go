package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// OSModel is a Model backed directly by the operating system's file system.
// Every document's current text equals its on-disk text, which is the case
// for a CLI invocation where no editor buffers exist.
type OSModel struct {
	mu      sync.RWMutex
	handles map[string]*FileHandle
}

// NewOSModel creates an OSModel with an empty handle table.
func NewOSModel() *OSModel {
	return &OSModel{handles: make(map[string]*FileHandle)}
}

// ListChildren returns the immediate children of a directory.
// An unreadable directory returns the underlying error so callers can
// decide to skip the subtree; a plain file returns an empty list.
func (m *OSModel) ListChildren(path string) ([]ChildInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	children := make([]ChildInfo, 0, len(entries))
	for _, entry := range entries {
		children = append(children, ChildInfo{
			Path:  filepath.Join(path, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}
	return children, nil
}

// CurrentText returns the file content. For an OS-backed model this is
// always the saved content.
func (m *OSModel) CurrentText(h *FileHandle) (string, error) {
	return m.OnDiskText(h)
}

// OnDiskText reads the file's saved content from disk.
func (m *OSModel) OnDiskText(h *FileHandle) (string, error) {
	data, err := os.ReadFile(h.Path())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", h.Path(), err)
	}
	return string(data), nil
}

// Encoding reports "utf-8" for every file; the OS model carries no
// per-document encoding declarations.
func (m *OSModel) Encoding(h *FileHandle) string {
	return "utf-8"
}

// Resolve maps an absolute path to the interned handle for it.
// Unknown or non-regular paths resolve to (nil, false).
func (m *OSModel) Resolve(path string) (*FileHandle, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	abs = filepath.Clean(abs)

	m.mu.RLock()
	h, ok := m.handles[abs]
	m.mu.RUnlock()
	if ok {
		return h, true
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[abs]; ok {
		return h, true
	}
	h = &FileHandle{path: abs}
	m.handles[abs] = h
	return h, true
}
