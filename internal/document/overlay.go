package document

import (
	"path/filepath"
	"sync"
)

// OverlayModel layers in-memory edits over a base model. It stands in for
// an editor's unsaved-buffer state: files with an overlay entry report the
// edited text as their current content while their on-disk text still comes
// from the base model.
//
// Handle identity is shared with the base model, so results keyed by handle
// are comparable regardless of which layer served the content.
type OverlayModel struct {
	base Model

	mu        sync.RWMutex
	texts     map[string]string
	encodings map[string]string
	handles   map[string]*FileHandle
}

// NewOverlayModel creates an overlay with no edits over base.
func NewOverlayModel(base Model) *OverlayModel {
	return &OverlayModel{
		base:      base,
		texts:     make(map[string]string),
		encodings: make(map[string]string),
		handles:   make(map[string]*FileHandle),
	}
}

// SetText records an unsaved edit for path. Subsequent CurrentText calls
// for the path return text until ClearText is called.
func (m *OverlayModel) SetText(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts[normalize(path)] = text
}

// SetEncoding declares a character encoding for path.
func (m *OverlayModel) SetEncoding(path, encoding string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encodings[normalize(path)] = encoding
}

// ClearText drops the overlay entry for path, reverting CurrentText to the
// base model (the editor-side equivalent of saving or reverting a buffer).
func (m *OverlayModel) ClearText(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.texts, normalize(path))
}

// normalize puts a path into the absolute, cleaned form used as the overlay
// map key, matching FileHandle.Path.
func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// ListChildren delegates to the base model.
func (m *OverlayModel) ListChildren(path string) ([]ChildInfo, error) {
	return m.base.ListChildren(path)
}

// CurrentText returns the overlay text when an edit exists, otherwise the
// base model's current text. The read lock is held only for the map lookup,
// never across base model I/O.
func (m *OverlayModel) CurrentText(h *FileHandle) (string, error) {
	m.mu.RLock()
	text, ok := m.texts[h.Path()]
	m.mu.RUnlock()
	if ok {
		return text, nil
	}
	return m.base.CurrentText(h)
}

// OnDiskText always reflects the base model's saved content. For a file
// that exists only as an overlay edit, this surfaces the base model's error.
func (m *OverlayModel) OnDiskText(h *FileHandle) (string, error) {
	return m.base.OnDiskText(h)
}

// Encoding returns the declared encoding for the file, falling back to the
// base model when none was set on the overlay.
func (m *OverlayModel) Encoding(h *FileHandle) string {
	m.mu.RLock()
	enc, ok := m.encodings[h.Path()]
	m.mu.RUnlock()
	if ok {
		return enc
	}
	return m.base.Encoding(h)
}

// Resolve delegates to the base model so handle identity is shared.
// Paths known only to the overlay (in-memory-only documents that were never
// saved) resolve to handles interned by the overlay itself.
func (m *OverlayModel) Resolve(path string) (*FileHandle, bool) {
	if h, ok := m.base.Resolve(path); ok {
		return h, true
	}

	abs := normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.texts[abs]; !ok {
		return nil, false
	}
	h, ok := m.handles[abs]
	if !ok {
		h = &FileHandle{path: abs}
		m.handles[abs] = h
	}
	return h, true
}
