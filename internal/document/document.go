// Package document abstracts the host editor's virtual file and document
// model. The scan core only ever reads through the Model interface; it never
// mutates a document and never touches a concrete editor platform type.
package document

// FileHandle is an opaque reference to an in-memory-editable file owned by
// the host document model. Handles are interned by their model: resolving
// the same absolute path twice yields the same pointer, so handles are
// usable as map keys across a scan.
type FileHandle struct {
	path string
}

// Path returns the absolute path of the file this handle refers to.
func (h *FileHandle) Path() string {
	return h.path
}

func (h *FileHandle) String() string {
	return h.path
}

// ChildInfo describes one directory entry returned by Model.ListChildren.
type ChildInfo struct {
	Path  string // Absolute path of the entry
	IsDir bool   // True for directories (traversed, never scanned)
}

// Model is the capability interface the host editor provides to the scan
// core. Implementations must be safe for concurrent readers: content reads
// happen while the editor may be applying edits on another goroutine.
type Model interface {
	// ListChildren returns the immediate children of a directory.
	// A non-directory path yields an empty list and no error.
	ListChildren(path string) ([]ChildInfo, error)

	// CurrentText returns the file's current (possibly unsaved) content.
	CurrentText(h *FileHandle) (string, error)

	// OnDiskText returns the file's last-saved on-disk content.
	OnDiskText(h *FileHandle) (string, error)

	// Encoding returns the file's declared character encoding
	// (e.g. "utf-8", "latin-1"). Implementations return "utf-8" when the
	// host has no declaration for the file.
	Encoding(h *FileHandle) string

	// Resolve maps an absolute path to the model's handle for it.
	// The second return is false when the model does not know the path
	// (e.g. a diagnostic referring to a library stub outside the project).
	Resolve(path string) (*FileHandle, bool)
}
