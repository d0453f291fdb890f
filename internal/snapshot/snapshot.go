// Package snapshot materializes in-memory documents into paths the external
// checker can read. Files whose buffer matches the disk are passed through
// untouched; modified buffers are written to uniquely named temporary
// copies, which the package guarantees to release best-effort.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/logger"
)

// ErrPathCollision indicates two handles in one snapshot set share a path.
var ErrPathCollision = errors.New("duplicate file path in snapshot set")

// ScannableFile pairs a document handle with the concrete path the external
// tool will read. When the document carries unsaved edits the path points at
// a temporary copy of the buffer; otherwise it is the file's real location.
type ScannableFile struct {
	handle    *document.FileHandle
	path      string
	temporary bool
	deleted   atomic.Bool
}

// Handle returns the document handle this snapshot was taken from.
func (s *ScannableFile) Handle() *document.FileHandle {
	return s.handle
}

// Path returns the materialized path the external tool should read.
func (s *ScannableFile) Path() string {
	return s.path
}

// IsTemporary reports whether Path points at a temporary copy.
func (s *ScannableFile) IsTemporary() bool {
	return s.temporary
}

// DeleteIfRequired removes the temporary copy, if one was created.
// It is idempotent and never fails the caller: deletion errors are logged
// and swallowed, since a leaked temp file must not fail a scan.
func (s *ScannableFile) DeleteIfRequired() {
	if !s.temporary {
		return
	}
	if !s.deleted.CompareAndSwap(false, true) {
		return
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogFileWarning(s.path, "failed to delete temporary snapshot: "+err.Error())
	}
}

// ReleaseAll releases every snapshot in the set. One failed deletion never
// blocks the others.
func ReleaseAll(files []*ScannableFile) {
	for _, f := range files {
		f.DeleteIfRequired()
	}
}

// Options configures snapshot creation.
type Options struct {
	// ScratchDir is where temporary copies are placed.
	// Empty means DefaultScratchDir.
	ScratchDir string
}

// DefaultScratchDir returns the per-user cache location for temporary
// snapshots, falling back to the system temp directory.
func DefaultScratchDir() string {
	dir := filepath.Join(xdg.CacheHome, "typescan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Debug("cannot create scratch dir %s, falling back to temp: %v", dir, err)
		return os.TempDir()
	}
	return dir
}

// CreateAndValidate produces one ScannableFile per handle.
//
// For each handle the current buffer is compared to the on-disk text: equal
// content reuses the real path with no allocation; differing (or never
// saved) content is written to a temporary copy in the scratch directory,
// encoded per the document's declared encoding.
//
// On a validation failure (unreadable buffer, path collision, temp write
// error) the error is returned together with every snapshot already
// created, so the caller can still release them.
func CreateAndValidate(model document.Model, handles []*document.FileHandle, opts Options) ([]*ScannableFile, error) {
	scratch := opts.ScratchDir
	if scratch == "" {
		scratch = DefaultScratchDir()
	}
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", scratch, err)
	}

	created := make([]*ScannableFile, 0, len(handles))
	seen := make(map[string]struct{}, len(handles))

	for _, h := range handles {
		if _, dup := seen[h.Path()]; dup {
			return created, fmt.Errorf("%w: %s", ErrPathCollision, h.Path())
		}
		seen[h.Path()] = struct{}{}

		current, err := model.CurrentText(h)
		if err != nil {
			return created, fmt.Errorf("failed to read document %s: %w", h.Path(), err)
		}

		// A missing on-disk counterpart means the document only exists
		// in memory; it is snapshotted like any modified buffer.
		onDisk, err := model.OnDiskText(h)
		if err == nil && current == onDisk {
			created = append(created, &ScannableFile{handle: h, path: h.Path()})
			continue
		}

		tempPath := tempPathFor(scratch, h.Path())
		data := encodeText(current, model.Encoding(h), h.Path())
		if err := os.WriteFile(tempPath, data, 0600); err != nil {
			return created, fmt.Errorf("failed to write snapshot for %s: %w", h.Path(), err)
		}

		logger.Debug("snapshotted modified buffer %s -> %s", h.Path(), tempPath)
		created = append(created, &ScannableFile{handle: h, path: tempPath, temporary: true})
	}

	return created, nil
}

// tempPathFor builds a collision-free temp file name that keeps the
// original extension, so the external tool still recognizes the file type.
func tempPathFor(scratch, original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(scratch, stem+"-"+uuid.NewString()+ext)
}

// encodeText converts text into the document's declared encoding.
// Unknown encodings or conversion failures fall back to the raw UTF-8
// bytes: a snapshot in the wrong encoding still scans, usually correctly.
func encodeText(text, encodingName, path string) []byte {
	if encodingName == "" || strings.EqualFold(encodingName, "utf-8") {
		return []byte(text)
	}
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		logger.LogFileWarning(path, "unknown encoding "+encodingName+", writing UTF-8")
		return []byte(text)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		logger.LogFileWarning(path, "cannot encode as "+encodingName+", writing UTF-8")
		return []byte(text)
	}
	return out
}
