package scan

import (
	"sync"

	"github.com/yourusername/typescan/internal/diag"
	"github.com/yourusername/typescan/internal/document"
)

// Listener observes the scan lifecycle. Registration is expected to happen
// during setup; notifications from overlapping scans may interleave, so
// consumers must key on the result map they receive, not on "the current
// scan".
type Listener interface {
	// ScanStarting fires once the final file set is known, before the
	// external tool is invoked.
	ScanStarting(files []*document.FileHandle)

	// ScanCompleted fires on success and on cancellation (with an empty
	// result map); every scanned file has an entry, possibly empty.
	ScanCompleted(results map[*document.FileHandle][]diag.Diagnostic)

	// ScanFailed fires when the scan ends in a validation or tool error.
	ScanFailed(err error)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil fields are skipped.
type ListenerFuncs struct {
	OnStarting  func(files []*document.FileHandle)
	OnCompleted func(results map[*document.FileHandle][]diag.Diagnostic)
	OnFailed    func(err error)
}

func (l ListenerFuncs) ScanStarting(files []*document.FileHandle) {
	if l.OnStarting != nil {
		l.OnStarting(files)
	}
}

func (l ListenerFuncs) ScanCompleted(results map[*document.FileHandle][]diag.Diagnostic) {
	if l.OnCompleted != nil {
		l.OnCompleted(results)
	}
}

func (l ListenerFuncs) ScanFailed(err error) {
	if l.OnFailed != nil {
		l.OnFailed(err)
	}
}

// listenerRegistry is a mutex-guarded listener set. Notification iterates a
// copied slice so a slow listener never holds the lock.
type listenerRegistry struct {
	mu        sync.RWMutex
	listeners []Listener
}

func (r *listenerRegistry) add(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

func (r *listenerRegistry) snapshot() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}
