// Package diag defines the structured diagnostic model and the parser that
// turns the external checker's raw output lines into per-file diagnostics.
package diag

import (
	"github.com/yourusername/typescan/internal/document"
)

// Diagnostic is one structured issue attributed to a file.
// Values are immutable once constructed.
type Diagnostic struct {
	File     *document.FileHandle
	Line     int // 1-based, clamped to the document's line count
	Column   int // 1-based character column; 1 when the tool reported none
	Severity Severity
	Message  string
}
