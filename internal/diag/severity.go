package diag

import "strings"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (the checker's "note" lines).
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity maps the checker's severity word to a Severity.
// Unrecognized words default to SevError; this function never fails.
func ParseSeverity(word string) Severity {
	switch strings.ToLower(word) {
	case "note", "info":
		return SevInfo
	case "warning", "warn":
		return SevWarning
	default:
		return SevError
	}
}
