package testutil

import (
	"fmt"
	"os"
	"testing"
)

// VerifyScratchEmpty fails the test if any temporary snapshot files remain
// in dir. Call it after a scan finishes to assert cleanup ran.
func VerifyScratchEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		t.Fatalf("Failed to read scratch directory %s: %v", dir, err)
	}
	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("Scratch directory %s not empty after scan: %v", dir, names)
	}
}

// ScratchDir creates a per-test scratch directory for temporary snapshots
// and registers a leak check that runs at test cleanup.
func ScratchDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Cleanup(func() {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) > 0 {
			t.Errorf("Leaked %d temporary snapshot(s) in %s", len(entries), dir)
		}
	})
	return dir
}

// WriteFile overwrites path with content, failing the test on error.
// Useful for simulating an on-disk save between scans.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// MypyLine formats one raw checker output line in the standard
// path:line:column: severity: message shape.
func MypyLine(path string, line, col int, severity, message string) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, line, col, severity, message)
}
