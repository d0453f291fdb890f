package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogging_MirrorsToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scan.log")

	if err := SetupLogging(false, logFile); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}

	Info("scan finished with %d diagnostics", 7)
	Warning("skipped %s", "broken.py")

	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "scan finished with 7 diagnostics") {
		t.Errorf("Expected info record in log file, got %q", content)
	}
	if !strings.Contains(content, "skipped broken.py") {
		t.Errorf("Expected warning record in log file, got %q", content)
	}
}

func TestSetupLogging_DebugFilteredWithoutVerbose(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scan.log")

	if err := SetupLogging(false, logFile); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}
	Debug("hidden detail")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden detail") {
		t.Error("Expected debug record filtered at info level")
	}
}

func TestSetupLogging_VerboseEnablesDebug(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scan.log")

	if err := SetupLogging(true, logFile); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}
	Debug("visible detail")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "visible detail") {
		t.Error("Expected debug record in verbose mode")
	}
}

func TestSetupLogging_BadLogFilePath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "dir", "scan.log")
	if err := SetupLogging(false, bad); err == nil {
		t.Error("Expected error for unwritable log file path")
		Close()
	}
}

func TestClose_Idempotent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scan.log")
	if err := SetupLogging(false, logFile); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}

	if err := Close(); err != nil {
		t.Fatalf("First Close failed: %v", err)
	}
	if err := Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestFileHelpers_SafeWithoutSetup(t *testing.T) {
	// Reset to the uninitialized state; structured file helpers must not
	// panic before SetupLogging runs.
	globalLogger = nil
	LogFileWarning("/tmp/a.py", "unreadable")
	LogFileError("/tmp/a.py", os.ErrNotExist)
	Info("falls back to the default slog logger")
}
