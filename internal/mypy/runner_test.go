package mypy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	r := &CommandRunner{}
	args := r.buildArgs([]string{"/p/a.py", "/p/b.py"})

	want := []string{"--show-column-numbers", "--no-error-summary", "--no-pretty", "/p/a.py", "/p/b.py"}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestBuildArgs_ConfigAndExtraArgs(t *testing.T) {
	r := &CommandRunner{
		ConfigPath: "/p/mypy.ini",
		ExtraArgs:  []string{"--strict"},
	}
	args := r.buildArgs([]string{"/p/a.py"})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--config-file /p/mypy.ini") {
		t.Errorf("Expected --config-file in args, got %v", args)
	}
	if !strings.Contains(joined, "--strict") {
		t.Errorf("Expected extra args passed through, got %v", args)
	}
	if args[len(args)-1] != "/p/a.py" {
		t.Errorf("Expected file paths last, got %v", args)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one\n", 1},
		{"one\ntwo\n", 2},
		{"one\r\ntwo\r\n", 2},
		{"no trailing newline", 1},
		{"one\n\n", 1},
	}
	for _, tc := range cases {
		got := splitLines([]byte(tc.in))
		if len(got) != tc.want {
			t.Errorf("splitLines(%q) = %d lines, want %d", tc.in, len(got), tc.want)
		}
	}
}

func TestCommandRunner_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewCommandRunner()
	_, err := r.Run(ctx, t.TempDir(), []string{"a.py"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCommandRunner_NotInstalled(t *testing.T) {
	r := &CommandRunner{Executable: "typescan-test-no-such-binary"}
	_, err := r.Run(context.Background(), t.TempDir(), []string{"a.py"})
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled, got %v", err)
	}
}

// fakeMypy writes a shell script standing in for the checker, so exit code
// handling is tested against a real child process.
func fakeMypy(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not available on windows")
	}

	path := filepath.Join(t.TempDir(), "mypy")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("Failed to write fake mypy: %v", err)
	}
	return path
}

func TestCommandRunner_IssuesFoundExitIsSuccess(t *testing.T) {
	exe := fakeMypy(t, `echo "a.py:1:1: error: boom"
exit 1
`)

	r := &CommandRunner{Executable: exe}
	lines, err := r.Run(context.Background(), t.TempDir(), []string{"a.py"})
	if err != nil {
		t.Fatalf("Expected exit code 1 to be success, got %v", err)
	}
	if len(lines) != 1 || lines[0] != "a.py:1:1: error: boom" {
		t.Errorf("Unexpected output lines %v", lines)
	}
}

func TestCommandRunner_CleanExit(t *testing.T) {
	exe := fakeMypy(t, "exit 0\n")

	r := &CommandRunner{Executable: exe}
	lines, err := r.Run(context.Background(), t.TempDir(), []string{"a.py"})
	if err != nil {
		t.Fatalf("Expected clean run, got %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no output lines, got %v", lines)
	}
}

func TestCommandRunner_ToolErrorExit(t *testing.T) {
	exe := fakeMypy(t, `echo "error: bad config" >&2
exit 2
`)

	r := &CommandRunner{Executable: exe}
	_, err := r.Run(context.Background(), t.TempDir(), []string{"a.py"})
	if err == nil {
		t.Fatal("Expected exit code 2 to be an invocation error")
	}
	if !strings.Contains(err.Error(), "exited with code 2") {
		t.Errorf("Expected exit code in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad config") {
		t.Errorf("Expected stderr excerpt in error, got %v", err)
	}
}

func TestCommandRunner_CancellationDuringRun(t *testing.T) {
	exe := fakeMypy(t, "exec sleep 30\n")

	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()
	done := make(chan struct{})
	var runErr error

	r := &CommandRunner{Executable: exe}
	go func() {
		_, runErr = r.Run(ctx, dir, []string{"a.py"})
		close(done)
	}()

	// Give the child a moment to start, then interrupt it.
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	if !errors.Is(runErr, context.Canceled) {
		t.Errorf("Expected context.Canceled from a killed run, got %v", runErr)
	}
}
