// Package mypy is the boundary to the external type checker. The scan core
// only depends on the Runner interface; CommandRunner is the concrete
// implementation that spawns the mypy executable.
package mypy

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotInstalled indicates the checker executable could not be found.
var ErrNotInstalled = errors.New("mypy executable not found")

// Runner runs the external checker once over a set of materialized paths
// and returns its raw output lines. Implementations must honor ctx:
// cancellation unblocks the call promptly and surfaces ctx.Err().
type Runner interface {
	Run(ctx context.Context, projectRoot string, paths []string) ([]string, error)
}

// CommandRunner invokes mypy as a child process.
type CommandRunner struct {
	// Executable is the mypy binary to spawn. Empty means "mypy" from PATH.
	Executable string

	// ConfigPath, when set, is passed as --config-file.
	ConfigPath string

	// ExtraArgs are appended verbatim before the file paths.
	ExtraArgs []string
}

// NewCommandRunner creates a CommandRunner using mypy from PATH.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

// Run spawns mypy over the given paths with projectRoot as the working
// directory and returns stdout split into lines.
//
// Exit code semantics: 0 (clean) and 1 (issues reported) are both success —
// the diagnostics are in the output. Any other exit, or a spawn failure, is
// an invocation error. A cancelled context always surfaces as ctx.Err(),
// regardless of how the killed process exited.
func (r *CommandRunner) Run(ctx context.Context, projectRoot string, paths []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, r.executable(), r.buildArgs(paths)...)
	cmd.Dir = projectRoot

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Exit code 1 is mypy's normal "issues found" exit.
			if exitErr.ExitCode() == 1 {
				return splitLines(out), nil
			}
			return nil, fmt.Errorf("mypy exited with code %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotInstalled, r.executable())
		}
		return nil, fmt.Errorf("failed to run mypy: %w", err)
	}

	return splitLines(out), nil
}

func (r *CommandRunner) executable() string {
	if r.Executable == "" {
		return "mypy"
	}
	return r.Executable
}

// buildArgs assembles the mypy command line. Column numbers are required
// for diagnostic placement; summary and pretty output would only add
// non-diagnostic lines the parser has to skip.
func (r *CommandRunner) buildArgs(paths []string) []string {
	args := []string{"--show-column-numbers", "--no-error-summary", "--no-pretty"}
	if r.ConfigPath != "" {
		args = append(args, "--config-file", r.ConfigPath)
	}
	args = append(args, r.ExtraArgs...)
	return append(args, paths...)
}

// splitLines splits process output into lines, dropping a trailing empty
// line left by the final newline.
func splitLines(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
