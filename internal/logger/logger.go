// Package logger provides the application logging facade with configurable
// verbosity and output destinations. It writes colorized output to stderr
// and can mirror records to a plain-text log file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger manages application logging. It owns the slog handler chain and
// the optional log file writer.
type Logger struct {
	slogger    *slog.Logger
	fileWriter io.WriteCloser
}

// globalLogger is the singleton logger instance used throughout the application.
var globalLogger *Logger

// SetupLogging initializes the global logger with the specified configuration.
//
// Parameters:
//   - verbose: If true, enables DEBUG level logging (shows all messages)
//   - logFile: If non-empty, mirrors records to the specified file path
//
// Stderr output goes through a tint handler (colorized, human-oriented).
// The log file, when configured, receives plain slog text records; it is
// opened in append mode and created if missing.
//
// Returns an error if the log file cannot be created or opened.
func SetupLogging(verbose bool, logFile string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}),
	}

	var fileWriter io.WriteCloser
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		fileWriter = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	globalLogger = &Logger{
		slogger:    slog.New(multiHandler(handlers)),
		fileWriter: fileWriter,
	}

	return nil
}

// Close closes the log file if one was opened.
// It's safe to call even if no log file was opened, and safe to call
// multiple times (idempotent).
func Close() error {
	if globalLogger != nil && globalLogger.fileWriter != nil {
		err := globalLogger.fileWriter.Close()
		globalLogger.fileWriter = nil
		return err
	}
	return nil
}

// Debug logs a debug-level message (only shown in verbose mode).
func Debug(format string, args ...any) {
	logMessage(slog.LevelDebug, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logMessage(slog.LevelInfo, format, args...)
}

// Warning logs a warning message.
// Warnings indicate situations that don't stop the scan (skipped files,
// leaked temp copies, unparseable tool output).
func Warning(format string, args ...any) {
	logMessage(slog.LevelWarn, format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	logMessage(slog.LevelError, format, args...)
}

// LogFileWarning logs a file-specific warning with structured attributes.
// This is used for tracking skipped files or per-file non-critical issues.
func LogFileWarning(path string, reason string) {
	if globalLogger == nil {
		return
	}
	globalLogger.slogger.Warn("skipped file", slog.String("path", path), slog.String("reason", reason))
}

// LogFileError logs a file-specific error with structured attributes.
func LogFileError(path string, err error) {
	if globalLogger == nil {
		return
	}
	globalLogger.slogger.Error("file error", slog.String("path", path), tint.Err(err))
}

// logMessage formats a message and dispatches it at the given level.
// If the logger is not initialized, it falls back to the default slog logger.
func logMessage(level slog.Level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if globalLogger == nil {
		slog.Default().Log(context.Background(), level, message)
		return
	}
	globalLogger.slogger.Log(context.Background(), level, message)
}

// multiHandler fans a record out to every underlying handler. With a single
// handler it is returned unwrapped.
func multiHandler(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return fanoutHandler(handlers)
}

type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, sub := range h {
		if !sub.Enabled(ctx, r.Level) {
			continue
		}
		if err := sub.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithGroup(name)
	}
	return out
}
