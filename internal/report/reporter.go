// Package report renders scan results for human consumption: a per-file
// diagnostic listing and a completion summary with per-severity counts.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/yourusername/typescan/internal/diag"
	"github.com/yourusername/typescan/internal/document"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	pathColor    = color.New(color.Bold)
)

// Render formats every diagnostic in results, grouped by file (files sorted
// by path, diagnostics kept in tool emission order). Files without issues
// produce no output. Honors color.NoColor for non-TTY destinations.
func Render(results map[*document.FileHandle][]diag.Diagnostic) string {
	handles := make([]*document.FileHandle, 0, len(results))
	for h := range results {
		if len(results[h]) > 0 {
			handles = append(handles, h)
		}
	}
	sort.Slice(handles, func(i, j int) bool {
		return handles[i].Path() < handles[j].Path()
	})

	var b strings.Builder
	for _, h := range handles {
		for _, d := range results[h] {
			fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n",
				pathColor.Sprint(h.Path()), d.Line, d.Column,
				severityColor(d.Severity).Sprint(strings.ToLower(d.Severity.String())),
				d.Message)
		}
	}
	return b.String()
}

// Summary formats the completion line: file counts, per-severity totals and
// elapsed time.
//
// Example output:
//
//	Scanned 42 files in 1.3s: 3 errors, 1 warning (2 files affected)
func Summary(results map[*document.FileHandle][]diag.Diagnostic, elapsed time.Duration) string {
	var errors, warnings, infos, affected int
	for _, diagnostics := range results {
		if len(diagnostics) > 0 {
			affected++
		}
		for _, d := range diagnostics {
			switch d.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			default:
				infos++
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scanned %s %s in %s",
		formatNumber(len(results)), pluralize("file", len(results)), formatDuration(elapsed))

	if errors+warnings+infos == 0 {
		b.WriteString(": no issues found")
		return b.String()
	}

	parts := make([]string, 0, 3)
	if errors > 0 {
		parts = append(parts, errorColor.Sprintf("%s %s", formatNumber(errors), pluralize("error", errors)))
	}
	if warnings > 0 {
		parts = append(parts, warningColor.Sprintf("%s %s", formatNumber(warnings), pluralize("warning", warnings)))
	}
	if infos > 0 {
		parts = append(parts, infoColor.Sprintf("%s %s", formatNumber(infos), pluralize("note", infos)))
	}

	fmt.Fprintf(&b, ": %s (%d %s affected)",
		strings.Join(parts, ", "), affected, pluralize("file", affected))
	return b.String()
}

// HasErrors reports whether any diagnostic in results is error-severity.
// Drives the CLI exit code.
func HasErrors(results map[*document.FileHandle][]diag.Diagnostic) bool {
	for _, diagnostics := range results {
		for _, d := range diagnostics {
			if d.Severity == diag.SevError {
				return true
			}
		}
	}
	return false
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatNumber formats a number with thousands separators (commas).
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}
	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// formatDuration formats an elapsed time at a human-appropriate precision.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
