package diag

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/typescan/internal/document"
	"github.com/yourusername/typescan/internal/logger"
)

// DefaultTabWidth is the tab stop width used to translate reported columns
// when no explicit width is configured.
const DefaultTabWidth = 4

// diagnosticLine matches the checker's output format
// `path:line[:col]: severity: message`. Banner and summary lines don't
// match and are skipped.
var diagnosticLine = regexp.MustCompile(`^(.*?):(\d+)(?::(\d+))?: ([A-Za-z]+): (.*)$`)

// Parser converts raw checker output into per-file diagnostics.
// Parsing is best-effort: malformed lines and diagnostics for files outside
// the scanned set are dropped, never escalated.
type Parser struct {
	// TabWidth translates reported column offsets on lines with leading
	// tabs. Zero means DefaultTabWidth.
	TabWidth int

	// BaseDir resolves relative paths in the output.
	BaseDir string
}

// NewParser creates a Parser with the given tab width and base directory.
func NewParser(tabWidth int, baseDir string) *Parser {
	return &Parser{TabWidth: tabWidth, BaseDir: baseDir}
}

// Parse maps every raw line onto the file handle it refers to.
//
// The result contains an entry for every handle in mapping, so a file that
// was scanned clean is represented by an empty slice. Diagnostics for one
// file keep the order the tool emitted them. The model is used read-only,
// to clamp line numbers and translate columns against live buffer content.
func (p *Parser) Parse(lines []string, mapping map[string]*document.FileHandle, model document.Model) map[*document.FileHandle][]Diagnostic {
	results := make(map[*document.FileHandle][]Diagnostic, len(mapping))
	for _, h := range mapping {
		if _, ok := results[h]; !ok {
			results[h] = []Diagnostic{}
		}
	}

	// Buffer contents split lazily, once per file.
	fileLines := make(map[*document.FileHandle][]string)

	for _, raw := range lines {
		m := diagnosticLine.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		path := m[1]
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.BaseDir, path)
		}
		path = filepath.Clean(path)

		h, ok := mapping[path]
		if !ok {
			// Diagnostics can reference files outside the scanned set,
			// e.g. library stubs; those are dropped.
			logger.Debug("dropping diagnostic for unscanned path %s", path)
			continue
		}

		line, err := strconv.Atoi(m[2])
		if err != nil || line < 1 {
			continue
		}

		column := 1
		if m[3] != "" {
			if c, err := strconv.Atoi(m[3]); err == nil && c > 0 {
				column = c
			}
		}

		content := p.contentLines(h, model, fileLines)
		if len(content) > 0 {
			if line > len(content) {
				line = len(content)
			}
			column = translateColumn(content[line-1], column, p.tabWidth())
		}

		results[h] = append(results[h], Diagnostic{
			File:     h,
			Line:     line,
			Column:   column,
			Severity: ParseSeverity(m[4]),
			Message:  m[5],
		})
	}

	return results
}

func (p *Parser) tabWidth() int {
	if p.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return p.TabWidth
}

// contentLines returns the file's current buffer split into lines, cached
// across diagnostics for the same file. An unreadable buffer yields nil and
// disables clamping/translation for that file.
func (p *Parser) contentLines(h *document.FileHandle, model document.Model, cache map[*document.FileHandle][]string) []string {
	if lines, ok := cache[h]; ok {
		return lines
	}
	text, err := model.CurrentText(h)
	if err != nil {
		cache[h] = nil
		return nil
	}
	lines := strings.Split(text, "\n")
	cache[h] = lines
	return lines
}

// translateColumn converts the tool's reported column, which counts
// tab-expanded positions, into a 1-based character column in lineText.
// Lines without tabs pass through unchanged.
func translateColumn(lineText string, col, tabWidth int) int {
	if col <= 1 || !strings.Contains(lineText, "\t") {
		return col
	}

	visual := 0
	runes := []rune(lineText)
	for i, r := range runes {
		if visual >= col-1 {
			return i + 1
		}
		if r == '\t' {
			visual += tabWidth - (visual % tabWidth)
		} else {
			visual++
		}
	}
	return len(runes) + 1
}
