package source

import (
	"strings"
	"unicode/utf8"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string   // Canonical path ("/lib.js") or a library sentinel ("lib:lib.d.ts")
	Content string   // The source code content
	lines   []string // Cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file
func NewSourceFile(name, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Content: content,
	}
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line n without its terminator, or "" when out of range.
func (sf *SourceFile) Line(n int) string {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// Position converts a byte offset into a 1-based line and rune column.
func (sf *SourceFile) Position(offset int) (line, column int) {
	if offset > len(sf.Content) {
		offset = len(sf.Content)
	}
	line = 1 + strings.Count(sf.Content[:offset], "\n")
	start := strings.LastIndexByte(sf.Content[:offset], '\n') + 1
	return line, 1 + utf8.RuneCountInString(sf.Content[start:offset])
}

// IsDeclaration reports whether the file only carries type declarations.
func (sf *SourceFile) IsDeclaration() bool {
	return strings.HasSuffix(sf.Name, ".d.ts")
}

// DisplayPath returns the name used in diagnostics.
func (sf *SourceFile) DisplayPath() string {
	return sf.Name
}
