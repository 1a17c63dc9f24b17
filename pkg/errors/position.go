package errors

import "netscript/pkg/source"

// Position represents a specific location in the source code.
// It includes line and column numbers (1-based) for human-readability,
// and byte offsets (0-based) for potential use in tooling (like LSP).
type Position struct {
	Line     int                // 1-based line number
	Column   int                // 1-based column number (rune index within the line)
	StartPos int                // 0-based byte offset of the start of the token/error span
	EndPos   int                // 0-based byte offset of the end of the token/error span (exclusive)
	Source   *source.SourceFile // Reference to the source file
}

// IsValid reports whether the position points into a known file.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// FileName returns the name of the file the position belongs to, if any.
func (p Position) FileName() string {
	if p.Source == nil {
		return ""
	}
	return p.Source.DisplayPath()
}

// At builds a Position for a byte span of sf.
func At(sf *source.SourceFile, start, end int) Position {
	line, col := sf.Position(start)
	return Position{Line: line, Column: col, StartPos: start, EndPos: end, Source: sf}
}
