package errors

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// MaxReportedDiagnostics is how many diagnostics a compile failure spells out.
const MaxReportedDiagnostics = 4

// FormatDiagnostics renders diagnostics one per line as
// "file(line,col): error TS<code>: message".
func FormatDiagnostics(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		pos := d.Pos()
		if name := pos.FileName(); name != "" && pos.IsValid() {
			fmt.Fprintf(&b, "%s(%d,%d): ", name, pos.Line, pos.Column)
		} else if name != "" {
			fmt.Fprintf(&b, "%s: ", name)
		}
		if d.Code() != 0 {
			fmt.Fprintf(&b, "error TS%d: %s\n", d.Code(), d.Message())
		} else {
			fmt.Fprintf(&b, "error: %s\n", d.Message())
		}
	}
	return b.String()
}

// NewCompileError folds diagnostics into the error surfaced to callers: the
// first MaxReportedDiagnostics are formatted, the rest are summarized.
func NewCompileError(diags []Diagnostic) *CompileError {
	shown := diags
	if len(shown) > MaxReportedDiagnostics {
		shown = shown[:MaxReportedDiagnostics]
	}
	msg := strings.TrimSuffix(FormatDiagnostics(shown), "\n")
	if len(diags) > MaxReportedDiagnostics {
		msg += "\n[additional errors omitted]"
	}
	if len(diags) == 1 {
		msg += "\n\nFound 1 error."
	} else {
		msg += fmt.Sprintf("\n\nFound %d errors.", len(diags))
	}
	return &CompileError{Msg: msg, Diagnostics: diags}
}

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// DisplayErrors prints errors to w in a user-friendly format, including the
// source line and a position marker when the error carries a position.
func DisplayErrors(w io.Writer, errs []NetscriptError, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		if !pos.IsValid() || pos.Source == nil {
			fmt.Fprintf(w, "%s %s\n", paint(colorRed+colorBold, kind+" Error:"), msg)
			continue
		}

		fmt.Fprintf(w, "%s %s\n", paint(colorRed+colorBold, fmt.Sprintf("%s Error at %s:%d:%d:", kind, pos.FileName(), pos.Line, pos.Column)), msg)

		sourceLine := strings.TrimRight(pos.Source.Line(pos.Line), "\t ")
		fmt.Fprintf(w, "  %s\n", sourceLine)

		width := 1
		if pos.EndPos > pos.StartPos && pos.EndPos <= len(pos.Source.Content) {
			span := pos.Source.Content[pos.StartPos:pos.EndPos]
			if i := strings.IndexByte(span, '\n'); i >= 0 {
				span = span[:i]
			}
			width = max(1, utf8.RuneCountInString(span))
		}
		marker := strings.Repeat(" ", pos.Column-1) + "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "  %s\n", paint(colorRed, marker))
		fmt.Fprintln(w)
	}
}
