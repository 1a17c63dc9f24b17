package errors

import (
	"fmt"
)

// NetscriptError is the interface implemented by all compiler and sandbox errors.
type NetscriptError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // e.g., "Resolution", "Syntax", "Type", "Compile", "Link", "Runtime"
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// Diagnostic is a NetscriptError reported by the toolchain. Code is the
// numeric diagnostic code printed as TS<code>; 0 means uncoded.
type Diagnostic interface {
	NetscriptError
	Code() int
}

// Diagnostic codes in use.
const (
	CodeCannotReadFile     = 5012
	CodeCannotFindModule   = 2307
	CodeNotAssignable      = 2322
	CodeAssignToConstant   = 2588
	CodeSyntaxError        = 1005
	CodeCannotFindTypeFile = 2688
)

// --- Concrete Error Types ---

// ResolutionError represents a file or module that could not be loaded into a program.
type ResolutionError struct {
	Position
	TSCode int
	Msg    string
	Cause  error // Underlying cause, if any
}

func (e *ResolutionError) Error() string {
	if !e.IsValid() {
		return fmt.Sprintf("Resolution Error: %s", e.Msg)
	}
	return fmt.Sprintf("Resolution Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *ResolutionError) Pos() Position   { return e.Position }
func (e *ResolutionError) Kind() string    { return "Resolution" }
func (e *ResolutionError) Message() string { return e.Msg }
func (e *ResolutionError) Code() int       { return e.TSCode }
func (e *ResolutionError) Unwrap() error   { return e.Cause }
func (e *ResolutionError) CausedBy(cause error) *ResolutionError {
	e.Cause = cause
	return e
}

// SyntaxError represents an error reported while transpiling a file.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Code() int       { return CodeSyntaxError }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// TypeError represents an error during static type checking.
type TypeError struct {
	Position
	TSCode int
	Msg    string
	Cause  error // Underlying cause, if any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Type Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *TypeError) Pos() Position   { return e.Position }
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Code() int       { return e.TSCode }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// CompileError is the single error raised to callers when a script cannot be
// turned into a runnable bundle. Diagnostics holds everything the toolchain
// reported, including the ones left out of Msg.
type CompileError struct {
	Position
	Msg         string
	Diagnostics []Diagnostic
	Cause       error // Underlying cause, if any
}

func (e *CompileError) Error() string {
	if !e.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("Compile Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *CompileError) Pos() Position   { return e.Position }
func (e *CompileError) Kind() string    { return "Compile" }
func (e *CompileError) Message() string { return e.Msg }
func (e *CompileError) Unwrap() error   { return e.Cause }
func (e *CompileError) CausedBy(cause error) *CompileError {
	e.Cause = cause
	return e
}

// LinkError is a fatal failure while defining bundle modules in the sandbox.
type LinkError struct {
	Position
	Module string // Module being defined when linking failed
	Msg    string
	Cause  error // Underlying cause, if any
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("Link Error: %s", e.Msg)
}
func (e *LinkError) Pos() Position   { return e.Position }
func (e *LinkError) Kind() string    { return "Link" }
func (e *LinkError) Message() string { return e.Msg }
func (e *LinkError) Unwrap() error   { return e.Cause }
func (e *LinkError) CausedBy(cause error) *LinkError {
	e.Cause = cause
	return e
}

// RuntimeError represents an uncaught exception thrown by a running script.
type RuntimeError struct {
	Position
	Msg   string
	Stack string // Script stack trace as reported by the runtime
	Cause error  // Underlying cause, if any
}

func (e *RuntimeError) Error() string {
	if !e.IsValid() {
		return fmt.Sprintf("Runtime Error: %s", e.Msg)
	}
	return fmt.Sprintf("Runtime Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *RuntimeError) Pos() Position   { return e.Position }
func (e *RuntimeError) Kind() string    { return "Runtime" }
func (e *RuntimeError) Message() string { return e.Msg }
func (e *RuntimeError) Unwrap() error   { return e.Cause }
func (e *RuntimeError) CausedBy(cause error) *RuntimeError {
	e.Cause = cause
	return e
}
