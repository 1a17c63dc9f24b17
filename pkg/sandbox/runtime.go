package sandbox

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"

	nserrors "netscript/pkg/errors"
)

// ErrExternalSourceMap is returned when a module references a source map
// that is not inline.
var ErrExternalSourceMap = errors.New("external source maps are not supported")

// NewRuntime creates the interpreter one execution runs in. It carries only
// the standard built-ins; the environment is passed to main explicitly.
func NewRuntime() *goja.Runtime {
	rt := goja.New()
	rt.SetFieldNameMapper(goja.UncapFieldNameMapper())
	rt.SetParserOptions(parser.WithSourceMapLoader(func(path string) ([]byte, error) {
		return nil, fmt.Errorf("%w: %s", ErrExternalSourceMap, path)
	}))
	return rt
}

// RuntimeError converts an error returned by the interpreter into the error
// reported to callers. Interruptions are returned unchanged.
func RuntimeError(err error) error {
	if err == nil {
		return nil
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return err
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return &nserrors.RuntimeError{Msg: exc.Value().String(), Stack: exc.String(), Cause: err}
	}
	return err
}

// rejection converts a promise rejection reason into an error.
func rejection(reason goja.Value) error {
	if reason == nil || goja.IsUndefined(reason) {
		return &nserrors.RuntimeError{Msg: "undefined"}
	}
	e := &nserrors.RuntimeError{Msg: reason.String()}
	if obj, ok := reason.(*goja.Object); ok {
		if stack := obj.Get("stack"); stack != nil && !goja.IsUndefined(stack) {
			e.Stack = stack.String()
		}
	}
	return e
}
