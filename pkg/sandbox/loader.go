package sandbox

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	nserrors "netscript/pkg/errors"
	"netscript/pkg/program"
)

const debugLoader = false

func debugPrintf(format string, args ...interface{}) {
	if debugLoader {
		fmt.Printf(format, args...)
	}
}

const (
	wrapperHead = "(function (require, exports, module) {"
	wrapperTail = "\n})"
)

// Loader defines bundle modules in a runtime and serves module requests.
// It must only be used from the goroutine running the interpreter.
type Loader struct {
	rt       *goja.Runtime
	registry *Registry
}

// NewLoader creates a loader for one execution.
func NewLoader(rt *goja.Runtime, registry *Registry) *Loader {
	return &Loader{rt: rt, registry: registry}
}

// Registry returns the loader's module registry.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Link defines every module of the bundle in order. A module whose static
// dependency is not yet defined fails the link.
func (l *Loader) Link(bundle *program.Bundle) error {
	for _, def := range bundle.Definitions {
		if err := l.Define(def); err != nil {
			return err
		}
	}
	return nil
}

// Define resolves the dependencies of def, runs its factory and registers
// its exports.
func (l *Loader) Define(def *program.Definition) error {
	l.registry.Set(&ModuleRecord{Name: def.Name, State: ModuleDefined, Deps: def.Deps, DefineTime: time.Now()})

	for _, dep := range def.Deps {
		if dep == "require" || dep == "exports" {
			continue
		}
		if _, ok := l.registry.Exports(dep); !ok {
			err := &nserrors.LinkError{Module: def.Name, Msg: "Unable to resolve static dependency: " + dep}
			l.registry.Fail(def.Name, err)
			return err
		}
	}
	l.registry.UpdateState(def.Name, ModuleLinked)

	exports, err := l.instantiate(def)
	if err != nil {
		l.registry.Fail(def.Name, err)
		return err
	}

	l.registry.Execute(def.Name, exports)
	debugPrintf("// [Loader] defined %s (deps %v)\n", def.Name, def.Deps)
	return nil
}

// instantiate compiles def and runs its factory, returning module.exports.
func (l *Loader) instantiate(def *program.Definition) (goja.Value, error) {
	factory, err := l.compile(def)
	if err != nil {
		return nil, err
	}

	exports := l.rt.NewObject()
	module := l.rt.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}
	if _, err := factory(goja.Undefined(), l.rt.ToValue(l.requireFunc(def)), exports, module); err != nil {
		return nil, RuntimeError(err)
	}
	return module.Get("exports"), nil
}

func (l *Loader) compile(def *program.Definition) (goja.Callable, error) {
	v, err := l.rt.RunScript(def.Name, wrapperHead+def.Code+wrapperTail)
	if err != nil {
		return nil, (&nserrors.LinkError{Module: def.Name, Msg: compileMessage(err)}).CausedBy(err)
	}
	factory, ok := goja.AssertFunction(v)
	if !ok {
		return nil, &nserrors.LinkError{Module: def.Name, Msg: "module wrapper is not a function"}
	}
	return factory, nil
}

// compileMessage returns the text of a compile failure. Syntax errors carry
// their class name inside the message already.
func compileMessage(err error) string {
	var exc *goja.Exception
	if !errors.As(err, &exc) {
		return err.Error()
	}
	if obj, ok := exc.Value().(*goja.Object); ok {
		if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
			return msg.String()
		}
	}
	return exc.Value().String()
}

// Require resolves name from the registry. It never fails synchronously:
// a module that is not defined is rejected with a TypeError.
func (l *Loader) Require(name string, resolve, reject func(goja.Value)) {
	if exports, ok := l.registry.Exports(name); ok {
		resolve(exports)
		return
	}
	reject(l.rt.NewTypeError("Failed to fetch dynamically imported module: %s", name))
}

// requireFunc is the require function handed to def's factory. Specifiers
// are mapped to module names through the definition's import table; a
// rejected request is thrown to the caller.
func (l *Loader) requireFunc(def *program.Definition) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		spec := call.Argument(0).String()
		name, ok := def.Imports[spec]
		if !ok {
			name = spec
		}
		var result goja.Value
		l.Require(name, func(v goja.Value) {
			result = v
		}, func(reason goja.Value) {
			panic(reason)
		})
		return result
	}
}

// Main returns the main export of the entry module.
func (l *Loader) Main(entry string) (goja.Callable, error) {
	exports, ok := l.registry.Exports(entry)
	if ok {
		if obj, isObj := exports.(*goja.Object); isObj {
			if main, isFn := goja.AssertFunction(obj.Get("main")); isFn {
				return main, nil
			}
		}
	}
	return nil, &nserrors.CompileError{Msg: "No main function"}
}

// Await calls done once v settles. Values that are not promises settle
// immediately. done runs on the interpreter goroutine.
func (l *Loader) Await(v goja.Value, done func(result goja.Value, err error)) {
	if v == nil {
		done(goja.Undefined(), nil)
		return
	}
	promise, ok := v.Export().(*goja.Promise)
	if !ok {
		done(v, nil)
		return
	}
	switch promise.State() {
	case goja.PromiseStateFulfilled:
		done(promise.Result(), nil)
		return
	case goja.PromiseStateRejected:
		done(nil, rejection(promise.Result()))
		return
	}

	obj := v.(*goja.Object)
	then, _ := goja.AssertFunction(obj.Get("then"))
	onFulfilled := l.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		done(call.Argument(0), nil)
		return goja.Undefined()
	})
	onRejected := l.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		done(nil, rejection(call.Argument(0)))
		return goja.Undefined()
	})
	if _, err := then(obj, onFulfilled, onRejected); err != nil {
		done(nil, RuntimeError(err))
	}
}
