package sandbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nserrors "netscript/pkg/errors"
	"netscript/pkg/program"
)

func newLoader() *Loader {
	return NewLoader(NewRuntime(), NewRegistry())
}

func def(name string, code string, deps ...string) *program.Definition {
	imports := make(map[string]string)
	for _, dep := range deps {
		imports[dep[1:]] = dep
	}
	return &program.Definition{
		Name:    name,
		Deps:    append([]string{"require", "exports"}, deps...),
		Imports: imports,
		Code:    code,
	}
}

func TestLinkAndMain(t *testing.T) {
	loader := newLoader()
	bundle := &program.Bundle{Entry: "/main.js", Definitions: []*program.Definition{
		def("/lib.js", `exports.double = function (x) { return x * 2; };`),
		def("/main.js", `var lib = require("lib.js");
exports.main = function (n) { return lib.double(n); };`, "/lib.js"),
	}}

	require.NoError(t, loader.Link(bundle))
	main, err := loader.Main("/main.js")
	require.NoError(t, err)

	v, err := main(goja.Undefined(), loader.rt.ToValue(21))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.ToInteger())

	assert.Equal(t, []string{"/lib.js", "/main.js"}, loader.Registry().List())
	assert.Len(t, loader.Registry().GetByState(ModuleExecuted), 2)
	assert.Equal(t, 2, loader.Registry().GetStats().ExecutedModules)
}

func TestModuleExportsReassignment(t *testing.T) {
	loader := newLoader()
	require.NoError(t, loader.Define(def("/main.js", `module.exports = { main: function () { return "ok"; } };`)))
	main, err := loader.Main("/main.js")
	require.NoError(t, err)
	v, err := main(goja.Undefined())
	require.NoError(t, err)
	assert.Equal(t, "ok", v.String())
}

func TestCircularDependencyFailsLink(t *testing.T) {
	loader := newLoader()
	bundle := &program.Bundle{Entry: "/a.js", Definitions: []*program.Definition{
		def("/b.js", `var a = require("a.js"); exports.b = 2;`, "/a.js"),
		def("/a.js", `var b = require("b.js"); exports.main = function () {};`, "/b.js"),
	}}

	err := loader.Link(bundle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to resolve static dependency: /a.js")

	var linkErr *nserrors.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "/b.js", linkErr.Module)
	assert.Equal(t, ModuleError, loader.Registry().Get("/b.js").State)
	assert.Nil(t, loader.Registry().Get("/a.js"))
}

func TestMissingMain(t *testing.T) {
	for _, code := range []string{
		`exports.notMain = function () {};`,
		`exports.main = 42;`,
		`module.exports = 5;`,
	} {
		loader := newLoader()
		require.NoError(t, loader.Define(def("/main.js", code)))
		_, err := loader.Main("/main.js")
		var compileErr *nserrors.CompileError
		require.True(t, errors.As(err, &compileErr), code)
		assert.Equal(t, "No main function", compileErr.Error())
	}

	_, err := newLoader().Main("/missing.js")
	assert.EqualError(t, err, "No main function")
}

func TestRequireNeverThrows(t *testing.T) {
	loader := newLoader()
	var resolved, rejected goja.Value
	assert.NotPanics(t, func() {
		loader.Require("/nope.js", func(v goja.Value) { resolved = v }, func(v goja.Value) { rejected = v })
	})
	assert.Nil(t, resolved)
	require.NotNil(t, rejected)
	assert.Equal(t, "TypeError: Failed to fetch dynamically imported module: /nope.js", rejected.String())

	require.NoError(t, loader.Define(def("/lib.js", `exports.x = 1;`)))
	loader.Require("/lib.js", func(v goja.Value) { resolved = v }, func(v goja.Value) { t.Errorf("unexpected rejection %v", v) })
	require.NotNil(t, resolved)
}

func TestDynamicImportRejectsInsidePromise(t *testing.T) {
	loader := newLoader()
	require.NoError(t, loader.Define(def("/main.js", `exports.main = function () {
  return Promise.resolve().then(function () { return require("nope.js"); });
};`)))
	main, err := loader.Main("/main.js")
	require.NoError(t, err)

	v, err := main(goja.Undefined())
	require.NoError(t, err, "the failure must not be thrown synchronously")

	var settled error
	loader.Await(v, func(_ goja.Value, err error) { settled = err })
	require.Error(t, settled)
	assert.Contains(t, settled.Error(), "Failed to fetch dynamically imported module: nope.js")
}

func TestAwait(t *testing.T) {
	loader := newLoader()
	rt := loader.rt

	var result goja.Value
	loader.Await(rt.ToValue(7), func(v goja.Value, err error) {
		require.NoError(t, err)
		result = v
	})
	assert.Equal(t, int64(7), result.ToInteger())

	promise, resolve, _ := rt.NewPromise()
	called := false
	loader.Await(rt.ToValue(promise), func(v goja.Value, err error) {
		called = true
		assert.NoError(t, err)
		assert.Equal(t, "done", v.String())
	})
	assert.False(t, called)
	require.NoError(t, resolve("done"))
	assert.True(t, called)

	rejected, _, reject := rt.NewPromise()
	var failure error
	loader.Await(rt.ToValue(rejected), func(_ goja.Value, err error) { failure = err })
	require.NoError(t, reject(rt.NewTypeError("bad")))
	var runtimeErr *nserrors.RuntimeError
	require.True(t, errors.As(failure, &runtimeErr))
	assert.Equal(t, "TypeError: bad", runtimeErr.Msg)
}

func TestFactoryException(t *testing.T) {
	loader := newLoader()
	err := loader.Define(def("/main.js", `throw new Error("boom");`))
	var runtimeErr *nserrors.RuntimeError
	require.True(t, errors.As(err, &runtimeErr))
	assert.Equal(t, "Error: boom", runtimeErr.Msg)
	assert.Equal(t, ModuleError, loader.Registry().Get("/main.js").State)
}

func TestExternalSourceMapsAreRefused(t *testing.T) {
	loader := newLoader()
	err := loader.Define(def("/main.js", "exports.main = function () {};\n//# sourceMappingURL=main.js.map"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrExternalSourceMap.Error())
}

func TestInlineSourceMapsAreAccepted(t *testing.T) {
	loader := newLoader()
	// {"version":3,"sources":["main.ts"],"names":[],"mappings":"AAAA"}
	code := "exports.main = function () { return 1; };\n//# sourceMappingURL=data:application/json;base64,eyJ2ZXJzaW9uIjozLCJzb3VyY2VzIjpbIm1haW4udHMiXSwibmFtZXMiOltdLCJtYXBwaW5ncyI6IkFBQUEifQ=="
	require.NoError(t, loader.Define(def("/main.js", code)))
	main, err := loader.Main("/main.js")
	require.NoError(t, err)
	v, err := main(goja.Undefined())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ToInteger())
}

func TestSyntaxErrorFailsDefine(t *testing.T) {
	loader := newLoader()
	err := loader.Define(def("/main.js", "exports.main = function ( {"))

	var linkErr *nserrors.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "/main.js", linkErr.Module)
	assert.True(t, strings.HasPrefix(linkErr.Msg, "SyntaxError: "), linkErr.Msg)
	assert.Equal(t, 1, strings.Count(err.Error(), "SyntaxError"), err.Error())

	record := loader.Registry().Get("/main.js")
	require.NotNil(t, record)
	assert.Equal(t, ModuleError, record.State)
	assert.Equal(t, err, record.Error)
	_, ok := loader.Registry().Exports("/main.js")
	assert.False(t, ok)
}
