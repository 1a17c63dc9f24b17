package program

import (
	"github.com/evanw/esbuild/pkg/api"

	"netscript/pkg/errors"
	"netscript/pkg/modules"
	"netscript/pkg/script"
	"netscript/pkg/source"
)

// Import statements are kept as written; only `import type` is erased.
const tsconfigRaw = `{"compilerOptions":{"verbatimModuleSyntax":true}}`

// Emit transpiles every user file into a Bundle. With NoEmitOnError any
// program diagnostic suppresses output, and a file that fails to transpile
// fails the whole emit.
func (p *Program) Emit() (*Bundle, []errors.Diagnostic) {
	if p.options.NoEmitOnError && len(p.diagnostics) > 0 {
		return nil, p.diagnostics
	}

	bundle := &Bundle{OutFile: p.options.OutFile, Entry: p.root}
	var diags []errors.Diagnostic
	for _, unit := range p.userFiles() {
		def, errs := p.emitFile(unit)
		if len(errs) > 0 {
			diags = append(diags, errs...)
			continue
		}
		bundle.Definitions = append(bundle.Definitions, def)
	}
	if len(diags) > 0 {
		return nil, diags
	}
	debugPrintf("// [Program] emitted %d definitions for %s\n", len(bundle.Definitions), p.root)
	return bundle, nil
}

func (p *Program) emitFile(unit *modules.SourceUnit) (*Definition, []errors.Diagnostic) {
	result := api.Transform(unit.Content, p.transformOptions(unit))
	if len(result.Errors) > 0 {
		diags := make([]errors.Diagnostic, len(result.Errors))
		for i, msg := range result.Errors {
			diags[i] = syntaxError(unit.SourceFile, msg)
		}
		return nil, diags
	}

	table := p.resolutions[unit.Name]
	def := &Definition{
		Name:    unit.Name,
		Deps:    []string{"require", "exports"},
		Imports: make(map[string]string, len(table)),
		Code:    string(result.Code),
	}
	for spec, name := range table {
		def.Imports[spec] = name
	}
	seen := make(map[string]bool)
	for _, spec := range unit.Imports {
		name := table[spec.Specifier]
		if !spec.IsRuntime() || seen[name] {
			continue
		}
		seen[name] = true
		def.Deps = append(def.Deps, name)
	}
	return def, nil
}

func (p *Program) transformOptions(unit *modules.SourceUnit) api.TransformOptions {
	opts := api.TransformOptions{
		Loader:      api.LoaderJS,
		Format:      api.FormatCommonJS,
		Target:      api.ES2019,
		Sourcefile:  unit.Name,
		LogLevel:    api.LogLevelSilent,
		TsconfigRaw: tsconfigRaw,
		// import() becomes a promise around require so a missing module
		// rejects instead of throwing.
		Supported: map[string]bool{"dynamic-import": false},
	}
	if script.IsTypeScript(unit.Name) {
		opts.Loader = api.LoaderTS
	}
	if p.options.InlineSourceMap {
		opts.Sourcemap = api.SourceMapInline
	}
	if p.options.RemoveComments {
		opts.LegalComments = api.LegalCommentsNone
	}
	return opts
}

func syntaxError(sf *source.SourceFile, msg api.Message) errors.Diagnostic {
	diag := &errors.SyntaxError{Msg: msg.Text}
	if loc := msg.Location; loc != nil {
		start := offsetOf(sf, loc.Line, loc.Column)
		diag.Position = errors.At(sf, start, start+loc.Length)
	}
	return diag
}

// offsetOf converts a 1-based line and 0-based byte column into an offset.
func offsetOf(sf *source.SourceFile, line, column int) int {
	offset := 0
	lines := sf.Lines()
	for i := 0; i < line-1 && i < len(lines); i++ {
		offset += len(lines[i]) + 1
	}
	offset += column
	if offset > len(sf.Content) {
		offset = len(sf.Content)
	}
	return offset
}
