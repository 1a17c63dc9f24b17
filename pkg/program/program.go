package program

import (
	"fmt"

	"netscript/pkg/checker"
	"netscript/pkg/errors"
	"netscript/pkg/modules"
	"netscript/pkg/script"
)

const debugProgram = false

func debugPrintf(format string, args ...interface{}) {
	if debugProgram {
		fmt.Printf(format, args...)
	}
}

// Program is the set of files reachable from one root script, loaded through
// a CompilerHost, along with everything reported while loading and checking
// them.
type Program struct {
	host    modules.CompilerHost
	options Options
	root    string

	declarations []*modules.SourceUnit          // Lib and type-root files, in load order
	units        map[string]*modules.SourceUnit // User files by canonical name
	resolutions  map[string]map[string]string   // File -> specifier -> module name
	graph        *modules.DependencyGraph
	ambient      map[string]bool // Module names declared with `declare module`

	diagnostics []errors.Diagnostic
}

// Build creates the program rooted at root. Files the host cannot provide
// become diagnostics; an error is returned only when the host fails a
// resolution probe, which aborts construction.
func Build(host modules.CompilerHost, root string) (*Program, error) {
	p := &Program{
		host:        host,
		options:     DefaultOptions(),
		root:        host.CanonicalFileName(root),
		units:       make(map[string]*modules.SourceUnit),
		resolutions: make(map[string]map[string]string),
		graph:       modules.NewDependencyGraph(),
		ambient:     make(map[string]bool),
	}

	p.loadDeclaration(host.DefaultLibFileName())
	if err := p.loadTypeRoots(); err != nil {
		return nil, err
	}
	p.loadFiles()

	if p.options.Strict {
		p.check()
	}
	debugPrintf("// [Program] built %s: %d files, %d diagnostics\n", p.root, len(p.units), len(p.diagnostics))
	return p, nil
}

// Root returns the canonical name of the root script.
func (p *Program) Root() string {
	return p.root
}

// Options returns the options the program was built with.
func (p *Program) Options() Options {
	return p.options
}

// Files returns the declaration files followed by the user files in
// dependency order, dependencies first.
func (p *Program) Files() []*modules.SourceUnit {
	files := append([]*modules.SourceUnit(nil), p.declarations...)
	return append(files, p.userFiles()...)
}

// Diagnostics returns the resolution and type diagnostics of the program.
func (p *Program) Diagnostics() []errors.Diagnostic {
	return p.diagnostics
}

func (p *Program) userFiles() []*modules.SourceUnit {
	var files []*modules.SourceUnit
	for _, name := range p.graph.Order(p.root) {
		if unit, ok := p.units[name]; ok {
			files = append(files, unit)
		}
	}
	return files
}

func (p *Program) loadDeclaration(name string) {
	unit := p.host.SourceFile(name, func(msg string) {
		p.cannotRead(name, msg, nil, nil)
	})
	if unit == nil {
		return
	}
	p.declarations = append(p.declarations, unit)
	for _, m := range unit.AmbientModules {
		p.ambient[m] = true
	}
}

// loadTypeRoots probes <root><type>/package.json then <root><type>/index.d.ts
// for every configured type.
func (p *Program) loadTypeRoots() error {
	for _, typ := range p.options.Types {
		found := false
		for _, root := range p.options.TypeRoots {
			dir := root + typ
			if _, err := p.host.FileExists(dir + "/package.json"); err != nil {
				return err
			}
			index := dir + "/index.d.ts"
			ok, err := p.host.FileExists(index)
			if err != nil {
				return err
			}
			if ok {
				p.loadDeclaration(index)
				found = true
				break
			}
		}
		if !found {
			p.addDiagnostic(&errors.ResolutionError{
				TSCode: errors.CodeCannotFindTypeFile,
				Msg:    fmt.Sprintf("Cannot find type definition file for '%s'.", typ),
			})
		}
	}
	return nil
}

// loadFiles loads the root and, breadth first, every file it references.
func (p *Program) loadFiles() {
	type pending struct {
		name string
		from *modules.SourceUnit
		spec *modules.ImportSpec
	}

	queue := []pending{{name: p.root}}
	seen := map[string]bool{p.root: true}
	p.graph.AddModule(p.root)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		unit := p.host.SourceFile(next.name, func(msg string) {
			p.cannotRead(next.name, msg, next.from, next.spec)
		})
		if unit == nil {
			continue
		}
		p.units[next.name] = unit

		specs := unit.Imports
		names := make([]string, len(specs))
		for i, spec := range specs {
			names[i] = spec.Specifier
		}
		resolved := p.host.ResolveModuleNames(names, unit.Name)

		table := make(map[string]string, len(specs))
		p.resolutions[unit.Name] = table
		for i, spec := range specs {
			var target *modules.ResolvedModule
			if i < len(resolved) {
				target = resolved[i]
			}
			if target == nil {
				table[spec.Specifier] = spec.Specifier
				p.unresolved(unit, spec)
				continue
			}
			table[spec.Specifier] = target.ResolvedFileName
			p.graph.AddDependency(unit.Name, target.ResolvedFileName)
			if !seen[target.ResolvedFileName] {
				seen[target.ResolvedFileName] = true
				queue = append(queue, pending{name: target.ResolvedFileName, from: unit, spec: spec})
			}
		}
	}
}

// unresolved reports a static import no script or ambient module provides.
// Only typed files are checked for this.
func (p *Program) unresolved(unit *modules.SourceUnit, spec *modules.ImportSpec) {
	if spec.Kind == modules.ImportDynamic || !script.IsTypeScript(unit.Name) || p.ambient[spec.Specifier] {
		return
	}
	p.addDiagnostic(&errors.ResolutionError{
		Position: errors.At(unit.SourceFile, spec.Token.StartPos, spec.Token.EndPos),
		TSCode:   errors.CodeCannotFindModule,
		Msg:      fmt.Sprintf("Cannot find module '%s' or its corresponding type declarations.", spec.Specifier),
	})
}

// cannotRead reports a file the host failed to provide, positioned at the
// import that referenced it when there is one.
func (p *Program) cannotRead(name, msg string, from *modules.SourceUnit, spec *modules.ImportSpec) {
	diag := &errors.ResolutionError{
		TSCode: errors.CodeCannotReadFile,
		Msg:    fmt.Sprintf("Cannot read file '%s': %s.", name, msg),
	}
	if from != nil && spec != nil {
		diag.Position = errors.At(from.SourceFile, spec.Token.StartPos, spec.Token.EndPos)
	}
	p.addDiagnostic(diag)
}

func (p *Program) check() {
	for _, unit := range p.userFiles() {
		if !script.IsTypeScript(unit.Name) || unit.IsDeclaration() {
			continue
		}
		for _, diag := range checker.Check(unit.SourceFile, unit.Tokens) {
			p.addDiagnostic(diag)
		}
	}
}

func (p *Program) addDiagnostic(diag errors.Diagnostic) {
	debugPrintf("// [Program] diagnostic: %s\n", diag.Error())
	p.diagnostics = append(p.diagnostics, diag)
}
