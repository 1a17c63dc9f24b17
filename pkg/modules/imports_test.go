package modules

import (
	"testing"

	"netscript/pkg/lexer"
	"netscript/pkg/source"
)

func TestScanImports(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		specs    []string
		kinds    []ImportKind
		typeOnly []bool
		isModule bool
	}{
		{
			name:     "named import",
			input:    `import { a, b as c } from "./lib.js";`,
			specs:    []string{"./lib.js"},
			kinds:    []ImportKind{ImportStatic},
			typeOnly: []bool{false},
			isModule: true,
		},
		{
			name:     "side effect and default",
			input:    "import \"/setup.js\"\nimport helper from 'helper.js'",
			specs:    []string{"/setup.js", "helper.js"},
			kinds:    []ImportKind{ImportStatic, ImportStatic},
			typeOnly: []bool{false, false},
			isModule: true,
		},
		{
			name:     "type only",
			input:    `import type { Server } from "/types.ts"; import type from "/type.js";`,
			specs:    []string{"/types.ts", "/type.js"},
			kinds:    []ImportKind{ImportStatic, ImportStatic},
			typeOnly: []bool{true, false},
			isModule: true,
		},
		{
			name:     "re-exports",
			input:    `export * from "a.js"; export * as b from "b.js"; export { c } from "c.js"; export type { D } from "d.ts"; export { e };`,
			specs:    []string{"a.js", "b.js", "c.js", "d.ts"},
			kinds:    []ImportKind{ImportReexport, ImportReexport, ImportReexport, ImportReexport},
			typeOnly: []bool{false, false, false, true},
			isModule: true,
		},
		{
			name:     "dynamic",
			input:    "async function f() { await import(\"x.js\"); await import(name); }",
			specs:    []string{"x.js"},
			kinds:    []ImportKind{ImportDynamic},
			typeOnly: []bool{false},
			isModule: false,
		},
		{
			name:     "export declaration with string initializer",
			input:    `export const greeting = "hello";`,
			isModule: true,
		},
		{
			name:     "import meta",
			input:    `const url = import.meta.url;`,
			isModule: true,
		},
		{
			name:     "property named import",
			input:    `loader.import("x.js"); var s = "from";`,
			isModule: false,
		},
		{
			name:     "import equals require",
			input:    `import fs = require("fs.js");`,
			specs:    []string{"fs.js"},
			kinds:    []ImportKind{ImportStatic},
			typeOnly: []bool{false},
			isModule: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, isModule := ScanImports(lexer.Tokenize(tt.input))
			if isModule != tt.isModule {
				t.Errorf("Expected isModule=%v, got %v", tt.isModule, isModule)
			}
			if len(specs) != len(tt.specs) {
				t.Fatalf("Expected %d specs, got %d: %+v", len(tt.specs), len(specs), specs)
			}
			for i, spec := range specs {
				if spec.Specifier != tt.specs[i] {
					t.Errorf("spec[%d]: expected %q, got %q", i, tt.specs[i], spec.Specifier)
				}
				if spec.Kind != tt.kinds[i] {
					t.Errorf("spec[%d]: expected kind %s, got %s", i, tt.kinds[i], spec.Kind)
				}
				if spec.TypeOnly != tt.typeOnly[i] {
					t.Errorf("spec[%d]: expected typeOnly=%v, got %v", i, tt.typeOnly[i], spec.TypeOnly)
				}
			}
		})
	}
}

func TestIsRuntime(t *testing.T) {
	if !(&ImportSpec{Kind: ImportStatic}).IsRuntime() {
		t.Errorf("Expected value import to be a runtime dependency")
	}
	if !(&ImportSpec{Kind: ImportReexport}).IsRuntime() {
		t.Errorf("Expected re-export to be a runtime dependency")
	}
	if (&ImportSpec{Kind: ImportStatic, TypeOnly: true}).IsRuntime() {
		t.Errorf("Expected type-only import to be erased")
	}
	if (&ImportSpec{Kind: ImportDynamic}).IsRuntime() {
		t.Errorf("Expected dynamic import to be deferred")
	}
}

func TestScanAmbientModules(t *testing.T) {
	tokens := lexer.Tokenize(`declare module "virtual:config" { export const a: number; }
declare module 'other' {}
declare const x: number;`)
	names := ScanAmbientModules(tokens)
	if len(names) != 2 || names[0] != "virtual:config" || names[1] != "other" {
		t.Errorf("Unexpected ambient modules %v", names)
	}
}

func TestIdentifiers(t *testing.T) {
	unit := NewSourceUnit(source.NewSourceFile("/a.js", `export function main(ns) { ns.hack("n00dles"); /* ns.grow */ }`))
	var names []string
	for _, tok := range unit.Identifiers() {
		names = append(names, tok.Literal)
	}
	want := []string{"main", "ns", "ns", "hack"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ident[%d]: expected %q, got %q", i, want[i], names[i])
		}
	}
}
