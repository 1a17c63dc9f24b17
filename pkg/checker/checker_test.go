package checker

import (
	"testing"

	"netscript/pkg/errors"
	"netscript/pkg/lexer"
	"netscript/pkg/source"
)

func check(input string) []errors.Diagnostic {
	return Check(source.NewSourceFile("/test.ts", input), lexer.Tokenize(input))
}

func TestCheckDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"annotated string into number", `let x: number = "hello";`,
			[]string{"Type 'string' is not assignable to type 'number'."}},
		{"const reassignment", "const y = 1;\ny = 2;",
			[]string{"Cannot assign to 'y' because it is a constant."}},
		{"inferred type reassignment", "let s = \"a\";\ns = 5;",
			[]string{"Type 'number' is not assignable to type 'string'."}},
		{"null under strict checks", `let n: number = null;`,
			[]string{"Type 'null' is not assignable to type 'number'."}},
		{"undefined under strict checks", `let flag: boolean = undefined;`,
			[]string{"Type 'undefined' is not assignable to type 'boolean'."}},
		{"template literal", "let t: number = `abc`;",
			[]string{"Type 'string' is not assignable to type 'number'."}},
		{"negative number", `let m: string = -1;`,
			[]string{"Type 'number' is not assignable to type 'string'."}},
		{"well typed", "let ok: number = 1 + 2;\nlet z = \"a\";\nz = \"b\";\nconst w: boolean = true;",
			nil},
		{"parameter shadows const", "const x = 1;\nfunction f(x: number) {\n  x = 2;\n}",
			nil},
		{"block scope", "const x = 1;\n{\n  let x = 2;\n  x = 3;\n}\nx = 4;",
			[]string{"Cannot assign to 'x' because it is a constant."}},
		{"property assignment", "const o = { a: 1 };\no.a = 2;\nconst a = 1;\no.a = 3;",
			nil},
		{"class field", "const x = 1;\nclass A {\n  x = 2;\n}",
			nil},
		{"for-of binding", "for (const v of [1, 2]) {\n  v = 3;\n}",
			[]string{"Cannot assign to 'v' because it is a constant."}},
		{"for loop counter", "for (let i = 0; i < 3; i++) {\n  i = \"a\";\n}",
			[]string{"Type 'string' is not assignable to type 'number'."}},
		{"arrow parameters", "let count = 1;\nconst g = (count) => {\n  count = \"x\";\n};\nconst h = count => {\n  count = \"y\";\n};",
			nil},
		{"update operators", "const c = 1;\nc += 1;\nc++;\n--c;",
			[]string{
				"Cannot assign to 'c' because it is a constant.",
				"Cannot assign to 'c' because it is a constant.",
				"Cannot assign to 'c' because it is a constant.",
			}},
		{"non-literal initializers", "let a: number = \"x\".length;\nlet b: string = 1 + \"a\";\nlet big: number = 10n;",
			nil},
		{"union annotation", `let u: number | string = "a";`,
			nil},
		{"automatic semicolons", "let a = 1\na = \"b\"",
			[]string{"Type 'string' is not assignable to type 'number'."}},
		{"catch parameter", "const e = 1;\ntry {\n} catch (e) {\n  e = 2;\n}",
			nil},
		{"return type annotation", "const r = 1;\nfunction h(r): number {\n  r = 2;\n  return r;\n}",
			nil},
		{"destructured const", "const { p, q: renamed } = obj;\nrenamed = 1;\np = 2;",
			[]string{
				"Cannot assign to 'renamed' because it is a constant.",
				"Cannot assign to 'p' because it is a constant.",
			}},
		{"if statement body", "const k = 1;\nif (ready) k = 2;",
			[]string{"Cannot assign to 'k' because it is a constant."}},
		{"comparison is not assignment", "const k = 1;\nif (k == 2) {\n}",
			nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := check(tt.input)
			if len(diags) != len(tt.expected) {
				var got []string
				for _, d := range diags {
					got = append(got, d.Message())
				}
				t.Fatalf("Expected %d diagnostics, got %d: %v", len(tt.expected), len(diags), got)
			}
			for i, d := range diags {
				if d.Message() != tt.expected[i] {
					t.Errorf("diag[%d]: expected %q, got %q", i, tt.expected[i], d.Message())
				}
			}
		})
	}
}

func TestDiagnosticCodesAndPositions(t *testing.T) {
	diags := check("const y = 1;\ny = 2;\nlet z: string = 3;")
	if len(diags) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", len(diags))
	}

	if diags[0].Code() != errors.CodeAssignToConstant {
		t.Errorf("Expected code %d, got %d", errors.CodeAssignToConstant, diags[0].Code())
	}
	if pos := diags[0].Pos(); pos.Line != 2 || pos.Column != 1 || pos.FileName() != "/test.ts" {
		t.Errorf("Unexpected position %+v", pos)
	}

	if diags[1].Code() != errors.CodeNotAssignable {
		t.Errorf("Expected code %d, got %d", errors.CodeNotAssignable, diags[1].Code())
	}
	if pos := diags[1].Pos(); pos.Line != 3 || pos.Column != 5 {
		t.Errorf("Unexpected position %+v", pos)
	}
}

func TestEnvironment(t *testing.T) {
	global := NewEnvironment()
	if !global.IsBlock() {
		t.Errorf("Expected top level to be a block")
	}
	global.Define("x", SymbolInfo{Type: Number, IsConst: true})

	inner := NewEnclosedEnvironment(global, false)
	if inner.IsBlock() || inner.Outer() != global {
		t.Errorf("Unexpected enclosed environment")
	}
	if info, ok := inner.Resolve("x"); !ok || info.Type != Number || !info.IsConst {
		t.Errorf("Expected to resolve outer x, got %+v, %v", info, ok)
	}

	if !inner.Define("x", SymbolInfo{Type: String}) {
		t.Errorf("Expected shadowing definition to be new to the scope")
	}
	if inner.Define("x", SymbolInfo{Type: Boolean}) {
		t.Errorf("Expected redefinition to report an existing binding")
	}
	if info, _ := inner.Resolve("x"); info.Type != Boolean || info.IsConst {
		t.Errorf("Expected inner binding, got %+v", info)
	}
	if _, ok := inner.Resolve("missing"); ok {
		t.Errorf("Expected missing name to be unresolved")
	}
}
