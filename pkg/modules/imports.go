package modules

import (
	"netscript/pkg/lexer"
)

// ImportKind distinguishes how a module reference appears in source.
type ImportKind int

const (
	ImportStatic   ImportKind = iota // import ... from "x" / import "x"
	ImportReexport                   // export ... from "x"
	ImportDynamic                    // import("x")
)

func (k ImportKind) String() string {
	switch k {
	case ImportStatic:
		return "static"
	case ImportReexport:
		return "re-export"
	case ImportDynamic:
		return "dynamic"
	default:
		return "invalid"
	}
}

// ImportSpec is one module reference with a literal specifier.
type ImportSpec struct {
	Specifier string      // Module name as written
	Kind      ImportKind  // How the module is referenced
	TypeOnly  bool        // import type / export type: erased at emit
	Token     lexer.Token // The specifier's string token
}

// IsRuntime reports whether the reference must be satisfied when the module
// is defined: a value import or re-export, not a type-only or dynamic one.
func (s *ImportSpec) IsRuntime() bool {
	return !s.TypeOnly && s.Kind != ImportDynamic
}

// ScanImports extracts module references from a token stream and reports
// whether the stream has module syntax (top-level import/export or
// import.meta).
func ScanImports(tokens []lexer.Token) (specs []*ImportSpec, isModule bool) {
	at := func(i int) lexer.Token {
		if i >= 0 && i < len(tokens) {
			return tokens[i]
		}
		return lexer.Token{Type: lexer.EOF}
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i].Type {
		case lexer.IMPORT:
			switch at(i + 1).Type {
			case lexer.LPAREN:
				arg := at(i + 2)
				if (arg.Type == lexer.STRING || arg.Type == lexer.TEMPLATE) &&
					(at(i+3).Type == lexer.RPAREN || at(i+3).Type == lexer.COMMA) {
					specs = append(specs, &ImportSpec{Specifier: arg.Literal, Kind: ImportDynamic, Token: arg})
				}
			case lexer.DOT:
				isModule = true
			default:
				isModule = true
				if spec := scanImportDeclaration(tokens, i+1, at); spec != nil {
					specs = append(specs, spec)
				}
			}
		case lexer.EXPORT:
			isModule = true
			if spec := scanReexport(tokens, i+1, at); spec != nil {
				specs = append(specs, spec)
			}
		}
	}
	return specs, isModule
}

// scanImportDeclaration finds the specifier of the import declaration whose
// clause starts at tokens[j].
func scanImportDeclaration(tokens []lexer.Token, j int, at func(int) lexer.Token) *ImportSpec {
	typeOnly := false
	if isWord(at(j), "type") {
		next := at(j + 1)
		typeOnly = next.Type != lexer.COMMA && next.Type != lexer.ASSIGN && !isWord(next, "from")
	}

	for k := j; k < len(tokens); k++ {
		tok := tokens[k]
		switch tok.Type {
		case lexer.STRING:
			prev := at(k - 1)
			// import "x" | import a from "x" | import a = require("x")
			if k == j || isWord(prev, "from") || (prev.Type == lexer.LPAREN && isWord(at(k-2), "require")) {
				return &ImportSpec{Specifier: tok.Literal, Kind: ImportStatic, TypeOnly: typeOnly, Token: tok}
			}
			return nil
		case lexer.SEMICOLON, lexer.EOF, lexer.IMPORT, lexer.EXPORT:
			return nil
		}
	}
	return nil
}

// scanReexport recognizes `export * from "x"`, `export * as ns from "x"` and
// `export { a, b as c } from "x"` starting after the export keyword.
func scanReexport(tokens []lexer.Token, j int, at func(int) lexer.Token) *ImportSpec {
	typeOnly := false
	if isWord(at(j), "type") && (at(j+1).Type == lexer.LBRACE || at(j+1).Type == lexer.ASTERISK) {
		typeOnly = true
		j++
	}

	k := j + 1
	switch at(j).Type {
	case lexer.ASTERISK:
		if isWord(at(k), "as") {
			k += 2
		}
	case lexer.LBRACE:
		for k < len(tokens) && tokens[k].Type != lexer.RBRACE {
			if tokens[k].Type == lexer.EOF {
				return nil
			}
			k++
		}
		k++
	default:
		return nil
	}

	if !isWord(at(k), "from") || at(k+1).Type != lexer.STRING {
		return nil
	}
	tok := at(k + 1)
	return &ImportSpec{Specifier: tok.Literal, Kind: ImportReexport, TypeOnly: typeOnly, Token: tok}
}

// ScanAmbientModules lists the names of `declare module "x"` blocks.
func ScanAmbientModules(tokens []lexer.Token) []string {
	var names []string
	for i := 0; i+2 < len(tokens); i++ {
		if isWord(tokens[i], "declare") && isWord(tokens[i+1], "module") && tokens[i+2].Type == lexer.STRING {
			names = append(names, tokens[i+2].Literal)
		}
	}
	return names
}

func isWord(tok lexer.Token, word string) bool {
	return tok.Type == lexer.IDENT && tok.Literal == word
}
