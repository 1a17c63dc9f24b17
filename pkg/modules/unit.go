package modules

import (
	"netscript/pkg/lexer"
	"netscript/pkg/source"
)

// SourceUnit is a tokenized file ready for program construction.
type SourceUnit struct {
	*source.SourceFile
	ModuleName     string        // Name the file is registered under at run time
	Tokens         []lexer.Token // Full token stream, EOF last
	Imports        []*ImportSpec // Module references in source order
	IsModule       bool          // Has top-level import/export syntax
	AmbientModules []string      // Names declared with `declare module "x"`
}

// NewSourceUnit tokenizes sf and extracts its module references.
func NewSourceUnit(sf *source.SourceFile) *SourceUnit {
	tokens := lexer.Tokenize(sf.Content)
	imports, isModule := ScanImports(tokens)
	return &SourceUnit{
		SourceFile:     sf,
		Tokens:         tokens,
		Imports:        imports,
		IsModule:       isModule,
		AmbientModules: ScanAmbientModules(tokens),
	}
}

// Identifiers returns the identifier tokens of the unit in source order.
func (u *SourceUnit) Identifiers() []lexer.Token {
	var idents []lexer.Token
	for _, tok := range u.Tokens {
		if tok.Type == lexer.IDENT {
			idents = append(idents, tok)
		}
	}
	return idents
}
