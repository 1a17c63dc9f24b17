package checker

import "netscript/pkg/lexer"

// SymbolInfo is what the checker knows about one binding.
type SymbolInfo struct {
	Type    Primitive
	IsConst bool
	Token   lexer.Token // Declaring identifier
}

// Environment manages bindings within one brace or parameter scope.
type Environment struct {
	symbols map[string]SymbolInfo
	outer   *Environment
	block   bool // Statements may appear directly inside this scope
}

// NewEnvironment creates a new top-level environment.
func NewEnvironment() *Environment {
	return &Environment{
		symbols: make(map[string]SymbolInfo),
		block:   true,
	}
}

// NewEnclosedEnvironment creates a new environment nested within an outer one.
func NewEnclosedEnvironment(outer *Environment, block bool) *Environment {
	return &Environment{
		symbols: make(map[string]SymbolInfo),
		outer:   outer,
		block:   block,
	}
}

// Define binds name in this scope, replacing an earlier binding of the same
// scope. It reports whether the name was new to the scope.
func (e *Environment) Define(name string, info SymbolInfo) bool {
	_, exists := e.symbols[name]
	e.symbols[name] = info
	return !exists
}

// Resolve looks up name in this environment and its outer scopes.
func (e *Environment) Resolve(name string) (SymbolInfo, bool) {
	for env := e; env != nil; env = env.outer {
		if info, ok := env.symbols[name]; ok {
			return info, true
		}
	}
	return SymbolInfo{}, false
}

// Outer returns the enclosing environment, nil at the top level.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// IsBlock reports whether statements may appear directly in the scope, as
// opposed to an object literal, class body or type literal.
func (e *Environment) IsBlock() bool {
	return e.block
}
