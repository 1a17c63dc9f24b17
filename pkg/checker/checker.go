package checker

import (
	"fmt"

	"netscript/pkg/errors"
	"netscript/pkg/lexer"
	"netscript/pkg/source"
)

const checkerDebug = false

func debugPrintf(format string, args ...interface{}) {
	if checkerDebug {
		fmt.Printf(format, args...)
	}
}

// frame is an open scope and the token index that closes it.
type frame struct {
	env   *Environment
	close int
}

// Checker walks the token stream of one TypeScript file, tracking bindings
// per scope, and reports assignments the declared types cannot accept.
type Checker struct {
	file   *source.SourceFile
	tokens []lexer.Token
	match  []int // Index of the matching bracket, -1 when unbalanced

	env    *Environment
	frames []frame

	bodies     map[int]*Environment // Function body brace index -> parameter scope
	loopBodies map[int]bool         // Brace indexes that continue a for-head scope

	errors []errors.Diagnostic
}

// Check type checks one file and returns its diagnostics in source order.
func Check(file *source.SourceFile, tokens []lexer.Token) []errors.Diagnostic {
	c := newChecker(file, tokens)
	c.run()
	return c.errors
}

func newChecker(file *source.SourceFile, tokens []lexer.Token) *Checker {
	return &Checker{
		file:       file,
		tokens:     tokens,
		match:      matchBrackets(tokens),
		env:        NewEnvironment(),
		bodies:     make(map[int]*Environment),
		loopBodies: make(map[int]bool),
	}
}

func (c *Checker) run() {
	for i, tok := range c.tokens {
		switch tok.Type {
		case lexer.LBRACE:
			c.enterBrace(i)
		case lexer.LPAREN:
			c.enterParen(i)
		case lexer.LET, lexer.CONST, lexer.VAR:
			c.declaration(i)
		case lexer.IDENT:
			c.arrowParameter(i)
			c.assignment(i)
		case lexer.INC, lexer.DEC:
			c.prefixUpdate(i)
		}
		for len(c.frames) > 0 && c.frames[len(c.frames)-1].close == i {
			c.pop()
		}
	}
}

func (c *Checker) at(i int) lexer.Token {
	if i >= 0 && i < len(c.tokens) {
		return c.tokens[i]
	}
	return lexer.Token{Type: lexer.EOF}
}

// closing returns the index of the bracket matching the one at i, or the end
// of the stream when it is unbalanced.
func (c *Checker) closing(i int) int {
	if i >= 0 && i < len(c.match) && c.match[i] >= 0 {
		return c.match[i]
	}
	return len(c.tokens)
}

func (c *Checker) push(env *Environment, close int) {
	debugPrintf("// [Checker] push scope block=%v close=%d depth=%d\n", env.block, close, len(c.frames)+1)
	c.frames = append(c.frames, frame{env: env, close: close})
	c.env = env
}

func (c *Checker) pop() {
	c.frames = c.frames[:len(c.frames)-1]
	c.env = c.env.outer
	debugPrintf("// [Checker] pop scope depth=%d\n", len(c.frames))
}

func (c *Checker) enterBrace(i int) {
	if env, ok := c.bodies[i]; ok {
		delete(c.bodies, i)
		c.push(env, c.closing(i))
		return
	}
	if c.loopBodies[i] {
		delete(c.loopBodies, i)
		// The for-head frame already closes with this body.
		c.env.block = true
		return
	}
	c.push(NewEnclosedEnvironment(c.env, c.opensBlock(i)), c.closing(i))
}

// opensBlock reports whether the brace at i starts a statement block rather
// than an object literal, class body or type literal.
func (c *Checker) opensBlock(i int) bool {
	if i == 0 {
		return true
	}
	switch prev := c.tokens[i-1]; prev.Type {
	case lexer.SEMICOLON, lexer.RBRACE, lexer.ARROW, lexer.ELSE, lexer.TRY, lexer.FINALLY, lexer.DO:
		return true
	case lexer.LBRACE:
		return c.env.block
	case lexer.RPAREN:
		return c.isStatementHead(c.match[i-1])
	}
	return false
}

// isStatementHead reports whether the parenthesis at l follows a statement
// keyword such as if or while.
func (c *Checker) isStatementHead(l int) bool {
	switch c.at(l - 1).Type {
	case lexer.IF, lexer.WHILE, lexer.FOR, lexer.SWITCH, lexer.WITH, lexer.CATCH:
		return true
	case lexer.AWAIT:
		return c.at(l-2).Type == lexer.FOR
	}
	return false
}

func (c *Checker) enterParen(i int) {
	r := c.match[i]
	if r < 0 {
		return
	}
	prev := c.at(i - 1)
	switch {
	case prev.Type == lexer.FOR || (prev.Type == lexer.AWAIT && c.at(i-2).Type == lexer.FOR):
		close := r
		if c.at(r+1).Type == lexer.LBRACE {
			close = c.closing(r + 1)
			c.loopBodies[r+1] = true
		}
		c.push(NewEnclosedEnvironment(c.env, false), close)
	case prev.Type == lexer.CATCH:
		if c.at(r+1).Type == lexer.LBRACE {
			c.prepareBody(r+1, c.paramNames(i, r))
		}
	default:
		if body := c.functionBody(i, r); body >= 0 {
			c.prepareBody(body, c.paramNames(i, r))
		}
	}
}

// arrowParameter prepares the body scope of `x => { ... }`.
func (c *Checker) arrowParameter(i int) {
	if c.at(i+1).Type == lexer.ARROW && c.at(i+2).Type == lexer.LBRACE {
		c.prepareBody(i+2, []lexer.Token{c.tokens[i]})
	}
}

func (c *Checker) prepareBody(body int, params []lexer.Token) {
	env := NewEnclosedEnvironment(c.env, true)
	for _, p := range params {
		env.Define(p.Literal, SymbolInfo{Token: p})
	}
	c.bodies[body] = env
}

func (c *Checker) define(name lexer.Token, info SymbolInfo) {
	info.Token = name
	debugPrintf("// [Checker] define %s: %q const=%v\n", name.Literal, info.Type, info.IsConst)
	c.env.Define(name.Literal, info)
}

// matchBrackets pairs (), [] and {} tokens by index.
func matchBrackets(tokens []lexer.Token) []int {
	match := make([]int, len(tokens))
	var stack []int
	for i, tok := range tokens {
		match[i] = -1
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			stack = append(stack, i)
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[open] = i
			match[i] = open
		}
	}
	return match
}
