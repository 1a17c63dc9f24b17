package checker

import "netscript/pkg/lexer"

// declaration defines the bindings of the let/const/var statement at i and
// checks literal initializers against primitive annotations.
func (c *Checker) declaration(i int) {
	isConst := c.tokens[i].Type == lexer.CONST
	j := i + 1
	for {
		switch t := c.at(j); t.Type {
		case lexer.IDENT:
			j = c.declarator(j, isConst)
		case lexer.LBRACE, lexer.LBRACKET:
			for _, name := range c.patternNames(j) {
				c.define(name, SymbolInfo{IsConst: isConst})
			}
			j = c.closing(j) + 1
			if c.at(j).Type == lexer.COLON {
				j = c.skipType(j + 1)
			}
			if c.at(j).Type == lexer.ASSIGN {
				j = c.skipExpression(j + 1)
			}
		default:
			// `as const`, `const enum` and stray keywords.
			return
		}
		if c.at(j).Type != lexer.COMMA {
			return
		}
		j++
	}
}

// declarator handles `name [!] [: Type] [= init]` starting at j and returns
// the index of the token following it.
func (c *Checker) declarator(j int, isConst bool) int {
	name := c.tokens[j]
	k := j + 1
	if c.at(k).Type == lexer.BANG {
		k++
	}

	declared, annotated := Unknown, false
	if c.at(k).Type == lexer.COLON {
		annotated = true
		declared, k = c.typeAnnotation(k + 1)
	}

	info := SymbolInfo{Type: declared, IsConst: isConst}
	if c.at(k).Type == lexer.ASSIGN {
		if lit, ok := c.literalAt(k + 1); ok {
			if !annotated {
				info.Type = widen(lit)
			} else if !assignable(lit, declared) {
				c.notAssignable(name, lit, declared)
			}
		}
		k = c.skipExpression(k + 1)
	}
	c.define(name, info)
	return k
}

// typeAnnotation reads the type starting at k. Only a lone primitive name is
// tracked; anything else yields Unknown.
func (c *Checker) typeAnnotation(k int) (Primitive, int) {
	t := c.at(k)
	if t.Type == lexer.IDENT || t.Type == lexer.NULL {
		if p := primitiveNamed(t.Literal); p != Unknown && c.endsDeclarator(k+1, t) {
			return p, k + 1
		}
	}
	return Unknown, c.skipType(k)
}

func (c *Checker) endsDeclarator(k int, last lexer.Token) bool {
	next := c.at(k)
	switch next.Type {
	case lexer.ASSIGN, lexer.COMMA, lexer.SEMICOLON, lexer.RPAREN, lexer.EOF:
		return true
	}
	return next.Line > last.Line && startsStatement(next)
}

// literalAt recognizes a complete literal expression starting at k and
// returns its type.
func (c *Checker) literalAt(k int) (Primitive, bool) {
	t := c.at(k)
	end := k + 1
	var p Primitive
	switch t.Type {
	case lexer.NUMBER:
		p = Number
	case lexer.MINUS, lexer.PLUS:
		t = c.at(k + 1)
		if t.Type != lexer.NUMBER {
			return Unknown, false
		}
		p, end = Number, k+2
	case lexer.STRING, lexer.TEMPLATE:
		p = String
	case lexer.TRUE, lexer.FALSE:
		p = Boolean
	case lexer.NULL:
		p = Null
	case lexer.IDENT:
		if t.Literal != "undefined" {
			return Unknown, false
		}
		p = Undefined
	default:
		return Unknown, false
	}
	if p == Number && isBigInt(t.Literal) {
		return Unknown, false
	}
	if !c.endsExpressionAt(end, t) {
		return Unknown, false
	}
	return p, true
}

func isBigInt(lit string) bool {
	return len(lit) > 0 && lit[len(lit)-1] == 'n'
}

// endsExpressionAt reports whether an expression whose last token is last
// is complete when followed by the token at k.
func (c *Checker) endsExpressionAt(k int, last lexer.Token) bool {
	next := c.at(k)
	switch next.Type {
	case lexer.SEMICOLON, lexer.COMMA, lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET, lexer.EOF:
		return true
	}
	return next.Line > last.Line && startsStatement(next)
}

// skipExpression returns the index of the token ending the expression that
// starts at k: a comma or semicolon at depth zero, an enclosing closer, or
// the first token of the next statement after a line break.
func (c *Checker) skipExpression(k int) int {
	for ; k < len(c.tokens); k++ {
		t := c.tokens[k]
		switch t.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			k = c.closing(k)
			continue
		case lexer.COMMA, lexer.SEMICOLON, lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE, lexer.EOF:
			return k
		}
		if k > 0 && t.Line > c.tokens[k-1].Line && endsExpression(c.tokens[k-1]) && startsStatement(t) {
			return k
		}
	}
	return k
}

// skipType returns the index of the token following the type that starts
// at k.
func (c *Checker) skipType(k int) int {
	angle := 0
	for ; k < len(c.tokens); k++ {
		t := c.tokens[k]
		switch t.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			k = c.closing(k)
			continue
		case lexer.LT:
			angle++
			continue
		case lexer.GT:
			angle--
			continue
		case lexer.RIGHT_SHIFT:
			angle -= 2
			continue
		case lexer.UNSIGNED_RIGHT_SHIFT:
			angle -= 3
			continue
		case lexer.COMMA:
			if angle > 0 {
				continue
			}
			return k
		case lexer.ASSIGN, lexer.SEMICOLON, lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE, lexer.EOF:
			return k
		}
		if angle <= 0 && k > 0 && t.Line > c.tokens[k-1].Line && !continuesType(c.tokens[k-1]) {
			return k
		}
	}
	return k
}

// patternNames lists the identifiers bound by the destructuring pattern
// whose opening bracket is at open.
func (c *Checker) patternNames(open int) []lexer.Token {
	var names []lexer.Token
	for j := open + 1; j < c.closing(open) && j < len(c.tokens); j++ {
		t := c.tokens[j]
		if t.Type != lexer.IDENT || c.at(j-1).Type == lexer.DOT {
			continue
		}
		switch c.at(j + 1).Type {
		case lexer.COMMA, lexer.RBRACE, lexer.RBRACKET, lexer.ASSIGN:
			names = append(names, t)
		}
	}
	return names
}

func endsExpression(t lexer.Token) bool {
	switch t.Type {
	case lexer.IDENT, lexer.PRIVATE_NAME, lexer.NUMBER, lexer.STRING, lexer.TEMPLATE, lexer.TEMPLATE_TAIL,
		lexer.REGEX_LITERAL, lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE, lexer.TRUE, lexer.FALSE,
		lexer.NULL, lexer.THIS, lexer.SUPER, lexer.INC, lexer.DEC,
		lexer.BREAK, lexer.CONTINUE, lexer.RETURN, lexer.DEBUGGER:
		return true
	}
	return false
}

// startsStatement reports whether t cannot continue the previous line's
// expression, so a line break before it ends that expression.
func startsStatement(t lexer.Token) bool {
	switch t.Type {
	case lexer.IDENT, lexer.PRIVATE_NAME, lexer.NUMBER, lexer.STRING, lexer.TEMPLATE, lexer.TEMPLATE_HEAD,
		lexer.LBRACE, lexer.INC, lexer.DEC, lexer.BANG, lexer.AT, lexer.EOF:
		return true
	}
	return lexer.IsKeyword(t.Type) && t.Type != lexer.IN && t.Type != lexer.INSTANCEOF
}

func continuesType(t lexer.Token) bool {
	switch t.Type {
	case lexer.PIPE, lexer.BITWISE_AND, lexer.ARROW, lexer.COLON, lexer.LT, lexer.COMMA, lexer.QUESTION, lexer.EXTENDS:
		return true
	}
	return false
}
