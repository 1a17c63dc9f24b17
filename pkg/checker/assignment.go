package checker

import "netscript/pkg/lexer"

// assignment checks `name = value`, `name op= value` and `name++` statements
// starting at the identifier at i.
func (c *Checker) assignment(i int) {
	name := c.tokens[i]
	op := c.at(i + 1)
	switch {
	case isAssignOperator(op.Type):
	case (op.Type == lexer.INC || op.Type == lexer.DEC) && op.Line == name.Line:
	default:
		return
	}
	if !c.atStatementStart(i) {
		return
	}

	info, ok := c.env.Resolve(name.Literal)
	if !ok {
		return
	}
	if info.IsConst {
		c.assignToConstant(name)
		return
	}
	if op.Type != lexer.ASSIGN || info.Type == Unknown {
		return
	}
	if lit, ok := c.literalAt(i + 2); ok && !assignable(lit, info.Type) {
		c.notAssignable(name, lit, info.Type)
	}
}

// prefixUpdate checks `++name` and `--name` statements.
func (c *Checker) prefixUpdate(i int) {
	name := c.at(i + 1)
	if name.Type != lexer.IDENT || !c.atStatementStart(i) {
		return
	}
	switch c.at(i + 2).Type {
	case lexer.DOT, lexer.QUESTION_DOT, lexer.LBRACKET, lexer.LPAREN:
		return
	}
	if info, ok := c.env.Resolve(name.Literal); ok && info.IsConst {
		c.assignToConstant(name)
	}
}

// atStatementStart reports whether the token at i begins a statement of the
// current block.
func (c *Checker) atStatementStart(i int) bool {
	if !c.env.block {
		return false
	}
	if i == 0 {
		return true
	}
	prev := c.tokens[i-1]
	switch prev.Type {
	case lexer.SEMICOLON, lexer.LBRACE, lexer.RBRACE, lexer.ELSE, lexer.DO:
		return true
	case lexer.RPAREN:
		if l := c.match[i-1]; l >= 0 && c.isStatementHead(l) {
			return true
		}
	}
	return prev.Line < c.tokens[i].Line && endsExpression(prev)
}

func isAssignOperator(t lexer.TokenType) bool {
	switch t {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.ASTERISK_ASSIGN, lexer.EXPONENT_ASSIGN,
		lexer.SLASH_ASSIGN, lexer.PERCENT_ASSIGN, lexer.BITWISE_AND_ASSIGN, lexer.BITWISE_OR_ASSIGN,
		lexer.BITWISE_XOR_ASSIGN, lexer.LEFT_SHIFT_ASSIGN, lexer.RIGHT_SHIFT_ASSIGN,
		lexer.UNSIGNED_RIGHT_SHIFT_ASSIGN, lexer.LOGICAL_AND_ASSIGN, lexer.LOGICAL_OR_ASSIGN,
		lexer.COALESCE_ASSIGN:
		return true
	}
	return false
}
