package checker

import "netscript/pkg/lexer"

// functionBody returns the index of the body brace of the function whose
// parameter list spans l..r, or -1 when the parentheses are not parameters.
func (c *Checker) functionBody(l, r int) int {
	switch c.at(r + 1).Type {
	case lexer.ARROW:
		if c.at(r+2).Type == lexer.LBRACE {
			return r + 2
		}
	case lexer.LBRACE:
		switch c.at(l - 1).Type {
		case lexer.FUNCTION, lexer.IDENT, lexer.GT, lexer.RBRACKET, lexer.STRING:
			return r + 1
		}
	case lexer.COLON:
		return c.afterReturnType(r + 1)
	}
	return -1
}

// afterReturnType skips the return type annotation after the colon at
// colon and returns the index of the body brace that follows it, or -1.
func (c *Checker) afterReturnType(colon int) int {
	j := colon + 1
	if c.at(j).Type == lexer.LBRACE {
		j = c.closing(j) + 1
		switch c.at(j).Type {
		case lexer.LBRACE:
			return j
		case lexer.ARROW:
			if c.at(j+1).Type == lexer.LBRACE {
				return j + 1
			}
		}
		return -1
	}

	angle := 0
	for ; j < len(c.tokens); j++ {
		t := c.tokens[j]
		switch t.Type {
		case lexer.LBRACE:
			if angle <= 0 {
				return j
			}
			j = c.closing(j)
			continue
		case lexer.LPAREN, lexer.LBRACKET:
			j = c.closing(j)
			continue
		case lexer.ARROW:
			if angle <= 0 {
				if c.at(j+1).Type == lexer.LBRACE {
					return j + 1
				}
				return -1
			}
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
			return -1
		case lexer.SEMICOLON, lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET, lexer.ASSIGN, lexer.EOF:
			return -1
		}
		if angle <= 0 && t.Line > c.tokens[j-1].Line && !continuesType(c.tokens[j-1]) {
			return -1
		}
	}
	return -1
}

// paramNames lists the identifiers bound by the parameter list spanning l..r.
func (c *Checker) paramNames(l, r int) []lexer.Token {
	var names []lexer.Token
	expectName := true
	for j := l + 1; j < r; j++ {
		t := c.tokens[j]
		switch t.Type {
		case lexer.COMMA:
			expectName = true
		case lexer.SPREAD:
		case lexer.LBRACE, lexer.LBRACKET:
			if expectName {
				names = append(names, c.patternNames(j)...)
			}
			j = c.closing(j)
			expectName = false
		case lexer.LPAREN:
			j = c.closing(j)
			expectName = false
		case lexer.IDENT:
			if !expectName {
				continue
			}
			if isParameterModifier(t.Literal) && c.at(j+1).Type == lexer.IDENT {
				continue
			}
			names = append(names, t)
			expectName = false
		default:
			expectName = false
		}
	}
	return names
}

func isParameterModifier(word string) bool {
	switch word {
	case "public", "private", "protected", "readonly", "override":
		return true
	}
	return false
}
