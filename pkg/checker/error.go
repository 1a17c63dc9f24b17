package checker

import (
	"fmt"

	"netscript/pkg/errors"
	"netscript/pkg/lexer"
)

// addError records a diagnostic spanning tok.
func (c *Checker) addError(tok lexer.Token, code int, format string, args ...interface{}) {
	c.errors = append(c.errors, &errors.TypeError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   c.file,
		},
		TSCode: code,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (c *Checker) notAssignable(tok lexer.Token, src, dst Primitive) {
	c.addError(tok, errors.CodeNotAssignable, "Type '%s' is not assignable to type '%s'.", src, dst)
}

func (c *Checker) assignToConstant(tok lexer.Token) {
	c.addError(tok, errors.CodeAssignToConstant, "Cannot assign to '%s' because it is a constant.", tok.Literal)
}
