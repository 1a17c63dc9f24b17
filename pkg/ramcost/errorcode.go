package ramcost

import (
	"errors"
	"strings"

	nserrors "netscript/pkg/errors"
	"netscript/pkg/modules"
)

// ErrorCode is reported in place of a cost when a script's RAM usage cannot
// be calculated.
type ErrorCode int

const (
	SyntaxError    ErrorCode = -1
	ImportError    ErrorCode = -2
	URLImportError ErrorCode = -3
)

func (c ErrorCode) String() string {
	switch c {
	case SyntaxError:
		return "SyntaxError"
	case ImportError:
		return "ImportError"
	case URLImportError:
		return "URLImportError"
	default:
		return "unknown"
	}
}

// CodeOf maps a failed cost calculation to the code reported in place of a
// cost.
func CodeOf(err error) ErrorCode {
	var resolution *nserrors.ResolutionError
	switch {
	case errors.Is(err, modules.ErrUnexpectedProbe), errors.As(err, &resolution):
		if msg := err.Error(); strings.Contains(msg, "http://") || strings.Contains(msg, "https://") {
			return URLImportError
		}
		return ImportError
	default:
		return SyntaxError
	}
}
