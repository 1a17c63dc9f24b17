package program

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Definition is one emitted module.
type Definition struct {
	Name    string            // Canonical module name
	Deps    []string          // "require", "exports", then static runtime dependencies
	Imports map[string]string // Specifier as written -> module name it loads
	Code    string            // CommonJS body with an inline source map
}

// Bundle is the output of a program emit: definitions in dependency order,
// dependencies first.
type Bundle struct {
	OutFile     string
	Entry       string
	Definitions []*Definition
}

// Definition returns the definition registered under name, or nil.
func (b *Bundle) Definition(name string) *Definition {
	for _, def := range b.Definitions {
		if def.Name == name {
			return def
		}
	}
	return nil
}

// String renders the bundle as wrapper text, one define call per module.
func (b *Bundle) String() string {
	var sb strings.Builder
	for _, def := range b.Definitions {
		sb.WriteString(def.String())
	}
	return sb.String()
}

func (d *Definition) String() string {
	deps := make([]string, len(d.Deps))
	params := make([]string, len(d.Deps))
	for i, dep := range d.Deps {
		deps[i] = strconv.Quote(dep)
		switch dep {
		case "require", "exports":
			params[i] = dep
		default:
			params[i] = fmt.Sprintf("%s_%d", paramName(dep), i-1)
		}
	}
	return fmt.Sprintf("define(%s, [%s], function (%s) {\n%s\n});\n",
		strconv.Quote(d.Name), strings.Join(deps, ", "), strings.Join(params, ", "), strings.TrimRight(d.Code, "\n"))
}

// paramName derives an identifier from a module name: "/lib/util.js" -> "util_js".
func paramName(module string) string {
	base := path.Base(module)
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}
