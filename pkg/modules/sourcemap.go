package modules

import (
	"sort"
	"strings"

	"netscript/pkg/script"
)

// SourceMap maps canonical script paths to their source text for one
// compilation request.
type SourceMap map[string]string

// Canonical prefixes name with "/" unless it already has one.
func Canonical(name string) string {
	if !strings.HasPrefix(name, "/") {
		return "/" + name
	}
	return name
}

// NewSourceMap builds the map for compiling root. Siblings are the other
// scripts on the same server; root's code replaces any sibling of the same
// name.
func NewSourceMap(root, code string, siblings []script.Script) SourceMap {
	m := make(SourceMap, len(siblings)+1)
	for _, s := range siblings {
		m[Canonical(s.Filename)] = s.Code
	}
	m[Canonical(root)] = code
	return m
}

// Names returns the canonical paths in the map, sorted.
func (m SourceMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
