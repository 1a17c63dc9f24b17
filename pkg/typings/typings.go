// Package typings owns the two synthetic declaration sources every program is
// checked against: the trimmed standard library and the script API surface.
package typings

import (
	_ "embed"
	"sync"

	"github.com/dlclark/regexp2"
)

// File names under which the host serves the synthetic sources.
const (
	LibFileName          = "lib:lib.d.ts"
	DeclarationsFileName = "lib:///netscript/index.d.ts"
)

//go:embed lib.d.ts
var libSource string

//go:embed netscript.d.ts
var rawDeclarations string

var exportMarker = regexp2.MustCompile(`export `, regexp2.ECMAScript)

// ToAmbient rewrites module export markers into ambient declarations so the
// API surface becomes global without an import.
func ToAmbient(decls string) (string, error) {
	return exportMarker.Replace(decls, "declare ", -1, -1)
}

var declarations = sync.OnceValue(func() string {
	out, err := ToAmbient(rawDeclarations)
	if err != nil {
		panic("typings: rewriting API declarations: " + err.Error())
	}
	return out
})

// LibSource returns the standard-library declaration text.
func LibSource() string {
	return libSource
}

// Declarations returns the ambient API declaration text.
func Declarations() string {
	return declarations()
}

// ExtraLib is a declaration source registered with an editor language service.
// An empty FilePath registers the source anonymously.
type ExtraLib struct {
	Content  string
	FilePath string
}

// EditorLibs returns the API declarations for the two editor contexts: the
// JavaScript defaults take them anonymously, the TypeScript defaults at the
// same path the compiler host serves them from.
func EditorLibs() []ExtraLib {
	decls := Declarations()
	return []ExtraLib{
		{Content: decls},
		{Content: decls, FilePath: DeclarationsFileName},
	}
}
