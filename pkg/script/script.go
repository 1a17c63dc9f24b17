// Package script holds the script record shared by the store, the compiler
// host and the evaluator.
package script

import "strings"

// ValidExtensions lists every filename suffix a script may carry.
var ValidExtensions = []string{".js", ".script", ".ns", ".ts"}

// LegacyExtension marks the pre-module script format. Such scripts are never
// importable.
const LegacyExtension = ".script"

// Script is one named source file on a server.
type Script struct {
	Filename string
	Code     string
}

// IsScriptFilename reports whether f ends in one of ValidExtensions.
func IsScriptFilename(f string) bool {
	for _, ext := range ValidExtensions {
		if strings.HasSuffix(f, ext) {
			return true
		}
	}
	return false
}

// IsLegacy reports whether f uses the legacy script format.
func IsLegacy(f string) bool {
	return strings.HasSuffix(f, LegacyExtension)
}

// IsTypeScript reports whether f is compiled as TypeScript.
func IsTypeScript(f string) bool {
	return strings.HasSuffix(f, ".ts")
}
