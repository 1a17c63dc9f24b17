package modules

// Extension tells the program builder how a resolved module is compiled.
type Extension string

const (
	ExtensionTS  Extension = ".ts"  // Typed module
	ExtensionMJS Extension = ".mjs" // Generic ES module
)

// ResolvedModule is the answer to one module name lookup.
type ResolvedModule struct {
	ResolvedFileName string    // Canonical path of the script
	Extension        Extension // How the script is compiled
}

// CompilerHost is the file system a program is built against. Every answer
// comes from memory; implementations never touch the real file system.
type CompilerHost interface {
	// CurrentDirectory is the directory relative names are resolved against.
	CurrentDirectory() string

	// CanonicalFileName returns the form used to compare file names.
	CanonicalFileName(name string) string

	// ResolveModuleNames resolves each import specifier. A nil entry means
	// "not a known script": the builder falls back to ambient module
	// declarations.
	ResolveModuleNames(names []string, containingFile string) []*ResolvedModule

	// DefaultLibFileName names the standard-library declaration file.
	DefaultLibFileName() string

	// FileExists answers resolution probes. Probes the host cannot have been
	// asked legitimately return an error.
	FileExists(name string) (bool, error)

	// ReadFile returns the text of name, or false when it does not exist.
	ReadFile(name string) (string, bool)

	// SourceFile loads and tokenizes name. Failures are reported through
	// onError and yield nil.
	SourceFile(name string, onError func(message string)) *SourceUnit

	UseCaseSensitiveFileNames() bool
	NewLine() string

	// WriteFile is part of the host surface but output is always delivered
	// in memory.
	WriteFile(name, data string) error
}
