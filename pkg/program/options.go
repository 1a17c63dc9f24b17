package program

// Options is the compiler option set every program is built with. It is not
// configurable by callers.
type Options struct {
	AllowJS                 bool
	InlineSourceMap         bool
	Module                  string
	ModuleResolution        string
	NoEmitOnError           bool
	OutFile                 string
	RemoveComments          bool
	Strict                  bool
	SuppressOutputPathCheck bool
	Target                  string
	TypeRoots               []string
	Types                   []string
}

// DefaultOptions returns the fixed option set.
func DefaultOptions() Options {
	return Options{
		AllowJS:                 true,
		InlineSourceMap:         true,
		Module:                  "AMD",
		ModuleResolution:        "NodeJS",
		NoEmitOnError:           true,
		OutFile:                 "o",
		RemoveComments:          true,
		Strict:                  true,
		SuppressOutputPathCheck: true,
		Target:                  "ES2019",
		TypeRoots:               []string{"lib:///"},
		Types:                   []string{"netscript"},
	}
}
