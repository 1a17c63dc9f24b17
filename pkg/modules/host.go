package modules

import (
	"errors"
	"fmt"
	"strings"

	"netscript/pkg/script"
	"netscript/pkg/source"
	"netscript/pkg/typings"
)

var (
	// ErrUnexpectedProbe is returned by FileExists for any path the host
	// never expects to be asked about. It signals a resolution bug.
	ErrUnexpectedProbe = errors.New("unexpected file probe")

	// ErrWriteUnsupported is returned by WriteFile.
	ErrWriteUnsupported = errors.New("writing files is not supported")
)

// Messages passed to the SourceFile error callback.
const (
	MsgScriptNotFound = "script not found"
	MsgNotAModule     = "not a module"
)

// VirtualHost serves a SourceMap plus the two synthetic declaration files.
type VirtualHost struct {
	scripts SourceMap
}

var _ CompilerHost = (*VirtualHost)(nil)

// NewVirtualHost creates a host over scripts. The map is only read.
func NewVirtualHost(scripts SourceMap) *VirtualHost {
	return &VirtualHost{scripts: scripts}
}

func (h *VirtualHost) CurrentDirectory() string {
	return "/"
}

func (h *VirtualHost) CanonicalFileName(name string) string {
	return Canonical(name)
}

func (h *VirtualHost) ResolveModuleNames(names []string, containingFile string) []*ResolvedModule {
	resolved := make([]*ResolvedModule, len(names))
	for i, name := range names {
		name = Canonical(name)
		if _, ok := h.scripts[name]; !ok || script.IsLegacy(name) {
			continue
		}
		ext := ExtensionMJS
		if script.IsTypeScript(name) {
			ext = ExtensionTS
		}
		resolved[i] = &ResolvedModule{ResolvedFileName: name, Extension: ext}
	}
	return resolved
}

func (h *VirtualHost) DefaultLibFileName() string {
	return typings.LibFileName
}

func (h *VirtualHost) FileExists(name string) (bool, error) {
	if strings.HasSuffix(name, "/package.json") {
		return false, nil
	}
	if name == typings.DeclarationsFileName {
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnexpectedProbe, name)
}

func (h *VirtualHost) ReadFile(name string) (string, bool) {
	switch name {
	case typings.LibFileName:
		return typings.LibSource(), true
	case typings.DeclarationsFileName:
		return typings.Declarations(), true
	default:
		code, ok := h.scripts[name]
		return code, ok
	}
}

func (h *VirtualHost) SourceFile(name string, onError func(message string)) *SourceUnit {
	report := func(msg string) {
		if onError != nil {
			onError(msg)
		}
	}

	code, ok := h.ReadFile(name)
	if !ok {
		report(MsgScriptNotFound)
		return nil
	}
	unit := NewSourceUnit(source.NewSourceFile(name, code))
	// Scripts without import/export never join another script's program.
	if !script.IsTypeScript(name) && !unit.IsModule {
		report(MsgNotAModule)
		return nil
	}
	unit.ModuleName = name
	return unit
}

func (h *VirtualHost) UseCaseSensitiveFileNames() bool {
	return true
}

func (h *VirtualHost) NewLine() string {
	return "\n"
}

func (h *VirtualHost) WriteFile(name, data string) error {
	return fmt.Errorf("%w: %s", ErrWriteUnsupported, name)
}
