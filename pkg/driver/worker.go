package driver

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"netscript/pkg/script"
)

// WorkerScript is one execution of a script on a server.
type WorkerScript struct {
	ID       uuid.UUID // Unique per execution
	PID      int       // Process id exposed to the script as ns.pid
	Name     string
	Code     string
	Server   string
	Siblings []script.Script // Other scripts on Server, importable by Name
	Args     []interface{}

	// Env holds values added to the environment object handed to main.
	Env Environment

	// Output receives tprint lines. Nil discards them.
	Output io.Writer

	// OnStarted is called once the bundle is linked, before main runs.
	OnStarted func()

	mu   sync.Mutex
	logs []string
}

// NewWorkerScript creates a worker script with a fresh execution id.
func NewWorkerScript(pid int, name, code, server string, siblings []script.Script, args ...interface{}) *WorkerScript {
	return &WorkerScript{
		ID:       uuid.New(),
		PID:      pid,
		Name:     name,
		Code:     code,
		Server:   server,
		Siblings: siblings,
		Args:     args,
	}
}

// Logs returns the lines the script printed with ns.print.
func (ws *WorkerScript) Logs() []string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]string(nil), ws.logs...)
}

func (ws *WorkerScript) appendLog(line string) {
	ws.mu.Lock()
	ws.logs = append(ws.logs, line)
	ws.mu.Unlock()
}
