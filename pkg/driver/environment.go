package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"netscript/pkg/runtime"
)

// Environment carries extra values for the object main receives. Vars are
// set after the built-in functions and may replace them.
type Environment struct {
	Vars map[string]interface{}
}

// NewEnvironment builds the ns object for ws. Timers started by the script
// are external operations of loop and resume it through its task queue.
func NewEnvironment(rt *goja.Runtime, loop runtime.Scheduler, ws *WorkerScript) (*goja.Object, error) {
	ns := rt.NewObject()

	args := make([]interface{}, len(ws.Args))
	copy(args, ws.Args)

	fields := map[string]interface{}{
		"args": rt.NewArray(args...),
		"pid":  ws.PID,
		"getHostname": func() string {
			return ws.Server
		},
		"getScriptName": func() string {
			return ws.Name
		},
		"print": func(call goja.FunctionCall) goja.Value {
			ws.appendLog(joinArgs(call.Arguments))
			return goja.Undefined()
		},
		"tprint": func(call goja.FunctionCall) goja.Value {
			if ws.Output != nil {
				fmt.Fprintf(ws.Output, "%s: %s\n", ws.Name, joinArgs(call.Arguments))
			}
			return goja.Undefined()
		},
		"sleep": func(call goja.FunctionCall) goja.Value {
			return sleep(rt, loop, call.Argument(0).ToInteger())
		},
	}
	for name, v := range fields {
		if err := ns.Set(name, v); err != nil {
			return nil, err
		}
	}
	for name, v := range ws.Env.Vars {
		if err := ns.Set(name, v); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// sleep returns a promise resolved with true after ms milliseconds.
func sleep(rt *goja.Runtime, loop runtime.Scheduler, ms int64) goja.Value {
	promise, resolve, _ := rt.NewPromise()
	if ms < 0 {
		ms = 0
	}
	loop.BeginExternalOp()
	time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
		loop.Complete(func() {
			_ = resolve(true)
		})
	})
	return rt.ToValue(promise)
}

func joinArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, "")
}
