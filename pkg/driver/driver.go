// Package driver exposes the evaluator operations: RAM cost estimation,
// compilation to a bundle and sandboxed execution of a worker script.
package driver

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"netscript/pkg/errors"
	"netscript/pkg/modules"
	"netscript/pkg/program"
	"netscript/pkg/ramcost"
	"netscript/pkg/runtime"
	"netscript/pkg/sandbox"
	"netscript/pkg/script"
)

const debugDriver = false

func debugPrintf(format string, args ...interface{}) {
	if debugDriver {
		fmt.Printf(format, args...)
	}
}

// Evaluator compiles, costs and runs scripts. The cost table is shared
// read-only, so an Evaluator may be used from several goroutines.
type Evaluator struct {
	analyzer *ramcost.Analyzer
	logger   logrus.FieldLogger
}

// NewEvaluator creates an evaluator charging identifiers from table. A nil
// logger discards log output.
func NewEvaluator(table *ramcost.Table, logger logrus.FieldLogger) *Evaluator {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Evaluator{analyzer: ramcost.NewAnalyzer(table), logger: logger}
}

// Analyzer returns the analyzer RamCost uses.
func (e *Evaluator) Analyzer() *ramcost.Analyzer {
	return e.analyzer
}

// Program builds the program for name against its siblings.
func (e *Evaluator) Program(name, code string, siblings []script.Script) (*program.Program, error) {
	host := modules.NewVirtualHost(modules.NewSourceMap(name, code, siblings))
	return program.Build(host, name)
}

// RamCost estimates the memory a script needs. Diagnostics do not affect the
// estimate; only a failed host probe is an error, see ramcost.CodeOf.
func (e *Evaluator) RamCost(p ramcost.Progression, name, code string, siblings []script.Script) (*ramcost.Result, error) {
	prog, err := e.Program(name, code, siblings)
	if err != nil {
		return nil, err
	}
	result := e.analyzer.Calculate(p, prog)
	debugPrintf("// [Driver] %s costs %.2f GB (%d entries)\n", name, result.Cost, len(result.Entries))
	return result, nil
}

// Compile builds and emits a script. Any diagnostic fails the compilation
// with a CompileError summarizing them.
func (e *Evaluator) Compile(name, code string, siblings []script.Script) (*program.Bundle, error) {
	prog, err := e.Program(name, code, siblings)
	if err != nil {
		return nil, err
	}
	bundle, diags := prog.Emit()
	if len(diags) > 0 {
		return nil, errors.NewCompileError(diags)
	}
	if bundle == nil || len(bundle.Definitions) == 0 {
		return nil, &errors.CompileError{Msg: "No compilation output"}
	}
	return bundle, nil
}

// Execute compiles ws, links the bundle in a fresh sandbox and runs its main
// function. main is called one loop turn after OnStarted with the script's
// environment; Execute returns once the value main returned settles, the
// script fails, or ctx is done. Cancelling ctx interrupts the script.
func (e *Evaluator) Execute(ctx context.Context, ws *WorkerScript) error {
	log := e.logger.WithFields(logrus.Fields{"script": ws.Name, "server": ws.Server, "pid": ws.PID})

	bundle, err := e.Compile(ws.Name, ws.Code, ws.Siblings)
	if err != nil {
		log.WithError(err).Debug("compilation failed")
		return err
	}

	rt := sandbox.NewRuntime()
	loop := runtime.NewLoop()
	loader := sandbox.NewLoader(rt, sandbox.NewRegistry())
	if err := loader.Link(bundle); err != nil {
		log.WithError(err).Debug("link failed")
		return err
	}
	log.WithField("modules", loader.Registry().Size()).Debug("bundle linked")

	main, err := loader.Main(bundle.Entry)
	if err != nil {
		return err
	}
	env, err := NewEnvironment(rt, loop, ws)
	if err != nil {
		return err
	}

	if ws.OnStarted != nil {
		ws.OnStarted()
	}

	var result error
	loop.Schedule(func() {
		v, err := main(goja.Null(), env)
		if err != nil {
			result = sandbox.RuntimeError(err)
			loop.Stop()
			return
		}
		loader.Await(v, func(_ goja.Value, err error) {
			result = err
			loop.Stop()
		})
	})

	stop := context.AfterFunc(ctx, func() {
		rt.Interrupt(ctx.Err())
	})
	defer stop()

	if err := loop.Run(ctx); err != nil {
		log.WithError(err).Debug("execution cancelled")
		return err
	}
	if result != nil {
		log.WithError(result).Debug("script failed")
		return result
	}
	log.Debug("script finished")
	return nil
}
