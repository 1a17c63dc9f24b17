package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"netscript/pkg/driver"
	"netscript/pkg/errors"
	"netscript/pkg/ramcost"
	"netscript/pkg/script"
	"netscript/pkg/typings"
)

type command struct {
	*app
	out   io.Writer
	color bool
	yaml  bool
}

// dispatch runs one command and returns the process exit code.
func (c *command) dispatch(ctx context.Context, name string, args []string) int {
	var err error
	switch name {
	case "mem":
		if len(args) == 0 {
			err = c.memAll(ctx)
		} else {
			err = c.mem(ctx, args[0])
		}
	case "run":
		err = c.requireArgs(name, args, 1, func() error { return c.run(ctx, args[0], args[1:]) })
	case "emit":
		err = c.requireArgs(name, args, 1, func() error { return c.emit(ctx, args[0]) })
	case "check":
		err = c.requireArgs(name, args, 1, func() error { return c.check(ctx, args[0]) })
	case "decls":
		_, err = io.WriteString(c.out, typings.Declarations())
	case "import":
		err = c.requireArgs(name, args, 1, func() error { return c.importFiles(ctx, args) })
	case "ls":
		err = c.list(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", name)
		return 64
	}

	if err == nil {
		return 0
	}
	if _, ok := err.(usageError); ok {
		fmt.Fprintln(os.Stderr, err)
		return 64
	}
	c.report(err)
	return 70
}

type usageError string

func (e usageError) Error() string { return string(e) }

func (c *command) requireArgs(name string, args []string, n int, f func() error) error {
	if len(args) < n {
		return usageError(fmt.Sprintf("Usage: netscript %s requires %d argument(s)", name, n))
	}
	return f()
}

func (c *command) report(err error) {
	var nsErr errors.NetscriptError
	switch e := err.(type) {
	case *errors.CompileError:
		if len(e.Diagnostics) > 0 {
			errors.DisplayErrors(os.Stderr, diagnosticErrors(e.Diagnostics), c.color)
			fmt.Fprintln(os.Stderr, e.Msg)
			return
		}
		nsErr = e
	case errors.NetscriptError:
		nsErr = e
	}
	if nsErr != nil {
		errors.DisplayErrors(os.Stderr, []errors.NetscriptError{nsErr}, c.color)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func diagnosticErrors(diags []errors.Diagnostic) []errors.NetscriptError {
	out := make([]errors.NetscriptError, len(diags))
	for i, d := range diags {
		out[i] = d
	}
	return out
}

// load returns the named script and the other scripts on the server.
func (c *command) load(ctx context.Context, name string) (script.Script, []script.Script, error) {
	all, err := c.store.List(ctx, c.cfg.Server)
	if err != nil {
		return script.Script{}, nil, err
	}
	var root *script.Script
	siblings := make([]script.Script, 0, len(all))
	for i := range all {
		if all[i].Filename == name {
			root = &all[i]
			continue
		}
		siblings = append(siblings, all[i])
	}
	if root == nil {
		return script.Script{}, nil, fmt.Errorf("%s not found on %s", name, c.cfg.Server)
	}
	return *root, siblings, nil
}

func (c *command) mem(ctx context.Context, name string) error {
	root, siblings, err := c.load(ctx, name)
	if err != nil {
		return err
	}
	result, err := c.evaluator.RamCost(&c.cfg.Player, root.Filename, root.Code, siblings)
	if err != nil {
		return fmt.Errorf("%s (%s)", err, ramcost.CodeOf(err))
	}

	if c.yaml {
		return yaml.NewEncoder(c.out).Encode(result)
	}
	if !c.color {
		return result.Format(c.out)
	}
	data := pterm.TableData{{"Type", "Name", "Cost"}}
	for _, e := range result.Entries {
		data = append(data, []string{string(e.Type), e.Name, fmt.Sprintf("%.2f GB", e.Cost)})
	}
	data = append(data, []string{"", "Total", fmt.Sprintf("%.2f GB", result.Cost)})
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, table)
	return err
}

func (c *command) memAll(ctx context.Context) error {
	scripts, err := c.store.List(ctx, c.cfg.Server)
	if err != nil {
		return err
	}
	results, err := c.evaluator.RamCostAll(ctx, &c.cfg.Player, scripts, 0)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Script", "Cost"}}
	for _, res := range results {
		cost := "error: " + ramcost.CodeOf(res.Err).String()
		if res.Err == nil {
			cost = fmt.Sprintf("%.2f GB", res.Result.Cost)
		}
		data = append(data, []string{res.Filename, cost})
	}
	if !c.color {
		for _, row := range data[1:] {
			fmt.Fprintf(c.out, "%-40s %s\n", row[0], row[1])
		}
		return nil
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, table)
	return err
}

func (c *command) run(ctx context.Context, name string, args []string) error {
	root, siblings, err := c.load(ctx, name)
	if err != nil {
		return err
	}
	scriptArgs := make([]interface{}, len(args))
	for i, arg := range args {
		scriptArgs[i] = parseArg(arg)
	}

	ws := driver.NewWorkerScript(1, root.Filename, root.Code, c.cfg.Server, siblings, scriptArgs...)
	ws.Output = c.out
	ws.OnStarted = func() {
		c.logger.WithFields(logrus.Fields{"script": ws.Name, "server": ws.Server, "id": ws.ID}).Info("script started")
	}

	ctx, cancel := deadline(ctx, c.cfg.Timeout)
	defer cancel()
	err = c.evaluator.Execute(ctx, ws)
	for _, line := range ws.Logs() {
		c.logger.WithField("script", ws.Name).Info(line)
	}
	return err
}

// parseArg passes numeric and boolean arguments to scripts as such.
func parseArg(arg string) interface{} {
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f
	}
	if arg == "true" || arg == "false" {
		return arg == "true"
	}
	return arg
}

func (c *command) emit(ctx context.Context, name string) error {
	root, siblings, err := c.load(ctx, name)
	if err != nil {
		return err
	}
	bundle, err := c.evaluator.Compile(root.Filename, root.Code, siblings)
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.out, bundle.String())
	return err
}

func (c *command) check(ctx context.Context, name string) error {
	root, siblings, err := c.load(ctx, name)
	if err != nil {
		return err
	}
	prog, err := c.evaluator.Program(root.Filename, root.Code, siblings)
	if err != nil {
		return err
	}
	if diags := prog.Diagnostics(); len(diags) > 0 {
		return errors.NewCompileError(diags)
	}
	_, err = fmt.Fprintf(c.out, "%s: no errors\n", prog.Root())
	return err
}

func (c *command) importFiles(ctx context.Context, paths []string) error {
	for _, path := range paths {
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sc := script.Script{Filename: filepath.Base(path), Code: string(code)}
		if err := c.store.Save(ctx, c.cfg.Server, sc); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s -> %s:%s\n", path, c.cfg.Server, sc.Filename)
	}
	return nil
}

func (c *command) list(ctx context.Context) error {
	scripts, err := c.store.List(ctx, c.cfg.Server)
	if err != nil {
		return err
	}
	for _, sc := range scripts {
		fmt.Fprintln(c.out, sc.Filename)
	}
	return nil
}
