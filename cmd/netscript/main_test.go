package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netscript/pkg/config"
	"netscript/pkg/store"
)

func newCommand(t *testing.T) (*command, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.StorePath = store.MemoryPath
	cfg.LogLevel = "panic"

	a, stop, err := start(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(stop)

	var out bytes.Buffer
	return &command{app: a, out: &out}, &out
}

func writeScript(t *testing.T, name, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(code), 0o644))
	return path
}

func TestCommands(t *testing.T) {
	ctx := context.Background()
	c, out := newCommand(t)

	lib := writeScript(t, "lib.js", `export function steal(ns) { return ns.hack("n00dles"); }`)
	main := writeScript(t, "main.js", `import { steal } from "lib.js";
export async function main(ns) {
  ns.tprint("args ", ns.args[0] + 1, " ", ns.args[1]);
}`)
	require.Equal(t, 0, c.dispatch(ctx, "import", []string{lib, main}))
	assert.Contains(t, out.String(), "-> home:main.js")

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "ls", nil))
	assert.Equal(t, "lib.js\nmain.js\n", out.String())

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "mem", []string{"main.js"}))
	assert.Contains(t, out.String(), "baseCost")
	assert.Contains(t, out.String(), "1.70 GB")

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "mem", nil))
	assert.Contains(t, out.String(), "lib.js")
	assert.Contains(t, out.String(), "1.70 GB")

	out.Reset()
	c.yaml = true
	require.Equal(t, 0, c.dispatch(ctx, "mem", []string{"main.js"}))
	assert.Contains(t, out.String(), "cost: 1.7")
	c.yaml = false

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "emit", []string{"main.js"}))
	assert.Contains(t, out.String(), `define("/lib.js"`)
	assert.Contains(t, out.String(), `define("/main.js", ["require", "exports", "/lib.js"]`)

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "run", []string{"main.js", "41", "x"}))
	assert.Equal(t, "main.js: args 42 x\n", out.String())

	out.Reset()
	require.Equal(t, 0, c.dispatch(ctx, "check", []string{"main.js"}))
	assert.Equal(t, "/main.js: no errors\n", out.String())
}

func TestCommandFailures(t *testing.T) {
	ctx := context.Background()
	c, _ := newCommand(t)

	bad := writeScript(t, "bad.ts", `const a = 1;
a = 2;
export function main() {}`)
	require.Equal(t, 0, c.dispatch(ctx, "import", []string{bad}))

	assert.Equal(t, 70, c.dispatch(ctx, "check", []string{"bad.ts"}))
	assert.Equal(t, 70, c.dispatch(ctx, "run", []string{"bad.ts"}))
	assert.Equal(t, 70, c.dispatch(ctx, "run", []string{"ghost.js"}))
	assert.Equal(t, 64, c.dispatch(ctx, "emit", nil))
	assert.Equal(t, 64, c.dispatch(ctx, "frobnicate", nil))
}

func TestParseArg(t *testing.T) {
	assert.Equal(t, 3.5, parseArg("3.5"))
	assert.Equal(t, true, parseArg("true"))
	assert.Equal(t, "n00dles", parseArg("n00dles"))
}
