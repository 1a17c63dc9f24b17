package ramcost

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nserrors "netscript/pkg/errors"
	"netscript/pkg/modules"
	"netscript/pkg/program"
	"netscript/pkg/script"
)

var noSourceFiles = &Player{BitNodeN: 1}

func defaultTable(t *testing.T) *Table {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	return table
}

func calculate(t *testing.T, p Progression, root, code string, siblings ...script.Script) *Result {
	t.Helper()
	host := modules.NewVirtualHost(modules.NewSourceMap(root, code, siblings))
	prog, err := program.Build(host, root)
	require.NoError(t, err)
	return NewAnalyzer(defaultTable(t)).Calculate(p, prog)
}

func names(r *Result) []string {
	var out []string
	for _, e := range r.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestDefaultTable(t *testing.T) {
	table := defaultTable(t)

	hack, ok := table.Lookup("hack")
	require.True(t, ok)
	assert.Equal(t, KindFn, hack.Kind)
	assert.Equal(t, "", hack.Prefix)
	assert.InDelta(t, 0.1, hack.Cost.Cost(noSourceFiles), 1e-9)

	price, ok := table.Lookup("getPrice")
	require.True(t, ok)
	assert.Equal(t, "stock.", price.Prefix)

	numNodes, ok := table.Lookup("numNodes")
	require.True(t, ok)
	assert.Equal(t, "hacknet.", numNodes.Prefix)
	assert.Zero(t, numNodes.Cost.Cost(noSourceFiles))

	_, ok = table.Lookup("stock")
	assert.False(t, ok, "namespaces are not identifiers")
	assert.Contains(t, table.Names(), "hack")
	assert.Equal(t, len(table.Names()), table.Len())
}

func TestFixedOverrides(t *testing.T) {
	table := defaultTable(t)
	tests := []struct {
		ident string
		kind  Kind
		cost  float64
	}{
		{"hacknet", KindNS, ScriptHacknetNodesRamCost},
		{"document", KindDOM, ScriptDomRamCost},
		{"window", KindDOM, ScriptDomRamCost},
		{"corporation", KindNS, 1022.4},
	}
	for _, tt := range tests {
		e, ok := table.Lookup(tt.ident)
		require.True(t, ok, tt.ident)
		assert.Equal(t, tt.kind, e.Kind, tt.ident)
		assert.InDelta(t, tt.cost, e.Cost.Cost(noSourceFiles), 1e-9, tt.ident)
	}
}

func TestSF4Scaling(t *testing.T) {
	cost := SF4(2)
	tests := []struct {
		player *Player
		want   float64
	}{
		{&Player{BitNodeN: 1}, 32},
		{&Player{BitNodeN: 1, SourceFiles: map[int]int{4: 1}}, 32},
		{&Player{BitNodeN: 1, SourceFiles: map[int]int{4: 2}}, 8},
		{&Player{BitNodeN: 1, SourceFiles: map[int]int{4: 3}}, 2},
		{&Player{BitNodeN: 4}, 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, cost.Cost(tt.player), 1e-9, fmt.Sprintf("%+v", tt.player))
	}

	entry, ok := defaultTable(t).Lookup("universityCourse")
	require.True(t, ok)
	assert.InDelta(t, 32, entry.Cost.Cost(noSourceFiles), 1e-9)
}

func TestNewTable(t *testing.T) {
	table, err := NewTable([]byte("a: 1\nb: {cost: 0.5}\ng:\n  m: 2\n  n: {cost: 1, scale: sf4}\na: 3\n"))
	require.NoError(t, err)

	a, _ := table.Lookup("a")
	assert.InDelta(t, 3, a.Cost.Cost(nil), 1e-9, "later keys replace earlier ones")
	b, _ := table.Lookup("b")
	assert.InDelta(t, 0.5, b.Cost.Cost(nil), 1e-9)
	m, _ := table.Lookup("m")
	assert.Equal(t, "g.", m.Prefix)
	n, _ := table.Lookup("n")
	assert.InDelta(t, 16, n.Cost.Cost(noSourceFiles), 1e-9)
	assert.Equal(t, 8, table.Len())

	empty, err := NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, empty.Len())
}

func TestNewTableErrors(t *testing.T) {
	for _, spec := range []string{
		"a: [1",
		"- 1\n- 2\n",
		"a: {cost: 1, scale: sf9}\n",
		"a: nope\n",
		"g:\n  m: [1]\n",
	} {
		_, err := NewTable([]byte(spec))
		assert.Error(t, err, spec)
	}
}

func TestCalculateBaseCostAndDistinctEntries(t *testing.T) {
	r := calculate(t, noSourceFiles, "main.js", `export async function main(ns) {
  ns.hack("n00dles");
  ns.hack("foodnstuff");
  await ns.grow("n00dles");
}`)

	assert.Equal(t, []string{"baseCost", "hack", "grow"}, names(r))
	assert.Equal(t, KindMisc, r.Entries[0].Type)
	assert.InDelta(t, 1.85, r.Cost, 1e-9)
}

func TestCalculateIsIdempotent(t *testing.T) {
	code := `export async function main(ns) { ns.weaken("a"); ns.scan(); }`
	first := calculate(t, noSourceFiles, "main.js", code)
	second := calculate(t, noSourceFiles, "main.js", code)
	assert.Equal(t, first, second)
}

func TestCalculateFollowsImports(t *testing.T) {
	lib := script.Script{Filename: "lib.js", Code: `export function drain(ns) { ns.weaken("a"); }`}
	unused := script.Script{Filename: "unused.js", Code: `export function spend(ns) { ns.purchaseServer("x", 8); }`}

	r := calculate(t, noSourceFiles, "main.js", `import { drain } from "lib.js";
export async function main(ns) { drain(ns); }`, lib, unused)

	assert.Equal(t, []string{"baseCost", "weaken"}, names(r))
	assert.InDelta(t, 1.75, r.Cost, 1e-9)
}

func TestCalculateIgnoresStringsAndComments(t *testing.T) {
	r := calculate(t, noSourceFiles, "main.js", `// ns.hack("x")
/* ns.grow() */
export async function main(ns) { ns.print("weaken"); }`)
	assert.Equal(t, []string{"baseCost", "print"}, names(r))
}

func TestCalculateDecodesEscapedIdentifiers(t *testing.T) {
	r := calculate(t, noSourceFiles, "main.js", `export async function main(ns) {
  ns.h\u0061ck("n00dles");
  ns.\u{77}eaken("x");
}`)
	assert.Equal(t, []string{"baseCost", "hack", "weaken"}, names(r))
	assert.InDelta(t, 1.6+0.1+0.15, r.Cost, 1e-9)
}

func TestCalculateNamespacesAndGlobals(t *testing.T) {
	r := calculate(t, noSourceFiles, "main.js", `export async function main(ns) {
  ns.stock.getPrice("ECP");
  ns.hacknet.numNodes();
  document.title = "x";
}`)

	assert.Equal(t, []string{"baseCost", "stock.getPrice", "hacknet", "hacknet.numNodes", "document"}, names(r))
	assert.InDelta(t, 1.6+2+4+0+25, r.Cost, 1e-9)
}

func TestCalculateIgnoresDiagnostics(t *testing.T) {
	r := calculate(t, noSourceFiles, "main.ts", `let x: number = "oops";
export async function main(ns: NS) { ns.hack("a"); }`)
	assert.Equal(t, []string{"baseCost", "hack"}, names(r))
}

func TestCalculateScalesByProgression(t *testing.T) {
	code := `export async function main(ns) { ns.travelToCity("Aevum"); }`
	assert.InDelta(t, 1.6+32, calculate(t, noSourceFiles, "main.js", code).Cost, 1e-9)
	assert.InDelta(t, 1.6+2, calculate(t, &Player{BitNodeN: 4}, "main.js", code).Cost, 1e-9)
}

func TestFormat(t *testing.T) {
	r := &Result{Cost: 1025.5, Entries: []UsageEntry{
		{Type: KindMisc, Name: "baseCost", Cost: 1.6},
		{Type: KindNS, Name: "corporation", Cost: 1023.9},
	}}
	var buf bytes.Buffer
	require.NoError(t, r.Format(&buf))
	out := buf.String()
	assert.Contains(t, out, "baseCost")
	assert.Contains(t, out, "1,023.90 GB")
	assert.Contains(t, out, "1,025.50 GB")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ImportError, CodeOf(fmt.Errorf("%w: lib:///x", modules.ErrUnexpectedProbe)))
	assert.Equal(t, URLImportError, CodeOf(&nserrors.ResolutionError{Msg: "Cannot find module 'https://example.com/x.js'"}))
	assert.Equal(t, SyntaxError, CodeOf(&nserrors.SyntaxError{Msg: "Unexpected token"}))
	assert.Equal(t, "ImportError", ImportError.String())
}
