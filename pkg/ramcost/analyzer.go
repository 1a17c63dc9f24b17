package ramcost

import (
	"netscript/pkg/program"
)

// Analyzer computes the static RAM cost of programs against a cost table.
type Analyzer struct {
	table *Table
}

// NewAnalyzer creates an analyzer over table.
func NewAnalyzer(table *Table) *Analyzer {
	return &Analyzer{table: table}
}

// Table returns the analyzer's cost table.
func (a *Analyzer) Table() *Table {
	return a.table
}

// Calculate charges the base cost plus, once each, every identifier with a
// cost that appears in the program's non-declaration files. Program
// diagnostics do not affect the result.
func (a *Analyzer) Calculate(p Progression, prog *program.Program) *Result {
	usage := newUsage()
	usage.add("baseCost", UsageEntry{Type: KindMisc, Name: "baseCost", Cost: ScriptBaseRamCost})

	for _, unit := range prog.Files() {
		if unit.IsDeclaration() {
			continue
		}
		for _, tok := range unit.Identifiers() {
			ident := tok.Literal
			if usage.has(ident) {
				continue
			}
			if entry, ok := a.table.Lookup(ident); ok {
				usage.add(ident, UsageEntry{Type: entry.Kind, Name: entry.Prefix + ident, Cost: entry.Cost.Cost(p)})
			}
		}
	}
	return usage.result()
}

// usage accumulates entries in first-seen order, keyed by identifier.
type usage struct {
	seen    map[string]bool
	entries []UsageEntry
}

func newUsage() *usage {
	return &usage{seen: make(map[string]bool)}
}

func (u *usage) has(ident string) bool {
	return u.seen[ident]
}

func (u *usage) add(ident string, e UsageEntry) {
	u.seen[ident] = true
	u.entries = append(u.entries, e)
}

func (u *usage) result() *Result {
	r := &Result{Entries: u.entries}
	for _, e := range u.entries {
		r.Cost += e.Cost
	}
	return r
}
