package ramcost

import (
	_ "embed"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed costs.yaml
var defaultSpec []byte

// Kind classifies a usage entry.
type Kind string

const (
	KindNS   Kind = "ns"   // A whole API namespace
	KindDOM  Kind = "dom"  // Browser globals
	KindFn   Kind = "fn"   // A single API function
	KindMisc Kind = "misc" // Fixed overhead
)

// Coster computes a RAM cost for a player.
type Coster interface {
	Cost(p Progression) float64
}

// Fixed is a cost that does not depend on the player.
type Fixed float64

func (f Fixed) Cost(Progression) float64 {
	return float64(f)
}

// SF4 is a cost scaled by the player's Source-File 4 level: full price in
// BitNode 4 or with level 3 and up, 16x at level 1 or below, 4x at level 2.
type SF4 float64

func (c SF4) Cost(p Progression) float64 {
	base := float64(c)
	if p == nil || p.BitNode() == 4 {
		return base
	}
	switch level := p.SourceFileLevel(4); {
	case level <= 1:
		return base * 16
	case level == 2:
		return base * 4
	default:
		return base
	}
}

// Entry is the cost of one identifier.
type Entry struct {
	Kind   Kind
	Prefix string // Namespace reported before the identifier, e.g. "stock."
	Cost   Coster
}

// Table maps identifiers to costs. It is immutable once built and safe for
// concurrent use.
type Table struct {
	entries map[string]Entry
}

// DefaultSpec returns the embedded cost specification.
func DefaultSpec() []byte {
	return defaultSpec
}

// DefaultTable builds a table from the embedded specification.
func DefaultTable() (*Table, error) {
	return NewTable(defaultSpec)
}

// NewTable builds a table from a YAML cost specification. Top-level scalars
// cost themselves; a nested namespace contributes its members under the
// namespace prefix. Later keys replace earlier ones. The namespace and DOM
// identifiers with fixed costs are applied last.
func NewTable(spec []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, errors.Wrap(err, "parse cost table")
	}

	t := &Table{entries: make(map[string]Entry)}
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, errors.Errorf("cost table: line %d: expected a mapping", root.Line)
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			if !isNamespace(value) {
				cost, err := parseCost(value)
				if err != nil {
					return nil, errors.Wrapf(err, "cost table: %s", key.Value)
				}
				t.entries[key.Value] = Entry{Kind: KindFn, Cost: cost}
				continue
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				member := value.Content[j]
				cost, err := parseCost(value.Content[j+1])
				if err != nil {
					return nil, errors.Wrapf(err, "cost table: %s.%s", key.Value, member.Value)
				}
				t.entries[member.Value] = Entry{Kind: KindFn, Prefix: key.Value + ".", Cost: cost}
			}
		}
	}

	t.entries["hacknet"] = Entry{Kind: KindNS, Cost: Fixed(ScriptHacknetNodesRamCost)}
	t.entries["document"] = Entry{Kind: KindDOM, Cost: Fixed(ScriptDomRamCost)}
	t.entries["window"] = Entry{Kind: KindDOM, Cost: Fixed(ScriptDomRamCost)}
	t.entries["corporation"] = Entry{Kind: KindNS, Cost: Fixed(ScriptCorporationRamCost)}
	return t, nil
}

// Lookup returns the entry for an identifier.
func (t *Table) Lookup(ident string) (Entry, bool) {
	e, ok := t.entries[ident]
	return e, ok
}

// Len returns the number of identifiers with a cost.
func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns the identifiers with a cost, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isNamespace(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(n.Content); i += 2 {
		if n.Content[i].Value == "cost" {
			return false
		}
	}
	return true
}

func parseCost(n *yaml.Node) (Coster, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return Fixed(f), nil
	case yaml.MappingNode:
		var scaled struct {
			Cost  float64 `yaml:"cost"`
			Scale string  `yaml:"scale"`
		}
		if err := n.Decode(&scaled); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		switch scaled.Scale {
		case "":
			return Fixed(scaled.Cost), nil
		case "sf4":
			return SF4(scaled.Cost), nil
		default:
			return nil, errors.Errorf("line %d: unknown scale %q", n.Line, scaled.Scale)
		}
	default:
		return nil, errors.Errorf("line %d: expected a number or {cost, scale}", n.Line)
	}
}
