package modules

import (
	"sort"
)

// DependencyGraph records which modules of a program reference which.
// It is built by one program construction and not shared.
type DependencyGraph struct {
	modules  []string            // Discovery order
	known    map[string]bool     // Already discovered modules
	depGraph map[string][]string // Module → dependencies, in source order
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		known:    make(map[string]bool),
		depGraph: make(map[string][]string),
	}
}

// AddModule marks a module as discovered.
func (g *DependencyGraph) AddModule(name string) {
	if g.known[name] {
		return
	}
	g.known[name] = true
	g.modules = append(g.modules, name)
}

// HasModule reports whether a module was discovered.
func (g *DependencyGraph) HasModule(name string) bool {
	return g.known[name]
}

// AddDependency records that from references to. Both ends are discovered.
func (g *DependencyGraph) AddDependency(from, to string) {
	g.AddModule(from)
	g.AddModule(to)
	for _, dep := range g.depGraph[from] {
		if dep == to {
			return
		}
	}
	g.depGraph[from] = append(g.depGraph[from], to)
}

// Dependencies returns the direct dependencies of a module.
func (g *DependencyGraph) Dependencies(name string) []string {
	deps := g.depGraph[name]
	result := make([]string, len(deps))
	copy(result, deps)
	return result
}

// Modules returns every discovered module in discovery order.
func (g *DependencyGraph) Modules() []string {
	result := make([]string, len(g.modules))
	copy(result, g.modules)
	return result
}

// Order returns the modules reachable from root, dependencies before their
// dependents. A module already on the current path is skipped, so on a cycle
// the module reached last is placed first.
func (g *DependencyGraph) Order(root string) []string {
	var order []string
	visited := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range g.depGraph[name] {
			visit(dep)
		}
		order = append(order, name)
	}
	visit(root)
	return order
}

// Cycles returns the modules that sit on a dependency cycle, sorted.
func (g *DependencyGraph) Cycles() []string {
	var circularModules []string
	for _, name := range g.modules {
		if g.reaches(name, name, make(map[string]bool)) {
			circularModules = append(circularModules, name)
		}
	}
	sort.Strings(circularModules)
	return circularModules
}

// reaches reports whether target is reachable from the dependencies of from.
func (g *DependencyGraph) reaches(from, target string, seen map[string]bool) bool {
	for _, dep := range g.depGraph[from] {
		if dep == target {
			return true
		}
		if seen[dep] {
			continue
		}
		seen[dep] = true
		if g.reaches(dep, target, seen) {
			return true
		}
	}
	return false
}
