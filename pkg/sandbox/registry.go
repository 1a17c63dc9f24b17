package sandbox

import (
	"sort"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// ModuleState tracks a module through definition.
type ModuleState int

const (
	ModuleDefined  ModuleState = iota // Registered, dependencies not yet resolved
	ModuleLinked                      // Dependencies resolved, factory not yet run
	ModuleExecuted                    // Factory completed, exports visible
	ModuleError                       // Definition failed
)

func (s ModuleState) String() string {
	switch s {
	case ModuleDefined:
		return "defined"
	case ModuleLinked:
		return "linked"
	case ModuleExecuted:
		return "executed"
	case ModuleError:
		return "error"
	default:
		return "unknown"
	}
}

// ModuleRecord is one module of an execution.
type ModuleRecord struct {
	Name       string
	State      ModuleState
	Deps       []string
	Exports    goja.Value // Set once the factory completed
	DefineTime time.Time
	Error      error
}

// RegistryStats counts registry activity.
type RegistryStats struct {
	TotalModules    int
	ExecutedModules int
	FailedModules   int
	Hits            int
	Misses          int
}

// Registry maps module names to the modules of one execution.
type Registry struct {
	modules map[string]*ModuleRecord
	mutex   sync.RWMutex
	stats   RegistryStats
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*ModuleRecord)}
}

// Get retrieves a module record by name.
func (r *Registry) Get(name string) *ModuleRecord {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.modules[name]
}

// Exports returns the exports of an executed module. Modules still being
// defined are not visible.
func (r *Registry) Exports(name string) (goja.Value, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	record := r.modules[name]
	if record == nil || record.State != ModuleExecuted {
		r.stats.Misses++
		return nil, false
	}
	r.stats.Hits++
	return record.Exports, true
}

// Set stores a module record, replacing any record of the same name.
func (r *Registry) Set(record *ModuleRecord) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.modules[record.Name] == nil {
		r.stats.TotalModules++
	}
	r.modules[record.Name] = record
}

// UpdateState moves a module to state.
func (r *Registry) UpdateState(name string, state ModuleState) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if record := r.modules[name]; record != nil {
		r.transition(record, state)
	}
}

// Fail marks a module as failed with err.
func (r *Registry) Fail(name string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if record := r.modules[name]; record != nil {
		record.Error = err
		r.transition(record, ModuleError)
	}
}

// Execute publishes the exports of a module whose factory completed.
func (r *Registry) Execute(name string, exports goja.Value) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if record := r.modules[name]; record != nil {
		record.Exports = exports
		r.transition(record, ModuleExecuted)
	}
}

func (r *Registry) transition(record *ModuleRecord, state ModuleState) {
	if record.State == state {
		return
	}
	switch state {
	case ModuleExecuted:
		r.stats.ExecutedModules++
	case ModuleError:
		r.stats.FailedModules++
	}
	record.State = state
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of registered modules.
func (r *Registry) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.modules)
}

// GetStats returns a snapshot of the registry statistics.
func (r *Registry) GetStats() RegistryStats {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.stats
}

// GetByState returns the records in state, sorted by name.
func (r *Registry) GetByState(state ModuleState) []*ModuleRecord {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var records []*ModuleRecord
	for _, record := range r.modules {
		if record.State == state {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}
