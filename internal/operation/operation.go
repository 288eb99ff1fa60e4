package operation

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies an operation by name (e.g. "add", "divide").
type Kind string

// Func is a pure two-operand arithmetic function.
type Func func(a, b float64) (float64, error)

// Operation pairs an arithmetic function with its display metadata.
type Operation struct {
	// Name is the command name users type.
	Name Kind

	// Symbol is the infix symbol used in help output (e.g. "+", "//").
	Symbol string

	// Help is a one-line description for the help listing.
	Help string

	// Fn computes the result.
	Fn Func
}

// Registry manages operation registration by exact name.
type Registry struct {
	mu  sync.RWMutex
	ops map[Kind]Operation
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		ops: make(map[Kind]Operation),
	}
}

// Register adds an operation to the registry.
// Registering an existing name replaces the previous operation.
func (r *Registry) Register(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.Name] = op
}

// Lookup returns the operation registered under name.
// Returns ErrUnknownOperation if no operation is registered.
func (r *Registry) Lookup(name Kind) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[name]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Has returns true if an operation is registered under name.
func (r *Registry) Has(name Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[name]
	return ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Kind, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// All returns all registered operations sorted by name.
func (r *Registry) All() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]Operation, 0, len(r.ops))
	for _, op := range r.ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Count returns the number of registered operations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ops)
}
