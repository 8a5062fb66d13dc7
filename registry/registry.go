// Package registry stores extension logical types by name and resolves
// schema fields to DFTypes.
package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/hugr-lab/datatypes/types"
)

// Registry maps extension names to logical types.
type Registry interface {
	// Get returns the type registered under name or an ErrNotFound error.
	Get(name string) (types.LogicalType, error)

	// Register stores lt under its extension name and returns the type
	// previously registered under that name, or nil. Native types are
	// rejected with ErrInvalidRegistration.
	Register(lt types.LogicalType) (types.LogicalType, error)

	// Deregister removes name and returns the removed type, or nil.
	Deregister(name string) types.LogicalType

	// AllTypes returns a snapshot of the registered types.
	AllTypes() []types.LogicalType
}

// MemoryRegistry is an in-memory Registry safe for concurrent use.
// Each operation is atomic on its own; sequences of operations are not.
type MemoryRegistry struct {
	mu    sync.RWMutex
	types map[string]types.LogicalType
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{types: make(map[string]types.LogicalType)}
}

// NewMemoryRegistryWithTypes creates a registry holding lts. It fails if any
// of them is a native type.
func NewMemoryRegistryWithTypes(lts ...types.LogicalType) (*MemoryRegistry, error) {
	r := NewMemoryRegistry()
	for _, lt := range lts {
		if _, err := r.Register(lt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *MemoryRegistry) Get(name string) (types.LogicalType, error) {
	r.mu.RLock()
	lt, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, types.NewError(types.ErrNotFound, "logical type", name, "not registered")
	}
	return lt, nil
}

func (r *MemoryRegistry) Register(lt types.LogicalType) (types.LogicalType, error) {
	if lt == nil {
		return nil, types.NewError(types.ErrInvalidRegistration, "logical type", "", "nil type")
	}
	name, ok := types.ExtensionName(lt)
	if !ok {
		return nil, types.NewError(types.ErrInvalidRegistration, "logical type", lt.Signature().String(),
			"cannot register a native type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.types[name]
	r.types[name] = lt
	return prev, nil
}

func (r *MemoryRegistry) Deregister(name string) types.LogicalType {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.types[name]
	if !ok {
		return nil
	}
	delete(r.types, name)
	return prev
}

// AllTypes returns the registered types ordered by extension name.
func (r *MemoryRegistry) AllTypes() []types.LogicalType {
	r.mu.RLock()
	out := make([]types.LogicalType, 0, len(r.types))
	for _, lt := range r.types {
		out = append(out, lt)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b types.LogicalType) int {
		return strings.Compare(a.Signature().Name(), b.Signature().Name())
	})
	return out
}

var _ Registry = (*MemoryRegistry)(nil)
