package datatypes

import (
	"fmt"

	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

// RegistryBuilder builds a MemoryRegistry using a fluent API.
// Not thread-safe - use only during initialization.
//
// Unlike Registry.Register, which replaces, Build rejects two types with the
// same extension name.
type RegistryBuilder struct {
	types []types.LogicalType
	built bool
}

// NewRegistryBuilder creates an empty builder.
//
// Example:
//
//	reg, err := datatypes.NewRegistryBuilder().
//	    Canonical().
//	    Type(extensions.NewIntOrFloatType()).
//	    Type(extensions.NewGeometryType()).
//	    Build()
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// Type adds an extension type.
// Returns self for method chaining.
func (b *RegistryBuilder) Type(lt types.LogicalType) *RegistryBuilder {
	b.types = append(b.types, lt)
	return b
}

// Types adds several extension types.
// Returns self for method chaining.
func (b *RegistryBuilder) Types(lts ...types.LogicalType) *RegistryBuilder {
	b.types = append(b.types, lts...)
	return b
}

// Canonical adds the canonical Arrow extension types (arrow.uuid).
// Returns self for method chaining.
func (b *RegistryBuilder) Canonical() *RegistryBuilder {
	return b.Type(types.NewUuidType())
}

// Build validates the added types and returns the registry.
// Can only be called once.
func (b *RegistryBuilder) Build() (*registry.MemoryRegistry, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}

	seen := make(map[string]bool, len(b.types))
	for i, lt := range b.types {
		if lt == nil {
			return nil, fmt.Errorf("type %d is nil", i)
		}
		name, ok := types.ExtensionName(lt)
		if !ok {
			return nil, types.NewError(types.ErrInvalidRegistration, "logical type", lt.Signature().String(),
				"cannot register a native type")
		}
		if seen[name] {
			return nil, types.NewError(types.ErrInvalidRegistration, "logical type", name, "registered twice")
		}
		seen[name] = true
	}

	reg, err := registry.NewMemoryRegistryWithTypes(b.types...)
	if err != nil {
		return nil, err
	}
	b.built = true
	return reg, nil
}
