package registry

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/datatypes/types"
)

// Resolve determines the DFType of a schema field.
//
// Fields naming an extension, through an Arrow extension data type or the
// ARROW:extension:name metadata key, are typed by the registered logical
// type. Names the registry does not know fall back to an
// UnknownExtensionType. Other fields get their native type.
func Resolve(reg Registry, field arrow.Field) (types.DFType, error) {
	name, ok := types.ExtensionNameOf(field.Type, field.Metadata)
	if !ok || reg == nil {
		return types.NewDFTypeWithFallback(field.Type, field.Metadata), nil
	}
	lt, err := reg.Get(name)
	if errors.Is(err, types.ErrNotFound) {
		return types.NewDFTypeWithFallback(field.Type, field.Metadata), nil
	}
	if err != nil {
		return types.DFType{}, err
	}
	df, err := types.NewDFType(field.Type, lt)
	if err != nil {
		return types.DFType{}, types.WrapError(types.ErrTypeMismatch, "field", field.Name, err)
	}
	return df, nil
}

// ResolveSchema resolves every field of schema in order.
func ResolveSchema(reg Registry, schema *arrow.Schema) ([]types.DFType, error) {
	out := make([]types.DFType, schema.NumFields())
	for i, f := range schema.Fields() {
		df, err := Resolve(reg, f)
		if err != nil {
			return nil, err
		}
		out[i] = df
	}
	return out, nil
}

// IsUnknown reports whether df was resolved to an extension the registry
// did not know.
func IsUnknown(df types.DFType) bool {
	_, ok := df.LogicalType().(*types.UnknownExtensionType)
	return ok
}
