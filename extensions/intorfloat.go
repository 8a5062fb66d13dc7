package extensions

import (
	"cmp"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/datatypes/ordering"
	"github.com/hugr-lab/datatypes/types"
)

const (
	// IntOrFloatExtensionName is the extension name of IntOrFloatType.
	IntOrFloatExtensionName = "int_or_float"

	// IntOrFloatOrderingID identifies the ordering of IntOrFloatType.
	IntOrFloatOrderingID = "order_int_or_float"

	// IntOrFloatInteger and IntOrFloatFloat are the union type codes.
	IntOrFloatInteger arrow.UnionTypeCode = 0
	IntOrFloatFloat   arrow.UnionTypeCode = 1
)

var intOrFloatNative = types.NewUnion([]*types.LogicalField{
	types.NewLogicalField("integer", types.Int64, true),
	types.NewLogicalField("float", types.Float64, true),
}, []arrow.UnionTypeCode{IntOrFloatInteger, IntOrFloatFloat})

// IntOrFloatType is a union of a 64-bit integer and a 64-bit float. Values
// sort by variant first, all integers before all floats, then by value.
type IntOrFloatType struct{}

func NewIntOrFloatType() *IntOrFloatType { return &IntOrFloatType{} }

func (*IntOrFloatType) Native() *types.NativeType { return intOrFloatNative }

func (*IntOrFloatType) Signature() types.TypeSignature {
	return types.ExtensionSignature(IntOrFloatExtensionName)
}

func (*IntOrFloatType) PlanningInformation() types.PlanningInformation {
	return types.PlanningInformation{Ordering: types.CustomSortOrdering(IntOrFloatOrdering{})}
}

func (*IntOrFloatType) DefaultCastFor(origin arrow.DataType) (arrow.DataType, error) {
	return intOrFloatNative.DefaultCastFor(origin)
}

func (*IntOrFloatType) String() string { return IntOrFloatExtensionName }

// StorageType returns the sparse union storage of IntOrFloatType.
func (*IntOrFloatType) StorageType() arrow.DataType { return intOrFloatNative.DefaultStorageType() }

// IntOrFloatOrdering compares rows of an int-or-float union array.
type IntOrFloatOrdering struct{}

func (IntOrFloatOrdering) OrderingID() string { return IntOrFloatOrderingID }

// Comparator orders rows by type code, then by value. Floats use the total
// order so NaN never compares unordered. Descending reverses the combined
// result; null values are placed by opts.NullsFirst.
func (IntOrFloatOrdering) Comparator(arr arrow.Array, opts types.SortOptions) (types.Comparator, error) {
	u, ok := arr.(array.Union)
	if !ok {
		return nil, types.NewError(types.ErrTypeMismatch, "logical type", IntOrFloatExtensionName,
			"expected a union array, got %s", arr.DataType())
	}
	var ints *array.Int64
	var floats *array.Float64
	codes := u.UnionType().TypeCodes()
	for pos, code := range codes {
		switch child := u.Field(pos).(type) {
		case *array.Int64:
			if code == IntOrFloatInteger {
				ints = child
			}
		case *array.Float64:
			if code == IntOrFloatFloat {
				floats = child
			}
		}
	}
	if ints == nil || floats == nil || len(codes) != 2 {
		return nil, types.NewError(types.ErrTypeMismatch, "logical type", IntOrFloatExtensionName,
			"unexpected union layout %s", arr.DataType())
	}

	offset := func(i int) int { return arr.Data().Offset() + i }
	if dense, ok := arr.(*array.DenseUnion); ok {
		offset = func(i int) int { return int(dense.ValueOffset(i)) }
	}
	isNull := func(i int) bool {
		if u.TypeCode(i) == IntOrFloatInteger {
			return ints.IsNull(offset(i))
		}
		return floats.IsNull(offset(i))
	}
	nullOrder := 1
	if opts.NullsFirst {
		nullOrder = -1
	}

	return func(i, j int) int {
		ni, nj := isNull(i), isNull(j)
		switch {
		case ni && nj:
			return 0
		case ni:
			return nullOrder
		case nj:
			return -nullOrder
		}
		ti, tj := u.TypeCode(i), u.TypeCode(j)
		c := cmp.Compare(ti, tj)
		if c == 0 {
			if ti == IntOrFloatInteger {
				c = cmp.Compare(ints.Value(offset(i)), ints.Value(offset(j)))
			} else {
				c = ordering.CompareFloat64(floats.Value(offset(i)), floats.Value(offset(j)))
			}
		}
		if opts.Descending {
			return -c
		}
		return c
	}, nil
}

var (
	_ types.LogicalType      = (*IntOrFloatType)(nil)
	_ types.PlanningInformer = (*IntOrFloatType)(nil)
	_ types.CustomOrdering   = IntOrFloatOrdering{}
)
