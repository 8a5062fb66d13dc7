package logical

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/hugr-lab/datatypes/types"
)

// FromPhysical converts an Arrow scalar into its logical representation.
//
// Every null physical scalar becomes Null regardless of its type. Failures
// indicate a physical value that disagrees with its declared type and are
// reported as types.ErrInternal.
func FromPhysical(s scalar.Scalar) (Scalar, error) {
	if s == nil || !s.IsValid() {
		return Null{}, nil
	}
	v, err := fromPhysical(s)
	if err != nil {
		return nil, internalError(s.DataType(), err)
	}
	return v, nil
}

// FromArray converts the value at row i of arr.
func FromArray(arr arrow.Array, i int) (Scalar, error) {
	if i < 0 || i >= arr.Len() {
		return nil, types.NewError(types.ErrNotFound, "row", "",
			"index %d out of range [0, %d)", i, arr.Len())
	}
	s, err := scalar.GetScalar(arr, i)
	if err != nil {
		return nil, internalError(arr.DataType(), err)
	}
	if r, ok := s.(scalar.Releasable); ok {
		defer r.Release()
	}
	return FromPhysical(s)
}

func internalError(dt arrow.DataType, err error) error {
	return types.WrapError(types.ErrInternal, "physical scalar", dt.String(), err)
}

func fromPhysical(s scalar.Scalar) (Scalar, error) {
	if !s.IsValid() {
		return Null{}, nil
	}
	switch v := s.(type) {
	case *scalar.Boolean:
		return Boolean(v.Value), nil
	case *scalar.Int8:
		return Int8(v.Value), nil
	case *scalar.Int16:
		return Int16(v.Value), nil
	case *scalar.Int32:
		return Int32(v.Value), nil
	case *scalar.Int64:
		return Int64(v.Value), nil
	case *scalar.Uint8:
		return UInt8(v.Value), nil
	case *scalar.Uint16:
		return UInt16(v.Value), nil
	case *scalar.Uint32:
		return UInt32(v.Value), nil
	case *scalar.Uint64:
		return UInt64(v.Value), nil
	case *scalar.Float16:
		return Float16(v.Value), nil
	case *scalar.Float32:
		return Float32(v.Value), nil
	case *scalar.Float64:
		return Float64(v.Value), nil
	case *scalar.Decimal128:
		return NewDecimal(v.Value.BigInt(), v.Type.(*arrow.Decimal128Type).Scale)
	case *scalar.Decimal256:
		return NewDecimal(v.Value.BigInt(), v.Type.(*arrow.Decimal256Type).Scale)
	case *scalar.Date32:
		return Date(v.Value), nil
	case *scalar.Date64:
		return Timestamp{Unit: arrow.Millisecond, Value: int64(v.Value)}, nil
	case *scalar.Time32:
		return Time{Unit: v.Type.(*arrow.Time32Type).Unit, Value: int64(v.Value)}, nil
	case *scalar.Time64:
		return Time{Unit: v.Type.(*arrow.Time64Type).Unit, Value: int64(v.Value)}, nil
	case *scalar.Timestamp:
		dt := v.Type.(*arrow.TimestampType)
		return Timestamp{Unit: dt.Unit, TimeZone: dt.TimeZone, Value: int64(v.Value)}, nil
	case *scalar.Duration:
		return Duration{Unit: v.Type.(*arrow.DurationType).Unit, Value: int64(v.Value)}, nil
	case *scalar.MonthInterval:
		return YearMonthInterval(v.Value), nil
	case *scalar.DayTimeInterval:
		return DayTimeInterval(v.Value), nil
	case *scalar.MonthDayNanoInterval:
		return MonthDayNanoInterval(v.Value), nil
	case *scalar.Map:
		return mapFromPhysical(v)
	case *scalar.FixedSizeList:
		l, err := listFromPhysical(v.Value, v.Type.(arrow.ListLikeType))
		if err != nil {
			return nil, err
		}
		return NewFixedSizeList(l)
	case *scalar.LargeList:
		return listFromPhysical(v.Value, v.Type.(arrow.ListLikeType))
	case *scalar.List:
		return listFromPhysical(v.Value, v.Type.(arrow.ListLikeType))
	case *scalar.Struct:
		return structFromPhysical(v)
	case *scalar.SparseUnion:
		return unionFromPhysical(v.TypeCode, v.ChildValue())
	case *scalar.DenseUnion:
		return unionFromPhysical(v.TypeCode, v.ChildValue())
	case *scalar.Dictionary:
		decoded, err := v.GetEncodedValue()
		if err != nil {
			return nil, err
		}
		if r, ok := decoded.(scalar.Releasable); ok {
			defer r.Release()
		}
		return fromPhysical(decoded)
	case *scalar.Extension:
		return fromPhysical(v.Value)
	case *scalar.RunEndEncoded:
		return fromPhysical(v.Value)
	case scalar.BinaryScalar:
		return binaryFromPhysical(v)
	}
	return nil, types.NewError(types.ErrUnimplemented, "physical scalar", s.DataType().String(),
		"no logical representation for %T", s)
}

func binaryFromPhysical(v scalar.BinaryScalar) (Scalar, error) {
	data := v.Data()
	switch v.DataType().ID() {
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return String(data), nil
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.BINARY_VIEW:
		return Binary(append([]byte(nil), data...)), nil
	case arrow.FIXED_SIZE_BINARY:
		return NewFixedSizeBinary(append([]byte(nil), data...))
	}
	return nil, types.NewError(types.ErrUnimplemented, "physical scalar", v.DataType().String(),
		"unexpected binary layout")
}

// listValuesField is the name of the element field of converted lists.
const listValuesField = "values"

func listFromPhysical(values arrow.Array, dt arrow.ListLikeType) (List, error) {
	elem := dt.ElemField()
	field := types.NewLogicalField(listValuesField, types.NativeTypeOf(elem.Type), elem.Nullable)
	out, err := arrayValues(values)
	if err != nil {
		return List{}, err
	}
	return NewList(field, out)
}

func arrayValues(arr arrow.Array) ([]Scalar, error) {
	out := make([]Scalar, arr.Len())
	for i := range out {
		v, err := FromArray(arr, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func structFromPhysical(v *scalar.Struct) (Scalar, error) {
	dt := v.Type.(*arrow.StructType)
	if len(v.Value) != dt.NumFields() {
		return nil, types.NewError(types.ErrInternal, "struct", dt.String(),
			"%d values for %d fields", len(v.Value), dt.NumFields())
	}
	fields := make([]*types.LogicalField, dt.NumFields())
	values := make([]Scalar, dt.NumFields())
	for i, f := range dt.Fields() {
		fields[i] = types.NewLogicalField(f.Name, types.NativeTypeOf(f.Type), f.Nullable)
		cv, err := fromPhysical(v.Value[i])
		if err != nil {
			return nil, err
		}
		values[i] = cv
	}
	return NewStruct(fields, values)
}

func mapFromPhysical(v *scalar.Map) (Scalar, error) {
	dt := v.Type.(*arrow.MapType)
	entries, ok := v.Value.(*array.Struct)
	if !ok || entries.NumField() != 2 {
		return nil, types.NewError(types.ErrInternal, "map", dt.String(),
			"entries are not a key/value struct array")
	}
	kf, vf := dt.KeyField(), dt.ItemField()
	keyField := types.NewLogicalField(kf.Name, types.NativeTypeOf(kf.Type), false)
	valueField := types.NewLogicalField(vf.Name, types.NativeTypeOf(vf.Type), vf.Nullable)

	keys, err := arrayValues(entries.Field(0))
	if err != nil {
		return nil, err
	}
	items, err := arrayValues(entries.Field(1))
	if err != nil {
		return nil, err
	}
	out := make([]MapEntry, entries.Len())
	for i := range out {
		out[i] = MapEntry{Key: keys[i], Value: items[i]}
	}
	return NewMap(keyField, valueField, out)
}

func unionFromPhysical(code arrow.UnionTypeCode, child scalar.Scalar) (Scalar, error) {
	if child == nil {
		return Null{}, nil
	}
	v, err := fromPhysical(child)
	if err != nil {
		return nil, err
	}
	return Union{TypeCode: code, Value: v}, nil
}
