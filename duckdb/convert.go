package duckdb

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/datatypes/types"
)

// MaxDecimalWidth is the widest DECIMAL DuckDB supports.
const MaxDecimalWidth = 38

// Element names used when building native types from DuckDB descriptors.
const (
	listElementName = "item"
	mapKeyName      = "key"
	mapValueName    = "value"
)

// FromLogical returns the DuckDB type that stores values of lt.
// arrow.uuid maps to UUID; other extension types map by their native type.
func FromLogical(lt types.LogicalType) (Type, error) {
	if name, ok := types.ExtensionName(lt); ok && name == types.UuidExtensionName {
		return Type{ID: TypeIDUUID}, nil
	}
	return FromNative(lt.Native())
}

// FromNative returns the DuckDB type that stores values of n.
func FromNative(n *types.NativeType) (Type, error) {
	switch n.Kind() {
	case types.NativeNull:
		return Type{ID: TypeIDSQLNull}, nil
	case types.NativeBoolean:
		return Type{ID: TypeIDBoolean}, nil
	case types.NativeInt8:
		return Type{ID: TypeIDTinyInt}, nil
	case types.NativeInt16:
		return Type{ID: TypeIDSmallInt}, nil
	case types.NativeInt32:
		return Type{ID: TypeIDInteger}, nil
	case types.NativeInt64:
		return Type{ID: TypeIDBigInt}, nil
	case types.NativeUInt8:
		return Type{ID: TypeIDUTinyInt}, nil
	case types.NativeUInt16:
		return Type{ID: TypeIDUSmallInt}, nil
	case types.NativeUInt32:
		return Type{ID: TypeIDUInteger}, nil
	case types.NativeUInt64:
		return Type{ID: TypeIDUBigInt}, nil
	case types.NativeFloat16, types.NativeFloat32:
		return Type{ID: TypeIDFloat}, nil
	case types.NativeFloat64:
		return Type{ID: TypeIDDouble}, nil
	case types.NativeString:
		return Type{ID: TypeIDVarchar}, nil
	case types.NativeBinary, types.NativeFixedSizeBinary:
		return Type{ID: TypeIDBlob}, nil
	case types.NativeDate:
		return Type{ID: TypeIDDate}, nil
	case types.NativeTime:
		return Type{ID: TypeIDTime}, nil
	case types.NativeDuration, types.NativeInterval:
		return Type{ID: TypeIDInterval}, nil
	case types.NativeTimestamp:
		if n.TimeZone() != "" {
			return Type{ID: TypeIDTimestampTZ}, nil
		}
		switch n.TimeUnit() {
		case arrow.Second:
			return Type{ID: TypeIDTimestampSec}, nil
		case arrow.Millisecond:
			return Type{ID: TypeIDTimestampMs}, nil
		case arrow.Nanosecond:
			return Type{ID: TypeIDTimestampNs}, nil
		default:
			return Type{ID: TypeIDTimestamp}, nil
		}
	case types.NativeDecimal:
		if n.Precision() > MaxDecimalWidth {
			return Type{}, types.NewError(types.ErrValueTooLarge, "native type", n.String(),
				"DuckDB decimals hold at most %d digits", MaxDecimalWidth)
		}
		return Type{ID: TypeIDDecimal, Info: &DecimalTypeInfo{
			Type:  "DECIMAL_TYPE_INFO",
			Width: int(n.Precision()),
			Scale: int(n.Scale()),
		}}, nil
	case types.NativeList:
		child, err := FromLogical(n.ElemField().Type)
		if err != nil {
			return Type{}, err
		}
		return Type{ID: TypeIDList, Info: &ListTypeInfo{Type: "LIST_TYPE_INFO", ChildType: child}}, nil
	case types.NativeFixedSizeList:
		child, err := FromLogical(n.ElemField().Type)
		if err != nil {
			return Type{}, err
		}
		return Type{ID: TypeIDArray, Info: &ArrayTypeInfo{
			Type:      "ARRAY_TYPE_INFO",
			ChildType: child,
			Size:      int(n.ListSize()),
		}}, nil
	case types.NativeStruct:
		info := &StructTypeInfo{Type: "STRUCT_TYPE_INFO"}
		for _, f := range n.Fields() {
			child, err := FromLogical(f.Type)
			if err != nil {
				return Type{}, fmt.Errorf("struct field %q: %w", f.Name, err)
			}
			info.ChildTypes = append(info.ChildTypes, StructField{Name: f.Name, Type: child})
		}
		return Type{ID: TypeIDStruct, Info: info}, nil
	case types.NativeMap:
		key, err := FromLogical(n.KeyField().Type)
		if err != nil {
			return Type{}, err
		}
		value, err := FromLogical(n.ValueField().Type)
		if err != nil {
			return Type{}, err
		}
		return Type{ID: TypeIDMap, Info: &MapTypeInfo{Type: "MAP_TYPE_INFO", KeyType: key, ValueType: value}}, nil
	}
	return Type{}, types.NewError(types.ErrUnimplemented, "native type", n.String(), "no DuckDB equivalent")
}

// ToLogical returns the logical type of DuckDB values of type t.
// UUID maps to the arrow.uuid extension type, everything else to a native type.
func ToLogical(t Type) (types.LogicalType, error) {
	if t.ID.Normalize() == TypeIDUUID {
		return types.NewUuidType(), nil
	}
	n, err := ToNative(t)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ToNative returns the native type of DuckDB values of type t. Nested
// children are native as well, so UUID[] is a list of FixedSizeBinary(16).
//
// UHUGEINT needs 39 digits and maps to Decimal(39, 0), which FromNative
// rejects: the mapping is one-way.
func ToNative(t Type) (*types.NativeType, error) {
	switch t.ID.Normalize() {
	case TypeIDSQLNull:
		return types.Null, nil
	case TypeIDBoolean:
		return types.Boolean, nil
	case TypeIDTinyInt:
		return types.Int8, nil
	case TypeIDSmallInt:
		return types.Int16, nil
	case TypeIDInteger:
		return types.Int32, nil
	case TypeIDBigInt:
		return types.Int64, nil
	case TypeIDUTinyInt:
		return types.UInt8, nil
	case TypeIDUSmallInt:
		return types.UInt16, nil
	case TypeIDUInteger:
		return types.UInt32, nil
	case TypeIDUBigInt:
		return types.UInt64, nil
	case TypeIDHugeInt:
		return types.NewDecimal(38, 0), nil
	case TypeIDUHugeInt:
		return types.NewDecimal(39, 0), nil
	case TypeIDFloat:
		return types.Float32, nil
	case TypeIDDouble:
		return types.Float64, nil
	case TypeIDDecimal:
		info, ok := t.Info.(*DecimalTypeInfo)
		if !ok {
			// DuckDB's default DECIMAL
			return types.NewDecimal(18, 3), nil
		}
		return types.NewDecimal(int32(info.Width), int32(info.Scale)), nil
	case TypeIDVarchar, TypeIDChar, TypeIDEnum:
		return types.String, nil
	case TypeIDBlob:
		return types.Binary, nil
	case TypeIDUUID:
		return types.NewFixedSizeBinary(16), nil
	case TypeIDDate:
		return types.Date, nil
	case TypeIDTime:
		return types.NewTime(arrow.Microsecond), nil
	case TypeIDTimestampSec:
		return types.NewTimestamp(arrow.Second, ""), nil
	case TypeIDTimestampMs:
		return types.NewTimestamp(arrow.Millisecond, ""), nil
	case TypeIDTimestamp:
		return types.NewTimestamp(arrow.Microsecond, ""), nil
	case TypeIDTimestampNs:
		return types.NewTimestamp(arrow.Nanosecond, ""), nil
	case TypeIDTimestampTZ:
		return types.NewTimestamp(arrow.Microsecond, "UTC"), nil
	case TypeIDInterval:
		return types.NewInterval(types.IntervalMonthDayNano), nil
	case TypeIDList:
		info, ok := t.Info.(*ListTypeInfo)
		if !ok {
			return nil, missingInfo(t)
		}
		elem, err := ToNative(info.ChildType)
		if err != nil {
			return nil, err
		}
		return types.NewList(types.NewLogicalField(listElementName, elem, true)), nil
	case TypeIDArray:
		info, ok := t.Info.(*ArrayTypeInfo)
		if !ok {
			return nil, missingInfo(t)
		}
		elem, err := ToNative(info.ChildType)
		if err != nil {
			return nil, err
		}
		return types.NewFixedSizeList(types.NewLogicalField(listElementName, elem, true), int32(info.Size)), nil
	case TypeIDStruct:
		info, ok := t.Info.(*StructTypeInfo)
		if !ok {
			return nil, missingInfo(t)
		}
		fields := make([]*types.LogicalField, 0, len(info.ChildTypes))
		for _, child := range info.ChildTypes {
			lt, err := ToNative(child.Type)
			if err != nil {
				return nil, fmt.Errorf("struct field %q: %w", child.Name, err)
			}
			fields = append(fields, types.NewLogicalField(child.Name, lt, true))
		}
		return types.NewStruct(fields...), nil
	case TypeIDMap:
		info, ok := t.Info.(*MapTypeInfo)
		if !ok {
			return nil, missingInfo(t)
		}
		key, err := ToNative(info.KeyType)
		if err != nil {
			return nil, err
		}
		value, err := ToNative(info.ValueType)
		if err != nil {
			return nil, err
		}
		return types.NewMap(
			types.NewLogicalField(mapKeyName, key, false),
			types.NewLogicalField(mapValueName, value, true),
		), nil
	}
	return nil, types.NewError(types.ErrUnimplemented, "DuckDB type", string(t.ID), "no native equivalent")
}

func missingInfo(t Type) error {
	return types.NewError(types.ErrTypeMismatch, "DuckDB type", string(t.ID), "missing type info")
}

// TypeName formats t as a DuckDB SQL type name.
func TypeName(t Type) string {
	switch t.ID {
	case TypeIDTimeTZ:
		return "TIME WITH TIME ZONE"
	case TypeIDTimestampTZ:
		return "TIMESTAMP WITH TIME ZONE"
	case TypeIDTimestampSec:
		return "TIMESTAMP_S"
	case TypeIDSQLNull:
		return "NULL"
	case TypeIDDecimal:
		if info, ok := t.Info.(*DecimalTypeInfo); ok {
			return fmt.Sprintf("DECIMAL(%d, %d)", info.Width, info.Scale)
		}
		return "DECIMAL"
	case TypeIDList:
		if info, ok := t.Info.(*ListTypeInfo); ok {
			return TypeName(info.ChildType) + "[]"
		}
		return "LIST"
	case TypeIDArray:
		if info, ok := t.Info.(*ArrayTypeInfo); ok {
			return fmt.Sprintf("%s[%d]", TypeName(info.ChildType), info.Size)
		}
		return "ARRAY"
	case TypeIDStruct:
		if info, ok := t.Info.(*StructTypeInfo); ok {
			fields := make([]string, 0, len(info.ChildTypes))
			for _, field := range info.ChildTypes {
				fields = append(fields, quoteIdentifier(field.Name)+" "+TypeName(field.Type))
			}
			return "STRUCT(" + strings.Join(fields, ", ") + ")"
		}
		return "STRUCT"
	case TypeIDMap:
		if info, ok := t.Info.(*MapTypeInfo); ok {
			return "MAP(" + TypeName(info.KeyType) + ", " + TypeName(info.ValueType) + ")"
		}
		return "MAP"
	case TypeIDEnum:
		if info, ok := t.Info.(*EnumTypeInfo); ok {
			values := make([]string, 0, len(info.Values))
			for _, v := range info.Values {
				values = append(values, quoteLiteral(v))
			}
			return "ENUM(" + strings.Join(values, ", ") + ")"
		}
		return "ENUM"
	default:
		return string(t.ID)
	}
}

// SQLTypeName returns the DuckDB SQL type name that stores values of lt.
func SQLTypeName(lt types.LogicalType) (string, error) {
	t, err := FromLogical(lt)
	if err != nil {
		return "", err
	}
	return TypeName(t), nil
}
