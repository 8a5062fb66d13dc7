package types

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/zeebo/xxh3"
)

// NativeKind enumerates the canonical physical kinds.
type NativeKind int8

const (
	NativeNull NativeKind = iota
	NativeBoolean
	NativeInt8
	NativeInt16
	NativeInt32
	NativeInt64
	NativeUInt8
	NativeUInt16
	NativeUInt32
	NativeUInt64
	NativeFloat16
	NativeFloat32
	NativeFloat64
	NativeTimestamp
	NativeDate
	NativeTime
	NativeDuration
	NativeInterval
	NativeBinary
	NativeFixedSizeBinary
	NativeString
	NativeList
	NativeFixedSizeList
	NativeStruct
	NativeUnion
	NativeDecimal
	NativeMap
)

var nativeKindNames = [...]string{
	NativeNull:            "Null",
	NativeBoolean:         "Boolean",
	NativeInt8:            "Int8",
	NativeInt16:           "Int16",
	NativeInt32:           "Int32",
	NativeInt64:           "Int64",
	NativeUInt8:           "UInt8",
	NativeUInt16:          "UInt16",
	NativeUInt32:          "UInt32",
	NativeUInt64:          "UInt64",
	NativeFloat16:         "Float16",
	NativeFloat32:         "Float32",
	NativeFloat64:         "Float64",
	NativeTimestamp:       "Timestamp",
	NativeDate:            "Date",
	NativeTime:            "Time",
	NativeDuration:        "Duration",
	NativeInterval:        "Interval",
	NativeBinary:          "Binary",
	NativeFixedSizeBinary: "FixedSizeBinary",
	NativeString:          "String",
	NativeList:            "List",
	NativeFixedSizeList:   "FixedSizeList",
	NativeStruct:          "Struct",
	NativeUnion:           "Union",
	NativeDecimal:         "Decimal",
	NativeMap:             "Map",
}

func (k NativeKind) String() string {
	if int(k) < len(nativeKindNames) {
		return nativeKindNames[k]
	}
	return fmt.Sprintf("NativeKind(%d)", int8(k))
}

// IsInteger reports whether k is a signed or unsigned integer kind.
func (k NativeKind) IsInteger() bool {
	return k >= NativeInt8 && k <= NativeUInt64
}

// IsFloating reports whether k is a floating point kind.
func (k NativeKind) IsFloating() bool {
	return k >= NativeFloat16 && k <= NativeFloat64
}

// IsNumeric reports whether k is an integer, floating point or decimal kind.
func (k NativeKind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloating() || k == NativeDecimal
}

// IsNested reports whether k carries child fields.
func (k NativeKind) IsNested() bool {
	switch k {
	case NativeList, NativeFixedSizeList, NativeStruct, NativeUnion, NativeMap:
		return true
	}
	return false
}

// IntervalUnit selects the layout of an interval.
type IntervalUnit int8

const (
	IntervalYearMonth IntervalUnit = iota
	IntervalDayTime
	IntervalMonthDayNano
)

func (u IntervalUnit) String() string {
	switch u {
	case IntervalYearMonth:
		return "YearMonth"
	case IntervalDayTime:
		return "DayTime"
	case IntervalMonthDayNano:
		return "MonthDayNano"
	default:
		return fmt.Sprintf("IntervalUnit(%d)", int8(u))
	}
}

// NativeType is the canonical physical shape of a value, with encoding
// variants collapsed (three string encodings are one String).
//
// A NativeType is immutable once constructed and is safe to share between
// goroutines. NativeType also implements LogicalType: it is the logical type
// used when no extension type applies.
type NativeType struct {
	kind      NativeKind
	unit      arrow.TimeUnit
	timeZone  string
	interval  IntervalUnit
	size      int32
	precision int32
	scale     int32
	fields    []*LogicalField
	codes     []arrow.UnionTypeCode
}

// Parameterless native types.
var (
	Null    = &NativeType{kind: NativeNull}
	Boolean = &NativeType{kind: NativeBoolean}
	Int8    = &NativeType{kind: NativeInt8}
	Int16   = &NativeType{kind: NativeInt16}
	Int32   = &NativeType{kind: NativeInt32}
	Int64   = &NativeType{kind: NativeInt64}
	UInt8   = &NativeType{kind: NativeUInt8}
	UInt16  = &NativeType{kind: NativeUInt16}
	UInt32  = &NativeType{kind: NativeUInt32}
	UInt64  = &NativeType{kind: NativeUInt64}
	Float16 = &NativeType{kind: NativeFloat16}
	Float32 = &NativeType{kind: NativeFloat32}
	Float64 = &NativeType{kind: NativeFloat64}
	Date    = &NativeType{kind: NativeDate}
	Binary  = &NativeType{kind: NativeBinary}
	String  = &NativeType{kind: NativeString}
)

// NewTimestamp returns a Timestamp native type. An empty tz means no time zone.
func NewTimestamp(unit arrow.TimeUnit, tz string) *NativeType {
	return &NativeType{kind: NativeTimestamp, unit: unit, timeZone: tz}
}

// NewTime returns a Time native type with the given unit.
func NewTime(unit arrow.TimeUnit) *NativeType {
	return &NativeType{kind: NativeTime, unit: unit}
}

// NewDuration returns a Duration native type with the given unit.
func NewDuration(unit arrow.TimeUnit) *NativeType {
	return &NativeType{kind: NativeDuration, unit: unit}
}

// NewInterval returns an Interval native type with the given unit.
func NewInterval(unit IntervalUnit) *NativeType {
	return &NativeType{kind: NativeInterval, interval: unit}
}

// NewFixedSizeBinary returns a FixedSizeBinary native type of the given width.
func NewFixedSizeBinary(width int32) *NativeType {
	return &NativeType{kind: NativeFixedSizeBinary, size: width}
}

// NewDecimal returns a Decimal native type.
func NewDecimal(precision, scale int32) *NativeType {
	return &NativeType{kind: NativeDecimal, precision: precision, scale: scale}
}

// NewList returns a List native type with the given element field.
func NewList(elem *LogicalField) *NativeType {
	return &NativeType{kind: NativeList, fields: []*LogicalField{elem}}
}

// NewFixedSizeList returns a FixedSizeList native type.
func NewFixedSizeList(elem *LogicalField, size int32) *NativeType {
	return &NativeType{kind: NativeFixedSizeList, fields: []*LogicalField{elem}, size: size}
}

// NewStruct returns a Struct native type with fields in declared order.
func NewStruct(fields ...*LogicalField) *NativeType {
	return &NativeType{kind: NativeStruct, fields: append([]*LogicalField(nil), fields...)}
}

// NewMap returns a Map native type with the given key and value fields.
func NewMap(key, value *LogicalField) *NativeType {
	return &NativeType{kind: NativeMap, fields: []*LogicalField{key, value}}
}

// NewUnion returns a Union native type. If codes is nil the fields are
// assigned type codes 0..n-1. Panics if len(codes) != len(fields).
func NewUnion(fields []*LogicalField, codes []arrow.UnionTypeCode) *NativeType {
	if codes == nil {
		codes = make([]arrow.UnionTypeCode, len(fields))
		for i := range codes {
			codes[i] = arrow.UnionTypeCode(i)
		}
	}
	if len(codes) != len(fields) {
		panic(fmt.Sprintf("types: union has %d fields but %d type codes", len(fields), len(codes)))
	}
	return &NativeType{
		kind:   NativeUnion,
		fields: append([]*LogicalField(nil), fields...),
		codes:  append([]arrow.UnionTypeCode(nil), codes...),
	}
}

func (n *NativeType) Kind() NativeKind           { return n.kind }
func (n *NativeType) TimeUnit() arrow.TimeUnit   { return n.unit }
func (n *NativeType) TimeZone() string           { return n.timeZone }
func (n *NativeType) IntervalUnit() IntervalUnit { return n.interval }
func (n *NativeType) Precision() int32           { return n.precision }
func (n *NativeType) Scale() int32               { return n.scale }

// ByteWidth returns the width of a FixedSizeBinary.
func (n *NativeType) ByteWidth() int32 { return n.size }

// ListSize returns the length of a FixedSizeList.
func (n *NativeType) ListSize() int32 { return n.size }

// NumFields returns the number of child fields.
func (n *NativeType) NumFields() int { return len(n.fields) }

// Field returns the i-th child field.
func (n *NativeType) Field(i int) *LogicalField { return n.fields[i] }

// Fields returns a copy of the child fields.
func (n *NativeType) Fields() []*LogicalField {
	return append([]*LogicalField(nil), n.fields...)
}

// ElemField returns the element field of a List or FixedSizeList.
func (n *NativeType) ElemField() *LogicalField {
	if n.kind != NativeList && n.kind != NativeFixedSizeList {
		return nil
	}
	return n.fields[0]
}

// KeyField returns the key field of a Map.
func (n *NativeType) KeyField() *LogicalField {
	if n.kind != NativeMap {
		return nil
	}
	return n.fields[0]
}

// ValueField returns the value field of a Map.
func (n *NativeType) ValueField() *LogicalField {
	if n.kind != NativeMap {
		return nil
	}
	return n.fields[1]
}

// TypeCodes returns a copy of the union type codes.
func (n *NativeType) TypeCodes() []arrow.UnionTypeCode {
	return append([]arrow.UnionTypeCode(nil), n.codes...)
}

// UnionField returns the union member with the given type code.
func (n *NativeType) UnionField(code arrow.UnionTypeCode) (*LogicalField, bool) {
	for i, c := range n.codes {
		if c == code {
			return n.fields[i], true
		}
	}
	return nil, false
}

// Native implements LogicalType.
func (n *NativeType) Native() *NativeType { return n }

// Signature implements LogicalType.
func (n *NativeType) Signature() TypeSignature { return NativeSignature(n) }

// Equal reports structural equality, recursing into child fields.
func (n *NativeType) Equal(other *NativeType) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.kind != other.kind || n.unit != other.unit || n.timeZone != other.timeZone ||
		n.interval != other.interval || n.size != other.size ||
		n.precision != other.precision || n.scale != other.scale ||
		len(n.fields) != len(other.fields) || len(n.codes) != len(other.codes) {
		return false
	}
	for i := range n.codes {
		if n.codes[i] != other.codes[i] {
			return false
		}
	}
	for i := range n.fields {
		if !n.fields[i].Equal(other.fields[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal.
func (n *NativeType) Hash() uint64 {
	return xxh3.HashString(n.String())
}

func (n *NativeType) String() string {
	switch n.kind {
	case NativeTimestamp:
		if n.timeZone != "" {
			return fmt.Sprintf("Timestamp(%s, %q)", n.unit, n.timeZone)
		}
		return fmt.Sprintf("Timestamp(%s)", n.unit)
	case NativeTime, NativeDuration:
		return fmt.Sprintf("%s(%s)", n.kind, n.unit)
	case NativeInterval:
		return fmt.Sprintf("Interval(%s)", n.interval)
	case NativeFixedSizeBinary:
		return fmt.Sprintf("FixedSizeBinary(%d)", n.size)
	case NativeDecimal:
		return fmt.Sprintf("Decimal(%d, %d)", n.precision, n.scale)
	case NativeList:
		return "List(" + n.fields[0].String() + ")"
	case NativeFixedSizeList:
		return fmt.Sprintf("FixedSizeList(%s, %d)", n.fields[0], n.size)
	case NativeStruct, NativeMap:
		parts := make([]string, len(n.fields))
		for i, f := range n.fields {
			parts[i] = f.String()
		}
		return n.kind.String() + "(" + strings.Join(parts, ", ") + ")"
	case NativeUnion:
		parts := make([]string, len(n.fields))
		for i, f := range n.fields {
			parts[i] = fmt.Sprintf("%d: %s", n.codes[i], f)
		}
		return "Union(" + strings.Join(parts, ", ") + ")"
	default:
		return n.kind.String()
	}
}

// NativeTypeOf derives the native type of an Arrow storage type.
// Encoding variants are collapsed: dictionary and run-end encoding are
// transparent, extension types resolve to their storage.
// Unsupported type ids map to Null; use TryNativeTypeOf to detect them.
func NativeTypeOf(dt arrow.DataType) *NativeType {
	n, err := TryNativeTypeOf(dt)
	if err != nil {
		return Null
	}
	return n
}

// TryNativeTypeOf is NativeTypeOf returning an error for unsupported types.
func TryNativeTypeOf(dt arrow.DataType) (*NativeType, error) {
	if dt == nil {
		return nil, NewError(ErrTypeMismatch, "storage type", "", "nil data type")
	}
	switch dt.ID() {
	case arrow.NULL:
		return Null, nil
	case arrow.BOOL:
		return Boolean, nil
	case arrow.INT8:
		return Int8, nil
	case arrow.INT16:
		return Int16, nil
	case arrow.INT32:
		return Int32, nil
	case arrow.INT64:
		return Int64, nil
	case arrow.UINT8:
		return UInt8, nil
	case arrow.UINT16:
		return UInt16, nil
	case arrow.UINT32:
		return UInt32, nil
	case arrow.UINT64:
		return UInt64, nil
	case arrow.FLOAT16:
		return Float16, nil
	case arrow.FLOAT32:
		return Float32, nil
	case arrow.FLOAT64:
		return Float64, nil
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return String, nil
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.BINARY_VIEW:
		return Binary, nil
	case arrow.FIXED_SIZE_BINARY:
		return NewFixedSizeBinary(int32(dt.(*arrow.FixedSizeBinaryType).ByteWidth)), nil
	case arrow.DECIMAL32, arrow.DECIMAL64, arrow.DECIMAL128, arrow.DECIMAL256:
		d := dt.(arrow.DecimalType)
		return NewDecimal(d.GetPrecision(), d.GetScale()), nil
	case arrow.DATE32, arrow.DATE64:
		return Date, nil
	case arrow.TIME32:
		return NewTime(dt.(*arrow.Time32Type).Unit), nil
	case arrow.TIME64:
		return NewTime(dt.(*arrow.Time64Type).Unit), nil
	case arrow.TIMESTAMP:
		ts := dt.(*arrow.TimestampType)
		return NewTimestamp(ts.Unit, ts.TimeZone), nil
	case arrow.DURATION:
		return NewDuration(dt.(*arrow.DurationType).Unit), nil
	case arrow.INTERVAL_MONTHS:
		return NewInterval(IntervalYearMonth), nil
	case arrow.INTERVAL_DAY_TIME:
		return NewInterval(IntervalDayTime), nil
	case arrow.INTERVAL_MONTH_DAY_NANO:
		return NewInterval(IntervalMonthDayNano), nil
	case arrow.LIST, arrow.LARGE_LIST, arrow.LIST_VIEW, arrow.LARGE_LIST_VIEW:
		elem, err := fieldFromArrow(dt.(arrow.ListLikeType).ElemField())
		if err != nil {
			return nil, err
		}
		return NewList(elem), nil
	case arrow.FIXED_SIZE_LIST:
		fsl := dt.(*arrow.FixedSizeListType)
		elem, err := fieldFromArrow(fsl.ElemField())
		if err != nil {
			return nil, err
		}
		return NewFixedSizeList(elem, fsl.Len()), nil
	case arrow.STRUCT:
		st := dt.(*arrow.StructType)
		fields := make([]*LogicalField, st.NumFields())
		for i := range fields {
			f, err := fieldFromArrow(st.Field(i))
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return NewStruct(fields...), nil
	case arrow.MAP:
		mt := dt.(*arrow.MapType)
		key, err := fieldFromArrow(mt.KeyField())
		if err != nil {
			return nil, err
		}
		item, err := fieldFromArrow(mt.ItemField())
		if err != nil {
			return nil, err
		}
		return NewMap(key, item), nil
	case arrow.SPARSE_UNION, arrow.DENSE_UNION:
		ut := dt.(arrow.UnionType)
		fields := make([]*LogicalField, len(ut.Fields()))
		for i, af := range ut.Fields() {
			f, err := fieldFromArrow(af)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return NewUnion(fields, ut.TypeCodes()), nil
	case arrow.DICTIONARY:
		return TryNativeTypeOf(dt.(*arrow.DictionaryType).ValueType)
	case arrow.RUN_END_ENCODED:
		return TryNativeTypeOf(dt.(*arrow.RunEndEncodedType).Encoded())
	case arrow.EXTENSION:
		return TryNativeTypeOf(dt.(arrow.ExtensionType).StorageType())
	}
	return nil, NewError(ErrUnimplemented, "storage type", dt.String(), "no native type for arrow type id %s", dt.ID())
}

func fieldFromArrow(f arrow.Field) (*LogicalField, error) {
	n, err := TryNativeTypeOf(f.Type)
	if err != nil {
		return nil, err
	}
	return NewLogicalField(f.Name, n, f.Nullable), nil
}

// Represents reports whether values stored as dt can be typed by n.
// Scalar kinds must match exactly including parameters, except that a
// decimal storage may have a lower precision than n. Nested kinds compare
// their children by native shape, ignoring field names and nullability.
func (n *NativeType) Represents(dt arrow.DataType) bool {
	other, err := TryNativeTypeOf(dt)
	if err != nil {
		return false
	}
	return n.represents(other)
}

func (n *NativeType) represents(other *NativeType) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case NativeDecimal:
		return other.scale == n.scale && other.precision <= n.precision
	case NativeTimestamp:
		return n.unit == other.unit && n.timeZone == other.timeZone
	case NativeTime, NativeDuration:
		return n.unit == other.unit
	case NativeInterval:
		return n.interval == other.interval
	case NativeFixedSizeBinary, NativeFixedSizeList:
		if n.size != other.size {
			return false
		}
	}
	if len(n.fields) != len(other.fields) || len(n.codes) != len(other.codes) {
		return false
	}
	for i := range n.codes {
		if n.codes[i] != other.codes[i] {
			return false
		}
	}
	for i := range n.fields {
		if !n.fields[i].Type.Native().represents(other.fields[i].Type.Native()) {
			return false
		}
	}
	return true
}

// DefaultStorageType returns the Arrow type used to materialise values of n
// when no other storage is requested.
func (n *NativeType) DefaultStorageType() arrow.DataType {
	switch n.kind {
	case NativeNull:
		return arrow.Null
	case NativeBoolean:
		return arrow.FixedWidthTypes.Boolean
	case NativeInt8:
		return arrow.PrimitiveTypes.Int8
	case NativeInt16:
		return arrow.PrimitiveTypes.Int16
	case NativeInt32:
		return arrow.PrimitiveTypes.Int32
	case NativeInt64:
		return arrow.PrimitiveTypes.Int64
	case NativeUInt8:
		return arrow.PrimitiveTypes.Uint8
	case NativeUInt16:
		return arrow.PrimitiveTypes.Uint16
	case NativeUInt32:
		return arrow.PrimitiveTypes.Uint32
	case NativeUInt64:
		return arrow.PrimitiveTypes.Uint64
	case NativeFloat16:
		return arrow.FixedWidthTypes.Float16
	case NativeFloat32:
		return arrow.PrimitiveTypes.Float32
	case NativeFloat64:
		return arrow.PrimitiveTypes.Float64
	case NativeTimestamp:
		return &arrow.TimestampType{Unit: n.unit, TimeZone: n.timeZone}
	case NativeDate:
		return arrow.FixedWidthTypes.Date32
	case NativeTime:
		if n.unit == arrow.Second || n.unit == arrow.Millisecond {
			return &arrow.Time32Type{Unit: n.unit}
		}
		return &arrow.Time64Type{Unit: n.unit}
	case NativeDuration:
		return &arrow.DurationType{Unit: n.unit}
	case NativeInterval:
		switch n.interval {
		case IntervalYearMonth:
			return arrow.FixedWidthTypes.MonthInterval
		case IntervalDayTime:
			return arrow.FixedWidthTypes.DayTimeInterval
		default:
			return arrow.FixedWidthTypes.MonthDayNanoInterval
		}
	case NativeBinary:
		return arrow.BinaryTypes.Binary
	case NativeFixedSizeBinary:
		return &arrow.FixedSizeBinaryType{ByteWidth: int(n.size)}
	case NativeString:
		return arrow.BinaryTypes.String
	case NativeList:
		return arrow.ListOfField(n.fields[0].defaultArrowField())
	case NativeFixedSizeList:
		return arrow.FixedSizeListOfField(n.size, n.fields[0].defaultArrowField())
	case NativeStruct:
		fields := make([]arrow.Field, len(n.fields))
		for i, f := range n.fields {
			fields[i] = f.defaultArrowField()
		}
		return arrow.StructOf(fields...)
	case NativeUnion:
		fields := make([]arrow.Field, len(n.fields))
		for i, f := range n.fields {
			fields[i] = f.defaultArrowField()
		}
		return arrow.SparseUnionOf(fields, n.codes)
	case NativeDecimal:
		if n.precision <= 38 {
			return &arrow.Decimal128Type{Precision: n.precision, Scale: n.scale}
		}
		return &arrow.Decimal256Type{Precision: n.precision, Scale: n.scale}
	case NativeMap:
		return arrow.MapOf(
			n.fields[0].Type.Native().DefaultStorageType(),
			n.fields[1].Type.Native().DefaultStorageType(),
		)
	}
	return arrow.Null
}

// DefaultCastFor returns the storage type that values of origin are
// implicitly cast to when typed as n. Storage already representable by n is
// returned unchanged.
func (n *NativeType) DefaultCastFor(origin arrow.DataType) (arrow.DataType, error) {
	if n.Represents(origin) {
		return origin, nil
	}
	from, err := TryNativeTypeOf(origin)
	if err != nil {
		return nil, err
	}
	if from.kind == NativeNull {
		return n.DefaultStorageType(), nil
	}

	ok := false
	switch {
	case n.kind.IsNumeric():
		ok = from.kind.IsNumeric() || from.kind == NativeBoolean
	case n.kind == NativeBoolean:
		ok = from.kind.IsInteger() || from.kind == NativeString
	case n.kind == NativeString:
		ok = !from.kind.IsNested()
	case n.kind == NativeBinary:
		ok = from.kind == NativeString || from.kind == NativeFixedSizeBinary
	case n.kind == NativeTimestamp:
		ok = from.kind == NativeTimestamp || from.kind == NativeDate || from.kind == NativeString
	case n.kind == NativeDate:
		ok = from.kind == NativeTimestamp || from.kind == NativeString
	case n.kind == NativeTime, n.kind == NativeDuration:
		ok = from.kind == n.kind || from.kind == NativeString
	case n.kind == NativeInterval:
		ok = from.kind == NativeInterval || from.kind == NativeString
	}
	if !ok {
		return nil, NewError(ErrTypeMismatch, "native type", n.String(),
			"no default cast from %s", origin)
	}
	return n.DefaultStorageType(), nil
}
