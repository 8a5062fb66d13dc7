package logical

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"

	"github.com/hugr-lab/datatypes/types"
)

// TestFromPhysicalNulls tests that every null physical scalar becomes Null.
func TestFromPhysicalNulls(t *testing.T) {
	dataTypes := []arrow.DataType{
		arrow.Null,
		arrow.FixedWidthTypes.Boolean,
		arrow.PrimitiveTypes.Int8,
		arrow.PrimitiveTypes.Int16,
		arrow.PrimitiveTypes.Int32,
		arrow.PrimitiveTypes.Int64,
		arrow.PrimitiveTypes.Uint8,
		arrow.PrimitiveTypes.Uint16,
		arrow.PrimitiveTypes.Uint32,
		arrow.PrimitiveTypes.Uint64,
		arrow.FixedWidthTypes.Float16,
		arrow.PrimitiveTypes.Float32,
		arrow.PrimitiveTypes.Float64,
		arrow.BinaryTypes.String,
		arrow.BinaryTypes.LargeString,
		arrow.BinaryTypes.Binary,
		arrow.BinaryTypes.LargeBinary,
		&arrow.FixedSizeBinaryType{ByteWidth: 16},
		&arrow.Decimal128Type{Precision: 10, Scale: 2},
		&arrow.Decimal256Type{Precision: 50, Scale: 4},
		arrow.FixedWidthTypes.Date32,
		arrow.FixedWidthTypes.Date64,
		arrow.FixedWidthTypes.Time32s,
		arrow.FixedWidthTypes.Time32ms,
		arrow.FixedWidthTypes.Time64us,
		arrow.FixedWidthTypes.Time64ns,
		arrow.FixedWidthTypes.Timestamp_s,
		arrow.FixedWidthTypes.Timestamp_ms,
		arrow.FixedWidthTypes.Timestamp_us,
		arrow.FixedWidthTypes.Timestamp_ns,
		&arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"},
		arrow.FixedWidthTypes.MonthInterval,
		arrow.FixedWidthTypes.DayTimeInterval,
		arrow.FixedWidthTypes.MonthDayNanoInterval,
		arrow.FixedWidthTypes.Duration_s,
		arrow.FixedWidthTypes.Duration_ms,
		arrow.FixedWidthTypes.Duration_us,
		arrow.FixedWidthTypes.Duration_ns,
		arrow.ListOf(arrow.PrimitiveTypes.Int32),
		arrow.LargeListOf(arrow.PrimitiveTypes.Int32),
		arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Int32),
		arrow.StructOf(arrow.Field{Name: "a", Type: arrow.PrimitiveTypes.Int32, Nullable: true}),
	}

	for _, dt := range dataTypes {
		t.Run(dt.String(), func(t *testing.T) {
			got, err := FromPhysical(scalar.MakeNullScalar(dt))
			if err != nil {
				t.Fatalf("Expected conversion to succeed, got error: %v", err)
			}
			if got.Kind() != KindNull {
				t.Errorf("Expected Null, got %s", got.Kind())
			}
		})
	}
}

func TestFromPhysicalPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		input scalar.Scalar
		want  Scalar
	}{
		{"bool", scalar.NewBooleanScalar(true), Boolean(true)},
		{"int8", scalar.NewInt8Scalar(-8), Int8(-8)},
		{"int16", scalar.NewInt16Scalar(-16), Int16(-16)},
		{"int32", scalar.NewInt32Scalar(32), Int32(32)},
		{"int64", scalar.NewInt64Scalar(-64), Int64(-64)},
		{"uint8", scalar.NewUint8Scalar(8), UInt8(8)},
		{"uint16", scalar.NewUint16Scalar(16), UInt16(16)},
		{"uint32", scalar.NewUint32Scalar(32), UInt32(32)},
		{"uint64", scalar.NewUint64Scalar(1 << 63), UInt64(1 << 63)},
		{"float32", scalar.NewFloat32Scalar(1.5), Float32(1.5)},
		{"float64", scalar.NewFloat64Scalar(-2.25), Float64(-2.25)},
		{"string", scalar.NewStringScalar("hello"), String("hello")},
		{"large string", scalar.NewLargeStringScalar("hello"), String("hello")},
		{"binary", scalar.NewBinaryScalar(memory.NewBufferBytes([]byte{1, 2}), arrow.BinaryTypes.Binary), Binary{1, 2}},
		{"large binary", scalar.NewLargeBinaryScalar(memory.NewBufferBytes([]byte{3})), Binary{3}},
		{"date32", scalar.NewDate32Scalar(19000), Date(19000)},
		{"date64", scalar.NewDate64Scalar(86400000), Timestamp{Unit: arrow.Millisecond, Value: 86400000}},
		{"time32", scalar.NewTime32Scalar(10, arrow.FixedWidthTypes.Time32ms), Time{Unit: arrow.Millisecond, Value: 10}},
		{"time64", scalar.NewTime64Scalar(10, arrow.FixedWidthTypes.Time64ns), Time{Unit: arrow.Nanosecond, Value: 10}},
		{
			"timestamp tz",
			scalar.NewTimestampScalar(42, &arrow.TimestampType{Unit: arrow.Second, TimeZone: "Europe/Berlin"}),
			Timestamp{Unit: arrow.Second, TimeZone: "Europe/Berlin", Value: 42},
		},
		{"duration", scalar.NewDurationScalar(7, arrow.FixedWidthTypes.Duration_us), Duration{Unit: arrow.Microsecond, Value: 7}},
		{"month interval", scalar.NewMonthIntervalScalar(14), YearMonthInterval(14)},
		{
			"day time interval",
			scalar.NewDayTimeIntervalScalar(arrow.DayTimeInterval{Days: 2, Milliseconds: 300}),
			DayTimeInterval{Days: 2, Milliseconds: 300},
		},
		{
			"month day nano interval",
			scalar.NewMonthDayNanoIntervalScalar(arrow.MonthDayNanoInterval{Months: 1, Days: 2, Nanoseconds: 3}),
			MonthDayNanoInterval{Months: 1, Days: 2, Nanoseconds: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromPhysical(tt.input)
			if err != nil {
				t.Fatalf("Expected conversion to succeed, got error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Expected %v (%s), got %v (%s)", tt.want, tt.want.Kind(), got, got.Kind())
			}
		})
	}
}

func TestFromPhysicalFixedSizeBinary(t *testing.T) {
	s := scalar.NewFixedSizeBinaryScalar(memory.NewBufferBytes([]byte{0xde, 0xad}), &arrow.FixedSizeBinaryType{ByteWidth: 2})
	got, err := FromPhysical(s)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	fsb, ok := got.(FixedSizeBinary)
	if !ok {
		t.Fatalf("Expected FixedSizeBinary, got %T", got)
	}
	if fsb.Width() != 2 || fsb.String() != `\xdead` {
		t.Errorf("Unexpected value %s (width %d)", fsb, fsb.Width())
	}
}

// TestFromPhysicalDecimal128 tests that the rendering equals value * 10^-scale.
func TestFromPhysicalDecimal128(t *testing.T) {
	tests := []struct {
		value int64
		scale int32
		want  string
	}{
		{12345, 2, "123.45"},
		{-12345, 2, "-123.45"},
		{5, 3, "0.005"},
		{100, 0, "100"},
		{0, 2, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := scalar.NewDecimal128Scalar(decimal128.FromI64(tt.value), &arrow.Decimal128Type{Precision: 38, Scale: tt.scale})
			got, err := FromPhysical(s)
			if err != nil {
				t.Fatalf("Expected conversion to succeed, got error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got.String())
			}
		})
	}
}

// TestFromPhysicalDecimal256 tests that the 256-bit value is read in
// little-endian word order independent of the host.
func TestFromPhysicalDecimal256(t *testing.T) {
	// 2^64 + 5
	s := scalar.NewDecimal256Scalar(decimal256.New(0, 0, 1, 5), &arrow.Decimal256Type{Precision: 40, Scale: 0})
	got, err := FromPhysical(s)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	if got.String() != "18446744073709551621" {
		t.Errorf("Expected 18446744073709551621, got %s", got)
	}

	neg := scalar.NewDecimal256Scalar(decimal256.FromI64(-42), &arrow.Decimal256Type{Precision: 40, Scale: 2})
	got, err = FromPhysical(neg)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	if got.String() != "-0.42" {
		t.Errorf("Expected -0.42, got %s", got)
	}
}

// TestDecimal256WordOrder pins the word order of 256-bit decimals: the
// first word of the value array is the least significant.
func TestDecimal256WordOrder(t *testing.T) {
	ones := ^uint64(0)
	tests := []struct {
		name  string
		words [4]uint64
		want  string
	}{
		{"low word", [4]uint64{12345, 0, 0, 0}, "12345"},
		{"second word", [4]uint64{5, 1, 0, 0}, "18446744073709551621"},
		{"minus one", [4]uint64{ones, ones, ones, ones}, "-1"},
		{"minus 2^64", [4]uint64{0, ones, ones, ones}, "-18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num := decimal256.New(tt.words[3], tt.words[2], tt.words[1], tt.words[0])
			s := scalar.NewDecimal256Scalar(num, &arrow.Decimal256Type{Precision: 76, Scale: 0})
			got, err := FromPhysical(s)
			if err != nil {
				t.Fatalf("Expected conversion to succeed, got error: %v", err)
			}
			d, ok := got.(Decimal)
			if !ok {
				t.Fatalf("Expected Decimal, got %T", got)
			}
			if d.Unscaled().String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, d.Unscaled())
			}
		})
	}
}

func TestNewDecimalTooLarge(t *testing.T) {
	v, _ := new(big.Int).SetString("1"+strings.Repeat("0", MaxDecimalDigits), 10)
	_, err := NewDecimal(v, 0)
	if !errors.Is(err, types.ErrValueTooLarge) {
		t.Errorf("Expected ErrValueTooLarge, got %v", err)
	}
}

// TestFromArrayList tests the list conversion shape for [1, null, 3].
func TestFromArrayList(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	bldr := array.NewListBuilder(mem, arrow.PrimitiveTypes.Int32)
	defer bldr.Release()
	vb := bldr.ValueBuilder().(*array.Int32Builder)
	bldr.Append(true)
	vb.Append(1)
	vb.AppendNull()
	vb.Append(3)
	arr := bldr.NewArray()
	defer arr.Release()

	got, err := FromArray(arr, 0)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	list, ok := got.(List)
	if !ok {
		t.Fatalf("Expected List, got %T", got)
	}
	if list.Field().Name != "values" || !list.Field().Nullable {
		t.Errorf("Unexpected element field %s", list.Field())
	}
	if !types.TypesEqual(list.Field().Type, types.Int32) {
		t.Errorf("Expected Int32 element type, got %s", list.Field().Type.Signature())
	}
	want := []Scalar{Int32(1), Null{}, Int32(3)}
	if !equalSlices(list.Values(), want) {
		t.Errorf("Expected %v, got %v", want, list.Values())
	}
}

func TestFromPhysicalFixedSizeList(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	vb := array.NewInt64Builder(mem)
	defer vb.Release()
	vb.AppendValues([]int64{7, 8}, nil)
	values := vb.NewArray()
	defer values.Release()

	s := scalar.NewFixedSizeListScalar(values)
	defer s.Release()

	got, err := FromPhysical(s)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	fsl, ok := got.(FixedSizeList)
	if !ok {
		t.Fatalf("Expected FixedSizeList, got %T", got)
	}
	if fsl.Size() != 2 || fsl.String() != "[7, 8]" {
		t.Errorf("Unexpected value %s (size %d)", fsl, fsl.Size())
	}
}

func TestFromPhysicalStruct(t *testing.T) {
	dt := arrow.StructOf(
		arrow.Field{Name: "id", Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	)
	s := scalar.NewStructScalar([]scalar.Scalar{
		scalar.NewInt32Scalar(1),
		scalar.MakeNullScalar(arrow.BinaryTypes.String),
	}, dt)

	got, err := FromPhysical(s)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	st, ok := got.(Struct)
	if !ok {
		t.Fatalf("Expected Struct, got %T", got)
	}
	if len(st.Fields()) != 2 || st.Fields()[0].Name != "id" || st.Fields()[0].Nullable {
		t.Errorf("Unexpected fields %v", st.Fields())
	}
	if v, ok := st.Get("name"); !ok || v.Kind() != KindNull {
		t.Errorf("Expected null name, got %v", v)
	}
	if st.String() != "{id: 1, name: NULL}" {
		t.Errorf("Unexpected rendering %q", st.String())
	}
}

// TestFromArrayMap tests that entry order and duplicate keys are preserved.
func TestFromArrayMap(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	bldr := array.NewMapBuilder(mem, arrow.BinaryTypes.String, arrow.PrimitiveTypes.Int64, false)
	defer bldr.Release()
	kb := bldr.KeyBuilder().(*array.StringBuilder)
	ib := bldr.ItemBuilder().(*array.Int64Builder)

	bldr.Append(true)
	kb.Append("b")
	ib.Append(2)
	kb.Append("a")
	ib.AppendNull()
	kb.Append("b")
	ib.Append(3)
	arr := bldr.NewArray()
	defer arr.Release()

	got, err := FromArray(arr, 0)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	m, ok := got.(Map)
	if !ok {
		t.Fatalf("Expected Map, got %T", got)
	}
	if m.Len() != 3 {
		t.Fatalf("Expected 3 entries, got %d", m.Len())
	}
	if m.String() != "{b: 2, a: NULL, b: 3}" {
		t.Errorf("Unexpected rendering %q", m.String())
	}
	if m.KeyField().Nullable {
		t.Error("Expected non-nullable key field")
	}
}

func TestFromPhysicalUnion(t *testing.T) {
	dt := arrow.DenseUnionOf([]arrow.Field{
		{Name: "i", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "s", Type: arrow.BinaryTypes.String, Nullable: true},
	}, []arrow.UnionTypeCode{3, 7})
	s := scalar.NewDenseUnionScalar(scalar.NewStringScalar("x"), 7, dt)

	got, err := FromPhysical(s)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	want := Union{TypeCode: 7, Value: String("x")}
	if !Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFromArrayDictionary(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String}
	bldr := array.NewDictionaryBuilder(mem, dt).(*array.BinaryDictionaryBuilder)
	defer bldr.Release()
	if err := bldr.AppendString("red"); err != nil {
		t.Fatalf("AppendString failed: %v", err)
	}
	if err := bldr.AppendString("green"); err != nil {
		t.Fatalf("AppendString failed: %v", err)
	}
	arr := bldr.NewArray()
	defer arr.Release()

	got, err := FromArray(arr, 1)
	if err != nil {
		t.Fatalf("Expected conversion to succeed, got error: %v", err)
	}
	if !Equal(got, String("green")) {
		t.Errorf("Expected green, got %v", got)
	}
}

func TestFromArrayOutOfRange(t *testing.T) {
	b := array.NewInt32Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(1)
	arr := b.NewArray()
	defer arr.Release()

	if _, err := FromArray(arr, 1); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
