package duckdb

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/datatypes/types"
)

// TestSQLTypeName tests the logical to DuckDB type name mapping.
func TestSQLTypeName(t *testing.T) {
	tests := []struct {
		name string
		lt   types.LogicalType
		want string
	}{
		{"boolean", types.Boolean, "BOOLEAN"},
		{"int8", types.Int8, "TINYINT"},
		{"uint64", types.UInt64, "UBIGINT"},
		{"float16 widens", types.Float16, "FLOAT"},
		{"double", types.Float64, "DOUBLE"},
		{"string", types.String, "VARCHAR"},
		{"fixed size binary", types.NewFixedSizeBinary(4), "BLOB"},
		{"decimal", types.NewDecimal(10, 2), "DECIMAL(10, 2)"},
		{"timestamp s", types.NewTimestamp(arrow.Second, ""), "TIMESTAMP_S"},
		{"timestamp us", types.NewTimestamp(arrow.Microsecond, ""), "TIMESTAMP"},
		{"timestamp tz", types.NewTimestamp(arrow.Nanosecond, "Europe/Berlin"), "TIMESTAMP WITH TIME ZONE"},
		{"duration", types.NewDuration(arrow.Millisecond), "INTERVAL"},
		{"list", types.NewList(types.NewLogicalField("item", types.Int32, true)), "INTEGER[]"},
		{"array", types.NewFixedSizeList(types.NewLogicalField("item", types.Float32, true), 3), "FLOAT[3]"},
		{"struct", types.NewStruct(
			types.NewLogicalField("a", types.Int64, true),
			types.NewLogicalField("b c", types.String, true),
		), `STRUCT(a BIGINT, "b c" VARCHAR)`},
		{"map", types.NewMap(
			types.NewLogicalField("key", types.String, false),
			types.NewLogicalField("value", types.Date, true),
		), "MAP(VARCHAR, DATE)"},
		{"uuid", types.NewUuidType(), "UUID"},
		{"unknown extension", types.NewUnknownExtensionType("x.y", types.Binary), "BLOB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SQLTypeName(tt.lt)
			if err != nil {
				t.Fatalf("Expected mapping to succeed, got error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SQLTypeName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromLogicalErrors(t *testing.T) {
	if _, err := FromLogical(types.NewDecimal(50, 2)); !errors.Is(err, types.ErrValueTooLarge) {
		t.Errorf("Expected ErrValueTooLarge for wide decimal, got %v", err)
	}
	union := types.NewUnion([]*types.LogicalField{
		types.NewLogicalField("i", types.Int64, true),
	}, []arrow.UnionTypeCode{0})
	if _, err := FromLogical(union); !errors.Is(err, types.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented for union, got %v", err)
	}
	nested := types.NewList(types.NewLogicalField("item", union, true))
	if _, err := FromLogical(nested); !errors.Is(err, types.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented for list of union, got %v", err)
	}
}

// TestToNative tests the DuckDB to native type mapping.
func TestToNative(t *testing.T) {
	tests := []struct {
		in   Type
		want *types.NativeType
	}{
		{Type{ID: "INT4"}, types.Int32},
		{Type{ID: TypeIDHugeInt}, types.NewDecimal(38, 0)},
		{Type{ID: TypeIDUHugeInt}, types.NewDecimal(39, 0)},
		{Type{ID: TypeIDEnum}, types.String},
		{Type{ID: TypeIDUUID}, types.NewFixedSizeBinary(16)},
		{Type{ID: TypeIDInterval}, types.NewInterval(types.IntervalMonthDayNano)},
		{Type{ID: TypeIDTimestampTZ}, types.NewTimestamp(arrow.Microsecond, "UTC")},
		{Type{ID: TypeIDTimestampMs}, types.NewTimestamp(arrow.Millisecond, "")},
		{Type{ID: TypeIDDecimal, Info: &DecimalTypeInfo{Width: 9, Scale: 4}}, types.NewDecimal(9, 4)},
		{
			Type{ID: TypeIDList, Info: &ListTypeInfo{ChildType: Type{ID: TypeIDUUID}}},
			types.NewList(types.NewLogicalField("item", types.NewFixedSizeBinary(16), true)),
		},
		{
			Type{ID: TypeIDArray, Info: &ArrayTypeInfo{ChildType: Type{ID: TypeIDUUID}, Size: 2}},
			types.NewFixedSizeList(types.NewLogicalField("item", types.NewFixedSizeBinary(16), true), 2),
		},
		{
			Type{ID: TypeIDStruct, Info: &StructTypeInfo{ChildTypes: []StructField{{Name: "id", Type: Type{ID: TypeIDUUID}}}}},
			types.NewStruct(types.NewLogicalField("id", types.NewFixedSizeBinary(16), true)),
		},
		{
			Type{ID: TypeIDMap, Info: &MapTypeInfo{KeyType: Type{ID: TypeIDUUID}, ValueType: Type{ID: TypeIDUUID}}},
			types.NewMap(
				types.NewLogicalField("key", types.NewFixedSizeBinary(16), false),
				types.NewLogicalField("value", types.NewFixedSizeBinary(16), true),
			),
		},
	}

	for _, tt := range tests {
		got, err := ToNative(tt.in)
		if err != nil {
			t.Fatalf("ToNative(%s): Expected success, got error: %v", TypeName(tt.in), err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ToNative(%s) = %s, want %s", TypeName(tt.in), got, tt.want)
		}
	}

	if _, err := ToNative(Type{ID: TypeIDList}); !errors.Is(err, types.ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch for LIST without info, got %v", err)
	}
	if _, err := ToNative(Type{ID: TypeIDTimeTZ}); !errors.Is(err, types.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented for TIME_TZ, got %v", err)
	}
}

func TestToLogicalUUID(t *testing.T) {
	lt, err := ToLogical(Type{ID: TypeIDUUID})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if !types.TypesEqual(lt, types.NewUuidType()) {
		t.Errorf("Expected arrow.uuid, got %v", lt.Signature())
	}
}

// TestRoundTrip tests that DuckDB-representable native types survive
// FromNative followed by ToNative.
func TestRoundTrip(t *testing.T) {
	natives := []*types.NativeType{
		types.Boolean,
		types.Int16,
		types.UInt32,
		types.Float64,
		types.String,
		types.Binary,
		types.Date,
		types.NewDecimal(18, 6),
		types.NewTimestamp(arrow.Nanosecond, ""),
		types.NewStruct(types.NewLogicalField("x", types.Int64, true)),
	}
	for _, n := range natives {
		d, err := FromNative(n)
		if err != nil {
			t.Fatalf("FromNative(%s): Expected success, got error: %v", n, err)
		}
		back, err := ToNative(d)
		if err != nil {
			t.Fatalf("ToNative(%s): Expected success, got error: %v", TypeName(d), err)
		}
		if !back.Equal(n) {
			t.Errorf("Round trip of %s gave %s", n, back)
		}
	}
}

// TestUHugeIntOneWay tests that UHUGEINT maps to a 39 digit decimal that
// DuckDB cannot store as DECIMAL.
func TestUHugeIntOneWay(t *testing.T) {
	n, err := ToNative(Type{ID: TypeIDUHugeInt})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if n.Precision() != 39 {
		t.Errorf("Expected precision 39, got %d", n.Precision())
	}
	if _, err := FromNative(n); !errors.Is(err, types.ErrValueTooLarge) {
		t.Errorf("Expected ErrValueTooLarge, got %v", err)
	}
}
