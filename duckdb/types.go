package duckdb

import (
	"fmt"

	"github.com/goccy/go-json"
)

// TypeID identifies DuckDB data types.
type TypeID string

const (
	TypeIDInvalid      TypeID = "INVALID"
	TypeIDSQLNull      TypeID = "SQLNULL"
	TypeIDUnknown      TypeID = "UNKNOWN"
	TypeIDAny          TypeID = "ANY"
	TypeIDBoolean      TypeID = "BOOLEAN"
	TypeIDTinyInt      TypeID = "TINYINT"
	TypeIDSmallInt     TypeID = "SMALLINT"
	TypeIDInteger      TypeID = "INTEGER"
	TypeIDBigInt       TypeID = "BIGINT"
	TypeIDDate         TypeID = "DATE"
	TypeIDTime         TypeID = "TIME"
	TypeIDTimestampSec TypeID = "TIMESTAMP_SEC"
	TypeIDTimestampMs  TypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    TypeID = "TIMESTAMP"
	TypeIDTimestampNs  TypeID = "TIMESTAMP_NS"
	TypeIDDecimal      TypeID = "DECIMAL"
	TypeIDFloat        TypeID = "FLOAT"
	TypeIDDouble       TypeID = "DOUBLE"
	TypeIDChar         TypeID = "CHAR"
	TypeIDVarchar      TypeID = "VARCHAR"
	TypeIDBlob         TypeID = "BLOB"
	TypeIDInterval     TypeID = "INTERVAL"
	TypeIDUTinyInt     TypeID = "UTINYINT"
	TypeIDUSmallInt    TypeID = "USMALLINT"
	TypeIDUInteger     TypeID = "UINTEGER"
	TypeIDUBigInt      TypeID = "UBIGINT"
	TypeIDTimestampTZ  TypeID = "TIMESTAMP_TZ"
	TypeIDTimeTZ       TypeID = "TIME_TZ"
	TypeIDHugeInt      TypeID = "HUGEINT"
	TypeIDUHugeInt     TypeID = "UHUGEINT"
	TypeIDUUID         TypeID = "UUID"
	TypeIDStruct       TypeID = "STRUCT"
	TypeIDList         TypeID = "LIST"
	TypeIDMap          TypeID = "MAP"
	TypeIDEnum         TypeID = "ENUM"
	TypeIDArray        TypeID = "ARRAY"
)

// typeIDAliases maps DuckDB aliases and full SQL names to short ids.
var typeIDAliases = map[TypeID]TypeID{
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIME WITH TIME ZONE":         TypeIDTimeTZ,
	"TIMETZ":                      TypeIDTimeTZ,
	"TIMESTAMP_S":                 TypeIDTimestampSec,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	"INT":                         TypeIDInteger,
	"INT4":                        TypeIDInteger,
	"INT8":                        TypeIDBigInt,
	"INT2":                        TypeIDSmallInt,
	"INT1":                        TypeIDTinyInt,
	"UINT8":                       TypeIDUBigInt,
	"UINT4":                       TypeIDUInteger,
	"UINT2":                       TypeIDUSmallInt,
	"UINT1":                       TypeIDUTinyInt,
	"INT128":                      TypeIDHugeInt,
	"UINT128":                     TypeIDUHugeInt,
	"FLOAT4":                      TypeIDFloat,
	"FLOAT8":                      TypeIDDouble,
	"REAL":                        TypeIDFloat,
	"STRING":                      TypeIDVarchar,
	"TEXT":                        TypeIDVarchar,
	"BYTEA":                       TypeIDBlob,
	"BOOL":                        TypeIDBoolean,
}

// Normalize returns the canonical id for DuckDB aliases and full SQL names.
func (t TypeID) Normalize() TypeID {
	if mapped, ok := typeIDAliases[t]; ok {
		return mapped
	}
	return t
}

// IsNumeric returns true for integer, floating point and decimal types.
func (t TypeID) IsNumeric() bool {
	return t.IsInteger() || t == TypeIDFloat || t == TypeIDDouble || t == TypeIDDecimal
}

// IsInteger returns true for signed and unsigned integer types.
func (t TypeID) IsInteger() bool {
	return t.IsSigned() || t.IsUnsigned()
}

func (t TypeID) IsSigned() bool {
	switch t {
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt, TypeIDHugeInt:
		return true
	}
	return false
}

func (t TypeID) IsUnsigned() bool {
	switch t {
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt, TypeIDUHugeInt:
		return true
	}
	return false
}

// IsTemporal returns true for date, time, timestamp and interval types.
func (t TypeID) IsTemporal() bool {
	switch t {
	case TypeIDDate, TypeIDTime, TypeIDTimeTZ,
		TypeIDTimestamp, TypeIDTimestampTZ, TypeIDTimestampMs, TypeIDTimestampNs, TypeIDTimestampSec,
		TypeIDInterval:
		return true
	}
	return false
}

// IsComplex returns true for nested types.
func (t TypeID) IsComplex() bool {
	switch t {
	case TypeIDList, TypeIDStruct, TypeIDMap, TypeIDArray:
		return true
	}
	return false
}

// Type is a DuckDB logical type descriptor.
type Type struct {
	ID   TypeID   `json:"id"`
	Info TypeInfo `json:"type_info"`
}

// TypeInfo is the extra information of parameterised types.
type TypeInfo interface {
	typeInfo()
}

// DecimalTypeInfo holds the width and scale of DECIMAL.
type DecimalTypeInfo struct {
	Type  string `json:"type"`
	Alias string `json:"alias"`
	Width int    `json:"width"`
	Scale int    `json:"scale"`
}

// ListTypeInfo holds the element type of LIST.
type ListTypeInfo struct {
	Type      string `json:"type"`
	Alias     string `json:"alias"`
	ChildType Type   `json:"child_type"`
}

// StructTypeInfo holds the fields of STRUCT.
type StructTypeInfo struct {
	Type       string        `json:"type"`
	Alias      string        `json:"alias"`
	ChildTypes []StructField `json:"child_types"`
}

// StructField is one field of a STRUCT.
type StructField struct {
	Name string `json:"first"`
	Type Type   `json:"second"`
}

// ArrayTypeInfo holds the element type and size of a fixed-size ARRAY.
type ArrayTypeInfo struct {
	Type      string `json:"type"`
	Alias     string `json:"alias"`
	ChildType Type   `json:"child_type"`
	Size      int    `json:"size"`
}

// EnumTypeInfo holds the values of ENUM.
type EnumTypeInfo struct {
	Type   string   `json:"type"`
	Alias  string   `json:"alias"`
	Values []string `json:"values"`
}

// MapTypeInfo holds the key and value types of MAP.
type MapTypeInfo struct {
	Type      string `json:"type"`
	Alias     string `json:"alias"`
	KeyType   Type   `json:"key_type"`
	ValueType Type   `json:"value_type"`
}

func (*DecimalTypeInfo) typeInfo() {}
func (*ListTypeInfo) typeInfo()    {}
func (*StructTypeInfo) typeInfo()  {}
func (*ArrayTypeInfo) typeInfo()   {}
func (*EnumTypeInfo) typeInfo()    {}
func (*MapTypeInfo) typeInfo()     {}

// ParseType parses a JSON type descriptor. Type ids are normalised.
func ParseType(data []byte) (Type, error) {
	return parseType(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Type) UnmarshalJSON(data []byte) error {
	parsed, err := parseType(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseType(data json.RawMessage) (Type, error) {
	if len(data) == 0 || string(data) == "null" {
		return Type{}, nil
	}

	var raw struct {
		ID       string          `json:"id"`
		TypeInfo json.RawMessage `json:"type_info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Type{}, fmt.Errorf("invalid logical type: %w", err)
	}

	t := Type{ID: TypeID(raw.ID).Normalize()}
	if len(raw.TypeInfo) > 0 && string(raw.TypeInfo) != "null" {
		info, err := parseTypeInfo(raw.TypeInfo)
		if err != nil {
			return Type{}, fmt.Errorf("invalid type info of %s: %w", t.ID, err)
		}
		t.Info = info
	}
	return t, nil
}

func parseTypeInfo(data json.RawMessage) (TypeInfo, error) {
	var kind struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return nil, err
	}

	var info TypeInfo
	switch kind.Type {
	case "DECIMAL_TYPE_INFO":
		info = &DecimalTypeInfo{}
	case "LIST_TYPE_INFO":
		info = &ListTypeInfo{}
	case "STRUCT_TYPE_INFO":
		info = &StructTypeInfo{}
	case "ARRAY_TYPE_INFO":
		info = &ArrayTypeInfo{}
	case "ENUM_TYPE_INFO":
		info = &EnumTypeInfo{}
	case "MAP_TYPE_INFO":
		info = &MapTypeInfo{}
	default:
		// unknown type info is ignored
		return nil, nil
	}
	// nested Type fields decode through Type.UnmarshalJSON
	if err := json.Unmarshal(data, info); err != nil {
		return nil, err
	}
	return info, nil
}

// MarshalJSON encodes t as a DuckDB type descriptor.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   TypeID   `json:"id"`
		Info TypeInfo `json:"type_info"`
	}{ID: t.ID, Info: t.Info})
}
