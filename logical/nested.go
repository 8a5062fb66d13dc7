package logical

import (
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/hugr-lab/datatypes/types"
)

// List is a variable length sequence of values described by one element field.
type List struct {
	field  *types.LogicalField
	values []Scalar
}

// NewList builds a list. Null values are rejected when the element field is
// not nullable.
func NewList(field *types.LogicalField, values []Scalar) (List, error) {
	if err := checkNullable(field, values); err != nil {
		return List{}, err
	}
	return List{field: field, values: values}, nil
}

func checkNullable(field *types.LogicalField, values []Scalar) error {
	if field.Nullable {
		return nil
	}
	for i, v := range values {
		if v.Kind() == KindNull {
			return types.NewError(types.ErrTypeMismatch, "field", field.Name,
				"null at position %d in a non-nullable field", i)
		}
	}
	return nil
}

func (List) Kind() Kind { return KindList }
func (List) isScalar()  {}

// Field returns the element field.
func (l List) Field() *types.LogicalField { return l.field }

// Values returns the elements. Callers must not modify the slice.
func (l List) Values() []Scalar { return l.values }

// Len returns the number of elements.
func (l List) Len() int { return len(l.values) }

func (l List) String() string { return joinScalars("[", l.values, "]") }

// FixedSizeList is a list whose length is part of its type.
type FixedSizeList struct {
	List
}

// NewFixedSizeList wraps l. It fails with ErrValueTooLarge when the length
// does not fit a 32-bit size.
func NewFixedSizeList(l List) (FixedSizeList, error) {
	if len(l.values) > math.MaxInt32 {
		return FixedSizeList{}, types.NewError(types.ErrValueTooLarge, "fixed size list", "",
			"length %d exceeds %d", len(l.values), math.MaxInt32)
	}
	return FixedSizeList{List: l}, nil
}

func (FixedSizeList) Kind() Kind { return KindFixedSizeList }

// Size returns the fixed length.
func (l FixedSizeList) Size() int32 { return int32(len(l.values)) }

// Struct is an ordered set of named values.
type Struct struct {
	fields []*types.LogicalField
	values []Scalar
}

// NewStruct pairs fields with values by position.
func NewStruct(fields []*types.LogicalField, values []Scalar) (Struct, error) {
	if len(fields) != len(values) {
		return Struct{}, types.NewError(types.ErrTypeMismatch, "struct", "",
			"%d fields but %d values", len(fields), len(values))
	}
	for i, f := range fields {
		if err := checkNullable(f, values[i:i+1]); err != nil {
			return Struct{}, err
		}
	}
	return Struct{fields: fields, values: values}, nil
}

func (Struct) Kind() Kind { return KindStruct }
func (Struct) isScalar()  {}

func (s Struct) Fields() []*types.LogicalField { return s.fields }
func (s Struct) Values() []Scalar              { return s.values }

// Get returns the value of the first field with the given name.
func (s Struct) Get(name string) (Scalar, bool) {
	for i, f := range s.fields {
		if f.Name == name {
			return s.values[i], true
		}
	}
	return nil, false
}

func (s Struct) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(s.values[i].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Scalar
	Value Scalar
}

// Map is an ordered sequence of key/value pairs. Duplicate keys are kept.
type Map struct {
	keyField   *types.LogicalField
	valueField *types.LogicalField
	entries    []MapEntry
}

// NewMap builds a map. Keys are never null.
func NewMap(keyField, valueField *types.LogicalField, entries []MapEntry) (Map, error) {
	for i, e := range entries {
		if e.Key.Kind() == KindNull {
			return Map{}, types.NewError(types.ErrTypeMismatch, "field", keyField.Name,
				"null key at entry %d", i)
		}
		if err := checkNullable(valueField, []Scalar{e.Value}); err != nil {
			return Map{}, err
		}
	}
	return Map{keyField: keyField, valueField: valueField, entries: entries}, nil
}

func (Map) Kind() Kind { return KindMap }
func (Map) isScalar()  {}

func (m Map) KeyField() *types.LogicalField   { return m.keyField }
func (m Map) ValueField() *types.LogicalField { return m.valueField }
func (m Map) Entries() []MapEntry             { return m.entries }
func (m Map) Len() int                        { return len(m.entries) }

func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Union is the value of one variant of a union, tagged by its type code.
type Union struct {
	TypeCode arrow.UnionTypeCode
	Value    Scalar
}

func (Union) Kind() Kind { return KindUnion }
func (Union) isScalar()  {}

func (u Union) String() string {
	return "{" + strconv.Itoa(int(u.TypeCode)) + "=" + u.Value.String() + "}"
}

func joinScalars(open string, values []Scalar, close string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(close)
	return sb.String()
}
