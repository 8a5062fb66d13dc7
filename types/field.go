package types

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// LogicalField is a named, logically typed member of a nested type.
// Fields are shared by pointer and must not be modified once published.
type LogicalField struct {
	Name     string
	Type     LogicalType
	Nullable bool
}

// NewLogicalField creates a LogicalField.
func NewLogicalField(name string, lt LogicalType, nullable bool) *LogicalField {
	return &LogicalField{Name: name, Type: lt, Nullable: nullable}
}

// Equal reports whether two fields have the same name, nullability and
// logical type.
func (f *LogicalField) Equal(other *LogicalField) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	return f.Name == other.Name && f.Nullable == other.Nullable && TypesEqual(f.Type, other.Type)
}

func (f *LogicalField) String() string {
	s := f.Name + ": " + f.Type.Signature().String()
	if !f.Nullable {
		s += " not null"
	}
	return s
}

// defaultArrowField materialises f with the default storage of its native type.
// Extension types keep their name in the field metadata.
func (f *LogicalField) defaultArrowField() arrow.Field {
	af := arrow.Field{
		Name:     f.Name,
		Type:     f.Type.Native().DefaultStorageType(),
		Nullable: f.Nullable,
	}
	if name, ok := ExtensionName(f.Type); ok {
		af.Metadata = arrow.NewMetadata([]string{ExtensionNameKey}, []string{name})
	}
	return af
}
