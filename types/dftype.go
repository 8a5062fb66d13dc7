package types

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/zeebo/xxh3"
)

// ExtensionNameKey is the field metadata key naming an Arrow extension type.
const ExtensionNameKey = "ARROW:extension:name"

// DFType pairs a storage type with the logical type of its values.
type DFType struct {
	storage arrow.DataType
	logical LogicalType
}

// NewDFType creates a DFType, failing with ErrTypeMismatch if storage is not
// representable by logical's native type.
func NewDFType(storage arrow.DataType, logical LogicalType) (DFType, error) {
	if storage == nil {
		return DFType{}, NewError(ErrTypeMismatch, "storage type", "", "nil data type")
	}
	if logical == nil {
		return DFType{}, NewError(ErrTypeMismatch, "logical type", "", "nil logical type")
	}
	if !logical.Native().Represents(storage) {
		return DFType{}, NewError(ErrTypeMismatch, "logical type", logical.Signature().String(),
			"storage type %s is not representable by native type %s", storage, logical.Native())
	}
	return DFType{storage: storage, logical: logical}, nil
}

// NewDFTypeFromStorage creates a DFType whose logical type is the native
// type of storage.
func NewDFTypeFromStorage(storage arrow.DataType) DFType {
	return DFType{storage: storage, logical: NativeTypeOf(storage)}
}

// NewDFTypeWithFallback creates a DFType without a registry. If the storage
// type or the metadata names an extension type, the logical type is an
// UnknownExtensionType of that name; otherwise it is the native type.
func NewDFTypeWithFallback(storage arrow.DataType, metadata arrow.Metadata) DFType {
	if name, ok := ExtensionNameOf(storage, metadata); ok {
		return DFType{
			storage: storage,
			logical: NewUnknownExtensionType(name, NativeTypeOf(storage)),
		}
	}
	return NewDFTypeFromStorage(storage)
}

// ExtensionNameOf returns the extension name carried by an Arrow extension
// data type or, failing that, by the field metadata.
func ExtensionNameOf(storage arrow.DataType, metadata arrow.Metadata) (string, bool) {
	if ext, ok := storage.(arrow.ExtensionType); ok {
		return ext.ExtensionName(), true
	}
	if idx := metadata.FindKey(ExtensionNameKey); idx >= 0 {
		if name := metadata.Values()[idx]; name != "" {
			return name, true
		}
	}
	return "", false
}

func (t DFType) StorageType() arrow.DataType { return t.storage }
func (t DFType) LogicalType() LogicalType    { return t.logical }

// IsZero reports whether t was not constructed.
func (t DFType) IsZero() bool { return t.storage == nil }

// Equal reports whether both the storage and the logical types are equal.
func (t DFType) Equal(other DFType) bool {
	if t.IsZero() || other.IsZero() {
		return t.IsZero() && other.IsZero()
	}
	return arrow.TypeEqual(t.storage, other.storage) && TypesEqual(t.logical, other.logical)
}

// Hash returns a hash consistent with Equal.
func (t DFType) Hash() uint64 {
	if t.IsZero() {
		return 0
	}
	return xxh3.HashString(t.storage.String() + "\x00" + t.logical.Signature().String())
}

func (t DFType) String() string {
	if t.IsZero() {
		return "DFType(<nil>)"
	}
	return fmt.Sprintf("DFType(%s, %s)", t.storage, t.logical.Signature())
}
