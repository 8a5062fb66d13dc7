package types

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// UuidExtensionName is the canonical Arrow extension name of UUIDs.
const UuidExtensionName = "arrow.uuid"

var uuidNative = NewFixedSizeBinary(16)

// UuidType is the canonical UUID extension type, stored as
// FixedSizeBinary(16).
type UuidType struct{}

// NewUuidType creates a UuidType.
func NewUuidType() *UuidType { return &UuidType{} }

func (*UuidType) Native() *NativeType { return uuidNative }

func (*UuidType) Signature() TypeSignature { return ExtensionSignature(UuidExtensionName) }

// DefaultCastFor accepts 16-byte fixed-size binaries as they are and casts
// strings to FixedSizeBinary(16).
func (*UuidType) DefaultCastFor(origin arrow.DataType) (arrow.DataType, error) {
	if uuidNative.Represents(origin) {
		return origin, nil
	}
	switch origin.ID() {
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW, arrow.NULL:
		return uuidNative.DefaultStorageType(), nil
	}
	return nil, NewError(ErrTypeMismatch, "logical type", UuidExtensionName, "no default cast from %s", origin)
}

func (*UuidType) PrettyPrinter() ValuePrettyPrinter { return UuidPrettyPrinter{} }

func (*UuidType) String() string { return UuidExtensionName }

// UnknownExtensionType stands in for an extension type named in schema
// metadata that the engine does not know. It keeps the name and the native
// shape so storage can still be reasoned about.
type UnknownExtensionType struct {
	name   string
	native *NativeType
}

// NewUnknownExtensionType creates an UnknownExtensionType.
func NewUnknownExtensionType(name string, native *NativeType) *UnknownExtensionType {
	return &UnknownExtensionType{name: name, native: native}
}

func (u *UnknownExtensionType) Name() string             { return u.name }
func (u *UnknownExtensionType) Native() *NativeType      { return u.native }
func (u *UnknownExtensionType) Signature() TypeSignature { return ExtensionSignature(u.name) }
func (u *UnknownExtensionType) String() string           { return "unknown<" + u.name + ">" }
