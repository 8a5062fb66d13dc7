package types

import (
	"strings"

	"github.com/zeebo/xxh3"
)

// TypeSignature identifies a logical type: either a native type or a named
// extension with parameters. Two logical types are the same type iff their
// signatures are equal. The extension name is the registry key.
type TypeSignature struct {
	native *NativeType
	name   string
	params []TypeSignature
}

// NativeSignature returns the signature of a native type.
func NativeSignature(n *NativeType) TypeSignature {
	return TypeSignature{native: n}
}

// ExtensionSignature returns the signature of an extension type.
func ExtensionSignature(name string, params ...TypeSignature) TypeSignature {
	return TypeSignature{name: name, params: append([]TypeSignature(nil), params...)}
}

// IsNative reports whether s identifies a native type.
func (s TypeSignature) IsNative() bool { return s.native != nil }

// Native returns the native type, or nil for extension signatures.
func (s TypeSignature) Native() *NativeType { return s.native }

// Name returns the extension name, or "" for native signatures.
func (s TypeSignature) Name() string { return s.name }

// Parameters returns a copy of the extension parameters.
func (s TypeSignature) Parameters() []TypeSignature {
	return append([]TypeSignature(nil), s.params...)
}

// Equal compares signatures structurally.
func (s TypeSignature) Equal(other TypeSignature) bool {
	if s.IsNative() != other.IsNative() {
		return false
	}
	if s.IsNative() {
		return s.native.Equal(other.native)
	}
	if s.name != other.name || len(s.params) != len(other.params) {
		return false
	}
	for i := range s.params {
		if !s.params[i].Equal(other.params[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (s TypeSignature) Hash() uint64 {
	return xxh3.HashString(s.String())
}

func (s TypeSignature) String() string {
	if s.IsNative() {
		return s.native.String()
	}
	if len(s.params) == 0 {
		return s.name
	}
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.String()
	}
	return s.name + "<" + strings.Join(parts, ", ") + ">"
}
