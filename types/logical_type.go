// Package types defines the logical type model layered over Arrow storage
// types: native types, type signatures, the LogicalType capability and its
// optional extension points (casting, ordering, pretty printing), DFType and
// typed scalars.
//
// Logical types are shared by reference and treated as immutable once
// published, so they are safe for concurrent use.
package types

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// LogicalType is implemented by every logical type: native types, canonical
// extension types and user-defined extension types.
type LogicalType interface {
	// Native returns the physical-compatible shape of the type.
	Native() *NativeType

	// Signature returns the identity of the type.
	Signature() TypeSignature
}

// DefaultCaster is implemented by logical types that define how values of
// another storage type are implicitly cast into them.
type DefaultCaster interface {
	DefaultCastFor(origin arrow.DataType) (arrow.DataType, error)
}

// PlanningInformer is implemented by logical types that carry planning
// information, e.g. a custom sort order.
type PlanningInformer interface {
	PlanningInformation() PlanningInformation
}

// PrettyPrintable is implemented by logical types that render values with
// a dedicated printer.
type PrettyPrintable interface {
	PrettyPrinter() ValuePrettyPrinter
}

// PlanningInformation is what the planner needs to know about a type.
type PlanningInformation struct {
	Ordering SortOrdering
}

// DefaultCastFor returns lt's implicit cast target for origin.
// Types that do not implement DefaultCaster fail with ErrUnimplemented.
func DefaultCastFor(lt LogicalType, origin arrow.DataType) (arrow.DataType, error) {
	if c, ok := lt.(DefaultCaster); ok {
		return c.DefaultCastFor(origin)
	}
	return nil, NewError(ErrUnimplemented, "logical type", lt.Signature().String(), "default cast")
}

// PlanningInformationOf returns lt's planning information, defaulting to the
// natural ordering of the storage type.
func PlanningInformationOf(lt LogicalType) PlanningInformation {
	if p, ok := lt.(PlanningInformer); ok {
		return p.PlanningInformation()
	}
	return PlanningInformation{Ordering: DefaultOrdering()}
}

// PrettyPrinterOf returns lt's printer, defaulting to DefaultValuePrettyPrinter.
func PrettyPrinterOf(lt LogicalType) ValuePrettyPrinter {
	if p, ok := lt.(PrettyPrintable); ok {
		if printer := p.PrettyPrinter(); printer != nil {
			return printer
		}
	}
	return DefaultValuePrettyPrinter{}
}

// TypesEqual reports whether a and b are the same logical type, i.e. have
// equal signatures.
func TypesEqual(a, b LogicalType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Signature().Equal(b.Signature())
}

// ExtensionName returns the extension name of lt, if it is an extension type.
func ExtensionName(lt LogicalType) (string, bool) {
	sig := lt.Signature()
	if sig.IsNative() {
		return "", false
	}
	return sig.Name(), true
}
