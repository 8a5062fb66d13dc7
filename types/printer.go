package types

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/google/uuid"
)

// ValuePrettyPrinter renders values of a logical type as text.
type ValuePrettyPrinter interface {
	PrettyPrintScalar(value scalar.Scalar) (string, error)
}

// ArrayPrettyPrinter is implemented by printers that render array cells
// without extracting a scalar first.
type ArrayPrettyPrinter interface {
	PrettyPrintArray(arr arrow.Array, index int) (string, error)
}

// PrettyPrintArray renders arr[index] with p. Unless p implements
// ArrayPrettyPrinter the cell is extracted as a scalar and passed to
// PrettyPrintScalar.
func PrettyPrintArray(p ValuePrettyPrinter, arr arrow.Array, index int) (string, error) {
	if ap, ok := p.(ArrayPrettyPrinter); ok {
		return ap.PrettyPrintArray(arr, index)
	}
	if index < 0 || index >= arr.Len() {
		return "", NewError(ErrNotFound, "row", strconv.Itoa(index), "out of range for array of length %d", arr.Len())
	}
	value, err := scalar.GetScalar(arr, index)
	if err != nil {
		return "", WrapError(ErrInternal, "row", strconv.Itoa(index), err)
	}
	if r, ok := value.(scalar.Releasable); ok {
		defer r.Release()
	}
	return p.PrettyPrintScalar(value)
}

// DefaultValuePrettyPrinter renders values using their standard textual form.
type DefaultValuePrettyPrinter struct{}

func (DefaultValuePrettyPrinter) PrettyPrintScalar(value scalar.Scalar) (string, error) {
	return value.String(), nil
}

// UuidPrettyPrinter renders 16-byte payloads as RFC 4122 text.
type UuidPrettyPrinter struct{}

func (UuidPrettyPrinter) PrettyPrintScalar(value scalar.Scalar) (string, error) {
	if !value.IsValid() {
		return "null", nil
	}
	payload, err := BinaryPayload(value)
	if err != nil {
		return "", err
	}
	if len(payload) != 16 {
		return "", NewError(ErrTypeMismatch, "logical type", UuidExtensionName,
			"payload must be 16 bytes, got %d", len(payload))
	}
	id, err := uuid.FromBytes(payload)
	if err != nil {
		return "", WrapError(ErrTypeMismatch, "logical type", UuidExtensionName, err)
	}
	return id.String(), nil
}

// BinaryPayload returns the bytes of a binary-like scalar, unwrapping
// extension scalars.
func BinaryPayload(value scalar.Scalar) ([]byte, error) {
	switch s := value.(type) {
	case *scalar.Extension:
		return BinaryPayload(s.Value)
	case scalar.BinaryScalar:
		return s.Data(), nil
	}
	return nil, NewError(ErrTypeMismatch, "scalar", value.DataType().String(), "expected a binary payload")
}
