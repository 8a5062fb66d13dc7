package types

import (
	"bytes"
	"cmp"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// PartialOrdering is the result of comparing two typed scalars.
type PartialOrdering int8

const (
	OrderLess PartialOrdering = iota - 1
	OrderEqual
	OrderGreater
	OrderIncomparable
)

func (o PartialOrdering) String() string {
	switch o {
	case OrderLess:
		return "Less"
	case OrderEqual:
		return "Equal"
	case OrderGreater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

func partialFromInt(c int) PartialOrdering {
	switch {
	case c < 0:
		return OrderLess
	case c > 0:
		return OrderGreater
	default:
		return OrderEqual
	}
}

// TypedScalar pairs a physical scalar with its DFType. The scalar's data type
// always equals the DFType's storage type.
type TypedScalar struct {
	value  scalar.Scalar
	dfType DFType
}

// NewTypedScalar creates a TypedScalar, failing with ErrTypeMismatch if the
// value's data type differs from the storage type of dfType.
func NewTypedScalar(value scalar.Scalar, dfType DFType) (TypedScalar, error) {
	if value == nil || dfType.IsZero() {
		return TypedScalar{}, NewError(ErrTypeMismatch, "scalar", "", "nil value or type")
	}
	if !arrow.TypeEqual(value.DataType(), dfType.StorageType()) {
		return TypedScalar{}, NewError(ErrTypeMismatch, "scalar", value.DataType().String(),
			"data type does not match storage type %s of %s", dfType.StorageType(), dfType.LogicalType().Signature())
	}
	return TypedScalar{value: value, dfType: dfType}, nil
}

func (s TypedScalar) Value() scalar.Scalar { return s.value }
func (s TypedScalar) DFType() DFType       { return s.dfType }

// Equal reports whether both the types and the values are equal.
func (s TypedScalar) Equal(other TypedScalar) bool {
	return s.dfType.Equal(other.dfType) && scalar.Equals(s.value, other.value)
}

// Compare orders s relative to other. Values of different DFTypes are
// Incomparable, as are same-typed values without a natural order that are
// not equal. Nulls sort before non-null values.
func (s TypedScalar) Compare(other TypedScalar) PartialOrdering {
	if !s.dfType.Equal(other.dfType) {
		return OrderIncomparable
	}
	c, ok := compareScalars(s.value, other.value)
	if !ok {
		return OrderIncomparable
	}
	return partialFromInt(c)
}

func (s TypedScalar) String() string {
	return fmt.Sprintf("%s: %s", s.value, s.dfType.LogicalType().Signature())
}

func compareScalars(a, b scalar.Scalar) (int, bool) {
	switch {
	case !a.IsValid() && !b.IsValid():
		return 0, true
	case !a.IsValid():
		return -1, true
	case !b.IsValid():
		return 1, true
	}

	switch av := a.(type) {
	case *scalar.Boolean:
		bv, ok := b.(*scalar.Boolean)
		if !ok {
			return 0, false
		}
		switch {
		case av.Value == bv.Value:
			return 0, true
		case av.Value:
			return 1, true
		default:
			return -1, true
		}
	case *scalar.Int8:
		return compareOrdered(av.Value, b, func(s *scalar.Int8) int8 { return s.Value })
	case *scalar.Int16:
		return compareOrdered(av.Value, b, func(s *scalar.Int16) int16 { return s.Value })
	case *scalar.Int32:
		return compareOrdered(av.Value, b, func(s *scalar.Int32) int32 { return s.Value })
	case *scalar.Int64:
		return compareOrdered(av.Value, b, func(s *scalar.Int64) int64 { return s.Value })
	case *scalar.Uint8:
		return compareOrdered(av.Value, b, func(s *scalar.Uint8) uint8 { return s.Value })
	case *scalar.Uint16:
		return compareOrdered(av.Value, b, func(s *scalar.Uint16) uint16 { return s.Value })
	case *scalar.Uint32:
		return compareOrdered(av.Value, b, func(s *scalar.Uint32) uint32 { return s.Value })
	case *scalar.Uint64:
		return compareOrdered(av.Value, b, func(s *scalar.Uint64) uint64 { return s.Value })
	case *scalar.Float16:
		bv, ok := b.(*scalar.Float16)
		if !ok {
			return 0, false
		}
		return compareFloats(float64(av.Value.Float32()), float64(bv.Value.Float32()))
	case *scalar.Float32:
		bv, ok := b.(*scalar.Float32)
		if !ok {
			return 0, false
		}
		return compareFloats(float64(av.Value), float64(bv.Value))
	case *scalar.Float64:
		bv, ok := b.(*scalar.Float64)
		if !ok {
			return 0, false
		}
		return compareFloats(av.Value, bv.Value)
	case *scalar.Decimal128:
		bv, ok := b.(*scalar.Decimal128)
		if !ok {
			return 0, false
		}
		return av.Value.Cmp(bv.Value), true
	case *scalar.Decimal256:
		bv, ok := b.(*scalar.Decimal256)
		if !ok {
			return 0, false
		}
		return av.Value.Cmp(bv.Value), true
	case *scalar.Date32:
		return compareOrdered(av.Value, b, func(s *scalar.Date32) arrow.Date32 { return s.Value })
	case *scalar.Date64:
		return compareOrdered(av.Value, b, func(s *scalar.Date64) arrow.Date64 { return s.Value })
	case *scalar.Time32:
		return compareOrdered(av.Value, b, func(s *scalar.Time32) arrow.Time32 { return s.Value })
	case *scalar.Time64:
		return compareOrdered(av.Value, b, func(s *scalar.Time64) arrow.Time64 { return s.Value })
	case *scalar.Timestamp:
		return compareOrdered(av.Value, b, func(s *scalar.Timestamp) arrow.Timestamp { return s.Value })
	case *scalar.Duration:
		return compareOrdered(av.Value, b, func(s *scalar.Duration) arrow.Duration { return s.Value })
	case *scalar.MonthInterval:
		return compareOrdered(av.Value, b, func(s *scalar.MonthInterval) arrow.MonthInterval { return s.Value })
	case *scalar.DayTimeInterval:
		bv, ok := b.(*scalar.DayTimeInterval)
		if !ok {
			return 0, false
		}
		return cmp.Or(
			cmp.Compare(av.Value.Days, bv.Value.Days),
			cmp.Compare(av.Value.Milliseconds, bv.Value.Milliseconds),
		), true
	case *scalar.MonthDayNanoInterval:
		bv, ok := b.(*scalar.MonthDayNanoInterval)
		if !ok {
			return 0, false
		}
		return cmp.Or(
			cmp.Compare(av.Value.Months, bv.Value.Months),
			cmp.Compare(av.Value.Days, bv.Value.Days),
			cmp.Compare(av.Value.Nanoseconds, bv.Value.Nanoseconds),
		), true
	case scalar.BinaryScalar:
		bv, ok := b.(scalar.BinaryScalar)
		if !ok {
			return 0, false
		}
		return bytes.Compare(av.Data(), bv.Data()), true
	}

	if scalar.Equals(a, b) {
		return 0, true
	}
	return 0, false
}

func compareOrdered[T cmp.Ordered, S any](av T, b scalar.Scalar, get func(S) T) (int, bool) {
	bv, ok := b.(S)
	if !ok {
		return 0, false
	}
	return cmp.Compare(av, get(bv)), true
}

// compareFloats follows IEEE partial order: NaN is unordered.
func compareFloats(a, b float64) (int, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	return cmp.Compare(a, b), true
}
