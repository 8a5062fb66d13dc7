// Package ordering builds row comparators over Arrow arrays, honouring the
// custom orderings of logical types.
package ordering

import (
	"bytes"
	"cmp"
	"math"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/datatypes/types"
)

// NewComparator returns the comparator for arr typed as lt. Types with a
// custom ordering provide it; all others use Natural.
func NewComparator(lt types.LogicalType, arr arrow.Array, opts types.SortOptions) (types.Comparator, error) {
	if info := types.PlanningInformationOf(lt); !info.Ordering.IsDefault() {
		return info.Ordering.Custom().Comparator(arr, opts)
	}
	return Natural(arr, opts)
}

// Natural returns a comparator using the natural order of arr's values.
// Nulls are placed by opts.NullsFirst independently of opts.Descending.
// Floats use the IEEE 754 total order, so NaN sorts after +Inf.
func Natural(arr arrow.Array, opts types.SortOptions) (types.Comparator, error) {
	isNull, values, err := valueComparator(arr)
	if err != nil {
		return nil, err
	}
	nullOrder := 1
	if opts.NullsFirst {
		nullOrder = -1
	}
	return func(i, j int) int {
		ni, nj := isNull(i), isNull(j)
		switch {
		case ni && nj:
			return 0
		case ni:
			return nullOrder
		case nj:
			return -nullOrder
		}
		c := values(i, j)
		if opts.Descending {
			return -c
		}
		return c
	}, nil
}

// Lexicographic combines comparators: the first non-zero result wins.
func Lexicographic(cmps ...types.Comparator) types.Comparator {
	return func(i, j int) int {
		for _, c := range cmps {
			if r := c(i, j); r != 0 {
				return r
			}
		}
		return 0
	}
}

// SortIndices returns the row indices 0..n-1 stably sorted by c.
func SortIndices(n int, c types.Comparator) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, c)
	return idx
}

// Sort sorts the rows of arr typed as lt and returns their order.
func Sort(lt types.LogicalType, arr arrow.Array, opts types.SortOptions) ([]int, error) {
	c, err := NewComparator(lt, arr, opts)
	if err != nil {
		return nil, err
	}
	return SortIndices(arr.Len(), c), nil
}

// CompareFloat64 orders floats by the IEEE 754 totalOrder predicate:
// -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
func CompareFloat64(a, b float64) int {
	return cmp.Compare(totalOrderKey(a), totalOrderKey(b))
}

func totalOrderKey(f float64) int64 {
	x := int64(math.Float64bits(f))
	return x ^ int64(uint64(x>>63)>>1)
}

type valuer[T any] interface {
	Value(int) T
}

func ordered[T cmp.Ordered](a valuer[T]) func(i, j int) int {
	return func(i, j int) int { return cmp.Compare(a.Value(i), a.Value(j)) }
}

func floats[T float32 | float64](a valuer[T]) func(i, j int) int {
	return func(i, j int) int { return CompareFloat64(float64(a.Value(i)), float64(a.Value(j))) }
}

func byteStrings(a valuer[[]byte]) func(i, j int) int {
	return func(i, j int) int { return bytes.Compare(a.Value(i), a.Value(j)) }
}

// valueComparator returns a null test and an ascending comparator of
// non-null values for arr.
func valueComparator(arr arrow.Array) (func(int) bool, func(i, j int) int, error) {
	var values func(i, j int) int
	switch a := arr.(type) {
	case *array.Null:
		values = func(int, int) int { return 0 }
	case *array.Boolean:
		values = func(i, j int) int {
			vi, vj := a.Value(i), a.Value(j)
			switch {
			case vi == vj:
				return 0
			case vi:
				return 1
			default:
				return -1
			}
		}
	case *array.Int8:
		values = ordered[int8](a)
	case *array.Int16:
		values = ordered[int16](a)
	case *array.Int32:
		values = ordered[int32](a)
	case *array.Int64:
		values = ordered[int64](a)
	case *array.Uint8:
		values = ordered[uint8](a)
	case *array.Uint16:
		values = ordered[uint16](a)
	case *array.Uint32:
		values = ordered[uint32](a)
	case *array.Uint64:
		values = ordered[uint64](a)
	case *array.Float16:
		values = func(i, j int) int {
			return CompareFloat64(float64(a.Value(i).Float32()), float64(a.Value(j).Float32()))
		}
	case *array.Float32:
		values = floats[float32](a)
	case *array.Float64:
		values = floats[float64](a)
	case *array.String:
		values = ordered[string](a)
	case *array.LargeString:
		values = ordered[string](a)
	case *array.StringView:
		values = ordered[string](a)
	case *array.Binary:
		values = byteStrings(a)
	case *array.LargeBinary:
		values = byteStrings(a)
	case *array.BinaryView:
		values = byteStrings(a)
	case *array.FixedSizeBinary:
		values = byteStrings(a)
	case *array.Date32:
		values = ordered[arrow.Date32](a)
	case *array.Date64:
		values = ordered[arrow.Date64](a)
	case *array.Time32:
		values = ordered[arrow.Time32](a)
	case *array.Time64:
		values = ordered[arrow.Time64](a)
	case *array.Timestamp:
		values = ordered[arrow.Timestamp](a)
	case *array.Duration:
		values = ordered[arrow.Duration](a)
	case *array.MonthInterval:
		values = ordered[arrow.MonthInterval](a)
	case *array.DayTimeInterval:
		values = func(i, j int) int {
			vi, vj := a.Value(i), a.Value(j)
			return cmp.Or(cmp.Compare(vi.Days, vj.Days), cmp.Compare(vi.Milliseconds, vj.Milliseconds))
		}
	case *array.MonthDayNanoInterval:
		values = func(i, j int) int {
			vi, vj := a.Value(i), a.Value(j)
			return cmp.Or(
				cmp.Compare(vi.Months, vj.Months),
				cmp.Compare(vi.Days, vj.Days),
				cmp.Compare(vi.Nanoseconds, vj.Nanoseconds),
			)
		}
	case *array.Decimal128:
		values = func(i, j int) int { return a.Value(i).Cmp(a.Value(j)) }
	case *array.Decimal256:
		values = func(i, j int) int { return a.Value(i).Cmp(a.Value(j)) }
	case *array.Dictionary:
		dictNull, dictValues, err := valueComparator(a.Dictionary())
		if err != nil {
			return nil, nil, err
		}
		isNull := func(i int) bool { return a.IsNull(i) || dictNull(a.GetValueIndex(i)) }
		return isNull, func(i, j int) int { return dictValues(a.GetValueIndex(i), a.GetValueIndex(j)) }, nil
	case *array.RunEndEncoded:
		valuesNull, runValues, err := valueComparator(a.Values())
		if err != nil {
			return nil, nil, err
		}
		isNull := func(i int) bool { return valuesNull(a.GetPhysicalIndex(i)) }
		return isNull, func(i, j int) int { return runValues(a.GetPhysicalIndex(i), a.GetPhysicalIndex(j)) }, nil
	case array.ExtensionArray:
		return valueComparator(a.Storage())
	default:
		return nil, nil, types.NewError(types.ErrUnimplemented, "natural ordering", arr.DataType().String(),
			"no natural order for arrays of this type")
	}
	return arr.IsNull, values, nil
}
