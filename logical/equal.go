package logical

import (
	"bytes"
	"math"
)

// Equal reports whether a and b are the same logical value. Fields of nested
// values are compared too. Floats compare by bit pattern so NaN equals itself.
func Equal(a, b Scalar) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Binary:
		return bytes.Equal(av, b.(Binary))
	case FixedSizeBinary:
		return bytes.Equal(av.data, b.(FixedSizeBinary).data)
	case Float32:
		return math.Float32bits(float32(av)) == math.Float32bits(float32(b.(Float32)))
	case Float64:
		return math.Float64bits(float64(av)) == math.Float64bits(float64(b.(Float64)))
	case Decimal:
		bv := b.(Decimal)
		return av.scale == bv.scale && av.value.Equal(bv.value)
	case List:
		bv := b.(List)
		return av.field.Equal(bv.field) && equalSlices(av.values, bv.values)
	case FixedSizeList:
		return Equal(av.List, b.(FixedSizeList).List)
	case Struct:
		bv := b.(Struct)
		if len(av.fields) != len(bv.fields) {
			return false
		}
		for i := range av.fields {
			if !av.fields[i].Equal(bv.fields[i]) {
				return false
			}
		}
		return equalSlices(av.values, bv.values)
	case Map:
		bv := b.(Map)
		if !av.keyField.Equal(bv.keyField) || !av.valueField.Equal(bv.valueField) ||
			len(av.entries) != len(bv.entries) {
			return false
		}
		for i, e := range av.entries {
			if !Equal(e.Key, bv.entries[i].Key) || !Equal(e.Value, bv.entries[i].Value) {
				return false
			}
		}
		return true
	case Union:
		bv := b.(Union)
		return av.TypeCode == bv.TypeCode && Equal(av.Value, bv.Value)
	}
	return a == b
}

func equalSlices(a, b []Scalar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
