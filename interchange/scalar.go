package interchange

import (
	"fmt"
	"math"
	"math/big"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/float16"

	"github.com/hugr-lab/datatypes/logical"
	"github.com/hugr-lab/datatypes/types"
)

var scalarKinds = map[string]logical.Kind{}

func init() {
	for k := logical.KindNull; k <= logical.KindUnion; k++ {
		scalarKinds[k.String()] = k
	}
}

func scalarToWire(v logical.Scalar) (wireScalar, error) {
	if v == nil {
		return wireScalar{}, types.NewError(types.ErrTypeMismatch, "logical scalar", "", "nil scalar")
	}
	w := wireScalar{Kind: v.Kind().String()}
	switch v := v.(type) {
	case logical.Null:
	case logical.Boolean:
		w.Bool = bool(v)
	case logical.Int8:
		w.Int = int64(v)
	case logical.Int16:
		w.Int = int64(v)
	case logical.Int32:
		w.Int = int64(v)
	case logical.Int64:
		w.Int = int64(v)
	case logical.UInt8:
		w.Uint = uint64(v)
	case logical.UInt16:
		w.Uint = uint64(v)
	case logical.UInt32:
		w.Uint = uint64(v)
	case logical.UInt64:
		w.Uint = uint64(v)
	case logical.Float16:
		w.Uint = uint64(float16.Num(v).Uint16())
	case logical.Float32:
		w.Uint = uint64(math.Float32bits(float32(v)))
	case logical.Float64:
		w.Uint = math.Float64bits(float64(v))
	case logical.String:
		w.Str = string(v)
	case logical.Binary:
		w.Bytes = v
	case logical.FixedSizeBinary:
		w.Bytes = v.Bytes()
	case logical.Decimal:
		w.Str = v.Unscaled().String()
		w.Scale = v.Scale()
	case logical.Date:
		w.Int = int64(v)
	case logical.Time:
		w.Unit, w.Int = int8(v.Unit), v.Value
	case logical.Timestamp:
		w.Unit, w.Int, w.TimeZone = int8(v.Unit), v.Value, v.TimeZone
	case logical.Duration:
		w.Unit, w.Int = int8(v.Unit), v.Value
	case logical.YearMonthInterval:
		w.Interval = int8(types.IntervalYearMonth)
		w.Months = int32(v)
	case logical.DayTimeInterval:
		w.Interval = int8(types.IntervalDayTime)
		w.Days, w.Int = v.Days, int64(v.Milliseconds)
	case logical.MonthDayNanoInterval:
		w.Interval = int8(types.IntervalMonthDayNano)
		w.Months, w.Days, w.Int = v.Months, v.Days, v.Nanoseconds
	case logical.List:
		return listToWire(w, v.Field(), v.Values())
	case logical.FixedSizeList:
		return listToWire(w, v.Field(), v.Values())
	case logical.Struct:
		for _, f := range v.Fields() {
			w.Fields = append(w.Fields, fieldToWire(f))
		}
		for _, value := range v.Values() {
			child, err := scalarToWire(value)
			if err != nil {
				return wireScalar{}, err
			}
			w.Values = append(w.Values, child)
		}
	case logical.Map:
		w.Fields = []wireField{fieldToWire(v.KeyField()), fieldToWire(v.ValueField())}
		for _, e := range v.Entries() {
			key, err := scalarToWire(e.Key)
			if err != nil {
				return wireScalar{}, err
			}
			value, err := scalarToWire(e.Value)
			if err != nil {
				return wireScalar{}, err
			}
			w.Values = append(w.Values, key, value)
		}
	case logical.Union:
		child, err := scalarToWire(v.Value)
		if err != nil {
			return wireScalar{}, err
		}
		w.Code = int8(v.TypeCode)
		w.Values = []wireScalar{child}
	default:
		return wireScalar{}, types.NewError(types.ErrUnimplemented, "logical scalar", v.Kind().String(), "no wire form")
	}
	return w, nil
}

func listToWire(w wireScalar, field *types.LogicalField, values []logical.Scalar) (wireScalar, error) {
	w.Fields = []wireField{fieldToWire(field)}
	for _, value := range values {
		child, err := scalarToWire(value)
		if err != nil {
			return wireScalar{}, err
		}
		w.Values = append(w.Values, child)
	}
	return w, nil
}

func (c *Codec) scalarFromWire(w wireScalar) (logical.Scalar, error) {
	kind, ok := scalarKinds[w.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scalar kind %q", ErrMalformed, w.Kind)
	}

	switch kind {
	case logical.KindNull:
		return logical.Null{}, nil
	case logical.KindBoolean:
		return logical.Boolean(w.Bool), nil
	case logical.KindInt8:
		return logical.Int8(w.Int), nil
	case logical.KindInt16:
		return logical.Int16(w.Int), nil
	case logical.KindInt32:
		return logical.Int32(w.Int), nil
	case logical.KindInt64:
		return logical.Int64(w.Int), nil
	case logical.KindUInt8:
		return logical.UInt8(w.Uint), nil
	case logical.KindUInt16:
		return logical.UInt16(w.Uint), nil
	case logical.KindUInt32:
		return logical.UInt32(w.Uint), nil
	case logical.KindUInt64:
		return logical.UInt64(w.Uint), nil
	case logical.KindFloat16:
		return logical.Float16(float16.FromBits(uint16(w.Uint))), nil
	case logical.KindFloat32:
		return logical.Float32(math.Float32frombits(uint32(w.Uint))), nil
	case logical.KindFloat64:
		return logical.Float64(math.Float64frombits(w.Uint)), nil
	case logical.KindString:
		return logical.String(w.Str), nil
	case logical.KindBinary:
		return logical.Binary(w.Bytes), nil
	case logical.KindFixedSizeBinary:
		return asScalar(logical.NewFixedSizeBinary(w.Bytes))
	case logical.KindDecimal:
		unscaled, ok := new(big.Int).SetString(w.Str, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid decimal %q", ErrMalformed, w.Str)
		}
		return asScalar(logical.NewDecimal(unscaled, w.Scale))
	case logical.KindDate:
		return logical.Date(w.Int), nil
	case logical.KindTime:
		return logical.Time{Unit: arrow.TimeUnit(w.Unit), Value: w.Int}, nil
	case logical.KindTimestamp:
		return logical.Timestamp{Unit: arrow.TimeUnit(w.Unit), TimeZone: w.TimeZone, Value: w.Int}, nil
	case logical.KindDuration:
		return logical.Duration{Unit: arrow.TimeUnit(w.Unit), Value: w.Int}, nil
	case logical.KindInterval:
		switch types.IntervalUnit(w.Interval) {
		case types.IntervalYearMonth:
			return logical.YearMonthInterval(w.Months), nil
		case types.IntervalDayTime:
			return logical.DayTimeInterval{Days: w.Days, Milliseconds: int32(w.Int)}, nil
		case types.IntervalMonthDayNano:
			return logical.MonthDayNanoInterval{Months: w.Months, Days: w.Days, Nanoseconds: w.Int}, nil
		}
		return nil, fmt.Errorf("%w: unknown interval layout %d", ErrMalformed, w.Interval)
	}

	fields, err := c.fieldsFromWire(w.Fields)
	if err != nil {
		return nil, err
	}
	values := make([]logical.Scalar, 0, len(w.Values))
	for _, child := range w.Values {
		v, err := c.scalarFromWire(child)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	switch kind {
	case logical.KindList, logical.KindFixedSizeList:
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: list with %d element fields", ErrMalformed, len(fields))
		}
		l, err := logical.NewList(fields[0], values)
		if err != nil {
			return nil, err
		}
		if kind == logical.KindList {
			return l, nil
		}
		return asScalar(logical.NewFixedSizeList(l))
	case logical.KindStruct:
		return asScalar(logical.NewStruct(fields, values))
	case logical.KindMap:
		if len(fields) != 2 || len(values)%2 != 0 {
			return nil, fmt.Errorf("%w: map with %d fields and %d values", ErrMalformed, len(fields), len(values))
		}
		entries := make([]logical.MapEntry, 0, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			entries = append(entries, logical.MapEntry{Key: values[i], Value: values[i+1]})
		}
		return asScalar(logical.NewMap(fields[0], fields[1], entries))
	default: // union
		if len(values) != 1 {
			return nil, fmt.Errorf("%w: union with %d values", ErrMalformed, len(values))
		}
		return logical.Union{TypeCode: arrow.UnionTypeCode(w.Code), Value: values[0]}, nil
	}
}

// asScalar drops the zero value of a failed constructor.
func asScalar[T logical.Scalar](v T, err error) (logical.Scalar, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
