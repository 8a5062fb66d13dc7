// Package logical holds the canonical in-memory representation of values
// (Scalar) and the conversion from Arrow physical scalars into it.
//
// Physical encodings that mean the same thing collapse into one logical
// variant: the three string encodings all become String, dictionary
// encoding disappears, Date64 becomes a millisecond Timestamp. Logical
// scalars are immutable once constructed.
package logical

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/float16"
)

// Kind identifies the variant of a Scalar.
type Kind int8

const (
	KindNull Kind = iota
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat16
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindFixedSizeBinary
	KindDecimal
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindDuration
	KindList
	KindFixedSizeList
	KindStruct
	KindMap
	KindUnion
)

var kindNames = [...]string{
	KindNull:            "Null",
	KindBoolean:         "Boolean",
	KindInt8:            "Int8",
	KindInt16:           "Int16",
	KindInt32:           "Int32",
	KindInt64:           "Int64",
	KindUInt8:           "UInt8",
	KindUInt16:          "UInt16",
	KindUInt32:          "UInt32",
	KindUInt64:          "UInt64",
	KindFloat16:         "Float16",
	KindFloat32:         "Float32",
	KindFloat64:         "Float64",
	KindString:          "String",
	KindBinary:          "Binary",
	KindFixedSizeBinary: "FixedSizeBinary",
	KindDecimal:         "Decimal",
	KindDate:            "Date",
	KindTime:            "Time",
	KindTimestamp:       "Timestamp",
	KindInterval:        "Interval",
	KindDuration:        "Duration",
	KindList:            "List",
	KindFixedSizeList:   "FixedSizeList",
	KindStruct:          "Struct",
	KindMap:             "Map",
	KindUnion:           "Union",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Scalar is a logical value. The concrete types in this package are the
// only implementations.
type Scalar interface {
	Kind() Kind
	String() string
	isScalar()
}

type (
	// Null is the absent value of any type.
	Null    struct{}
	Boolean bool
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	UInt8   uint8
	UInt16  uint16
	UInt32  uint32
	UInt64  uint64
	Float16 float16.Num
	Float32 float32
	Float64 float64
	String  string
	Binary  []byte
	// Date is days since the UNIX epoch.
	Date int32
)

func (Null) Kind() Kind    { return KindNull }
func (Boolean) Kind() Kind { return KindBoolean }
func (Int8) Kind() Kind    { return KindInt8 }
func (Int16) Kind() Kind   { return KindInt16 }
func (Int32) Kind() Kind   { return KindInt32 }
func (Int64) Kind() Kind   { return KindInt64 }
func (UInt8) Kind() Kind   { return KindUInt8 }
func (UInt16) Kind() Kind  { return KindUInt16 }
func (UInt32) Kind() Kind  { return KindUInt32 }
func (UInt64) Kind() Kind  { return KindUInt64 }
func (Float16) Kind() Kind { return KindFloat16 }
func (Float32) Kind() Kind { return KindFloat32 }
func (Float64) Kind() Kind { return KindFloat64 }
func (String) Kind() Kind  { return KindString }
func (Binary) Kind() Kind  { return KindBinary }
func (Date) Kind() Kind    { return KindDate }

func (Null) isScalar()    {}
func (Boolean) isScalar() {}
func (Int8) isScalar()    {}
func (Int16) isScalar()   {}
func (Int32) isScalar()   {}
func (Int64) isScalar()   {}
func (UInt8) isScalar()   {}
func (UInt16) isScalar()  {}
func (UInt32) isScalar()  {}
func (UInt64) isScalar()  {}
func (Float16) isScalar() {}
func (Float32) isScalar() {}
func (Float64) isScalar() {}
func (String) isScalar()  {}
func (Binary) isScalar()  {}
func (Date) isScalar()    {}

func (Null) String() string      { return "NULL" }
func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }
func (v Int8) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Int16) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int32) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int64) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v UInt8) String() string   { return strconv.FormatUint(uint64(v), 10) }
func (v UInt16) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v UInt32) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v UInt64) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Float16) String() string { return float16.Num(v).String() }
func (v Float32) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Float64) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string  { return string(v) }
func (v Binary) String() string  { return "\\x" + hex.EncodeToString(v) }
func (v Date) String() string    { return arrow.Date32(v).FormattedString() }

// Time is a time of day in the given unit since midnight.
type Time struct {
	Unit  arrow.TimeUnit
	Value int64
}

func (Time) Kind() Kind { return KindTime }
func (Time) isScalar()  {}
func (t Time) String() string {
	if t.Unit == arrow.Second || t.Unit == arrow.Millisecond {
		return arrow.Time32(t.Value).FormattedString(t.Unit)
	}
	return arrow.Time64(t.Value).FormattedString(t.Unit)
}

// Timestamp is an instant in the given unit since the UNIX epoch.
// TimeZone is empty for timestamps without a time zone.
type Timestamp struct {
	Unit     arrow.TimeUnit
	TimeZone string
	Value    int64
}

func (Timestamp) Kind() Kind { return KindTimestamp }
func (Timestamp) isScalar()  {}
func (t Timestamp) String() string {
	s := arrow.Timestamp(t.Value).ToTime(t.Unit).Format("2006-01-02 15:04:05.999999999")
	if t.TimeZone != "" {
		s += " " + t.TimeZone
	}
	return s
}

// Duration is an elapsed time in the given unit.
type Duration struct {
	Unit  arrow.TimeUnit
	Value int64
}

func (Duration) Kind() Kind { return KindDuration }
func (Duration) isScalar()  {}
func (d Duration) String() string {
	return strconv.FormatInt(d.Value, 10) + d.Unit.String()
}

// Interval is implemented by the three interval layouts.
type Interval interface {
	Scalar
	IntervalKind() IntervalKind
}

// IntervalKind mirrors the interval layouts.
type IntervalKind int8

const (
	IntervalYearMonth IntervalKind = iota
	IntervalDayTime
	IntervalMonthDayNano
)

type (
	// YearMonthInterval is a number of months.
	YearMonthInterval int32
	// DayTimeInterval is days plus milliseconds.
	DayTimeInterval arrow.DayTimeInterval
	// MonthDayNanoInterval is months, days and nanoseconds.
	MonthDayNanoInterval arrow.MonthDayNanoInterval
)

func (YearMonthInterval) Kind() Kind                    { return KindInterval }
func (DayTimeInterval) Kind() Kind                      { return KindInterval }
func (MonthDayNanoInterval) Kind() Kind                 { return KindInterval }
func (YearMonthInterval) isScalar()                     {}
func (DayTimeInterval) isScalar()                       {}
func (MonthDayNanoInterval) isScalar()                  {}
func (YearMonthInterval) IntervalKind() IntervalKind    { return IntervalYearMonth }
func (DayTimeInterval) IntervalKind() IntervalKind      { return IntervalDayTime }
func (MonthDayNanoInterval) IntervalKind() IntervalKind { return IntervalMonthDayNano }

func (v YearMonthInterval) String() string { return strconv.Itoa(int(v)) + "m" }
func (v DayTimeInterval) String() string {
	return fmt.Sprintf("%dd%dms", v.Days, v.Milliseconds)
}
func (v MonthDayNanoInterval) String() string {
	return fmt.Sprintf("%dm%dd%dns", v.Months, v.Days, v.Nanoseconds)
}
