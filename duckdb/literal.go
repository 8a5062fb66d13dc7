package duckdb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/google/uuid"

	"github.com/hugr-lab/datatypes/logical"
	"github.com/hugr-lab/datatypes/types"
)

const timestampLayout = "2006-01-02 15:04:05.999999999"

// Literal renders v as a DuckDB SQL literal.
//
// Integers render bare and take DuckDB's default literal type; use
// TypedLiteral to pin the column type. Sub-microsecond precision of times,
// durations and intervals is truncated since DuckDB stores microseconds.
func Literal(v logical.Scalar) (string, error) {
	switch v := v.(type) {
	case logical.Null:
		return "NULL", nil
	case logical.Boolean:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case logical.Int8, logical.Int16, logical.Int32, logical.Int64,
		logical.UInt8, logical.UInt16, logical.UInt32, logical.UInt64:
		return v.String(), nil
	case logical.Float16:
		return floatLiteral(float64(float16.Num(v).Float32()), "FLOAT"), nil
	case logical.Float32:
		return floatLiteral(float64(v), "FLOAT"), nil
	case logical.Float64:
		return floatLiteral(float64(v), "DOUBLE"), nil
	case logical.Decimal:
		if digits := len(strings.TrimPrefix(v.Unscaled().String(), "-")); digits > MaxDecimalWidth {
			return "", types.NewError(types.ErrValueTooLarge, "decimal", v.String(),
				"DuckDB decimals hold at most %d digits", MaxDecimalWidth)
		}
		return v.String(), nil
	case logical.String:
		return quoteLiteral(string(v)), nil
	case logical.Binary:
		return blobLiteral(v), nil
	case logical.FixedSizeBinary:
		return blobLiteral(v.Bytes()), nil
	case logical.Date:
		return "DATE '" + arrow.Date32(v).FormattedString() + "'", nil
	case logical.Time:
		return "TIME '" + timeOfDay(toMicros(v.Value, v.Unit)) + "'", nil
	case logical.Timestamp:
		return timestampLiteral(v), nil
	case logical.Duration:
		return intervalLiteral(0, 0, toMicros(v.Value, v.Unit)), nil
	case logical.YearMonthInterval:
		return intervalLiteral(int32(v), 0, 0), nil
	case logical.DayTimeInterval:
		return intervalLiteral(0, v.Days, int64(v.Milliseconds)*1000), nil
	case logical.MonthDayNanoInterval:
		return intervalLiteral(v.Months, v.Days, v.Nanoseconds/1000), nil
	case logical.List:
		return listLiteral(v.Values())
	case logical.FixedSizeList:
		return listLiteral(v.Values())
	case logical.Struct:
		return structLiteral(v)
	case logical.Map:
		return mapLiteral(v)
	}
	return "", types.NewError(types.ErrUnimplemented, "logical scalar", v.Kind().String(), "no DuckDB literal")
}

// TypedLiteral renders v as a literal of the DuckDB type that stores lt.
// arrow.uuid values render as UUID text.
func TypedLiteral(lt types.LogicalType, v logical.Scalar) (string, error) {
	t, err := FromLogical(lt)
	if err != nil {
		return "", err
	}
	if t.ID == TypeIDSQLNull {
		return "NULL", nil
	}
	if fsb, ok := v.(logical.FixedSizeBinary); ok && t.ID == TypeIDUUID {
		u, err := uuid.FromBytes(fsb.Bytes())
		if err != nil {
			return "", types.WrapError(types.ErrTypeMismatch, "logical scalar", fsb.String(), err)
		}
		return quoteLiteral(u.String()) + "::UUID", nil
	}
	lit, err := Literal(v)
	if err != nil {
		return "", err
	}
	return "CAST(" + lit + " AS " + TypeName(t) + ")", nil
}

func floatLiteral(f float64, typeName string) string {
	var s string
	switch {
	case math.IsNaN(f):
		s = "NaN"
	case math.IsInf(f, 1):
		s = "Infinity"
	case math.IsInf(f, -1):
		s = "-Infinity"
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "'" + s + "'::" + typeName
}

// blobLiteral renders b as an escaped BLOB literal ('\xAA\xBB'::BLOB).
func blobLiteral(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 10)
	sb.WriteByte('\'')
	for _, c := range b {
		fmt.Fprintf(&sb, "\\x%02X", c)
	}
	sb.WriteString("'::BLOB")
	return sb.String()
}

func toMicros(v int64, unit arrow.TimeUnit) int64 {
	switch unit {
	case arrow.Second:
		return v * 1_000_000
	case arrow.Millisecond:
		return v * 1_000
	case arrow.Nanosecond:
		return v / 1_000
	default:
		return v
	}
}

func timeOfDay(micros int64) string {
	hours := micros / 3_600_000_000
	micros %= 3_600_000_000
	mins := micros / 60_000_000
	micros %= 60_000_000
	secs := micros / 1_000_000
	micros %= 1_000_000

	if micros > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%06d", hours, mins, secs, micros)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}

func timestampLiteral(v logical.Timestamp) string {
	t := arrow.Timestamp(v.Value).ToTime(v.Unit).UTC()
	if v.TimeZone != "" {
		return "TIMESTAMPTZ '" + t.Truncate(time.Microsecond).Format(timestampLayout) + "+00'"
	}
	formatted := t.Format(timestampLayout)
	switch v.Unit {
	case arrow.Second:
		return "'" + formatted + "'::TIMESTAMP_S"
	case arrow.Millisecond:
		return "'" + formatted + "'::TIMESTAMP_MS"
	case arrow.Nanosecond:
		return "'" + formatted + "'::TIMESTAMP_NS"
	default:
		return "TIMESTAMP '" + formatted + "'"
	}
}

// intervalLiteral renders an INTERVAL from its three DuckDB components.
func intervalLiteral(months, days int32, micros int64) string {
	var parts []string
	if years := months / 12; years != 0 {
		parts = append(parts, fmt.Sprintf("%d years", years))
	}
	if m := months % 12; m != 0 {
		parts = append(parts, fmt.Sprintf("%d months", m))
	}
	if days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if micros != 0 {
		sign := ""
		if micros < 0 {
			sign = "-"
			micros = -micros
		}
		hours := micros / 3_600_000_000
		micros %= 3_600_000_000
		mins := micros / 60_000_000
		micros %= 60_000_000
		if hours != 0 {
			parts = append(parts, fmt.Sprintf("%s%d hours", sign, hours))
		}
		if mins != 0 {
			parts = append(parts, fmt.Sprintf("%s%d minutes", sign, mins))
		}
		if micros != 0 {
			parts = append(parts, fmt.Sprintf("%s%d.%06d seconds", sign, micros/1_000_000, micros%1_000_000))
		}
	}
	if len(parts) == 0 {
		return "INTERVAL '0 seconds'"
	}
	return "INTERVAL '" + strings.Join(parts, " ") + "'"
}

func listLiteral(values []logical.Scalar) (string, error) {
	items := make([]string, 0, len(values))
	for _, v := range values {
		item, err := Literal(v)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}

func structLiteral(v logical.Struct) (string, error) {
	if len(v.Fields()) == 0 {
		return "", types.NewError(types.ErrUnimplemented, "logical scalar", v.String(), "DuckDB has no empty struct")
	}
	items := make([]string, 0, len(v.Fields()))
	for i, f := range v.Fields() {
		item, err := Literal(v.Values()[i])
		if err != nil {
			return "", fmt.Errorf("struct field %q: %w", f.Name, err)
		}
		items = append(items, quoteLiteral(f.Name)+": "+item)
	}
	return "{" + strings.Join(items, ", ") + "}", nil
}

func mapLiteral(v logical.Map) (string, error) {
	items := make([]string, 0, v.Len())
	for _, e := range v.Entries() {
		key, err := Literal(e.Key)
		if err != nil {
			return "", err
		}
		value, err := Literal(e.Value)
		if err != nil {
			return "", err
		}
		items = append(items, key+": "+value)
	}
	return "MAP {" + strings.Join(items, ", ") + "}", nil
}
