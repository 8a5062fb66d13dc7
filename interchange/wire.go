package interchange

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/datatypes/types"
)

type wireType struct {
	Kind      string      `msgpack:"kind"`
	Extension string      `msgpack:"ext,omitempty"`
	Unit      int8        `msgpack:"unit,omitempty"`
	TimeZone  string      `msgpack:"tz,omitempty"`
	Interval  int8        `msgpack:"interval,omitempty"`
	Size      int32       `msgpack:"size,omitempty"`
	Precision int32       `msgpack:"precision,omitempty"`
	Scale     int32       `msgpack:"scale,omitempty"`
	Fields    []wireField `msgpack:"fields,omitempty"`
	Codes     []int8      `msgpack:"codes,omitempty"`
}

type wireField struct {
	Name     string   `msgpack:"name"`
	Nullable bool     `msgpack:"nullable"`
	Type     wireType `msgpack:"type"`
}

// wireScalar is the union of all scalar layouts. Floats travel as their
// IEEE bit patterns so NaN payloads and negative zero survive.
type wireScalar struct {
	Kind     string       `msgpack:"kind"`
	Bool     bool         `msgpack:"bool,omitempty"`
	Int      int64        `msgpack:"int,omitempty"`
	Uint     uint64       `msgpack:"uint,omitempty"`
	Str      string       `msgpack:"str,omitempty"`
	Bytes    []byte       `msgpack:"bytes,omitempty"`
	Unit     int8         `msgpack:"unit,omitempty"`
	TimeZone string       `msgpack:"tz,omitempty"`
	Scale    int32        `msgpack:"scale,omitempty"`
	Interval int8         `msgpack:"interval,omitempty"`
	Months   int32        `msgpack:"months,omitempty"`
	Days     int32        `msgpack:"days,omitempty"`
	Code     int8         `msgpack:"code,omitempty"`
	Fields   []wireField  `msgpack:"fields,omitempty"`
	Values   []wireScalar `msgpack:"values,omitempty"`
}

var nativeKinds = map[string]types.NativeKind{}

func init() {
	for k := types.NativeNull; k <= types.NativeMap; k++ {
		nativeKinds[k.String()] = k
	}
}

func typeToWire(lt types.LogicalType) wireType {
	n := lt.Native()
	w := wireType{Kind: n.Kind().String()}
	if name, ok := types.ExtensionName(lt); ok {
		w.Extension = name
	}
	switch n.Kind() {
	case types.NativeTimestamp:
		w.Unit = int8(n.TimeUnit())
		w.TimeZone = n.TimeZone()
	case types.NativeTime, types.NativeDuration:
		w.Unit = int8(n.TimeUnit())
	case types.NativeInterval:
		w.Interval = int8(n.IntervalUnit())
	case types.NativeFixedSizeBinary:
		w.Size = n.ByteWidth()
	case types.NativeFixedSizeList:
		w.Size = n.ListSize()
	case types.NativeDecimal:
		w.Precision = n.Precision()
		w.Scale = n.Scale()
	case types.NativeUnion:
		for _, code := range n.TypeCodes() {
			w.Codes = append(w.Codes, int8(code))
		}
	}
	for _, f := range n.Fields() {
		w.Fields = append(w.Fields, fieldToWire(f))
	}
	return w
}

func fieldToWire(f *types.LogicalField) wireField {
	return wireField{Name: f.Name, Nullable: f.Nullable, Type: typeToWire(f.Type)}
}

func (c *Codec) typeFromWire(w wireType) (types.LogicalType, error) {
	native, err := c.nativeFromWire(w)
	if err != nil {
		return nil, err
	}
	if w.Extension == "" {
		return native, nil
	}
	return c.resolveExtension(w.Extension, native)
}

// resolveExtension maps an extension name to the local logical type.
func (c *Codec) resolveExtension(name string, native *types.NativeType) (types.LogicalType, error) {
	var lt types.LogicalType
	if c.reg != nil {
		var err error
		lt, err = c.reg.Get(name)
		if err != nil && !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
	}
	if lt == nil && name == types.UuidExtensionName {
		lt = types.NewUuidType()
	}
	if lt == nil {
		return types.NewUnknownExtensionType(name, native), nil
	}
	if !lt.Native().Equal(native) {
		return nil, types.NewError(types.ErrTypeMismatch, "logical type", name,
			"received native type %s, registered type has %s", native, lt.Native())
	}
	return lt, nil
}

func (c *Codec) fieldFromWire(w wireField) (*types.LogicalField, error) {
	lt, err := c.typeFromWire(w.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", w.Name, err)
	}
	return types.NewLogicalField(w.Name, lt, w.Nullable), nil
}

func (c *Codec) fieldsFromWire(ws []wireField) ([]*types.LogicalField, error) {
	fields := make([]*types.LogicalField, 0, len(ws))
	for _, w := range ws {
		f, err := c.fieldFromWire(w)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (c *Codec) nativeFromWire(w wireType) (*types.NativeType, error) {
	kind, ok := nativeKinds[w.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown native kind %q", ErrMalformed, w.Kind)
	}
	fields, err := c.fieldsFromWire(w.Fields)
	if err != nil {
		return nil, err
	}
	wantFields := -1
	switch kind {
	case types.NativeList, types.NativeFixedSizeList:
		wantFields = 1
	case types.NativeMap:
		wantFields = 2
	case types.NativeStruct:
	case types.NativeUnion:
		wantFields = len(w.Codes)
	default:
		wantFields = 0
	}
	if wantFields >= 0 && len(fields) != wantFields {
		return nil, fmt.Errorf("%w: %s with %d fields", ErrMalformed, w.Kind, len(fields))
	}

	switch kind {
	case types.NativeNull:
		return types.Null, nil
	case types.NativeBoolean:
		return types.Boolean, nil
	case types.NativeInt8:
		return types.Int8, nil
	case types.NativeInt16:
		return types.Int16, nil
	case types.NativeInt32:
		return types.Int32, nil
	case types.NativeInt64:
		return types.Int64, nil
	case types.NativeUInt8:
		return types.UInt8, nil
	case types.NativeUInt16:
		return types.UInt16, nil
	case types.NativeUInt32:
		return types.UInt32, nil
	case types.NativeUInt64:
		return types.UInt64, nil
	case types.NativeFloat16:
		return types.Float16, nil
	case types.NativeFloat32:
		return types.Float32, nil
	case types.NativeFloat64:
		return types.Float64, nil
	case types.NativeDate:
		return types.Date, nil
	case types.NativeBinary:
		return types.Binary, nil
	case types.NativeString:
		return types.String, nil
	case types.NativeTimestamp:
		return types.NewTimestamp(arrow.TimeUnit(w.Unit), w.TimeZone), nil
	case types.NativeTime:
		return types.NewTime(arrow.TimeUnit(w.Unit)), nil
	case types.NativeDuration:
		return types.NewDuration(arrow.TimeUnit(w.Unit)), nil
	case types.NativeInterval:
		return types.NewInterval(types.IntervalUnit(w.Interval)), nil
	case types.NativeFixedSizeBinary:
		return types.NewFixedSizeBinary(w.Size), nil
	case types.NativeDecimal:
		return types.NewDecimal(w.Precision, w.Scale), nil
	case types.NativeList:
		return types.NewList(fields[0]), nil
	case types.NativeFixedSizeList:
		return types.NewFixedSizeList(fields[0], w.Size), nil
	case types.NativeStruct:
		return types.NewStruct(fields...), nil
	case types.NativeMap:
		return types.NewMap(fields[0], fields[1]), nil
	default: // union
		codes := make([]arrow.UnionTypeCode, len(w.Codes))
		for i, code := range w.Codes {
			codes[i] = arrow.UnionTypeCode(code)
		}
		return types.NewUnion(fields, codes), nil
	}
}
