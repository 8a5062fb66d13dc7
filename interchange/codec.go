// Package interchange encodes logical scalars, fields and logical types as
// MessagePack for exchange between processes.
//
// Every message starts with a one byte frame header telling whether the
// MessagePack body is ZStandard compressed. Extension types travel by name;
// the decoding side resolves them through its registry and falls back to
// an UnknownExtensionType for names it does not know.
package interchange

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/datatypes/internal/serialize"
	"github.com/hugr-lab/datatypes/logical"
	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

// ErrMalformed is returned for data that is not a valid message.
var ErrMalformed = errors.New("malformed interchange data")

const (
	frameRaw  byte = 0x00
	frameZstd byte = 0x01
)

// DefaultMaxMessageSize bounds decompressed messages.
const DefaultMaxMessageSize = 64 << 20

// Option configures a Codec.
type Option func(*Codec)

// WithCompression enables ZStandard compression of encoded messages.
// Decoding accepts both forms regardless.
func WithCompression() Option {
	return func(c *Codec) { c.compress = true }
}

// WithMaxMessageSize bounds the decompressed size of incoming messages.
func WithMaxMessageSize(n uint64) Option {
	return func(c *Codec) { c.maxSize = n }
}

// Codec encodes and decodes messages. A Codec is safe for concurrent use.
type Codec struct {
	reg      registry.Registry
	compress bool
	maxSize  uint64

	compressor   *serialize.Compressor
	decompressor *serialize.Decompressor
}

// NewCodec creates a codec resolving extension names through reg.
// reg may be nil, in which case only arrow.uuid is recognised.
// Call Close when done.
func NewCodec(reg registry.Registry, opts ...Option) (*Codec, error) {
	c := &Codec{reg: reg, maxSize: DefaultMaxMessageSize}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.compress {
		if c.compressor, err = serialize.NewCompressor(); err != nil {
			return nil, err
		}
	}
	if c.decompressor, err = serialize.NewDecompressor(c.maxSize); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the compression resources.
func (c *Codec) Close() error {
	var err error
	if c.compressor != nil {
		err = c.compressor.Close()
	}
	if c.decompressor != nil {
		c.decompressor.Close()
	}
	return err
}

// MarshalScalar encodes a logical scalar.
func (c *Codec) MarshalScalar(v logical.Scalar) ([]byte, error) {
	w, err := scalarToWire(v)
	if err != nil {
		return nil, err
	}
	return c.marshal(w)
}

// UnmarshalScalar decodes a logical scalar.
func (c *Codec) UnmarshalScalar(data []byte) (logical.Scalar, error) {
	var w wireScalar
	if err := c.unmarshal(data, &w); err != nil {
		return nil, err
	}
	return c.scalarFromWire(w)
}

// MarshalField encodes a logical field.
func (c *Codec) MarshalField(f *types.LogicalField) ([]byte, error) {
	return c.marshal(fieldToWire(f))
}

// UnmarshalField decodes a logical field.
func (c *Codec) UnmarshalField(data []byte) (*types.LogicalField, error) {
	var w wireField
	if err := c.unmarshal(data, &w); err != nil {
		return nil, err
	}
	return c.fieldFromWire(w)
}

// MarshalType encodes a logical type.
func (c *Codec) MarshalType(lt types.LogicalType) ([]byte, error) {
	return c.marshal(typeToWire(lt))
}

// UnmarshalType decodes a logical type.
func (c *Codec) UnmarshalType(data []byte) (types.LogicalType, error) {
	var w wireType
	if err := c.unmarshal(data, &w); err != nil {
		return nil, err
	}
	return c.typeFromWire(w)
}

func (c *Codec) marshal(v any) ([]byte, error) {
	body, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	if !c.compress {
		return append([]byte{frameRaw}, body...), nil
	}
	return c.compressor.Compress([]byte{frameZstd}, body), nil
}

func (c *Codec) unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty message", ErrMalformed)
	}
	body := data[1:]
	switch data[0] {
	case frameRaw:
	case frameZstd:
		var err error
		if body, err = c.decompressor.Decompress(body); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	default:
		return fmt.Errorf("%w: unknown frame header 0x%02x", ErrMalformed, data[0])
	}
	if err := msgpack.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: failed to decode MessagePack: %w", ErrMalformed, err)
	}
	return nil
}
