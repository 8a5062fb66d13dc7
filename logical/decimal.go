package logical

import (
	"math"
	"math/big"

	"github.com/hugr-lab/datatypes/types"
	"github.com/shopspring/decimal"
)

// MaxDecimalDigits bounds the number of significant digits of a Decimal.
// It matches the widest physical decimal (256 bits).
const MaxDecimalDigits = 76

// Decimal is an arbitrary precision decimal with an explicit scale.
type Decimal struct {
	value decimal.Decimal
	scale int32
}

// NewDecimal builds unscaled * 10^-scale. It fails with ErrValueTooLarge
// when unscaled has more than MaxDecimalDigits digits.
func NewDecimal(unscaled *big.Int, scale int32) (Decimal, error) {
	if n := len(new(big.Int).Abs(unscaled).String()); n > MaxDecimalDigits {
		return Decimal{}, types.NewError(types.ErrValueTooLarge, "decimal", "",
			"%d digits exceed the maximum of %d", n, MaxDecimalDigits)
	}
	return Decimal{value: decimal.NewFromBigInt(unscaled, -scale), scale: scale}, nil
}

func (Decimal) Kind() Kind { return KindDecimal }
func (Decimal) isScalar()  {}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int32 { return d.scale }

// Unscaled returns the integer value before applying the scale.
func (d Decimal) Unscaled() *big.Int {
	return d.value.Shift(d.scale).BigInt()
}

// Decimal returns the underlying arbitrary precision value.
func (d Decimal) Decimal() decimal.Decimal { return d.value }

func (d Decimal) String() string {
	if d.scale > 0 {
		return d.value.StringFixed(d.scale)
	}
	return d.value.String()
}

// FixedSizeBinary is a byte string whose length is part of its type.
type FixedSizeBinary struct {
	data []byte
}

// NewFixedSizeBinary wraps data. It fails with ErrValueTooLarge when the
// length does not fit a 32-bit width.
func NewFixedSizeBinary(data []byte) (FixedSizeBinary, error) {
	if len(data) > math.MaxInt32 {
		return FixedSizeBinary{}, types.NewError(types.ErrValueTooLarge, "fixed size binary", "",
			"length %d exceeds %d", len(data), math.MaxInt32)
	}
	return FixedSizeBinary{data: data}, nil
}

func (FixedSizeBinary) Kind() Kind { return KindFixedSizeBinary }
func (FixedSizeBinary) isScalar()  {}

// Bytes returns the payload. Callers must not modify it.
func (v FixedSizeBinary) Bytes() []byte { return v.data }

// Width returns the payload length.
func (v FixedSizeBinary) Width() int32 { return int32(len(v.data)) }

func (v FixedSizeBinary) String() string { return Binary(v.data).String() }
