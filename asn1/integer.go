package asn1

import (
	"math/big"

	"github.com/asn1kit/crypto/internal/bigint"
)

// NewInteger returns an INTEGER holding v in minimal two's complement form.
func NewInteger(v *big.Int) *Primitive {
	return newPrimitive(TagInteger, bigint.EncodeTwosComplement(v))
}

// NewInt64 returns an INTEGER holding v.
func NewInt64(v int64) *Primitive {
	return NewInteger(big.NewInt(v))
}

// NewUint64 returns an INTEGER holding v.
func NewUint64(v uint64) *Primitive {
	return NewInteger(new(big.Int).SetUint64(v))
}

// NewEnumerated returns an ENUMERATED holding v.
func NewEnumerated(v int64) *Primitive {
	return newPrimitive(TagEnumerated, bigint.EncodeTwosComplement(big.NewInt(v)))
}

// BigInt decodes an INTEGER. The content must be minimally encoded.
func (p *Primitive) BigInt() (*big.Int, error) {
	if err := p.expect(TagInteger); err != nil {
		return nil, err
	}
	return decodeInteger(p.content)
}

// BigIntOrNil is like BigInt but returns nil on error.
func (p *Primitive) BigIntOrNil() *big.Int {
	v, err := p.BigInt()
	if err != nil {
		return nil
	}
	return v
}

// Int64 decodes an INTEGER that fits in an int64.
func (p *Primitive) Int64() (int64, error) {
	v, err := p.BigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, invalidValue("integer %s overflows int64", v)
	}
	return v.Int64(), nil
}

// Int64OrDefault is like Int64 but returns def on error.
func (p *Primitive) Int64OrDefault(def int64) int64 {
	v, err := p.Int64()
	if err != nil {
		return def
	}
	return v
}

// Uint64 decodes a non-negative INTEGER that fits in a uint64.
func (p *Primitive) Uint64() (uint64, error) {
	v, err := p.BigInt()
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, invalidValue("integer %s does not fit in uint64", v)
	}
	return v.Uint64(), nil
}

// Uint64OrDefault is like Uint64 but returns def on error.
func (p *Primitive) Uint64OrDefault(def uint64) uint64 {
	v, err := p.Uint64()
	if err != nil {
		return def
	}
	return v
}

// Enumerated decodes an ENUMERATED.
func (p *Primitive) Enumerated() (int64, error) {
	if err := p.expect(TagEnumerated); err != nil {
		return 0, err
	}
	v, err := decodeInteger(p.content)
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, invalidValue("enumerated %s overflows int64", v)
	}
	return v.Int64(), nil
}

// EnumeratedOrDefault is like Enumerated but returns def on error.
func (p *Primitive) EnumeratedOrDefault(def int64) int64 {
	v, err := p.Enumerated()
	if err != nil {
		return def
	}
	return v
}

func decodeInteger(content []byte) (*big.Int, error) {
	if len(content) == 0 {
		return nil, invalidValue("empty integer")
	}
	if !bigint.IsMinimalTwosComplement(content) {
		return nil, invalidValue("integer is not minimally encoded")
	}
	return bigint.DecodeTwosComplement(content)
}
