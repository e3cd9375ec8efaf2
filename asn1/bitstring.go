package asn1

import (
	"bytes"
	"math/big"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/internal/utils"
)

// BitString is the value of a BIT STRING: content octets plus the number of
// unused low-order bits in the last octet.
type BitString struct {
	PaddingBits int
	Bytes       []byte
}

// NewBitString returns a bit string of the given octets with paddingBits
// unused bits in the last one. The padding must be in [0,7], must be 0 when
// b is empty, and the unused bits must be zero.
func NewBitString(b []byte, paddingBits int) (BitString, error) {
	bs := BitString{PaddingBits: paddingBits, Bytes: bytes.Clone(b)}
	if err := bs.validate(); err != nil {
		return BitString{}, err
	}
	return bs, nil
}

// BitStringFromBitSet returns the bit string holding the bits of set, where
// bit i of set becomes bit i of the string, counting from the most
// significant bit of the first octet. The length of the string is
// set.BitLen(), so trailing zero bits are never represented.
func BitStringFromBitSet(set *big.Int) (BitString, error) {
	if set.Sign() < 0 {
		return BitString{}, errors.Wrap(ErrInvalidBitString, "bit set is negative")
	}
	n := set.BitLen()
	b := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if set.Bit(i) == 1 {
			b[i/8] |= 0x80 >> (i % 8)
		}
	}
	return BitString{PaddingBits: len(b)*8 - n, Bytes: b}, nil
}

func (bs BitString) validate() error {
	switch {
	case bs.PaddingBits < 0 || bs.PaddingBits > 7:
		return errors.Wrapf(ErrInvalidBitString, "%d padding bits", bs.PaddingBits)
	case len(bs.Bytes) == 0 && bs.PaddingBits != 0:
		return errors.Wrapf(ErrInvalidBitString, "%d padding bits in an empty bit string", bs.PaddingBits)
	case len(bs.Bytes) > 0 && bs.Bytes[len(bs.Bytes)-1]&(1<<bs.PaddingBits-1) != 0:
		return errors.Wrap(ErrInvalidBitString, "padding bits are not zero")
	}
	return nil
}

// BitLength returns the number of bits in the string.
func (bs BitString) BitLength() int {
	return len(bs.Bytes)*8 - bs.PaddingBits
}

// At returns the bit at index i, or 0 if i is out of range.
func (bs BitString) At(i int) int {
	if i < 0 || i >= bs.BitLength() {
		return 0
	}
	return int(bs.Bytes[i/8]>>(7-i%8)) & 1
}

// BitSet returns the bits of bs as a bit set, bit i of the string being bit
// i of the set. Trailing zero bits are lost.
func (bs BitString) BitSet() *big.Int {
	set := new(big.Int)
	for i := 0; i < bs.BitLength(); i++ {
		if bs.At(i) == 1 {
			set.SetBit(set, i, 1)
		}
	}
	return set
}

// Element returns bs as a BIT STRING element.
func (bs BitString) Element() *Primitive {
	content := make([]byte, 1, 1+len(bs.Bytes))
	content[0] = utils.MustUint8(bs.PaddingBits)
	return newPrimitive(TagBitString, append(content, bs.Bytes...))
}

// NewBitStringElement returns a BIT STRING element holding all bits of b.
func NewBitStringElement(b []byte) *Primitive {
	return BitString{Bytes: b}.Element()
}

// DecodeBitString decodes the content octets of a BIT STRING.
func DecodeBitString(content []byte) (BitString, error) {
	if len(content) == 0 {
		return BitString{}, errors.Wrap(ErrInvalidBitString, "missing padding octet")
	}
	bs := BitString{PaddingBits: int(content[0]), Bytes: bytes.Clone(content[1:])}
	if err := bs.validate(); err != nil {
		return BitString{}, err
	}
	return bs, nil
}

// DecodeBitStringOrNil is like DecodeBitString but returns nil on error.
func DecodeBitStringOrNil(content []byte) *BitString {
	bs, err := DecodeBitString(content)
	if err != nil {
		return nil
	}
	return &bs
}

// BitString decodes a BIT STRING.
func (p *Primitive) BitString() (BitString, error) {
	if err := p.expect(TagBitString); err != nil {
		return BitString{}, err
	}
	return DecodeBitString(p.content)
}

// BitStringOrNil is like BitString but returns nil on error.
func (p *Primitive) BitStringOrNil() *BitString {
	bs, err := p.BitString()
	if err != nil {
		return nil
	}
	return &bs
}
