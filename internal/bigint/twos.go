package bigint

import (
	"math/big"
)

var bigOne = big.NewInt(1)

// EncodeTwosComplement returns the minimal big-endian two's complement
// representation of v. The result never has a redundant leading 0x00 or 0xff
// byte, and zero is encoded as a single zero byte.
func EncodeTwosComplement(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{0x00}
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	default:
		// -v - 1 has the same bits as v with every bit inverted.
		n := new(big.Int).Neg(v)
		n.Sub(n, bigOne)
		b := n.Bytes()
		for i := range b {
			b[i] ^= 0xff
		}
		if len(b) == 0 || b[0]&0x80 == 0 {
			b = append([]byte{0xff}, b...)
		}
		return b
	}
}

// DecodeTwosComplement parses b as a big-endian two's complement integer.
func DecodeTwosComplement(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(bigOne, uint(len(b))*8)
		v.Sub(v, mod)
	}
	return v, nil
}

// IsMinimalTwosComplement reports whether b is the shortest two's complement
// encoding of its value, as DER requires for INTEGER contents.
func IsMinimalTwosComplement(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if len(b) == 1 {
		return true
	}
	if b[0] == 0x00 && b[1]&0x80 == 0 {
		return false
	}
	if b[0] == 0xff && b[1]&0x80 != 0 {
		return false
	}
	return true
}
