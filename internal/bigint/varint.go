// Package bigint implements the integer encodings used by ASN.1: the
// base-128 variable-length quantity used by OID arcs and high tag numbers,
// and the minimal two's complement form used by INTEGER contents.
package bigint

import (
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned when a varint ends with a continuation byte.
	ErrTruncated = errors.New("varint is truncated")
	// ErrOverflow is returned when a varint does not fit the target type.
	ErrOverflow = errors.New("varint overflows uint64")
	// ErrNotMinimal is returned when a varint starts with a 0x80 byte.
	ErrNotMinimal = errors.New("varint is not minimally encoded")
	// ErrEmpty is returned when decoding an empty input.
	ErrEmpty = errors.New("empty input")
)

// EncodeVarint encodes a non-negative integer as a base-128 varint, most
// significant group first. Zero is encoded as a single zero byte. It panics
// if v is negative.
func EncodeVarint(v *big.Int) []byte {
	if v.Sign() < 0 {
		panic("bigint: cannot encode negative varint")
	}
	if v.IsInt64() {
		return EncodeUint64(uint64(v.Int64()))
	}
	n := (v.BitLen() + 6) / 7
	out := make([]byte, n)
	t := new(big.Int).Set(v)
	mask := big.NewInt(0x7f)
	g := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		g.And(t, mask)
		out[i] = byte(g.Uint64())
		if i != n-1 {
			out[i] |= 0x80
		}
		t.Rsh(t, 7)
	}
	return out
}

// EncodeUint64 is the uint64 form of EncodeVarint.
func EncodeUint64(v uint64) []byte {
	n := VarintLength(v)
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v & 0x7f)
		if i != n-1 {
			out[i] |= 0x80
		}
		v >>= 7
	}
	return out
}

// VarintLength returns the number of bytes needed to encode v as a varint.
func VarintLength(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// DecodeVarint decodes a varint from the beginning of b. It returns the
// value and the number of bytes consumed so that callers can continue
// parsing the remaining input.
func DecodeVarint(b []byte) (*big.Int, int, error) {
	if len(b) == 0 {
		return nil, 0, ErrEmpty
	}
	v := new(big.Int)
	for i, c := range b {
		v.Lsh(v, 7)
		v.Or(v, big.NewInt(int64(c&0x7f)))
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return nil, 0, ErrTruncated
}

// DecodeUint64 decodes a minimally encoded varint that fits in a uint64.
func DecodeUint64(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrEmpty
	}
	if b[0] == 0x80 {
		return 0, 0, ErrNotMinimal
	}
	var v uint64
	for i, c := range b {
		if v>>57 != 0 {
			return 0, 0, ErrOverflow
		}
		v = v<<7 | uint64(c&0x7f)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}
