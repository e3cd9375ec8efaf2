package asn1

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMaxContentLength is the largest content length accepted by Parse
// unless WithMaxContentLength says otherwise.
const DefaultMaxContentLength = 1 << 20

// maxLengthOctets bounds the long form so the value always fits in an int.
const maxLengthOctets = 4

// EncodeLength returns the length octets for a content of n bytes. The short
// form is used iff n < 128, otherwise the long form with the minimal number
// of octets. It panics if n is negative.
func EncodeLength(n int) []byte {
	if n < 0 {
		panic("asn1: negative length")
	}
	if n < 0x80 {
		return []byte{byte(n)}
	}
	k := lengthOctets(n)
	b := make([]byte, 1+k)
	b[0] = 0x80 | byte(k)
	for i := k; i > 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}

// EncodedLengthLength returns len(EncodeLength(n)).
func EncodedLengthLength(n int) int {
	if n < 0x80 {
		return 1
	}
	return 1 + lengthOctets(n)
}

func lengthOctets(n int) int {
	k := 0
	for ; n > 0; n >>= 8 {
		k++
	}
	return k
}

// DecodeLength decodes DER length octets at the beginning of b and returns
// the length together with the number of octets consumed. Long forms must be
// minimal.
func DecodeLength(b []byte) (int, int, error) {
	return decodeLength(b, true)
}

func decodeLength(b []byte, der bool) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}
	first := b[0]
	if first < 0x80 {
		return int(first), 1, nil
	}
	k := int(first & 0x7f)
	switch {
	case k == 0:
		return 0, 0, ErrIndefiniteLength
	case k == 0x7f:
		return 0, 0, errors.Wrap(ErrInvalidLength, "reserved length octet 0xff")
	case k > maxLengthOctets:
		return 0, 0, errors.Wrapf(ErrInvalidLength, "%d length octets", k)
	case len(b) < 1+k:
		return 0, 0, ErrTruncated
	}
	if der && b[1] == 0 {
		return 0, 0, errors.Wrap(ErrInvalidLength, "length has leading zero octet")
	}
	var n uint64
	for _, c := range b[1 : 1+k] {
		n = n<<8 | uint64(c)
	}
	if n > math.MaxInt32 {
		return 0, 0, errors.Wrapf(ErrInvalidLength, "length %d is too large", n)
	}
	if der && n < 0x80 {
		return 0, 0, errors.Wrapf(ErrInvalidLength, "length %d uses the long form", n)
	}
	return int(n), 1 + k, nil
}
