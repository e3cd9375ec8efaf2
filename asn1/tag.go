package asn1

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/internal/bigint"
)

// Class is the class of a tag, stored in the two high bits of the first tag
// octet.
type Class uint8

// Tag classes.
const (
	ClassUniversal       Class = 0x00
	ClassApplication     Class = 0x40
	ClassContextSpecific Class = 0x80
	ClassPrivate         Class = 0xc0
)

const (
	classMask       = 0xc0
	constructedBit  = 0x20
	numberMask      = 0x1f
	highTagNumber   = 0x1f
	maxLowTagNumber = 30
)

// String returns the ASN.1 notation of the class.
func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
}

// valid reports whether c is one of the four tag classes.
func (c Class) valid() bool { return c&^classMask == 0 }

// Universal tag numbers, X.680 table 1.
const (
	UniversalBoolean         uint64 = 1
	UniversalInteger         uint64 = 2
	UniversalBitString       uint64 = 3
	UniversalOctetString     uint64 = 4
	UniversalNull            uint64 = 5
	UniversalOID             uint64 = 6
	UniversalEnumerated      uint64 = 10
	UniversalUTF8String      uint64 = 12
	UniversalSequence        uint64 = 16
	UniversalSet             uint64 = 17
	UniversalNumericString   uint64 = 18
	UniversalPrintableString uint64 = 19
	UniversalT61String       uint64 = 20
	UniversalIA5String       uint64 = 22
	UniversalUTCTime         uint64 = 23
	UniversalGeneralizedTime uint64 = 24
	UniversalVisibleString   uint64 = 26
	UniversalUniversalString uint64 = 28
	UniversalBMPString       uint64 = 30
)

// Tag identifies the type and encoding of a TLV.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint64
}

// Predefined universal tags.
var (
	TagBoolean         = Tag{Number: UniversalBoolean}
	TagInteger         = Tag{Number: UniversalInteger}
	TagBitString       = Tag{Number: UniversalBitString}
	TagOctetString     = Tag{Number: UniversalOctetString}
	TagNull            = Tag{Number: UniversalNull}
	TagOID             = Tag{Number: UniversalOID}
	TagEnumerated      = Tag{Number: UniversalEnumerated}
	TagUTF8String      = Tag{Number: UniversalUTF8String}
	TagSequence        = Tag{Number: UniversalSequence, Constructed: true}
	TagSet             = Tag{Number: UniversalSet, Constructed: true}
	TagNumericString   = Tag{Number: UniversalNumericString}
	TagPrintableString = Tag{Number: UniversalPrintableString}
	TagT61String       = Tag{Number: UniversalT61String}
	TagIA5String       = Tag{Number: UniversalIA5String}
	TagUTCTime         = Tag{Number: UniversalUTCTime}
	TagGeneralizedTime = Tag{Number: UniversalGeneralizedTime}
	TagVisibleString   = Tag{Number: UniversalVisibleString}
	TagUniversalString = Tag{Number: UniversalUniversalString}
	TagBMPString       = Tag{Number: UniversalBMPString}
)

// NewTag returns a tag with the given class, encoding and number. Bits of
// class outside the two class bits are dropped.
func NewTag(class Class, constructed bool, number uint64) Tag {
	return Tag{Class: class & classMask, Constructed: constructed, Number: number}
}

// ExplicitTag returns the constructed context-specific tag [n] used to wrap
// an explicitly tagged value.
func ExplicitTag(n uint64) Tag {
	return Tag{Class: ClassContextSpecific, Constructed: true, Number: n}
}

// ImplicitTag returns the context-specific tag [n] that replaces the
// universal tag of an implicitly tagged value.
func ImplicitTag(n uint64, constructed bool) Tag {
	return Tag{Class: ClassContextSpecific, Constructed: constructed, Number: n}
}

// Bytes returns the encoded tag octets. Numbers up to 30 fit in the first
// octet, larger numbers follow it as a base-128 varint.
func (t Tag) Bytes() []byte {
	first := byte(t.Class) & classMask
	if t.Constructed {
		first |= constructedBit
	}
	if t.Number <= maxLowTagNumber {
		return []byte{first | byte(t.Number)}
	}
	return append([]byte{first | highTagNumber}, bigint.EncodeUint64(t.Number)...)
}

// EncodedLength returns the number of octets of the encoded tag.
func (t Tag) EncodedLength() int {
	if t.Number <= maxLowTagNumber {
		return 1
	}
	return 1 + bigint.VarintLength(t.Number)
}

// Equal reports whether t and o encode to the same octets.
func (t Tag) Equal(o Tag) bool {
	return bytes.Equal(t.Bytes(), o.Bytes())
}

// IsUniversal reports whether t is the primitive or constructed universal
// tag with the given number.
func (t Tag) IsUniversal(number uint64) bool {
	return t.Class == ClassUniversal && t.Number == number
}

// CompareTags orders tags by their encoded octets. It returns -1, 0 or +1.
func CompareTags(a, b Tag) int {
	return bytes.Compare(a.Bytes(), b.Bytes())
}

// String returns a representation of the tag similar to ASN.1 notation.
func (t Tag) String() string {
	s := "[" + t.Class.String() + " " + strconv.FormatUint(t.Number, 10) + "]"
	if t.Class == ClassContextSpecific {
		s = "[" + strconv.FormatUint(t.Number, 10) + "]"
	}
	if t.Constructed {
		return s + "/c"
	}
	return s
}

// DecodeTag decodes the tag at the beginning of b and returns it together
// with the number of octets consumed. The high-tag-number form is only
// accepted for numbers greater than 30.
func DecodeTag(b []byte) (Tag, int, error) {
	if len(b) == 0 {
		return Tag{}, 0, ErrTruncated
	}
	t := Tag{
		Class:       Class(b[0] & classMask),
		Constructed: b[0]&constructedBit != 0,
		Number:      uint64(b[0] & numberMask),
	}
	if t.Number != highTagNumber {
		return t, 1, nil
	}
	n, consumed, err := bigint.DecodeUint64(b[1:])
	switch {
	case errors.Is(err, bigint.ErrEmpty), errors.Is(err, bigint.ErrTruncated):
		return Tag{}, 0, ErrTruncated
	case err != nil:
		return Tag{}, 0, errors.Wrap(ErrInvalidTag, err.Error())
	case n <= maxLowTagNumber:
		return Tag{}, 0, errors.Wrapf(ErrInvalidTag, "tag number %d uses the high-tag-number form", n)
	}
	t.Number = n
	return t, 1 + consumed, nil
}
