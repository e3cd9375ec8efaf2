package asn1

import (
	"bytes"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/internal/bigint"
	"github.com/asn1kit/crypto/internal/utils"
)

// ObjectIdentifier is an OBJECT IDENTIFIER. It has at least two arcs, the
// first one is 0, 1 or 2, and the second one is below 40 unless the first one
// is 2. The zero value is not a valid identifier.
type ObjectIdentifier struct {
	arcs    []uint32
	content []byte
}

// Well known object identifiers.
var (
	OIDRSAEncryption    = MustObjectIdentifier(1, 2, 840, 113549, 1, 1, 1)
	OIDSHA256WithRSA    = MustObjectIdentifier(1, 2, 840, 113549, 1, 1, 11)
	OIDECPublicKey      = MustObjectIdentifier(1, 2, 840, 10045, 2, 1)
	OIDECDSAWithSHA256  = MustObjectIdentifier(1, 2, 840, 10045, 4, 3, 2)
	OIDNamedCurveP256   = MustObjectIdentifier(1, 2, 840, 10045, 3, 1, 7)
	OIDNamedCurveP384   = MustObjectIdentifier(1, 3, 132, 0, 34)
	OIDNamedCurveP521   = MustObjectIdentifier(1, 3, 132, 0, 35)
	OIDEd25519          = MustObjectIdentifier(1, 3, 101, 112)
	OIDX25519           = MustObjectIdentifier(1, 3, 101, 110)
	OIDCommonName       = MustObjectIdentifier(2, 5, 4, 3)
	OIDSubjectKeyID     = MustObjectIdentifier(2, 5, 29, 14)
	OIDKeyUsage         = MustObjectIdentifier(2, 5, 29, 15)
	OIDSubjectAltName   = MustObjectIdentifier(2, 5, 29, 17)
	OIDBasicConstraints = MustObjectIdentifier(2, 5, 29, 19)
)

// NewObjectIdentifier returns the identifier with the given arcs.
func NewObjectIdentifier(arcs ...uint32) (ObjectIdentifier, error) {
	if err := validateArcs(arcs); err != nil {
		return ObjectIdentifier{}, err
	}
	arcs = slices.Clone(arcs)
	return ObjectIdentifier{arcs: arcs, content: encodeArcs(arcs)}, nil
}

// MustObjectIdentifier is like NewObjectIdentifier but panics on error.
func MustObjectIdentifier(arcs ...uint32) ObjectIdentifier {
	oid, err := NewObjectIdentifier(arcs...)
	if err != nil {
		panic(err)
	}
	return oid
}

// ParseObjectIdentifier parses the dotted form of an identifier, e.g.
// "1.2.840.113549".
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	arcs := make([]uint32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil || part == "" || part[0] == '+' {
			return ObjectIdentifier{}, errors.Wrapf(ErrInvalidOID, "arc %q of %q", part, s)
		}
		arcs[i] = uint32(v)
	}
	return NewObjectIdentifier(arcs...)
}

// DecodeObjectIdentifier decodes the content octets of an OBJECT IDENTIFIER.
func DecodeObjectIdentifier(b []byte) (ObjectIdentifier, error) {
	if len(b) == 0 {
		return ObjectIdentifier{}, errors.Wrap(ErrInvalidOID, "empty content")
	}
	var arcs []uint32
	for off := 0; off < len(b); {
		v, n, err := bigint.DecodeUint64(b[off:])
		if err != nil {
			return ObjectIdentifier{}, errors.Wrapf(ErrInvalidOID, "subidentifier at %d: %v", off, err)
		}
		if off == 0 {
			first, second := splitFirst(v)
			if second > math.MaxUint32 {
				return ObjectIdentifier{}, errors.Wrapf(ErrInvalidOID, "second arc %d overflows uint32", second)
			}
			arcs = append(arcs, first, uint32(second))
		} else {
			if v > math.MaxUint32 {
				return ObjectIdentifier{}, errors.Wrapf(ErrInvalidOID, "arc %d overflows uint32", v)
			}
			arcs = append(arcs, utils.MustUint32(v))
		}
		off += n
	}
	if err := validateArcs(arcs); err != nil {
		return ObjectIdentifier{}, err
	}
	return ObjectIdentifier{arcs: arcs, content: bytes.Clone(b)}, nil
}

// DecodeObjectIdentifierOrNil is like DecodeObjectIdentifier but returns nil
// on error.
func DecodeObjectIdentifierOrNil(b []byte) *ObjectIdentifier {
	oid, err := DecodeObjectIdentifier(b)
	if err != nil {
		return nil
	}
	return &oid
}

// splitFirst splits the first subidentifier into the first two arcs.
func splitFirst(v uint64) (uint32, uint64) {
	if v >= 80 {
		return 2, v - 80
	}
	return uint32(v / 40), v % 40
}

func validateArcs(arcs []uint32) error {
	switch {
	case len(arcs) < 2:
		return errors.Wrapf(ErrInvalidOID, "%d arcs, at least 2 required", len(arcs))
	case arcs[0] > 2:
		return errors.Wrapf(ErrInvalidOID, "first arc %d is greater than 2", arcs[0])
	case arcs[0] < 2 && arcs[1] >= 40:
		return errors.Wrapf(ErrInvalidOID, "second arc %d is not below 40", arcs[1])
	}
	return nil
}

func encodeArcs(arcs []uint32) []byte {
	b := bigint.EncodeUint64(uint64(arcs[0])*40 + uint64(arcs[1]))
	for _, a := range arcs[2:] {
		b = append(b, bigint.EncodeUint64(uint64(a))...)
	}
	return b
}

// Arcs returns a copy of the arcs.
func (o ObjectIdentifier) Arcs() []uint32 { return slices.Clone(o.arcs) }

// Bytes returns the content octets of the encoded identifier.
func (o ObjectIdentifier) Bytes() []byte { return bytes.Clone(o.content) }

// IsZero reports whether o is the zero value.
func (o ObjectIdentifier) IsZero() bool { return len(o.arcs) == 0 }

// Equal reports whether o and other have the same arcs.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(o.arcs, other.arcs)
}

// String returns the dotted form of the identifier.
func (o ObjectIdentifier) String() string {
	var sb strings.Builder
	for i, a := range o.arcs {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	return sb.String()
}

// Element returns o as an OBJECT IDENTIFIER element.
func (o ObjectIdentifier) Element() *Primitive {
	return newPrimitive(TagOID, bytes.Clone(o.content))
}

// NewOID returns an OBJECT IDENTIFIER element.
func NewOID(o ObjectIdentifier) *Primitive {
	return o.Element()
}

// ObjectIdentifier decodes an OBJECT IDENTIFIER.
func (p *Primitive) ObjectIdentifier() (ObjectIdentifier, error) {
	if err := p.expect(TagOID); err != nil {
		return ObjectIdentifier{}, err
	}
	return DecodeObjectIdentifier(p.content)
}

// ObjectIdentifierOrNil is like ObjectIdentifier but returns nil on error.
func (p *Primitive) ObjectIdentifierOrNil() *ObjectIdentifier {
	oid, err := p.ObjectIdentifier()
	if err != nil {
		return nil
	}
	return &oid
}
