package asn1

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
)

// Element is a node of a decoded ASN.1 tree. The set of implementations is
// closed: *Primitive, *PrimitiveOctetString, *EncapsulatingOctetString,
// *Sequence, *Set, *SetOf, *Tagged and *CustomStructure.
//
// Elements are immutable once constructed and safe for concurrent use. The
// slices returned by Content and DER must not be modified.
type Element interface {
	// Tag returns the tag of the element.
	Tag() Tag
	// Length returns the number of content octets.
	Length() int
	// EncodedLength returns the number of octets of the DER encoding.
	EncodedLength() int
	// Content returns the content octets.
	Content() []byte
	// DER returns the DER encoding of the element.
	DER() []byte
	// Equal reports whether both elements are of the same kind, carry the
	// same tag and hold the same content or children.
	Equal(Element) bool
	// String returns a one-line description of the element.
	String() string

	kind() kind
}

// Structure is an Element holding child elements.
type Structure interface {
	Element
	Children() []Element
}

type kind int

const (
	kindPrimitive kind = iota
	kindOctetString
	kindEncapsulating
	kindSequence
	kindSet
	kindTagged
	kindCustom
)

// encoding memoizes the DER encoding of an immutable element.
type encoding struct {
	once   sync.Once
	der    []byte
	header int
}

func (e *encoding) get(tag Tag, content func() []byte) ([]byte, int) {
	e.once.Do(func() {
		c := content()
		tb := tag.Bytes()
		lb := EncodeLength(len(c))
		der := make([]byte, 0, len(tb)+len(lb)+len(c))
		der = append(der, tb...)
		der = append(der, lb...)
		e.der = append(der, c...)
		e.header = len(tb) + len(lb)
	})
	return e.der, e.header
}

func equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.kind() != b.kind() || !a.Tag().Equal(b.Tag()) {
		return false
	}
	as, ok := a.(Structure)
	if !ok {
		return bytes.Equal(a.Content(), b.Content())
	}
	bs, ok := b.(Structure)
	if !ok {
		return false
	}
	ac, bc := as.Children(), bs.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Primitive is an element that holds its content octets directly.
type Primitive struct {
	tag     Tag
	content []byte
	enc     encoding
}

// NewPrimitive returns a primitive element. The content is copied.
func NewPrimitive(tag Tag, content []byte) (*Primitive, error) {
	if !tag.Class.valid() {
		return nil, errors.Wrapf(ErrInvalidTag, "invalid class %s", tag.Class)
	}
	if tag.Constructed {
		return nil, errors.Wrapf(ErrNotPrimitive, "tag %s is constructed", tag)
	}
	if tag.IsUniversal(UniversalSequence) || tag.IsUniversal(UniversalSet) {
		return nil, errors.Wrapf(ErrNotConstructed, "tag %s must be constructed", tag)
	}
	return newPrimitive(tag, bytes.Clone(content)), nil
}

func newPrimitive(tag Tag, content []byte) *Primitive {
	if content == nil {
		content = []byte{}
	}
	return &Primitive{tag: tag, content: content}
}

// Tag returns the tag of the element.
func (p *Primitive) Tag() Tag { return p.tag }

// Length returns the number of content octets.
func (p *Primitive) Length() int { return len(p.content) }

// EncodedLength returns the number of octets of the DER encoding.
func (p *Primitive) EncodedLength() int {
	return p.tag.EncodedLength() + EncodedLengthLength(len(p.content)) + len(p.content)
}

// Content returns the content octets.
func (p *Primitive) Content() []byte { return p.content }

// DER returns the DER encoding of the element.
func (p *Primitive) DER() []byte {
	der, _ := p.enc.get(p.tag, p.Content)
	return der
}

// Equal reports whether p and e are equal primitives.
func (p *Primitive) Equal(e Element) bool { return equal(p, e) }

func (p *Primitive) kind() kind {
	if p.tag.Equal(TagOctetString) {
		return kindOctetString
	}
	return kindPrimitive
}

// WithTag returns a primitive with the same content and the given tag. It is
// used both to build implicitly tagged values and to decode them, e.g.
// p.WithTag(TagInteger).BigInt() for an [1] IMPLICIT INTEGER. It returns nil
// if tag is constructed or its class is not one of the four tag classes.
func (p *Primitive) WithTag(tag Tag) *Primitive {
	if tag.Constructed || !tag.Class.valid() {
		return nil
	}
	return newPrimitive(tag, p.content)
}

// expect returns a *TagMismatchError unless p carries the tag t.
func (p *Primitive) expect(t Tag) error {
	if !p.tag.Equal(t) {
		return &TagMismatchError{Expected: t, Actual: p.tag}
	}
	return nil
}

// PrimitiveOctetString is an OCTET STRING whose content is opaque, either
// because it was built that way or because it did not parse as nested
// elements.
type PrimitiveOctetString struct {
	Primitive
}

// NewOctetString returns an opaque OCTET STRING. The content is copied.
func NewOctetString(b []byte) *PrimitiveOctetString {
	c := bytes.Clone(b)
	if c == nil {
		c = []byte{}
	}
	return &PrimitiveOctetString{Primitive: Primitive{tag: TagOctetString, content: c}}
}

// Bytes returns the octets of the string.
func (o *PrimitiveOctetString) Bytes() []byte { return o.content }

// DER returns the DER encoding of the element.
func (o *PrimitiveOctetString) DER() []byte { return o.Primitive.DER() }

// Equal reports whether o and e are equal octet strings.
func (o *PrimitiveOctetString) Equal(e Element) bool { return equal(o, e) }

// String returns a one-line description of the element.
func (o *PrimitiveOctetString) String() string { return describe(o) }

func (o *PrimitiveOctetString) kind() kind { return kindOctetString }

// Expect returns a *TagMismatchError unless e carries the tag t.
func Expect(e Element, t Tag) error {
	if e == nil {
		return errors.New("asn1: missing element")
	}
	if !e.Tag().Equal(t) {
		return &TagMismatchError{Expected: t, Actual: e.Tag()}
	}
	return nil
}

// AsPrimitive returns the primitive behind e.
func AsPrimitive(e Element) (*Primitive, error) {
	switch v := e.(type) {
	case *Primitive:
		return v, nil
	case *PrimitiveOctetString:
		return &v.Primitive, nil
	case *EncapsulatingOctetString:
		return newPrimitive(TagOctetString, v.Content()), nil
	case nil:
		return nil, errors.New("asn1: missing element")
	default:
		return nil, errors.Wrapf(ErrNotPrimitive, "%s", e.Tag())
	}
}

// AsSequence returns e as a SEQUENCE, or a *TagMismatchError.
func AsSequence(e Element) (*Sequence, error) {
	if s, ok := e.(*Sequence); ok {
		return s, nil
	}
	return nil, mismatch(TagSequence, e)
}

// AsSet returns e as a SET, or a *TagMismatchError. A SET OF is returned as
// the SET it validates.
func AsSet(e Element) (*Set, error) {
	switch s := e.(type) {
	case *Set:
		return s, nil
	case *SetOf:
		return &s.Set, nil
	}
	return nil, mismatch(TagSet, e)
}

// AsTagged returns e as the explicitly tagged element [n].
func AsTagged(e Element, n uint64) (*Tagged, error) {
	if t, ok := e.(*Tagged); ok && t.Tag().Number == n {
		return t, nil
	}
	return nil, mismatch(ExplicitTag(n), e)
}

func mismatch(expected Tag, e Element) error {
	if e == nil {
		return errors.Wrapf(ErrTagMismatch, "expected %s, got nothing", expected)
	}
	return &TagMismatchError{Expected: expected, Actual: e.Tag()}
}
