package asn1

import (
	"slices"

	"github.com/pkg/errors"
)

// node holds the state shared by every structure. Its content is the
// concatenation of the DER encodings of its children.
type node struct {
	tag      Tag
	children []Element
	enc      encoding
}

func newNode(tag Tag, children []Element) node {
	return node{tag: tag, children: slices.Clone(children)}
}

func (n *node) encode() ([]byte, int) {
	return n.enc.get(n.tag, func() []byte {
		size := 0
		for _, c := range n.children {
			size += c.EncodedLength()
		}
		b := make([]byte, 0, size)
		for _, c := range n.children {
			b = append(b, c.DER()...)
		}
		return b
	})
}

// Tag returns the tag of the structure.
func (n *node) Tag() Tag { return n.tag }

// Children returns the child elements in encoding order.
func (n *node) Children() []Element { return slices.Clone(n.children) }

// Len returns the number of children.
func (n *node) Len() int { return len(n.children) }

// At returns the i-th child, or nil if there is none.
func (n *node) At(i int) Element {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Length returns the number of content octets.
func (n *node) Length() int {
	der, header := n.encode()
	return len(der) - header
}

// EncodedLength returns the number of octets of the DER encoding.
func (n *node) EncodedLength() int {
	der, _ := n.encode()
	return len(der)
}

// Content returns the concatenated encodings of the children.
func (n *node) Content() []byte {
	der, header := n.encode()
	return der[header:]
}

// DER returns the DER encoding of the structure.
func (n *node) DER() []byte {
	der, _ := n.encode()
	return der
}

// Sequence is a SEQUENCE or SEQUENCE OF. Children keep the order they were
// given in.
type Sequence struct {
	node
}

// NewSequence returns a SEQUENCE holding the given children, which must not
// be nil.
func NewSequence(children ...Element) *Sequence {
	return &Sequence{node: newNode(TagSequence, children)}
}

// Equal reports whether s and e are equal sequences.
func (s *Sequence) Equal(e Element) bool { return equal(s, e) }

// String returns a one-line description of the element.
func (s *Sequence) String() string { return describe(s) }

func (s *Sequence) kind() kind { return kindSequence }

// Set is a SET. Children are sorted by their encoded tag, which is the
// ordering DER requires; children with equal tags keep their relative
// order.
type Set struct {
	node
}

// NewSet returns a SET holding the given children in canonical order.
func NewSet(children ...Element) *Set {
	return &Set{node: newNode(TagSet, sortByTag(children))}
}

func sortByTag(children []Element) []Element {
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b Element) int {
		return CompareTags(a.Tag(), b.Tag())
	})
	return sorted
}

// Equal reports whether s and e are equal sets.
func (s *Set) Equal(e Element) bool { return equal(s, e) }

// String returns a one-line description of the element.
func (s *Set) String() string { return describe(s) }

func (s *Set) kind() kind { return kindSet }

// SetOf is a SET OF: a SET whose children all share one tag. It compares
// equal to a Set with the same children, since both encode identically.
type SetOf struct {
	Set
}

// NewSetOf returns a SET OF holding the given children. It fails with
// ErrSetOfMixedTags if the children do not share a tag and with
// ErrInvalidValue if a child is nil.
func NewSetOf(children ...Element) (*SetOf, error) {
	for i, c := range children {
		if c == nil {
			return nil, errors.Wrapf(ErrInvalidValue, "child %d is nil", i)
		}
	}
	for i := 1; i < len(children); i++ {
		if !children[i].Tag().Equal(children[0].Tag()) {
			return nil, errors.Wrapf(ErrSetOfMixedTags, "child %d has tag %s, child 0 has tag %s",
				i, children[i].Tag(), children[0].Tag())
		}
	}
	return &SetOf{Set: Set{node: newNode(TagSet, children)}}, nil
}

// Tagged is an explicitly tagged value: a constructed context-specific tag
// wrapping its children.
type Tagged struct {
	node
}

// NewTagged returns the explicitly tagged element [n] wrapping children.
func NewTagged(n uint64, children ...Element) *Tagged {
	return &Tagged{node: newNode(ExplicitTag(n), children)}
}

// Inner returns the single element wrapped by t.
func (t *Tagged) Inner() (Element, error) {
	if len(t.children) != 1 {
		return nil, errors.Wrapf(ErrInvalidValue, "tagged element %s holds %d elements", t.tag, len(t.children))
	}
	return t.children[0], nil
}

// Equal reports whether t and e are equal tagged elements.
func (t *Tagged) Equal(e Element) bool { return equal(t, e) }

// String returns a one-line description of the element.
func (t *Tagged) String() string { return describe(t) }

func (t *Tagged) kind() kind { return kindTagged }

// CustomStructure is a constructed element with an APPLICATION, PRIVATE or
// non-standard UNIVERSAL tag.
type CustomStructure struct {
	node
}

// NewCustomStructure returns a structure with the given tag. The tag must be
// constructed and must be neither SEQUENCE, SET nor context-specific, which
// have dedicated types.
func NewCustomStructure(tag Tag, children ...Element) (*CustomStructure, error) {
	switch {
	case !tag.Class.valid():
		return nil, errors.Wrapf(ErrInvalidTag, "invalid class %s", tag.Class)
	case !tag.Constructed:
		return nil, errors.Wrapf(ErrNotConstructed, "custom structure tag %s", tag)
	case tag.Class == ClassContextSpecific:
		return nil, errors.Wrapf(ErrInvalidTag, "context-specific tag %s requires NewTagged", tag)
	case tag.IsUniversal(UniversalSequence), tag.IsUniversal(UniversalSet):
		return nil, errors.Wrapf(ErrInvalidTag, "tag %s requires NewSequence or NewSet", tag)
	}
	return &CustomStructure{node: newNode(tag, children)}, nil
}

// Equal reports whether c and e are equal structures.
func (c *CustomStructure) Equal(e Element) bool { return equal(c, e) }

// String returns a one-line description of the element.
func (c *CustomStructure) String() string { return describe(c) }

func (c *CustomStructure) kind() kind { return kindCustom }

// EncapsulatingOctetString is an OCTET STRING whose content is itself a
// sequence of elements, as used by X.509 extension values. The tag stays
// primitive.
//
// When decoding, any OCTET STRING whose content happens to parse as DER is
// classified as encapsulating, even if the producer meant opaque bytes. The
// octets are preserved either way, so re-encoding is unaffected.
type EncapsulatingOctetString struct {
	node
}

// NewEncapsulatingOctetString returns an OCTET STRING wrapping children.
func NewEncapsulatingOctetString(children ...Element) *EncapsulatingOctetString {
	return &EncapsulatingOctetString{node: newNode(TagOctetString, children)}
}

// Bytes returns the octets of the string.
func (o *EncapsulatingOctetString) Bytes() []byte { return o.Content() }

// Equal reports whether o and e are equal encapsulating octet strings.
func (o *EncapsulatingOctetString) Equal(e Element) bool { return equal(o, e) }

// String returns a one-line description of the element.
func (o *EncapsulatingOctetString) String() string { return describe(o) }

func (o *EncapsulatingOctetString) kind() kind { return kindEncapsulating }
