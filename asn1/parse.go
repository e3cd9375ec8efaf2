package asn1

import (
	"bytes"

	"github.com/pkg/errors"
)

// Parse decodes b, which must hold exactly one DER encoded element, into an
// element tree. The tree does not share memory with b.
//
// Constructed tags are decoded recursively: UNIVERSAL 16 becomes a
// *Sequence, UNIVERSAL 17 a *Set, context-specific tags a *Tagged and any
// other constructed tag a *CustomStructure. An OCTET STRING whose content
// parses cleanly as one or more elements becomes an
// *EncapsulatingOctetString, other OCTET STRINGs a *PrimitiveOctetString.
// Every other primitive becomes a *Primitive.
//
// Bytes after the root fail with ErrMultipleRoots when they hold more
// elements and with ErrTrailingData otherwise. Parse never returns a partial
// tree.
func Parse(b []byte, opts ...ParseOption) (Element, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	p := &parser{opts: newOptions().apply(opts)}
	b = bytes.Clone(b)
	e, n, err := p.parseOne(b, 0, 1)
	if err != nil {
		return nil, err
	}
	if n < len(b) {
		if _, err := p.parseAll(b[n:], n, 1); err != nil {
			return nil, syntaxError(n, errors.Wrapf(ErrTrailingData, "%d bytes", len(b)-n))
		}
		return nil, syntaxError(n, ErrMultipleRoots)
	}
	return e, nil
}

// ParseAll decodes b, which must hold one or more consecutive DER encoded
// elements.
func ParseAll(b []byte, opts ...ParseOption) ([]Element, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	p := &parser{opts: newOptions().apply(opts)}
	return p.parseAll(bytes.Clone(b), 0, 1)
}

// MustParse is like Parse but panics on error. It simplifies building trees
// from constants.
func MustParse(b []byte, opts ...ParseOption) Element {
	e, err := Parse(b, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseOrNil is like Parse but returns nil on error. It is meant for callers
// probing several interpretations of the same input.
func ParseOrNil(b []byte, opts ...ParseOption) Element {
	e, err := Parse(b, opts...)
	if err != nil {
		return nil
	}
	return e
}

type parser struct {
	opts *options
}

// parseAll decodes consecutive elements. base is the offset of b in the
// original input and depth the nesting level of the elements in b.
func (p *parser) parseAll(b []byte, base, depth int) ([]Element, error) {
	var elems []Element
	for off := 0; off < len(b); {
		e, n, err := p.parseOne(b[off:], base+off, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		off += n
	}
	return elems, nil
}

func (p *parser) parseOne(b []byte, offset, depth int) (Element, int, error) {
	if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
		return nil, 0, syntaxError(offset, errors.Wrapf(ErrMaxDepth, "depth %d", depth))
	}
	t, err := readTLV(b, p.opts)
	if err != nil {
		return nil, 0, syntaxError(offset, err)
	}
	e, err := p.build(t, offset, depth)
	if err != nil {
		return nil, 0, err
	}
	return e, t.OverallLength(), nil
}

func (p *parser) build(t TLV, offset, depth int) (Element, error) {
	tag := t.Tag
	contentOffset := offset + t.HeaderLength()
	if tag.Class == ClassUniversal && tag.Number == 0 {
		return nil, syntaxError(offset, errors.Wrap(ErrInvalidTag, "end-of-contents outside indefinite length"))
	}

	if tag.Constructed {
		children, err := p.parseAll(t.Content, contentOffset, depth+1)
		if err != nil {
			return nil, err
		}
		switch {
		case tag.IsUniversal(UniversalSequence):
			return &Sequence{node: node{tag: tag, children: children}}, nil
		case tag.IsUniversal(UniversalSet):
			return &Set{node: node{tag: tag, children: sortByTag(children)}}, nil
		case tag.Class == ClassContextSpecific:
			return &Tagged{node: node{tag: tag, children: children}}, nil
		default:
			return &CustomStructure{node: node{tag: tag, children: children}}, nil
		}
	}

	switch {
	case tag.IsUniversal(UniversalSequence), tag.IsUniversal(UniversalSet):
		return nil, syntaxError(offset, errors.Wrapf(ErrNotConstructed, "primitive %s", tag))
	case tag.Equal(TagOctetString):
		if children := p.encapsulated(t.Content, contentOffset, depth+1); children != nil {
			return &EncapsulatingOctetString{node: node{tag: tag, children: children}}, nil
		}
		return &PrimitiveOctetString{Primitive: Primitive{tag: tag, content: t.Content}}, nil
	default:
		return newPrimitive(tag, t.Content), nil
	}
}

// encapsulated returns the elements encoded in the content of an OCTET
// STRING, or nil if the content is not a canonical encoding of elements.
func (p *parser) encapsulated(content []byte, offset, depth int) []Element {
	if !p.opts.Encapsulation || len(content) == 0 {
		return nil
	}
	children, err := p.parseAll(content, offset, depth)
	if err != nil {
		return nil
	}
	// Keep the octets opaque unless re-encoding reproduces them exactly.
	n := 0
	for _, c := range children {
		der := c.DER()
		if !bytes.HasPrefix(content[n:], der) {
			return nil
		}
		n += len(der)
	}
	return children
}
