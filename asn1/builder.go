package asn1

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
)

// Builder assembles element trees. Methods append to the list of elements
// being built and can be chained; the first error is kept and reported by
// Build or Elements, later calls are ignored.
//
//	der, err := asn1.NewBuilder().Sequence(func(b *asn1.Builder) {
//		b.Int64(1)
//		b.OID(asn1.OIDEd25519)
//		b.Explicit(0, func(b *asn1.Builder) {
//			b.UTF8String("hello")
//		})
//	}).DER()
type Builder struct {
	elems []Element
	err   error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(e Element, err error) *Builder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	b.elems = append(b.elems, e)
	return b
}

func (b *Builder) nested(fn func(*Builder)) ([]Element, error) {
	child := NewBuilder()
	fn(child)
	return child.elems, child.err
}

// Add appends already built elements.
func (b *Builder) Add(elems ...Element) *Builder {
	for _, e := range elems {
		if e == nil {
			return b.add(nil, errors.New("asn1: cannot add nil element"))
		}
		b.add(e, nil)
	}
	return b
}

// Bool appends a BOOLEAN.
func (b *Builder) Bool(v bool) *Builder { return b.add(NewBoolean(v), nil) }

// Int64 appends an INTEGER.
func (b *Builder) Int64(v int64) *Builder { return b.add(NewInt64(v), nil) }

// BigInt appends an INTEGER.
func (b *Builder) BigInt(v *big.Int) *Builder {
	if v == nil {
		return b.add(nil, errors.New("asn1: nil integer"))
	}
	return b.add(NewInteger(v), nil)
}

// Enumerated appends an ENUMERATED.
func (b *Builder) Enumerated(v int64) *Builder { return b.add(NewEnumerated(v), nil) }

// Null appends a NULL.
func (b *Builder) Null() *Builder { return b.add(NewNull(), nil) }

// OID appends an OBJECT IDENTIFIER.
func (b *Builder) OID(oid ObjectIdentifier) *Builder {
	if oid.IsZero() {
		return b.add(nil, errors.Wrap(ErrInvalidOID, "zero object identifier"))
	}
	return b.add(oid.Element(), nil)
}

// OctetString appends an opaque OCTET STRING.
func (b *Builder) OctetString(v []byte) *Builder { return b.add(NewOctetString(v), nil) }

// BitString appends a BIT STRING.
func (b *Builder) BitString(bs BitString) *Builder {
	if err := bs.validate(); err != nil {
		return b.add(nil, err)
	}
	return b.add(bs.Element(), nil)
}

// UTF8String appends a UTF8String.
func (b *Builder) UTF8String(s string) *Builder { return b.add(NewUTF8String(s)) }

// PrintableString appends a PrintableString.
func (b *Builder) PrintableString(s string) *Builder { return b.add(NewPrintableString(s)) }

// IA5String appends an IA5String.
func (b *Builder) IA5String(s string) *Builder { return b.add(NewIA5String(s)) }

// UTCTime appends a UTCTime.
func (b *Builder) UTCTime(t time.Time) *Builder { return b.add(NewUTCTime(t)) }

// GeneralizedTime appends a GeneralizedTime.
func (b *Builder) GeneralizedTime(t time.Time) *Builder { return b.add(NewGeneralizedTime(t)) }

// Time appends a UTCTime or a GeneralizedTime depending on the year of t.
func (b *Builder) Time(t time.Time) *Builder { return b.add(NewTime(t)) }

// Implicit appends a primitive value with its tag replaced by the
// context-specific tag [n].
func (b *Builder) Implicit(n uint64, p *Primitive) *Builder {
	if p == nil {
		return b.add(nil, errors.New("asn1: nil implicit value"))
	}
	return b.add(p.WithTag(ImplicitTag(n, false)), nil)
}

// Sequence appends a SEQUENCE holding the elements added by fn.
func (b *Builder) Sequence(fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewSequence(children...), nil)
}

// Set appends a SET holding the elements added by fn.
func (b *Builder) Set(fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewSet(children...), nil)
}

// SetOf appends a SET OF holding the elements added by fn.
func (b *Builder) SetOf(fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewSetOf(children...))
}

// Explicit appends the explicitly tagged element [n] holding the elements
// added by fn.
func (b *Builder) Explicit(n uint64, fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewTagged(n, children...), nil)
}

// Custom appends a constructed element with a custom tag.
func (b *Builder) Custom(tag Tag, fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewCustomStructure(tag, children...))
}

// Encapsulate appends an OCTET STRING whose content is the encoding of the
// elements added by fn.
func (b *Builder) Encapsulate(fn func(*Builder)) *Builder {
	children, err := b.nested(fn)
	if err != nil {
		return b.add(nil, err)
	}
	return b.add(NewEncapsulatingOctetString(children...), nil)
}

// Elements returns the elements built so far or the first error.
func (b *Builder) Elements() ([]Element, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.elems, nil
}

// Build returns the single element built. It fails if there is not exactly
// one.
func (b *Builder) Build() (Element, error) {
	elems, err := b.Elements()
	if err != nil {
		return nil, err
	}
	if len(elems) != 1 {
		return nil, errors.Errorf("asn1: builder holds %d elements, expected 1", len(elems))
	}
	return elems[0], nil
}

// DER returns the DER encoding of the single element built.
func (b *Builder) DER() ([]byte, error) {
	e, err := b.Build()
	if err != nil {
		return nil, err
	}
	return e.DER(), nil
}
