package asn1

// NewNull returns a NULL.
func NewNull() *Primitive {
	return newPrimitive(TagNull, nil)
}

// IsNull reports whether p is a well-formed NULL.
func (p *Primitive) IsNull() bool {
	return p.tag.Equal(TagNull) && len(p.content) == 0
}
