package asn1

// NewBoolean returns a BOOLEAN. TRUE is encoded as 0xff as DER requires.
func NewBoolean(v bool) *Primitive {
	if v {
		return newPrimitive(TagBoolean, []byte{0xff})
	}
	return newPrimitive(TagBoolean, []byte{0x00})
}

// Boolean decodes a BOOLEAN.
func (p *Primitive) Boolean() (bool, error) {
	if err := p.expect(TagBoolean); err != nil {
		return false, err
	}
	if len(p.content) != 1 {
		return false, invalidValue("boolean has %d content octets", len(p.content))
	}
	switch p.content[0] {
	case 0x00:
		return false, nil
	case 0xff:
		return true, nil
	default:
		return false, invalidValue("boolean content 0x%02x is not DER", p.content[0])
	}
}

// BooleanOrDefault is like Boolean but returns def on error.
func (p *Primitive) BooleanOrDefault(def bool) bool {
	v, err := p.Boolean()
	if err != nil {
		return def
	}
	return v
}
