package asn1

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/internal/utils"
)

// NewUTF8String returns a UTF8String.
func NewUTF8String(s string) (*Primitive, error) {
	if !utf8.ValidString(s) {
		return nil, invalidValue("invalid UTF-8 in UTF8String")
	}
	return newPrimitive(TagUTF8String, []byte(s)), nil
}

// NewPrintableString returns a PrintableString.
func NewPrintableString(s string) (*Primitive, error) {
	if !utils.IsPrintableString(s, false, false) {
		return nil, invalidValue("%q is not a valid PrintableString", s)
	}
	return newPrimitive(TagPrintableString, []byte(s)), nil
}

// NewIA5String returns an IA5String.
func NewIA5String(s string) (*Primitive, error) {
	if !utils.IsIA5String(s) {
		return nil, invalidValue("%q is not a valid IA5String", s)
	}
	return newPrimitive(TagIA5String, []byte(s)), nil
}

// NewNumericString returns a NumericString.
func NewNumericString(s string) (*Primitive, error) {
	if !utils.IsNumericString(s) {
		return nil, invalidValue("%q is not a valid NumericString", s)
	}
	return newPrimitive(TagNumericString, []byte(s)), nil
}

// NewVisibleString returns a VisibleString.
func NewVisibleString(s string) (*Primitive, error) {
	if !utils.IsVisibleString(s) {
		return nil, invalidValue("%q is not a valid VisibleString", s)
	}
	return newPrimitive(TagVisibleString, []byte(s)), nil
}

// NewBMPString returns a BMPString, encoded as UTF-16BE. Characters outside
// the basic multilingual plane are rejected.
func NewBMPString(s string) (*Primitive, error) {
	if !utf8.ValidString(s) {
		return nil, invalidValue("invalid UTF-8 in BMPString")
	}
	b := make([]byte, 0, 2*len(s))
	for _, r := range s {
		if r > 0xffff || utf16.IsSurrogate(r) {
			return nil, invalidValue("rune %U is not allowed in BMPString", r)
		}
		b = binary.BigEndian.AppendUint16(b, uint16(r))
	}
	return newPrimitive(TagBMPString, b), nil
}

// NewUniversalString returns a UniversalString, encoded as UTF-32BE.
func NewUniversalString(s string) (*Primitive, error) {
	if !utf8.ValidString(s) {
		return nil, invalidValue("invalid UTF-8 in UniversalString")
	}
	b := make([]byte, 0, 4*len(s))
	for _, r := range s {
		b = binary.BigEndian.AppendUint32(b, uint32(r))
	}
	return newPrimitive(TagUniversalString, b), nil
}

// Text decodes any of the supported string types into a Go string. T61String
// content is interpreted as ISO 8859-1.
func (p *Primitive) Text() (string, error) {
	if p.tag.Class != ClassUniversal || p.tag.Constructed {
		return "", &TagMismatchError{Expected: TagUTF8String, Actual: p.tag}
	}
	c := p.content
	switch p.tag.Number {
	case UniversalUTF8String:
		if !utf8.Valid(c) {
			return "", invalidValue("invalid UTF-8 in UTF8String")
		}
		return string(c), nil
	case UniversalPrintableString:
		if !utils.IsPrintableString(string(c), true, true) {
			return "", invalidValue("invalid PrintableString")
		}
		return string(c), nil
	case UniversalIA5String:
		if !utils.IsIA5String(string(c)) {
			return "", invalidValue("invalid IA5String")
		}
		return string(c), nil
	case UniversalNumericString:
		if !utils.IsNumericString(string(c)) {
			return "", invalidValue("invalid NumericString")
		}
		return string(c), nil
	case UniversalVisibleString:
		if !utils.IsVisibleString(string(c)) {
			return "", invalidValue("invalid VisibleString")
		}
		return string(c), nil
	case UniversalT61String:
		runes := make([]rune, len(c))
		for i, b := range c {
			runes[i] = rune(b)
		}
		return string(runes), nil
	case UniversalBMPString:
		return decodeBMPString(c)
	case UniversalUniversalString:
		return decodeUniversalString(c)
	default:
		return "", &TagMismatchError{Expected: TagUTF8String, Actual: p.tag}
	}
}

// TextOrDefault is like Text but returns def on error.
func (p *Primitive) TextOrDefault(def string) string {
	s, err := p.Text()
	if err != nil {
		return def
	}
	return s
}

func decodeBMPString(c []byte) (string, error) {
	if len(c)%2 != 0 {
		return "", errors.Wrap(ErrInvalidValue, "odd length BMPString")
	}
	u := make([]uint16, len(c)/2)
	for i := range u {
		u[i] = binary.BigEndian.Uint16(c[2*i:])
		if utf16.IsSurrogate(rune(u[i])) {
			return "", errors.Wrap(ErrInvalidValue, "surrogate in BMPString")
		}
	}
	return string(utf16.Decode(u)), nil
}

func decodeUniversalString(c []byte) (string, error) {
	if len(c)%4 != 0 {
		return "", errors.Wrap(ErrInvalidValue, "UniversalString length is not a multiple of 4")
	}
	runes := make([]rune, len(c)/4)
	for i := range runes {
		r := rune(binary.BigEndian.Uint32(c[4*i:]))
		if !utf8.ValidRune(r) {
			return "", errors.Wrapf(ErrInvalidValue, "invalid rune %U in UniversalString", r)
		}
		runes[i] = r
	}
	return string(runes), nil
}
