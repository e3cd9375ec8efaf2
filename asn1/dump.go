package asn1

import (
	"encoding/hex"
	"fmt"
	"strings"
)

var universalNames = map[uint64]string{
	UniversalBoolean:         "BOOLEAN",
	UniversalInteger:         "INTEGER",
	UniversalBitString:       "BIT STRING",
	UniversalOctetString:     "OCTET STRING",
	UniversalNull:            "NULL",
	UniversalOID:             "OBJECT IDENTIFIER",
	UniversalEnumerated:      "ENUMERATED",
	UniversalUTF8String:      "UTF8String",
	UniversalSequence:        "SEQUENCE",
	UniversalSet:             "SET",
	UniversalNumericString:   "NumericString",
	UniversalPrintableString: "PrintableString",
	UniversalT61String:       "T61String",
	UniversalIA5String:       "IA5String",
	UniversalUTCTime:         "UTCTime",
	UniversalGeneralizedTime: "GeneralizedTime",
	UniversalVisibleString:   "VisibleString",
	UniversalUniversalString: "UniversalString",
	UniversalBMPString:       "BMPString",
}

func tagName(t Tag) string {
	if t.Class == ClassUniversal {
		if name, ok := universalNames[t.Number]; ok {
			return name
		}
	}
	return t.String()
}

// String returns a one-line description of the element.
func (p *Primitive) String() string { return describe(p) }

// describe returns the tag name of e followed by its decoded value, or the
// number of children for structures.
func describe(e Element) string {
	name := tagName(e.Tag())
	if s, ok := e.(Structure); ok {
		return fmt.Sprintf("%s (%d elem)", name, len(s.Children()))
	}
	p, err := AsPrimitive(e)
	if err != nil {
		return name
	}
	if v := value(p); v != "" {
		return name + " " + v
	}
	return name
}

func value(p *Primitive) string {
	if p.tag.Class != ClassUniversal {
		return hex.EncodeToString(p.content)
	}
	switch p.tag.Number {
	case UniversalBoolean:
		if v, err := p.Boolean(); err == nil {
			return fmt.Sprint(v)
		}
	case UniversalInteger:
		if v, err := p.BigInt(); err == nil {
			return v.String()
		}
	case UniversalEnumerated:
		if v, err := p.Enumerated(); err == nil {
			return fmt.Sprint(v)
		}
	case UniversalNull:
		return ""
	case UniversalOID:
		if v, err := p.ObjectIdentifier(); err == nil {
			return v.String()
		}
	case UniversalBitString:
		if v, err := p.BitString(); err == nil {
			return fmt.Sprintf("(%d bit) %s", v.BitLength(), hex.EncodeToString(v.Bytes))
		}
	case UniversalUTCTime, UniversalGeneralizedTime:
		if v, err := p.Time(); err == nil {
			return v.Format("2006-01-02T15:04:05.999999999Z07:00")
		}
	default:
		if s, err := p.Text(); err == nil {
			return s
		}
	}
	return hex.EncodeToString(p.content)
}

// Dump returns an indented, multi-line description of the tree rooted at e,
// one element per line.
func Dump(e Element) string {
	var sb strings.Builder
	dump(&sb, e, 0)
	return sb.String()
}

func dump(sb *strings.Builder, e Element, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(describe(e))
	sb.WriteByte('\n')
	if s, ok := e.(Structure); ok {
		for _, c := range s.Children() {
			dump(sb, c, depth+1)
		}
	}
}
