package asn1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	e, err := NewBuilder().Sequence(func(b *Builder) {
		b.Int64(-20)
		b.OID(OIDCommonName)
		b.Null()
		b.Explicit(0, func(b *Builder) {
			b.Bool(true)
		})
		b.Implicit(1, NewOctetString([]byte{0xca, 0xfe}).WithTag(TagOctetString))
		b.Encapsulate(func(b *Builder) {
			b.BitString(BitString{PaddingBits: 5, Bytes: []byte{0xa0}})
		})
		b.OctetString([]byte{0xff})
		b.UTF8String("hello")
		b.UTCTime(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	}).Build()
	require.NoError(t, err)

	want := `SEQUENCE (9 elem)
  INTEGER -20
  OBJECT IDENTIFIER 2.5.4.3
  NULL
  [0]/c (1 elem)
    BOOLEAN true
  [1] cafe
  OCTET STRING (1 elem)
    BIT STRING (3 bit) a0
  OCTET STRING ff
  UTF8String hello
  UTCTime 2024-03-01T12:00:00Z
`
	assert.Equal(t, want, Dump(e))
	assert.Equal(t, want, Dump(MustParse(e.DER())))
}

func TestElement_String(t *testing.T) {
	tests := []struct {
		name string
		e    Element
		want string
	}{
		{"integer", NewInt64(5), "INTEGER 5"},
		{"null", NewNull(), "NULL"},
		{"invalid boolean", newPrimitive(TagBoolean, []byte{0x01}), "BOOLEAN 01"},
		{"enumerated", NewEnumerated(1), "ENUMERATED 1"},
		{"set", NewSet(NewNull()), "SET (1 elem)"},
		{"application", newPrimitive(NewTag(ClassApplication, false, 3), []byte{0x01}), "[APPLICATION 3] 01"},
		{"unknown universal", newPrimitive(NewTag(ClassUniversal, false, 40), []byte{0x41}), "[UNIVERSAL 40] 41"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.String())
		})
	}
}
