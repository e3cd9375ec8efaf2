package asn1

import (
	encoding_asn1 "encoding/asn1"
	"encoding/pem"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCRT = `-----BEGIN CERTIFICATE-----
MIICLjCCAdSgAwIBAgIQBvswFbAODY9xtJ/myiuEHzAKBggqhkjOPQQDAjAkMSIw
IAYDVQQDExlTbWFsbHN0ZXAgSW50ZXJtZWRpYXRlIENBMB4XDTE4MTEzMDE5NTkw
OVoXDTE4MTIwMTE5NTkwOVowHjEcMBoGA1UEAxMTaGVsbG8uc21hbGxzdGVwLmNv
bTBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IABIqPQy8roJTMWpEt8NNA1CnRm3l1
wdjH4OrVaH3l2Gp/UW737Wbn4sqSAFahmajuwkfRG5KMh2/+xnCkGuR2fayjge0w
geowDgYDVR0PAQH/BAQDAgWgMB0GA1UdJQQWMBQGCCsGAQUFBwMBBggrBgEFBQcD
AjAdBgNVHQ4EFgQU5bqyXvZaEmtZ3OpZapq7pBIkVvgwHwYDVR0jBBgwFoAUu97P
aFQPfuyKOeew7Hg45WFIAVMwHgYDVR0RBBcwFYITaGVsbG8uc21hbGxzdGVwLmNv
bTBZBgwrBgEEAYKkZMYoQAEESTBHAgEBBBVtYXJpYW5vQHNtYWxsc3RlcC5jb20E
K2pPMzdkdERia3UtUW5hYnM1VlIwWXc2WUZGdjl3ZUExOGRwM2h0dmRFanMwCgYI
KoZIzj0EAwIDSAAwRQIhALKeC2q0HWyHoZobZFK9HQynLbPOOtAK437RaetlX5ty
AiBXQzvaLlDprQu+THj18aDYLnHA//5mdD3HPJV6KmgdDg==
-----END CERTIFICATE-----`

func certificateDER(t *testing.T) []byte {
	t.Helper()
	block, _ := pem.Decode([]byte(testCRT))
	require.NotNil(t, block)
	return block.Bytes
}

func TestParse_Certificate(t *testing.T) {
	der := certificateDER(t)
	e, err := Parse(der)
	require.NoError(t, err)
	assert.Equal(t, der, e.DER())
	assert.Equal(t, len(der), e.EncodedLength())

	cert, err := AsSequence(e)
	require.NoError(t, err)
	require.Equal(t, 3, cert.Len())

	tbs, err := AsSequence(cert.At(0))
	require.NoError(t, err)

	version, err := AsTagged(tbs.At(0), 0)
	require.NoError(t, err)
	inner, err := version.Inner()
	require.NoError(t, err)
	p, err := AsPrimitive(inner)
	require.NoError(t, err)
	v, err := p.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	serial, err := AsPrimitive(tbs.At(1))
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("06fb3015b00e0d8f71b49fe6ca2b841f", 16)
	assert.Equal(t, want, serial.BigIntOrNil())

	algo, err := AsSequence(cert.At(1))
	require.NoError(t, err)
	oid, err := AsPrimitive(algo.At(0))
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10045.4.3.2", oid.ObjectIdentifierOrNil().String())

	sig, err := AsPrimitive(cert.At(2))
	require.NoError(t, err)
	bs, err := sig.BitString()
	require.NoError(t, err)
	assert.Equal(t, 0, bs.PaddingBits)
	assert.Equal(t, 71, len(bs.Bytes))

	again, err := Parse(e.DER())
	require.NoError(t, err)
	assert.True(t, again.Equal(e))
}

func TestParse_ExtensionValuesAreEncapsulated(t *testing.T) {
	e, err := Parse(certificateDER(t))
	require.NoError(t, err)
	cert := e.(*Sequence)
	tbs := cert.At(0).(*Sequence)
	exts, err := AsTagged(tbs.At(7), 3)
	require.NoError(t, err)
	list := exts.At(0).(*Sequence)
	require.Equal(t, 6, list.Len())

	keyUsage := list.At(0).(*Sequence)
	oid, err := AsPrimitive(keyUsage.At(0))
	require.NoError(t, err)
	assert.True(t, OIDKeyUsage.Equal(*oid.ObjectIdentifierOrNil()))
	assert.True(t, keyUsage.At(1).(*Primitive).BooleanOrDefault(false))

	value, ok := keyUsage.At(2).(*EncapsulatingOctetString)
	require.True(t, ok, "got %T", keyUsage.At(2))
	require.Equal(t, 1, value.Len())
	bits, err := AsPrimitive(value.At(0))
	require.NoError(t, err)
	bs, err := bits.BitString()
	require.NoError(t, err)
	assert.Equal(t, 5, bs.PaddingBits)
	assert.Equal(t, []byte{0xa0}, bs.Bytes)
	assert.Equal(t, []byte{0x03, 0x02, 0x05, 0xa0}, value.Bytes())
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		der  []byte
	}{
		{"null", []byte{0x05, 0x00}},
		{"integer", []byte{0x02, 0x02, 0x00, 0xec}},
		{"empty sequence", []byte{0x30, 0x00}},
		{"empty set", []byte{0x31, 0x00}},
		{"nested", []byte{0x30, 0x08, 0x31, 0x06, 0x01, 0x01, 0xff, 0x02, 0x01, 0x01}},
		{"explicit", []byte{0xa1, 0x03, 0x02, 0x01, 0x05}},
		{"implicit primitive", []byte{0x81, 0x02, 0xca, 0xfe}},
		{"application", []byte{0x61, 0x02, 0x05, 0x00}},
		{"private primitive", []byte{0xc2, 0x01, 0x00}},
		{"high tag", []byte{0xbf, 0x81, 0x49, 0x02, 0x05, 0x00}},
		{"opaque octet string", []byte{0x04, 0x03, 0x01, 0x02, 0x03}},
		{"empty octet string", []byte{0x04, 0x00}},
		{"encapsulating octet string", []byte{0x04, 0x04, 0x30, 0x02, 0x05, 0x00}},
		{"long form", append([]byte{0x04, 0x81, 0x80}, make([]byte, 128)...)},
		{"printable", []byte{0x13, 0x02, 'h', 'i'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.der)
			require.NoError(t, err)
			assert.Equal(t, tt.der, e.DER())
			assert.Equal(t, len(tt.der), e.EncodedLength())
			assert.True(t, MustParse(e.DER()).Equal(e))
		})
	}
}

func TestParse_Classification(t *testing.T) {
	tests := []struct {
		name string
		der  []byte
		want Element
	}{
		{"sequence", []byte{0x30, 0x00}, &Sequence{}},
		{"set", []byte{0x31, 0x00}, &Set{}},
		{"tagged", []byte{0xa0, 0x00}, &Tagged{}},
		{"application", []byte{0x60, 0x00}, &CustomStructure{}},
		{"constructed universal", []byte{0x24, 0x00}, &CustomStructure{}},
		{"primitive", []byte{0x02, 0x01, 0x00}, &Primitive{}},
		{"implicit", []byte{0x80, 0x01, 0x00}, &Primitive{}},
		{"octet string", []byte{0x04, 0x01, 0x00}, &PrimitiveOctetString{}},
		{"encapsulating", []byte{0x04, 0x02, 0x05, 0x00}, &EncapsulatingOctetString{}},
		{"non canonical content stays opaque", []byte{0x04, 0x08, 0x31, 0x06, 0x02, 0x01, 0x01, 0x01, 0x01, 0xff}, &PrimitiveOctetString{}},
		{"trailing garbage stays opaque", []byte{0x04, 0x03, 0x05, 0x00, 0x01}, &PrimitiveOctetString{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.der)
			require.NoError(t, err)
			assert.IsType(t, tt.want, e)
		})
	}
}

func TestParse_WithoutEncapsulation(t *testing.T) {
	der := []byte{0x04, 0x02, 0x05, 0x00}
	e, err := Parse(der, WithoutEncapsulation())
	require.NoError(t, err)
	o, ok := e.(*PrimitiveOctetString)
	require.True(t, ok)
	assert.Equal(t, []byte{0x05, 0x00}, o.Bytes())
	assert.False(t, e.Equal(MustParse(der)))
}

func TestParse_SortsSet(t *testing.T) {
	e, err := Parse([]byte{0x31, 0x06, 0x02, 0x01, 0x01, 0x01, 0x01, 0xff})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x31, 0x06, 0x01, 0x01, 0xff, 0x02, 0x01, 0x01}, e.DER())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		der     []byte
		wantErr error
		offset  int
	}{
		{"empty", nil, ErrEmpty, -1},
		{"two roots", []byte{0x05, 0x00, 0x05, 0x00}, ErrMultipleRoots, 2},
		{"trailing byte", []byte{0x05, 0x00, 0x00}, ErrTrailingData, 2},
		{"trailing truncated element", []byte{0x30, 0x00, 0x02, 0x05, 0x01}, ErrTrailingData, 2},
		{"trailing zero padding", []byte{0x02, 0x01, 0x01, 0x00, 0x00}, ErrTrailingData, 3},
		{"truncated", []byte{0x30, 0x03, 0x02, 0x01}, ErrTruncated, 0},
		{"truncated child", []byte{0x30, 0x03, 0x02, 0x05, 0x01}, ErrTruncated, 2},
		{"primitive sequence", []byte{0x10, 0x00}, ErrNotConstructed, 0},
		{"primitive set", []byte{0x30, 0x02, 0x11, 0x00}, ErrNotConstructed, 2},
		{"end of contents", []byte{0x30, 0x02, 0x00, 0x00}, ErrInvalidTag, 2},
		{"indefinite", []byte{0x30, 0x80, 0x00, 0x00}, ErrIndefiniteLength, 0},
		{"bad tag", []byte{0x1f, 0x80}, ErrInvalidTag, 0},
		{"too long", []byte{0x04, 0x83, 0x20, 0x00, 0x00}, ErrContentTooLong, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.der)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.offset >= 0 {
				var se *SyntaxError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.offset, se.Offset)
			}
			assert.Nil(t, ParseOrNil(tt.der))
			assert.Panics(t, func() { MustParse(tt.der) })
		})
	}
}

func nested(depth int) []byte {
	der := []byte{0x05, 0x00}
	for i := 1; i < depth; i++ {
		der = append(append([]byte{0x30}, EncodeLength(len(der))...), der...)
	}
	return der
}

func TestParse_MaxDepth(t *testing.T) {
	_, err := Parse(nested(DefaultMaxDepth))
	require.NoError(t, err)

	_, err = Parse(nested(DefaultMaxDepth + 1))
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, err = Parse(nested(10), WithMaxDepth(9))
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, err = Parse(nested(5000))
	assert.ErrorIs(t, err, ErrMaxDepth)
}

func TestParse_DoesNotAlias(t *testing.T) {
	der := []byte{0x04, 0x02, 0xaa, 0xbb}
	e, err := Parse(der)
	require.NoError(t, err)
	der[2] = 0x00
	assert.Equal(t, []byte{0xaa, 0xbb}, e.Content())
}

func TestParseAll(t *testing.T) {
	elems, err := ParseAll([]byte{0x05, 0x00, 0x02, 0x01, 0x03})
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.True(t, elems[0].(*Primitive).IsNull())
	assert.Equal(t, int64(3), elems[1].(*Primitive).Int64OrDefault(0))
}

type interopRecord struct {
	Version int
	Name    string `asn1:"utf8"`
	Flags   encoding_asn1.BitString
	ID      encoding_asn1.ObjectIdentifier
	Data    []byte
	Extra   int `asn1:"explicit,tag:0"`
	Members []int `asn1:"set"`
}

func TestParse_EncodingASN1Interop(t *testing.T) {
	rec := interopRecord{
		Version: -20,
		Name:    "héllo",
		Flags:   encoding_asn1.BitString{Bytes: []byte{0x80}, BitLength: 1},
		ID:      encoding_asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11},
		Data:    []byte("opaque"),
		Extra:   236,
		Members: []int{3},
	}
	der, err := encoding_asn1.Marshal(rec)
	require.NoError(t, err)

	e, err := Parse(der)
	require.NoError(t, err)
	assert.Equal(t, der, e.DER())

	built, err := NewBuilder().Sequence(func(b *Builder) {
		b.Int64(-20)
		b.UTF8String("héllo")
		b.BitString(BitString{PaddingBits: 7, Bytes: []byte{0x80}})
		b.OID(OIDSHA256WithRSA)
		b.OctetString([]byte("opaque"))
		b.Explicit(0, func(b *Builder) { b.Int64(236) })
		b.SetOf(func(b *Builder) { b.Int64(3) })
	}).Build()
	require.NoError(t, err)
	assert.Equal(t, der, built.DER())
	assert.True(t, built.Equal(e))

	var back interopRecord
	rest, err := encoding_asn1.Unmarshal(built.DER(), &back)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, rec, back)
}
