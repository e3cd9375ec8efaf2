package asn1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_Bytes(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want []byte
	}{
		{"boolean", TagBoolean, []byte{0x01}},
		{"sequence", TagSequence, []byte{0x30}},
		{"set", TagSet, []byte{0x31}},
		{"explicit 0", ExplicitTag(0), []byte{0xa0}},
		{"implicit 2", ImplicitTag(2, false), []byte{0x82}},
		{"application 1", NewTag(ClassApplication, true, 1), []byte{0x61}},
		{"private 30", NewTag(ClassPrivate, false, 30), []byte{0xde}},
		{"number 31", NewTag(ClassContextSpecific, false, 31), []byte{0x9f, 0x1f}},
		{"number 127", NewTag(ClassUniversal, false, 127), []byte{0x1f, 0x7f}},
		{"number 128", NewTag(ClassApplication, true, 128), []byte{0x7f, 0x81, 0x00}},
		{"number 201", NewTag(ClassContextSpecific, true, 201), []byte{0xbf, 0x81, 0x49}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tag.Bytes()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), tt.tag.EncodedLength())

			decoded, n, err := DecodeTag(append(got, 0x00, 0x01))
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.tag, decoded)
			assert.True(t, tt.tag.Equal(decoded))
		})
	}
}

func TestTag_HighNumberRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 30, 31, 32, 127, 128, 16383, 16384, 1 << 32, 1<<64 - 1} {
		for _, class := range []Class{ClassUniversal, ClassApplication, ClassContextSpecific, ClassPrivate} {
			tag := NewTag(class, n%2 == 0, n)
			b := tag.Bytes()
			if n <= 30 {
				assert.Len(t, b, 1)
			} else {
				assert.Greater(t, len(b), 1)
				assert.Equal(t, byte(0x1f), b[0]&0x1f)
			}
			got, consumed, err := DecodeTag(b)
			require.NoError(t, err)
			assert.Equal(t, len(b), consumed)
			assert.Equal(t, tag, got)
		}
	}
}

func TestDecodeTag_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{"empty", nil, ErrTruncated},
		{"missing number", []byte{0x1f}, ErrTruncated},
		{"truncated number", []byte{0x1f, 0x81}, ErrTruncated},
		{"low number in high form", []byte{0x1f, 0x05}, ErrInvalidTag},
		{"leading 0x80", []byte{0x1f, 0x80, 0x7f}, ErrInvalidTag},
		{"overflow", []byte{0x1f, 0x82, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrInvalidTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeTag(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTag_EqualAndCompare(t *testing.T) {
	assert.True(t, TagInteger.Equal(NewTag(ClassUniversal, false, 2)))
	assert.False(t, TagInteger.Equal(ImplicitTag(2, false)))
	assert.False(t, ExplicitTag(0).Equal(ImplicitTag(0, false)))
	assert.Equal(t, 0, CompareTags(TagSet, TagSet))
	assert.Equal(t, -1, CompareTags(TagBoolean, TagInteger))
	assert.Equal(t, 1, CompareTags(ExplicitTag(0), TagSequence))
	assert.Equal(t, -1, CompareTags(NewTag(ClassUniversal, false, 31), TagSequence))
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "[UNIVERSAL 2]", TagInteger.String())
	assert.Equal(t, "[UNIVERSAL 16]/c", TagSequence.String())
	assert.Equal(t, "[3]/c", ExplicitTag(3).String())
	assert.Equal(t, "[APPLICATION 7]", NewTag(ClassApplication, false, 7).String())
	assert.Equal(t, "PRIVATE", ClassPrivate.String())
	assert.Equal(t, "Class(1)", Class(1).String())
}
