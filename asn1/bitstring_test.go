package asn1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitString(t *testing.T) {
	tests := []struct {
		name        string
		b           []byte
		paddingBits int
		wantDER     []byte
		wantErr     bool
	}{
		{"empty", nil, 0, []byte{0x03, 0x01, 0x00}, false},
		{"full octet", []byte{0xff}, 0, []byte{0x03, 0x02, 0x00, 0xff}, false},
		{"key usage", []byte{0xa0}, 5, []byte{0x03, 0x02, 0x05, 0xa0}, false},
		{"padding 7", []byte{0x80, 0x80}, 7, []byte{0x03, 0x03, 0x07, 0x80, 0x80}, false},
		{"padding too big", []byte{0x00}, 8, nil, true},
		{"negative padding", []byte{0x00}, -1, nil, true},
		{"padding on empty", nil, 1, nil, true},
		{"unused bits set", []byte{0x01}, 1, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := NewBitString(tt.b, tt.paddingBits)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBitString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDER, bs.Element().DER())

			decoded, err := bs.Element().BitString()
			require.NoError(t, err)
			assert.Equal(t, bs.PaddingBits, decoded.PaddingBits)
			assert.Equal(t, bs.BitLength(), decoded.BitLength())
		})
	}
}

func TestBitStringFromBitSet(t *testing.T) {
	tests := []struct {
		name        string
		set         *big.Int
		wantBytes   []byte
		wantPadding int
	}{
		{"empty", big.NewInt(0), []byte{}, 0},
		{"bit 0", big.NewInt(1), []byte{0x80}, 7},
		{"bits 0 and 2", big.NewInt(5), []byte{0xa0}, 5},
		{"eight bits", big.NewInt(0xff), []byte{0xff}, 0},
		{"length 9", big.NewInt(1 | 1<<8), []byte{0x80, 0x80}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := BitStringFromBitSet(tt.set)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBytes, bs.Bytes)
			assert.Equal(t, tt.wantPadding, bs.PaddingBits)
			assert.Equal(t, tt.set.BitLen(), bs.BitLength())
			assert.Equal(t, 0, bs.BitSet().Cmp(tt.set))
		})
	}

	_, err := BitStringFromBitSet(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrInvalidBitString)
}

func TestBitString_At(t *testing.T) {
	bs, err := NewBitString([]byte{0xa0}, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, bs.BitLength())
	assert.Equal(t, []int{1, 0, 1}, []int{bs.At(0), bs.At(1), bs.At(2)})
	assert.Equal(t, 0, bs.At(3))
	assert.Equal(t, 0, bs.At(-1))
}

func TestDecodeBitString_Errors(t *testing.T) {
	for name, content := range map[string][]byte{
		"missing padding octet": {},
		"padding out of range":  {0x08, 0x00},
		"padding on empty":      {0x01},
		"unused bits set":       {0x03, 0x07},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBitString(content)
			assert.ErrorIs(t, err, ErrInvalidBitString)
			assert.Nil(t, DecodeBitStringOrNil(content))
		})
	}

	bs := DecodeBitStringOrNil([]byte{0x07, 0x80})
	require.NotNil(t, bs)
	assert.Equal(t, 1, bs.BitLength())

	_, err := NewOctetString(nil).BitString()
	assert.ErrorIs(t, err, ErrTagMismatch)
	assert.Nil(t, NewNull().BitStringOrNil())
}

func TestNewBitStringElement(t *testing.T) {
	e := NewBitStringElement([]byte{0x04, 0x20})
	assert.Equal(t, []byte{0x03, 0x03, 0x00, 0x04, 0x20}, e.DER())
	bs := e.BitStringOrNil()
	require.NotNil(t, bs)
	assert.Equal(t, []byte{0x04, 0x20}, bs.Bytes)
}
