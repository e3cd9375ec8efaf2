package asn1

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteger(t *testing.T) {
	huge, ok := new(big.Int).SetString("18446744073709551616", 10)
	require.True(t, ok)

	tests := []struct {
		name string
		elem *Primitive
		want []byte
	}{
		{"zero", NewInt64(0), []byte{0x02, 0x01, 0x00}},
		{"one", NewInt64(1), []byte{0x02, 0x01, 0x01}},
		{"127", NewInt64(127), []byte{0x02, 0x01, 0x7f}},
		{"128", NewInt64(128), []byte{0x02, 0x02, 0x00, 0x80}},
		{"236", NewInt64(236), []byte{0x02, 0x02, 0x00, 0xec}},
		{"-1", NewInt64(-1), []byte{0x02, 0x01, 0xff}},
		{"-20", NewInt64(-20), []byte{0x02, 0x01, 0xec}},
		{"-128", NewInt64(-128), []byte{0x02, 0x01, 0x80}},
		{"-129", NewInt64(-129), []byte{0x02, 0x02, 0xff, 0x7f}},
		{"min int64", NewInt64(math.MinInt64), []byte{0x02, 0x08, 0x80, 0, 0, 0, 0, 0, 0, 0}},
		{"max uint64", NewUint64(math.MaxUint64), []byte{0x02, 0x09, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"2^64", NewInteger(huge), []byte{0x02, 0x09, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"enumerated", NewEnumerated(3), []byte{0x0a, 0x01, 0x03}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.elem.DER())
		})
	}
}

func TestPrimitive_BigInt(t *testing.T) {
	tests := []struct {
		name    string
		der     []byte
		want    int64
		wantErr error
	}{
		{"zero", []byte{0x02, 0x01, 0x00}, 0, nil},
		{"negative", []byte{0x02, 0x01, 0xec}, -20, nil},
		{"positive with sign octet", []byte{0x02, 0x02, 0x00, 0xec}, 236, nil},
		{"empty", []byte{0x02, 0x00}, 0, ErrInvalidValue},
		{"leading zero", []byte{0x02, 0x02, 0x00, 0x01}, 0, ErrInvalidValue},
		{"leading ones", []byte{0x02, 0x02, 0xff, 0x80}, 0, ErrInvalidValue},
		{"wrong tag", []byte{0x0a, 0x01, 0x01}, 0, ErrTagMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := AsPrimitive(MustParse(tt.der))
			require.NoError(t, err)
			got, err := p.BigInt()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p.BigIntOrNil())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, got.Cmp(big.NewInt(tt.want)))
		})
	}
}

func TestPrimitive_Int64(t *testing.T) {
	v, err := NewInt64(math.MaxInt64).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	_, err = NewUint64(math.MaxUint64).Int64()
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, int64(42), NewUint64(math.MaxUint64).Int64OrDefault(42))

	u, err := NewUint64(math.MaxUint64).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u)

	_, err = NewInt64(-1).Uint64()
	assert.ErrorIs(t, err, ErrInvalidValue)

	e, err := NewEnumerated(-2).Enumerated()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), e)

	_, err = NewInt64(1).Enumerated()
	assert.ErrorIs(t, err, ErrTagMismatch)
}

func TestPrimitive_Boolean(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x01, 0xff}, NewBoolean(true).DER())
	assert.Equal(t, []byte{0x01, 0x01, 0x00}, NewBoolean(false).DER())

	tests := []struct {
		name    string
		der     []byte
		want    bool
		wantErr error
	}{
		{"true", []byte{0x01, 0x01, 0xff}, true, nil},
		{"false", []byte{0x01, 0x01, 0x00}, false, nil},
		{"not der", []byte{0x01, 0x01, 0x01}, false, ErrInvalidValue},
		{"empty", []byte{0x01, 0x00}, false, ErrInvalidValue},
		{"too long", []byte{0x01, 0x02, 0xff, 0xff}, false, ErrInvalidValue},
		{"wrong tag", []byte{0x02, 0x01, 0xff}, false, ErrTagMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := AsPrimitive(MustParse(tt.der))
			require.NoError(t, err)
			got, err := p.Boolean()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, p.BooleanOrDefault(true))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrimitive_IsNull(t *testing.T) {
	assert.Equal(t, []byte{0x05, 0x00}, NewNull().DER())
	assert.True(t, NewNull().IsNull())
	assert.False(t, NewInt64(0).IsNull())

	p, err := AsPrimitive(MustParse([]byte{0x05, 0x01, 0x00}))
	require.NoError(t, err)
	assert.False(t, p.IsNull())
}

func TestPrimitive_OrDefault(t *testing.T) {
	tests := []struct {
		name           string
		p              *Primitive
		wantUint64     uint64
		wantEnumerated int64
	}{
		{"integer", NewInt64(7), 7, -1},
		{"negative integer", NewInt64(-7), 42, -1},
		{"max uint64", NewUint64(math.MaxUint64), math.MaxUint64, -1},
		{"enumerated", NewEnumerated(3), 42, 3},
		{"not minimal", newPrimitive(TagEnumerated, []byte{0x00, 0x01}), 42, -1},
		{"null", NewNull(), 42, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUint64, tt.p.Uint64OrDefault(42))
			assert.Equal(t, tt.wantEnumerated, tt.p.EnumeratedOrDefault(-1))
		})
	}
}
