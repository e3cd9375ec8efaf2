package asn1

import (
	"github.com/pkg/errors"
)

// TLV is a single tag-length-value triple read off the wire, before its
// content is interpreted.
type TLV struct {
	Tag     Tag
	Content []byte

	headerLength int
}

// HeaderLength returns the number of tag and length octets.
func (t TLV) HeaderLength() int {
	return t.headerLength
}

// OverallLength returns the number of octets the TLV occupies in the input.
func (t TLV) OverallLength() int {
	return t.headerLength + len(t.Content)
}

// ReadTLV reads the TLV at the beginning of b. Content is a sub-slice of b.
func ReadTLV(b []byte, opts ...ParseOption) (TLV, error) {
	return readTLV(b, newOptions().apply(opts))
}

func readTLV(b []byte, o *options) (TLV, error) {
	tag, tagLen, err := DecodeTag(b)
	if err != nil {
		return TLV{}, err
	}
	n, lenLen, err := decodeLength(b[tagLen:], !o.BER)
	if err != nil {
		return TLV{}, err
	}
	if o.MaxContentLength > 0 && n > o.MaxContentLength {
		return TLV{}, errors.Wrapf(ErrContentTooLong, "declared length %d, maximum %d", n, o.MaxContentLength)
	}
	header := tagLen + lenLen
	if len(b)-header < n {
		return TLV{}, errors.Wrapf(ErrTruncated, "declared length %d, %d bytes available", n, len(b)-header)
	}
	return TLV{
		Tag:          tag,
		Content:      b[header : header+n],
		headerLength: header,
	}, nil
}

// ReadTLVs splits b into consecutive TLVs.
func ReadTLVs(b []byte, opts ...ParseOption) ([]TLV, error) {
	o := newOptions().apply(opts)
	var tlvs []TLV
	for off := 0; off < len(b); {
		t, err := readTLV(b[off:], o)
		if err != nil {
			return nil, syntaxError(off, err)
		}
		tlvs = append(tlvs, t)
		off += t.OverallLength()
	}
	return tlvs, nil
}
