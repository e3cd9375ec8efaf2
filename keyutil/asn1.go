package keyutil

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/asn1"
)

// expect is like asn1.Expect but reports a missing element as a tag
// mismatch, so callers can try another format.
func expect(e asn1.Element, t asn1.Tag) error {
	if e == nil {
		return errors.Wrapf(asn1.ErrTagMismatch, "expected %s, got nothing", t)
	}
	return asn1.Expect(e, t)
}

// sequence returns e as a SEQUENCE with at least n children.
func sequence(e asn1.Element, n int) (*asn1.Sequence, error) {
	seq, err := asn1.AsSequence(e)
	if err != nil {
		return nil, err
	}
	if seq.Len() < n {
		return nil, errors.Errorf("sequence has %d elements, expected at least %d", seq.Len(), n)
	}
	return seq, nil
}

func integer(e asn1.Element) (*big.Int, error) {
	p, err := asn1.AsPrimitive(e)
	if err != nil {
		return nil, err
	}
	return p.BigInt()
}

func integers(elems []asn1.Element) ([]*big.Int, error) {
	ints := make([]*big.Int, len(elems))
	for i, e := range elems {
		v, err := integer(e)
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	return ints, nil
}

// version checks that e is an INTEGER between minVersion and maxVersion.
func version(e asn1.Element, minVersion, maxVersion int64) error {
	p, err := asn1.AsPrimitive(e)
	if err != nil {
		return err
	}
	v, err := p.Int64()
	if err != nil {
		return err
	}
	if v < minVersion || v > maxVersion {
		return errors.Errorf("unsupported version %d", v)
	}
	return nil
}

// algorithmIdentifier returns the algorithm and the optional parameters of
// an AlgorithmIdentifier.
func algorithmIdentifier(e asn1.Element) (asn1.ObjectIdentifier, asn1.Element, error) {
	seq, err := sequence(e, 1)
	if err != nil {
		return asn1.ObjectIdentifier{}, nil, err
	}
	p, err := asn1.AsPrimitive(seq.At(0))
	if err != nil {
		return asn1.ObjectIdentifier{}, nil, err
	}
	oid, err := p.ObjectIdentifier()
	if err != nil {
		return asn1.ObjectIdentifier{}, nil, err
	}
	return oid, seq.At(1), nil
}

// octets returns the content of an OCTET STRING, whether or not it was
// decoded as encapsulating other elements.
func octets(e asn1.Element) ([]byte, error) {
	if err := expect(e, asn1.TagOctetString); err != nil {
		return nil, err
	}
	p, err := asn1.AsPrimitive(e)
	if err != nil {
		return nil, err
	}
	return p.Content(), nil
}

// bitString returns the octets of a BIT STRING holding a whole number of
// octets.
func bitString(e asn1.Element) ([]byte, error) {
	if err := expect(e, asn1.TagBitString); err != nil {
		return nil, err
	}
	p, err := asn1.AsPrimitive(e)
	if err != nil {
		return nil, err
	}
	bs, err := p.BitString()
	if err != nil {
		return nil, err
	}
	if bs.PaddingBits != 0 {
		return nil, errors.New("key bit string is not octet aligned")
	}
	return bs.Bytes, nil
}

func namedCurve(params asn1.Element) (elliptic.Curve, error) {
	if params == nil {
		return nil, errors.New("missing elliptic curve parameters")
	}
	p, err := asn1.AsPrimitive(params)
	if err != nil {
		return nil, err
	}
	oid, err := p.ObjectIdentifier()
	if err != nil {
		return nil, errors.Wrap(err, "unsupported elliptic curve parameters")
	}
	switch {
	case oid.Equal(asn1.OIDNamedCurveP256):
		return elliptic.P256(), nil
	case oid.Equal(asn1.OIDNamedCurveP384):
		return elliptic.P384(), nil
	case oid.Equal(asn1.OIDNamedCurveP521):
		return elliptic.P521(), nil
	default:
		return nil, errors.Errorf("unsupported elliptic curve %s", oid)
	}
}

func ecdhCurve(curve elliptic.Curve) ecdh.Curve {
	switch curve {
	case elliptic.P256():
		return ecdh.P256()
	case elliptic.P384():
		return ecdh.P384()
	default:
		return ecdh.P521()
	}
}

// newECDSAPublicKey returns the key of an uncompressed curve point.
func newECDSAPublicKey(curve elliptic.Curve, point []byte) (*ecdsa.PublicKey, error) {
	if _, err := ecdhCurve(curve).NewPublicKey(point); err != nil {
		return nil, errors.Wrap(err, "invalid elliptic curve point")
	}
	size := (curve.Params().BitSize + 7) / 8
	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(point[1 : 1+size]),
		Y:     new(big.Int).SetBytes(point[1+size:]),
	}, nil
}

// newECDSAPrivateKey returns the key with the given scalar, which may have
// lost its leading zero octets.
func newECDSAPrivateKey(curve elliptic.Curve, d []byte) (*ecdsa.PrivateKey, error) {
	size := (curve.Params().BitSize + 7) / 8
	if len(d) > size {
		return nil, errors.Errorf("invalid elliptic curve private key size %d", len(d))
	}
	scalar := make([]byte, size)
	copy(scalar[size-len(d):], d)
	priv, err := ecdhCurve(curve).NewPrivateKey(scalar)
	if err != nil {
		return nil, errors.Wrap(err, "invalid elliptic curve private key")
	}
	pub, err := newECDSAPublicKey(curve, priv.PublicKey().Bytes())
	if err != nil {
		return nil, err
	}
	return &ecdsa.PrivateKey{PublicKey: *pub, D: new(big.Int).SetBytes(scalar)}, nil
}
