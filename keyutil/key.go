// Package keyutil implements utilities to parse and inspect public and
// private keys encoded as PKIX, PKCS #8, SEC 1 or PKCS #1 structures.
package keyutil

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/asn1kit/crypto/asn1"
	"github.com/asn1kit/crypto/internal/utils"
	"github.com/asn1kit/crypto/pemutil"
)

// PublicKey extracts a public key from a private key. Public keys are
// returned as they are.
func PublicKey(priv interface{}) (crypto.PublicKey, error) {
	switch k := priv.(type) {
	case *rsa.PrivateKey:
		return &k.PublicKey, nil
	case *ecdsa.PrivateKey:
		return &k.PublicKey, nil
	case ed25519.PrivateKey:
		return k.Public(), nil
	case *ecdh.PrivateKey:
		return k.PublicKey(), nil
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey, *ecdh.PublicKey:
		return k, nil
	default:
		return nil, errors.Errorf("unrecognized key type: %T", priv)
	}
}

// ParsePKIXPublicKey parses a DER encoded SubjectPublicKeyInfo. It returns
// an *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey or X25519
// *ecdh.PublicKey.
func ParsePKIXPublicKey(der []byte) (crypto.PublicKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}
	pub, err := parsePublicKeyInfo(e)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing public key")
	}
	return pub, nil
}

func parsePublicKeyInfo(e asn1.Element) (crypto.PublicKey, error) {
	spki, err := sequence(e, 2)
	if err != nil {
		return nil, err
	}
	algorithm, params, err := algorithmIdentifier(spki.At(0))
	if err != nil {
		return nil, err
	}
	key, err := bitString(spki.At(1))
	if err != nil {
		return nil, err
	}

	switch {
	case algorithm.Equal(asn1.OIDRSAEncryption):
		return ParsePKCS1PublicKey(key)
	case algorithm.Equal(asn1.OIDECPublicKey):
		curve, err := namedCurve(params)
		if err != nil {
			return nil, err
		}
		return newECDSAPublicKey(curve, key)
	case algorithm.Equal(asn1.OIDEd25519):
		if params != nil {
			return nil, errors.New("ed25519 key must not have parameters")
		}
		if len(key) != ed25519.PublicKeySize {
			return nil, errors.Errorf("invalid ed25519 public key size %d", len(key))
		}
		return ed25519.PublicKey(key), nil
	case algorithm.Equal(asn1.OIDX25519):
		if params != nil {
			return nil, errors.New("x25519 key must not have parameters")
		}
		return ecdh.X25519().NewPublicKey(key)
	default:
		return nil, errors.Errorf("unsupported public key algorithm %s", algorithm)
	}
}

// ParsePKCS1PublicKey parses a DER encoded PKCS #1 RSAPublicKey.
func ParsePKCS1PublicKey(der []byte) (*rsa.PublicKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing rsa public key")
	}
	seq, err := sequence(e, 2)
	if err != nil {
		return nil, err
	}
	if seq.Len() != 2 {
		return nil, errors.Errorf("rsa public key has %d fields", seq.Len())
	}
	ints, err := integers(seq.Children())
	if err != nil {
		return nil, err
	}
	return newRSAPublicKey(ints[0], ints[1])
}

func newRSAPublicKey(n, e *big.Int) (*rsa.PublicKey, error) {
	if n.Sign() <= 0 {
		return nil, errors.New("rsa modulus is not positive")
	}
	if !e.IsInt64() || e.Int64() < 2 || e.Int64() > 1<<31-1 {
		return nil, errors.Errorf("invalid rsa public exponent %s", e)
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

// ParsePrivateKey parses a DER encoded private key. PKCS #8 is tried first,
// then SEC 1 and PKCS #1; a format is abandoned only when the structure
// carries a tag it does not expect. It returns an *rsa.PrivateKey,
// *ecdsa.PrivateKey, ed25519.PrivateKey or X25519 *ecdh.PrivateKey.
func ParsePrivateKey(der []byte) (crypto.PrivateKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing private key")
	}

	formats := []struct {
		name  string
		parse func(asn1.Element) (crypto.PrivateKey, error)
	}{
		{"PKCS#8", parsePKCS8},
		{"EC", func(e asn1.Element) (crypto.PrivateKey, error) { return parseECPrivateKey(e, nil) }},
		{"PKCS#1", func(e asn1.Element) (crypto.PrivateKey, error) { return parsePKCS1PrivateKey(e) }},
	}
	for _, f := range formats {
		key, err := f.parse(e)
		switch {
		case errors.Is(err, asn1.ErrTagMismatch):
			continue
		case err != nil:
			return nil, errors.Wrapf(err, "error parsing %s private key", f.name)
		}
		return key, nil
	}
	return nil, errors.New("error parsing private key: unsupported format")
}

// ParsePKCS8PrivateKey parses a DER encoded PKCS #8 PrivateKeyInfo.
func ParsePKCS8PrivateKey(der []byte) (crypto.PrivateKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing PKCS#8 private key")
	}
	key, err := parsePKCS8(e)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing PKCS#8 private key")
	}
	return key, nil
}

func parsePKCS8(e asn1.Element) (crypto.PrivateKey, error) {
	seq, err := asn1.AsSequence(e)
	if err != nil {
		return nil, err
	}
	if err := expect(seq.At(1), asn1.TagSequence); err != nil {
		return nil, err
	}
	if seq.Len() < 3 {
		return nil, errors.Errorf("PKCS#8 private key has %d fields", seq.Len())
	}
	if err := version(seq.At(0), 0, 1); err != nil {
		return nil, err
	}
	algorithm, params, err := algorithmIdentifier(seq.At(1))
	if err != nil {
		return nil, err
	}
	key, err := octets(seq.At(2))
	if err != nil {
		return nil, err
	}

	switch {
	case algorithm.Equal(asn1.OIDRSAEncryption):
		inner, err := asn1.Parse(key)
		if err != nil {
			return nil, err
		}
		return parsePKCS1PrivateKey(inner)
	case algorithm.Equal(asn1.OIDECPublicKey):
		curve, err := namedCurve(params)
		if err != nil {
			return nil, err
		}
		inner, err := asn1.Parse(key)
		if err != nil {
			return nil, err
		}
		return parseECPrivateKey(inner, curve)
	case algorithm.Equal(asn1.OIDEd25519):
		seed, err := curvePrivateKey(key, ed25519.SeedSize)
		if err != nil {
			return nil, err
		}
		return ed25519.NewKeyFromSeed(seed), nil
	case algorithm.Equal(asn1.OIDX25519):
		scalar, err := curvePrivateKey(key, 32)
		if err != nil {
			return nil, err
		}
		return ecdh.X25519().NewPrivateKey(scalar)
	default:
		return nil, errors.Errorf("unsupported private key algorithm %s", algorithm)
	}
}

// curvePrivateKey reads the CurvePrivateKey OCTET STRING of RFC 8410.
func curvePrivateKey(b []byte, size int) ([]byte, error) {
	s := cryptobyte.String(b)
	var key cryptobyte.String
	if !s.ReadASN1(&key, cbasn1.OCTET_STRING) || !s.Empty() {
		return nil, errors.New("invalid curve private key")
	}
	if len(key) != size {
		return nil, errors.Errorf("invalid curve private key size %d", len(key))
	}
	return key, nil
}

// ParseECPrivateKey parses a DER encoded SEC 1 ECPrivateKey.
func ParseECPrivateKey(der []byte) (*ecdsa.PrivateKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing EC private key")
	}
	key, err := parseECPrivateKey(e, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing EC private key")
	}
	return key, nil
}

// parseECPrivateKey decodes an ECPrivateKey. The curve comes from the
// parameters field unless the caller already knows it.
func parseECPrivateKey(e asn1.Element, curve elliptic.Curve) (*ecdsa.PrivateKey, error) {
	seq, err := asn1.AsSequence(e)
	if err != nil {
		return nil, err
	}
	if err := expect(seq.At(1), asn1.TagOctetString); err != nil {
		return nil, err
	}
	if err := version(seq.At(0), 1, 1); err != nil {
		return nil, err
	}
	d, err := octets(seq.At(1))
	if err != nil {
		return nil, err
	}

	var pub []byte
	for _, c := range seq.Children()[2:] {
		tagged, err := asn1.AsTagged(c, c.Tag().Number)
		if err != nil {
			return nil, err
		}
		inner, err := tagged.Inner()
		if err != nil {
			return nil, err
		}
		switch c.Tag().Number {
		case 0:
			named, err := namedCurve(inner)
			if err != nil {
				return nil, err
			}
			if curve != nil && curve != named {
				return nil, errors.New("elliptic curve parameters do not match")
			}
			curve = named
		case 1:
			if pub, err = bitString(inner); err != nil {
				return nil, err
			}
		}
	}
	if curve == nil {
		return nil, errors.New("missing elliptic curve parameters")
	}
	key, err := newECDSAPrivateKey(curve, d)
	if err != nil {
		return nil, err
	}
	if pub != nil {
		expected, err := key.PublicKey.ECDH()
		if err != nil {
			return nil, err
		}
		got, err := expected.Curve().NewPublicKey(pub)
		if err != nil || !expected.Equal(got) {
			return nil, errors.New("public key does not match private key")
		}
	}
	return key, nil
}

// ParsePKCS1PrivateKey parses a DER encoded PKCS #1 RSAPrivateKey with two
// primes.
func ParsePKCS1PrivateKey(der []byte) (*rsa.PrivateKey, error) {
	e, err := asn1.Parse(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing PKCS#1 private key")
	}
	key, err := parsePKCS1PrivateKey(e)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing PKCS#1 private key")
	}
	return key, nil
}

func parsePKCS1PrivateKey(e asn1.Element) (*rsa.PrivateKey, error) {
	seq, err := asn1.AsSequence(e)
	if err != nil {
		return nil, err
	}
	if err := expect(seq.At(1), asn1.TagInteger); err != nil {
		return nil, err
	}
	ints, err := integers(seq.Children())
	if err != nil {
		return nil, err
	}
	switch {
	case ints[0].Sign() != 0:
		return nil, errors.Errorf("unsupported PKCS#1 version %s", ints[0])
	case len(ints) != 9:
		return nil, errors.Errorf("PKCS#1 private key has %d fields", len(ints))
	}
	pub, err := newRSAPublicKey(ints[1], ints[2])
	if err != nil {
		return nil, err
	}
	key := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         ints[3],
		Primes:    []*big.Int{ints[4], ints[5]},
	}
	if err := key.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rsa private key")
	}
	key.Precompute()
	return key, nil
}

// ParsePEM parses a PEM encoded key. The label selects the format: PUBLIC
// KEY, RSA PUBLIC KEY, PRIVATE KEY, EC PRIVATE KEY or RSA PRIVATE KEY.
func ParsePEM(b []byte) (interface{}, error) {
	parsers := []struct {
		label string
		parse func([]byte) (interface{}, error)
	}{
		{pemutil.PublicKeyLabel, func(der []byte) (interface{}, error) { return ParsePKIXPublicKey(der) }},
		{pemutil.RSAPublicKeyLabel, func(der []byte) (interface{}, error) { return ParsePKCS1PublicKey(der) }},
		{pemutil.PrivateKeyLabel, func(der []byte) (interface{}, error) { return ParsePKCS8PrivateKey(der) }},
		{pemutil.ECPrivateKeyLabel, func(der []byte) (interface{}, error) { return ParseECPrivateKey(der) }},
		{pemutil.RSAPrivateKeyLabel, func(der []byte) (interface{}, error) { return ParsePKCS1PrivateKey(der) }},
	}
	for _, p := range parsers {
		der, err := pemutil.DecodeFromPEM(p.label, b)
		switch {
		case errors.Is(err, pemutil.ErrLabelMismatch):
			continue
		case err != nil:
			return nil, err
		}
		key, err := p.parse(der)
		if err != nil {
			return nil, err
		}
		return key, nil
	}
	return nil, errors.New("unsupported PEM key type")
}

// Read reads and parses the PEM encoded key in the given file. It reads
// from STDIN if filename is "-".
func Read(filename string) (interface{}, error) {
	b, err := utils.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	key, err := ParsePEM(b)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", filename)
	}
	return key, nil
}
