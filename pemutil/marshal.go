package pemutil

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/asn1"
)

// CurveOID returns the named curve identifier of the given curve.
func CurveOID(curve elliptic.Curve) (asn1.ObjectIdentifier, bool) {
	switch curve {
	case elliptic.P256():
		return asn1.OIDNamedCurveP256, true
	case elliptic.P384():
		return asn1.OIDNamedCurveP384, true
	case elliptic.P521():
		return asn1.OIDNamedCurveP521, true
	default:
		return asn1.ObjectIdentifier{}, false
	}
}

// MarshalPKIXPublicKey serializes a public key to DER-encoded PKIX format. The
// following key types are supported: *rsa.PublicKey, *ecdsa.PublicKey,
// ed25519.PublicKey and X25519 *ecdh.PublicKey. Unsupported key types result
// in an error.
func MarshalPKIXPublicKey(pub crypto.PublicKey) ([]byte, error) {
	e, err := PublicKeyInfo(pub)
	if err != nil {
		return nil, err
	}
	return e.DER(), nil
}

// PublicKeyInfo returns the SubjectPublicKeyInfo tree of a public key.
func PublicKeyInfo(pub crypto.PublicKey) (asn1.Element, error) {
	b := asn1.NewBuilder()
	switch p := pub.(type) {
	case *rsa.PublicKey:
		b.Sequence(func(b *asn1.Builder) {
			b.Sequence(func(b *asn1.Builder) {
				b.OID(asn1.OIDRSAEncryption)
				b.Null()
			})
			b.BitString(asn1.BitString{Bytes: MarshalPKCS1PublicKey(p)})
		})
	case *ecdsa.PublicKey:
		oid, ok := CurveOID(p.Curve)
		if !ok {
			return nil, errors.New("unsupported elliptic curve")
		}
		point, err := p.ECDH()
		if err != nil {
			return nil, errors.Wrap(err, "error marshaling ecdsa public key")
		}
		b.Sequence(func(b *asn1.Builder) {
			b.Sequence(func(b *asn1.Builder) {
				b.OID(asn1.OIDECPublicKey)
				b.OID(oid)
			})
			b.BitString(asn1.BitString{Bytes: point.Bytes()})
		})
	case ed25519.PublicKey:
		if len(p) != ed25519.PublicKeySize {
			return nil, errors.New("invalid ed25519 public key size")
		}
		publicKeyInfo(b, asn1.OIDEd25519, p)
	case *ecdh.PublicKey:
		if p.Curve() != ecdh.X25519() {
			return nil, errors.Errorf("unsupported ecdh curve %s", p.Curve())
		}
		publicKeyInfo(b, asn1.OIDX25519, p.Bytes())
	default:
		return nil, errors.Errorf("unknown public key type: %T", pub)
	}
	e, err := b.Build()
	return e, errors.Wrap(err, "error marshaling PKIX")
}

// publicKeyInfo adds a SubjectPublicKeyInfo whose algorithm has no
// parameters.
func publicKeyInfo(b *asn1.Builder, oid asn1.ObjectIdentifier, key []byte) {
	b.Sequence(func(b *asn1.Builder) {
		b.Sequence(func(b *asn1.Builder) {
			b.OID(oid)
		})
		b.BitString(asn1.BitString{Bytes: key})
	})
}

// MarshalPKCS1PublicKey returns the PKCS #1 RSAPublicKey encoding of key.
func MarshalPKCS1PublicKey(key *rsa.PublicKey) []byte {
	return asn1.NewSequence(
		asn1.NewInteger(key.N),
		asn1.NewInt64(int64(key.E)),
	).DER()
}

// MarshalPKCS1PrivateKey returns the PKCS #1 RSAPrivateKey encoding of a key
// with two primes.
func MarshalPKCS1PrivateKey(key *rsa.PrivateKey) ([]byte, error) {
	if len(key.Primes) != 2 {
		return nil, errors.Errorf("rsa keys with %d primes are not supported", len(key.Primes))
	}
	p, q := key.Primes[0], key.Primes[1]
	one := big.NewInt(1)
	dp := new(big.Int).Mod(key.D, new(big.Int).Sub(p, one))
	dq := new(big.Int).Mod(key.D, new(big.Int).Sub(q, one))
	qinv := new(big.Int).ModInverse(q, p)
	if qinv == nil {
		return nil, errors.New("invalid rsa private key")
	}
	return asn1.NewBuilder().Sequence(func(b *asn1.Builder) {
		b.Int64(0)
		b.BigInt(key.N)
		b.Int64(int64(key.E))
		b.BigInt(key.D)
		b.BigInt(p)
		b.BigInt(q)
		b.BigInt(dp)
		b.BigInt(dq)
		b.BigInt(qinv)
	}).DER()
}

// MarshalECPrivateKey returns the SEC 1 ECPrivateKey encoding of key,
// including the named curve parameters.
func MarshalECPrivateKey(key *ecdsa.PrivateKey) ([]byte, error) {
	oid, ok := CurveOID(key.Curve)
	if !ok {
		return nil, errors.New("unsupported elliptic curve")
	}
	return marshalECPrivateKey(key, oid)
}

// marshalECPrivateKey encodes the ECPrivateKey structure. The curve
// parameters are omitted if oid is the zero value, as PKCS #8 carries them
// in the algorithm identifier.
func marshalECPrivateKey(key *ecdsa.PrivateKey, oid asn1.ObjectIdentifier) ([]byte, error) {
	priv, err := key.ECDH()
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling ecdsa private key")
	}
	return asn1.NewBuilder().Sequence(func(b *asn1.Builder) {
		b.Int64(1)
		b.OctetString(priv.Bytes())
		if !oid.IsZero() {
			b.Explicit(0, func(b *asn1.Builder) {
				b.OID(oid)
			})
		}
		b.Explicit(1, func(b *asn1.Builder) {
			b.BitString(asn1.BitString{Bytes: priv.PublicKey().Bytes()})
		})
	}).DER()
}

// MarshalPKCS8PrivateKey converts a private key to PKCS#8 encoded form. The
// following key types are supported: *rsa.PrivateKey, *ecdsa.PrivateKey,
// ed25519.PrivateKey and X25519 *ecdh.PrivateKey. Unsupported key types
// result in an error.
func MarshalPKCS8PrivateKey(key crypto.PrivateKey) ([]byte, error) {
	var (
		algorithm func(*asn1.Builder)
		inner     []byte
		err       error
	)
	switch k := key.(type) {
	case *rsa.PrivateKey:
		algorithm = func(b *asn1.Builder) {
			b.OID(asn1.OIDRSAEncryption)
			b.Null()
		}
		inner, err = MarshalPKCS1PrivateKey(k)
	case *ecdsa.PrivateKey:
		oid, ok := CurveOID(k.Curve)
		if !ok {
			return nil, errors.New("x509: unknown curve while marshaling to PKCS#8")
		}
		algorithm = func(b *asn1.Builder) {
			b.OID(asn1.OIDECPublicKey)
			b.OID(oid)
		}
		inner, err = marshalECPrivateKey(k, asn1.ObjectIdentifier{})
	case ed25519.PrivateKey:
		if len(k) != ed25519.PrivateKeySize {
			return nil, errors.New("invalid ed25519 private key size")
		}
		algorithm = func(b *asn1.Builder) { b.OID(asn1.OIDEd25519) }
		inner = asn1.NewOctetString(k.Seed()).DER()
	case *ecdh.PrivateKey:
		if k.Curve() != ecdh.X25519() {
			return nil, errors.Errorf("x509: unknown curve while marshaling to PKCS#8: %s", k.Curve())
		}
		algorithm = func(b *asn1.Builder) { b.OID(asn1.OIDX25519) }
		inner = asn1.NewOctetString(k.Bytes()).DER()
	default:
		return nil, errors.Errorf("x509: unknown key type while marshaling PKCS#8: %T", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling PKCS#8")
	}

	b, err := asn1.NewBuilder().Sequence(func(b *asn1.Builder) {
		b.Int64(0)
		b.Sequence(algorithm)
		b.OctetString(inner)
	}).DER()
	return b, errors.Wrap(err, "error marshaling PKCS#8")
}
