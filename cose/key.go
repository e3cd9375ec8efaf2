// Package cose converts public keys to and from the COSE_Key structure
// defined in RFC 8152, sections 7 and 13.
package cose

import (
	"bytes"
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/keyutil"
	"github.com/asn1kit/crypto/pemutil"
)

// KeyType is the COSE key type, the kty parameter.
type KeyType int

const (
	// OKP is an Octet Key Pair.
	OKP KeyType = 1
	// EC2 is an Elliptic Curve key with x and y coordinates.
	EC2 KeyType = 2
	// RSA is an RSA key as defined in RFC 8230.
	RSA KeyType = 3
)

// Curve is the COSE elliptic curve identifier, the crv parameter.
type Curve int

const (
	P256    Curve = 1
	P384    Curve = 2
	P521    Curve = 3
	X25519  Curve = 4
	Ed25519 Curve = 6
)

// Algorithm is a COSE algorithm from the IANA registry.
type Algorithm int

const (
	ES256         Algorithm = -7
	EdDSA         Algorithm = -8
	ECDHESHKDF256 Algorithm = -25
	ES384         Algorithm = -35
	ES512         Algorithm = -36
	PS256         Algorithm = -37
	RS256         Algorithm = -257
)

// Key is a COSE_Key holding a public key. For OKP keys only X is set, EC2
// keys carry both coordinates, and RSA keys carry the modulus N and the public
// exponent E as unsigned big-endian integers.
type Key struct {
	KeyType   KeyType
	KeyID     []byte
	Algorithm Algorithm
	Curve     Curve
	X         []byte
	Y         []byte
	N         []byte
	E         []byte
}

// curveKey is the wire form of OKP and EC2 keys.
type curveKey struct {
	KeyType   KeyType   `cbor:"1,keyasint"`
	KeyID     []byte    `cbor:"2,keyasint,omitempty"`
	Algorithm Algorithm `cbor:"3,keyasint,omitempty"`
	Curve     Curve     `cbor:"-1,keyasint"`
	X         []byte    `cbor:"-2,keyasint"`
	Y         []byte    `cbor:"-3,keyasint,omitempty"`
}

// rsaKey is the wire form of RSA keys; its labels overlap the curve ones.
type rsaKey struct {
	KeyType   KeyType   `cbor:"1,keyasint"`
	KeyID     []byte    `cbor:"2,keyasint,omitempty"`
	Algorithm Algorithm `cbor:"3,keyasint,omitempty"`
	N         []byte    `cbor:"-1,keyasint"`
	E         []byte    `cbor:"-2,keyasint"`
}

type keyHeader struct {
	KeyType KeyType `cbor:"1,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CTAP2EncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode(); err != nil {
		panic(err)
	}
}

// NewKey returns the COSE_Key of an ECDSA, Ed25519, X25519 or RSA public key.
func NewKey(pub crypto.PublicKey) (*Key, error) {
	switch pub := pub.(type) {
	case *ecdsa.PublicKey:
		crv, alg, err := curveAlgorithm(pub.Curve)
		if err != nil {
			return nil, err
		}
		k, err := pub.ECDH()
		if err != nil {
			return nil, errors.Wrap(err, "error converting ECDSA key")
		}
		// Uncompressed point: 0x04 || X || Y.
		point := k.Bytes()
		size := (len(point) - 1) / 2
		return &Key{
			KeyType:   EC2,
			Algorithm: alg,
			Curve:     crv,
			X:         point[1 : 1+size],
			Y:         point[1+size:],
		}, nil
	case ed25519.PublicKey:
		return &Key{
			KeyType:   OKP,
			Algorithm: EdDSA,
			Curve:     Ed25519,
			X:         bytes.Clone(pub),
		}, nil
	case *ecdh.PublicKey:
		if pub.Curve() != ecdh.X25519() {
			return nil, errors.Errorf("unsupported ECDH curve %s", pub.Curve())
		}
		return &Key{
			KeyType:   OKP,
			Algorithm: ECDHESHKDF256,
			Curve:     X25519,
			X:         pub.Bytes(),
		}, nil
	case *rsa.PublicKey:
		return &Key{
			KeyType:   RSA,
			Algorithm: RS256,
			N:         pub.N.Bytes(),
			E:         big.NewInt(int64(pub.E)).Bytes(),
		}, nil
	default:
		return nil, errors.Errorf("unsupported public key type %T", pub)
	}
}

func curveAlgorithm(c elliptic.Curve) (Curve, Algorithm, error) {
	switch c {
	case elliptic.P256():
		return P256, ES256, nil
	case elliptic.P384():
		return P384, ES384, nil
	case elliptic.P521():
		return P521, ES512, nil
	default:
		return 0, 0, errors.Errorf("unsupported elliptic curve %s", c.Params().Name)
	}
}

func ellipticCurve(c Curve) (elliptic.Curve, ecdh.Curve, error) {
	switch c {
	case P256:
		return elliptic.P256(), ecdh.P256(), nil
	case P384:
		return elliptic.P384(), ecdh.P384(), nil
	case P521:
		return elliptic.P521(), ecdh.P521(), nil
	default:
		return nil, nil, errors.Errorf("unsupported EC2 curve %d", c)
	}
}

// ParseDER returns the COSE_Key of a DER encoded SubjectPublicKeyInfo.
func ParseDER(der []byte) (*Key, error) {
	pub, err := keyutil.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	return NewKey(pub)
}

// ParseKey decodes a CBOR encoded COSE_Key.
func ParseKey(data []byte) (*Key, error) {
	k := new(Key)
	if err := k.UnmarshalCBOR(data); err != nil {
		return nil, err
	}
	return k, nil
}

// MarshalCBOR returns the CTAP2 canonical CBOR encoding of the key.
func (k *Key) MarshalCBOR() ([]byte, error) {
	var v interface{}
	switch k.KeyType {
	case OKP, EC2:
		v = curveKey{
			KeyType:   k.KeyType,
			KeyID:     k.KeyID,
			Algorithm: k.Algorithm,
			Curve:     k.Curve,
			X:         k.X,
			Y:         k.Y,
		}
	case RSA:
		v = rsaKey{
			KeyType:   k.KeyType,
			KeyID:     k.KeyID,
			Algorithm: k.Algorithm,
			N:         k.N,
			E:         k.E,
		}
	default:
		return nil, errors.Errorf("unsupported COSE key type %d", k.KeyType)
	}
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding COSE key")
	}
	return b, nil
}

// UnmarshalCBOR decodes a COSE_Key, dispatching on its kty parameter.
func (k *Key) UnmarshalCBOR(data []byte) error {
	var hdr keyHeader
	if err := decMode.Unmarshal(data, &hdr); err != nil {
		return errors.Wrap(err, "error decoding COSE key")
	}
	switch hdr.KeyType {
	case OKP, EC2:
		var v curveKey
		if err := decMode.Unmarshal(data, &v); err != nil {
			return errors.Wrap(err, "error decoding COSE key")
		}
		*k = Key{
			KeyType:   v.KeyType,
			KeyID:     v.KeyID,
			Algorithm: v.Algorithm,
			Curve:     v.Curve,
			X:         v.X,
			Y:         v.Y,
		}
	case RSA:
		var v rsaKey
		if err := decMode.Unmarshal(data, &v); err != nil {
			return errors.Wrap(err, "error decoding COSE key")
		}
		*k = Key{
			KeyType:   v.KeyType,
			KeyID:     v.KeyID,
			Algorithm: v.Algorithm,
			N:         v.N,
			E:         v.E,
		}
	default:
		return errors.Errorf("unsupported COSE key type %d", hdr.KeyType)
	}
	return nil
}

// PublicKey returns the crypto.PublicKey held by the COSE_Key.
func (k *Key) PublicKey() (crypto.PublicKey, error) {
	switch k.KeyType {
	case OKP:
		switch k.Curve {
		case Ed25519:
			if len(k.X) != ed25519.PublicKeySize {
				return nil, errors.Errorf("invalid Ed25519 key length %d", len(k.X))
			}
			return ed25519.PublicKey(bytes.Clone(k.X)), nil
		case X25519:
			pub, err := ecdh.X25519().NewPublicKey(k.X)
			if err != nil {
				return nil, errors.Wrap(err, "invalid X25519 key")
			}
			return pub, nil
		default:
			return nil, errors.Errorf("unsupported OKP curve %d", k.Curve)
		}
	case EC2:
		curve, ecdhCurve, err := ellipticCurve(k.Curve)
		if err != nil {
			return nil, err
		}
		size := (curve.Params().BitSize + 7) / 8
		if len(k.X) != size || len(k.Y) != size {
			return nil, errors.Errorf("invalid EC2 coordinates length for curve %d", k.Curve)
		}
		point := append(append([]byte{4}, k.X...), k.Y...)
		if _, err := ecdhCurve.NewPublicKey(point); err != nil {
			return nil, errors.Wrap(err, "invalid EC2 key")
		}
		return &ecdsa.PublicKey{
			Curve: curve,
			X:     new(big.Int).SetBytes(k.X),
			Y:     new(big.Int).SetBytes(k.Y),
		}, nil
	case RSA:
		n := new(big.Int).SetBytes(k.N)
		e := new(big.Int).SetBytes(k.E)
		if n.Sign() == 0 {
			return nil, errors.New("invalid RSA modulus")
		}
		if !e.IsInt64() || e.Int64() < 2 || e.Int64() > 1<<31-1 {
			return nil, errors.New("invalid RSA public exponent")
		}
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
	default:
		return nil, errors.Errorf("unsupported COSE key type %d", k.KeyType)
	}
}

// ToDER returns the DER encoded SubjectPublicKeyInfo of the key.
func (k *Key) ToDER() ([]byte, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	return pemutil.MarshalPKIXPublicKey(pub)
}

// ToPEM returns the key as a PUBLIC KEY PEM block.
func (k *Key) ToPEM() ([]byte, error) {
	der, err := k.ToDER()
	if err != nil {
		return nil, err
	}
	return pemutil.EncodeToPEM(pemutil.PublicKeyLabel, der), nil
}
