package keyutil

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/sha512"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

const curve25519ScalarSize = 32

// X25519PublicKey converts an Ed25519 public key to the X25519 public key of
// the same key pair, mapping the Edwards point to its Montgomery u-coordinate
// as described in RFC 7748, section 4.1.
func X25519PublicKey(pub ed25519.PublicKey) (*ecdh.PublicKey, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid ed25519 public key size %d", len(pub))
	}
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ed25519 public key")
	}
	return ecdh.X25519().NewPublicKey(p.BytesMontgomery())
}

// X25519PrivateKey converts an Ed25519 private key to an X25519 private key.
// The X25519 scalar is the first half of the SHA-512 hash of the Ed25519
// seed, the same scalar Ed25519 signs with.
func X25519PrivateKey(priv ed25519.PrivateKey) (*ecdh.PrivateKey, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid ed25519 private key size %d", len(priv))
	}
	h := sha512.Sum512(priv.Seed())
	return ecdh.X25519().NewPrivateKey(h[:curve25519ScalarSize])
}

// X25519Key converts an Ed25519 public or private key to the matching X25519
// key. Other key types are rejected.
func X25519Key(key interface{}) (interface{}, error) {
	switch k := key.(type) {
	case ed25519.PublicKey:
		pub, err := X25519PublicKey(k)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case ed25519.PrivateKey:
		priv, err := X25519PrivateKey(k)
		if err != nil {
			return nil, err
		}
		return priv, nil
	default:
		return nil, errors.Errorf("unsupported key type %T", key)
	}
}
