// Package jose bridges JSON Web Keys and their PKIX and PKCS #8 encodings.
package jose

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"

	jose "github.com/go-jose/go-jose/v3"
)

// JSONWebKey represents a public or private key in JWK format.
type JSONWebKey = jose.JSONWebKey

// JSONWebKeySet represents a JWK Set object.
type JSONWebKeySet = jose.JSONWebKeySet

// Supported signature algorithms.
const (
	ES256 = string(jose.ES256)
	ES384 = string(jose.ES384)
	ES512 = string(jose.ES512)
	RS256 = string(jose.RS256)
	PS256 = string(jose.PS256)
	EdDSA = string(jose.EdDSA)
	HS256 = string(jose.HS256)
)

// Supported key management algorithms.
const (
	ECDHES     = string(jose.ECDH_ES)
	RSAOAEP256 = string(jose.RSA_OAEP_256)
	A256GCMKW  = string(jose.A256GCMKW)
)

// IsSymmetric returns if the given JSONWebKey is symmetric, this is, the key
// is a byte slice.
func IsSymmetric(k *JSONWebKey) bool {
	_, ok := k.Key.([]byte)
	return ok
}

// IsAsymmetric returns if the given JSONWebKey is an RSA, ECDSA or Ed25519
// key.
func IsAsymmetric(k *JSONWebKey) bool {
	switch k.Key.(type) {
	case *ecdsa.PrivateKey, *ecdsa.PublicKey, *rsa.PrivateKey, *rsa.PublicKey,
		ed25519.PrivateKey, ed25519.PublicKey:
		return true
	default:
		return false
	}
}

// isPublic reports whether the key of the JWK is a public key.
func isPublic(k *JSONWebKey) bool {
	switch k.Key.(type) {
	case *ecdsa.PublicKey, *rsa.PublicKey, ed25519.PublicKey:
		return true
	default:
		return false
	}
}

// publicKey returns the public key of an asymmetric JWK.
func publicKey(k *JSONWebKey) crypto.PublicKey {
	switch key := k.Key.(type) {
	case crypto.Signer:
		return key.Public()
	default:
		return key
	}
}
