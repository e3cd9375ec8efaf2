package jose

import (
	"crypto"
	"encoding/base64"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/keyutil"
	"github.com/asn1kit/crypto/pemutil"
)

// Thumbprint computes the JWK Thumbprint of a key using SHA256 as the hash
// function. It returns the base64url representation of the thumbprint.
func Thumbprint(jwk *JSONWebKey) (string, error) {
	b, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", errors.Wrap(err, "error generating JWK thumbprint")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// JWKToPEM returns the PEM encoding of the key in the JWK: a PUBLIC KEY
// block for public keys and a PRIVATE KEY block for private keys.
func JWKToPEM(jwk *JSONWebKey) ([]byte, error) {
	if !IsAsymmetric(jwk) {
		return nil, errors.Errorf("unsupported key type %T", jwk.Key)
	}
	if isPublic(jwk) {
		der, err := pemutil.MarshalPKIXPublicKey(jwk.Key)
		if err != nil {
			return nil, err
		}
		return pemutil.EncodeToPEM(pemutil.PublicKeyLabel, der), nil
	}
	der, err := pemutil.MarshalPKCS8PrivateKey(jwk.Key)
	if err != nil {
		return nil, err
	}
	return pemutil.EncodeToPEM(pemutil.PrivateKeyLabel, der), nil
}

// JWKToPublicPEM returns the PUBLIC KEY PEM block of the public part of the
// key in the JWK.
func JWKToPublicPEM(jwk *JSONWebKey) ([]byte, error) {
	if !IsAsymmetric(jwk) {
		return nil, errors.Errorf("unsupported key type %T", jwk.Key)
	}
	der, err := pemutil.MarshalPKIXPublicKey(publicKey(jwk))
	if err != nil {
		return nil, err
	}
	return pemutil.EncodeToPEM(pemutil.PublicKeyLabel, der), nil
}

// PEMToJWK parses a PEM encoded key and returns it as a JWK. The key id is
// set to the thumbprint of the key, and the algorithm is guessed from the key
// and the given use, "sig" or "enc".
func PEMToJWK(b []byte, use string) (*JSONWebKey, error) {
	key, err := keyutil.ParsePEM(b)
	if err != nil {
		return nil, err
	}
	jwk := &JSONWebKey{Key: key, Use: use}
	if !jwk.Valid() || !IsAsymmetric(jwk) {
		return nil, errors.Errorf("unsupported key type %T", key)
	}
	GuessAlgorithm(jwk)
	if jwk.KeyID, err = Thumbprint(jwk); err != nil {
		return nil, err
	}
	return jwk, nil
}
