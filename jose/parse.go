package jose

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"

	"github.com/pkg/errors"
)

// ParseJWK parses the JSON representation of a key. The algorithm is guessed
// from the key if the JSON does not carry one.
func ParseJWK(b []byte) (*JSONWebKey, error) {
	jwk := new(JSONWebKey)
	if err := json.Unmarshal(b, jwk); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling key")
	}
	if jwk.Key == nil {
		return nil, errors.New("error parsing key: key is empty")
	}
	GuessAlgorithm(jwk)
	return jwk, nil
}

// ParseKeySet parses the JSON representation of a JWK Set.
func ParseKeySet(b []byte) (*JSONWebKeySet, error) {
	jwks := new(JSONWebKeySet)
	if err := json.Unmarshal(b, jwks); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling key set")
	}
	if len(jwks.Keys) == 0 {
		return nil, errors.New("error parsing key set: set is empty")
	}
	for i := range jwks.Keys {
		GuessAlgorithm(&jwks.Keys[i])
	}
	return jwks, nil
}

// GuessAlgorithm sets the algorithm of the JWK if it is not set, using the
// key type and the use of the key.
func GuessAlgorithm(jwk *JSONWebKey) {
	if jwk.Algorithm != "" {
		return
	}
	enc := jwk.Use == "enc"
	switch k := jwk.Key.(type) {
	case []byte:
		if enc {
			jwk.Algorithm = A256GCMKW
		} else {
			jwk.Algorithm = HS256
		}
	case *ecdsa.PrivateKey:
		jwk.Algorithm = ecdsaAlgorithm(&k.PublicKey, enc)
	case *ecdsa.PublicKey:
		jwk.Algorithm = ecdsaAlgorithm(k, enc)
	case *rsa.PrivateKey, *rsa.PublicKey:
		if enc {
			jwk.Algorithm = RSAOAEP256
		} else {
			jwk.Algorithm = RS256
		}
	case ed25519.PrivateKey, ed25519.PublicKey:
		jwk.Algorithm = EdDSA
	}
}

func ecdsaAlgorithm(k *ecdsa.PublicKey, enc bool) string {
	if enc {
		return ECDHES
	}
	switch k.Curve.Params().Name {
	case "P-384":
		return ES384
	case "P-521":
		return ES512
	default:
		return ES256
	}
}
