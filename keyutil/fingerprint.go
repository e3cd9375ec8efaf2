package keyutil

import (
	"crypto"
	"crypto/sha256"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/fingerprint"
	"github.com/asn1kit/crypto/pemutil"
)

// FingerprintEncoding defines the supported encodings in certificate
// fingerprints.
type FingerprintEncoding = fingerprint.Encoding

// Supported fingerprint encodings.
const (
	// DefaultFingerprint represents the base64 encoding of the fingerprint.
	DefaultFingerprint = FingerprintEncoding(0)
	// HexFingerprint represents the hex encoding of the fingerprint.
	HexFingerprint = fingerprint.HexFingerprint
	// Base64Fingerprint represents the base64 encoding of the fingerprint.
	Base64Fingerprint = fingerprint.Base64Fingerprint
	// Base64URLFingerprint represents the base64URL encoding of the fingerprint.
	Base64URLFingerprint = fingerprint.Base64URLFingerprint
	// Base64RawFingerprint represents the base64RawStd encoding of the fingerprint.
	Base64RawFingerprint = fingerprint.Base64RawFingerprint
	// Base64RawURLFingerprint represents the base64RawURL encoding of the fingerprint.
	Base64RawURLFingerprint = fingerprint.Base64RawURLFingerprint
)

// Fingerprint returns the SHA-256 fingerprint of a public key, the hash of
// its PKIX encoding in base64 prefixed by "SHA256:".
func Fingerprint(pub crypto.PublicKey) (string, error) {
	return EncodedFingerprint(pub, DefaultFingerprint)
}

// EncodedFingerprint returns the SHA-256 fingerprint of a public key using
// the given encoding.
func EncodedFingerprint(pub crypto.PublicKey, encoding FingerprintEncoding) (string, error) {
	b, err := pemutil.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", errors.Wrap(err, "error marshaling public key")
	}
	if encoding == DefaultFingerprint {
		encoding = Base64Fingerprint
	}
	sum := sha256.Sum256(b)
	fp := fingerprint.Fingerprint(sum[:], encoding)
	if fp == "" {
		return "", errors.Errorf("error formatting fingerprint: unsupported encoding")
	}
	return "SHA256:" + fp, nil
}
