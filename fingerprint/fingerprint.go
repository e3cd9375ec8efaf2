// Package fingerprint computes and formats digests of arbitrary data and of
// DER encoded ASN.1 elements.
package fingerprint

import (
	"crypto"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/asn1"
)

// Encoding defines the supported encodings for fingerprints.
type Encoding int

const (
	// HexFingerprint represents the hex encoding of the fingerprint.
	HexFingerprint Encoding = iota + 1
	// Base64Fingerprint represents the base64 encoding of the fingerprint.
	Base64Fingerprint
	// Base64URLFingerprint represents the base64URL encoding of the fingerprint.
	Base64URLFingerprint
	// Base64RawFingerprint represents the base64RawStd encoding of the
	// fingerprint.
	Base64RawFingerprint
	// Base64RawURLFingerprint represents the base64RawURL encoding of the
	// fingerprint.
	Base64RawURLFingerprint
)

// String returns the name of the encoding.
func (e Encoding) String() string {
	switch e {
	case HexFingerprint:
		return "hex"
	case Base64Fingerprint:
		return "base64"
	case Base64URLFingerprint:
		return "base64url"
	case Base64RawFingerprint:
		return "base64raw"
	case Base64RawURLFingerprint:
		return "base64rawurl"
	default:
		return ""
	}
}

// New creates a fingerprint of the given data by hashing it and returns it in
// the encoding format.
func New(data []byte, h crypto.Hash, encoding Encoding) (string, error) {
	if !h.Available() {
		return "", errors.Errorf("hash function %q is not available", h.String())
	}
	hash := h.New()
	if _, err := hash.Write(data); err != nil {
		return "", errors.Wrap(err, "error creating hash")
	}
	fp := Fingerprint(hash.Sum(nil), encoding)
	if fp == "" {
		return "", errors.Errorf("unknown encoding value %d", encoding)
	}
	return fp, nil
}

// Element creates a fingerprint of the DER encoding of e.
func Element(e asn1.Element, h crypto.Hash, encoding Encoding) (string, error) {
	if e == nil {
		return "", errors.New("element cannot be nil")
	}
	return New(e.DER(), h, encoding)
}

// Fingerprint encodes the given digest using the encoding format. If an
// invalid encoding is passed, the return value will be an empty string.
func Fingerprint(digest []byte, encoding Encoding) string {
	switch encoding {
	case HexFingerprint:
		return hex.EncodeToString(digest)
	case Base64Fingerprint:
		return base64.StdEncoding.EncodeToString(digest)
	case Base64URLFingerprint:
		return base64.URLEncoding.EncodeToString(digest)
	case Base64RawFingerprint:
		return base64.RawStdEncoding.EncodeToString(digest)
	case Base64RawURLFingerprint:
		return base64.RawURLEncoding.EncodeToString(digest)
	default:
		return ""
	}
}
