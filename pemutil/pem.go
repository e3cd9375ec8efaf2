// Package pemutil implements the PEM textual encoding of DER structures and
// the marshaling of public and private keys into PKIX and PKCS #8 trees.
package pemutil

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/asn1kit/crypto/asn1"
	"github.com/asn1kit/crypto/internal/utils"
)

// Labels of the encapsulation boundaries used for common structures.
const (
	CertificateLabel        = "CERTIFICATE"
	CertificateRequestLabel = "CERTIFICATE REQUEST"
	PublicKeyLabel          = "PUBLIC KEY"
	PrivateKeyLabel         = "PRIVATE KEY"
	ECPrivateKeyLabel       = "EC PRIVATE KEY"
	RSAPrivateKeyLabel      = "RSA PRIVATE KEY"
	RSAPublicKeyLabel       = "RSA PUBLIC KEY"
)

var (
	// ErrInvalidPEM is returned when the encapsulation boundaries or the
	// base64 body of a PEM block are malformed.
	ErrInvalidPEM = errors.New("pemutil: invalid PEM")
	// ErrLabelMismatch is returned when the BEGIN and END labels differ or
	// do not match the expected one.
	ErrLabelMismatch = errors.New("pemutil: PEM label mismatch")
)

const (
	lineLength  = 64
	fence       = "-----"
	beginPrefix = fence + "BEGIN "
	endPrefix   = fence + "END "
)

// EncodeToPEM returns the PEM encoding of der with the given label: the
// base64 encoding wrapped at 64 columns between BEGIN and END lines, each
// line ending with a newline.
func EncodeToPEM(label string, der []byte) []byte {
	body := base64.StdEncoding.EncodeToString(der)

	var buf bytes.Buffer
	buf.Grow(len(body) + len(body)/lineLength + 2*len(label) + 32)
	buf.WriteString(beginPrefix + label + fence + "\n")
	for len(body) > lineLength {
		buf.WriteString(body[:lineLength])
		buf.WriteByte('\n')
		body = body[lineLength:]
	}
	if body != "" {
		buf.WriteString(body)
		buf.WriteByte('\n')
	}
	buf.WriteString(endPrefix + label + fence + "\n")
	return buf.Bytes()
}

// DecodeFromPEM returns the DER bytes of the single PEM block in text. The
// BEGIN and END labels must be equal and, unless expectedLabel is empty,
// equal to expectedLabel. The boundaries are validated before the body is
// decoded. Both LF and CRLF line endings are accepted. An empty body decodes
// to empty DER bytes.
func DecodeFromPEM(expectedLabel string, text []byte) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, errors.Wrap(ErrInvalidPEM, "missing encapsulation boundaries")
	}

	begin, err := boundaryLabel(lines[0], beginPrefix)
	if err != nil {
		return nil, err
	}
	end, err := boundaryLabel(lines[len(lines)-1], endPrefix)
	if err != nil {
		return nil, err
	}
	switch {
	case begin != end:
		return nil, errors.Wrapf(ErrLabelMismatch, "BEGIN %q does not match END %q", begin, end)
	case expectedLabel != "" && begin != expectedLabel:
		return nil, errors.Wrapf(ErrLabelMismatch, "expected %q, found %q", expectedLabel, begin)
	}

	var body strings.Builder
	for _, line := range lines[1 : len(lines)-1] {
		body.WriteString(strings.TrimSpace(line))
	}
	der, err := base64.StdEncoding.DecodeString(body.String())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPEM, "error decoding base64 body: %v", err)
	}
	return der, nil
}

// DecodeFromPEMOrNil is like DecodeFromPEM but returns nil on error.
func DecodeFromPEMOrNil(expectedLabel string, text []byte) []byte {
	der, err := DecodeFromPEM(expectedLabel, text)
	if err != nil {
		return nil
	}
	return der
}

// boundaryLabel returns the label of a BEGIN or END line.
func boundaryLabel(line, prefix string) (string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return "", errors.Wrapf(ErrInvalidPEM, "expected %q line, found %q", prefix+"...", line)
	}
	label, ok := strings.CutSuffix(line[len(prefix):], fence)
	if !ok || strings.Contains(label, fence) {
		return "", errors.Wrapf(ErrInvalidPEM, "malformed boundary %q", line)
	}
	return label, nil
}

// ParsePEM decodes the PEM block in text and parses its DER content.
func ParsePEM(expectedLabel string, text []byte, opts ...asn1.ParseOption) (asn1.Element, error) {
	der, err := DecodeFromPEM(expectedLabel, text)
	if err != nil {
		return nil, err
	}
	e, err := asn1.Parse(der, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing PEM content")
	}
	return e, nil
}

// SerializeElement returns the PEM encoding of the DER encoding of e.
func SerializeElement(label string, e asn1.Element) []byte {
	return EncodeToPEM(label, e.DER())
}

// ReadFile reads and parses the PEM encoded element in the given file. It
// reads from STDIN if filename is "-".
func ReadFile(filename, expectedLabel string, opts ...asn1.ParseOption) (asn1.Element, error) {
	b, err := utils.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	e, err := ParsePEM(expectedLabel, b, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", filename)
	}
	return e, nil
}

// WriteFile writes the PEM encoding of e to the given file.
func WriteFile(filename, label string, e asn1.Element, perm os.FileMode) error {
	return utils.WriteFile(filename, SerializeElement(label, e), perm)
}
