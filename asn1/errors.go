package asn1

import (
	"fmt"

	"github.com/pkg/errors"
)

// Structural errors. They are fatal to the parse of the element that
// contains them.
var (
	// ErrTruncated is returned when the input ends before the declared end of
	// an element.
	ErrTruncated = errors.New("asn1: truncated element")
	// ErrInvalidTag is returned for malformed tag octets.
	ErrInvalidTag = errors.New("asn1: invalid tag")
	// ErrInvalidLength is returned for malformed length octets.
	ErrInvalidLength = errors.New("asn1: invalid length")
	// ErrIndefiniteLength is returned for the BER indefinite-length form,
	// which is not supported.
	ErrIndefiniteLength = errors.New("asn1: indefinite length is not supported")
	// ErrContentTooLong is returned when a declared content length exceeds the
	// configured maximum.
	ErrContentTooLong = errors.New("asn1: content length exceeds maximum")
	// ErrTrailingData is returned when bytes remain after the root element.
	ErrTrailingData = errors.New("asn1: trailing data after element")
	// ErrMultipleRoots is returned when the input holds more than one
	// top-level element.
	ErrMultipleRoots = errors.New("asn1: more than one root element")
	// ErrEmpty is returned when there is nothing to parse.
	ErrEmpty = errors.New("asn1: empty input")
	// ErrMaxDepth is returned when elements are nested deeper than allowed.
	ErrMaxDepth = errors.New("asn1: maximum nesting depth exceeded")
	// ErrNotConstructed is returned when a structure would be encoded with
	// a primitive tag, or a SEQUENCE or SET tag is used for a primitive.
	ErrNotConstructed = errors.New("asn1: tag is not constructed")
	// ErrNotPrimitive is returned when primitive content is requested from a
	// structure.
	ErrNotPrimitive = errors.New("asn1: element is not primitive")
)

// ErrTagMismatch is matched by every *TagMismatchError.
var ErrTagMismatch = errors.New("asn1: tag mismatch")

// Semantic and range errors. Values that fail these checks are never
// constructed.
var (
	// ErrInvalidOID is returned for malformed object identifiers.
	ErrInvalidOID = errors.New("asn1: invalid object identifier")
	// ErrInvalidBitString is returned for malformed bit strings.
	ErrInvalidBitString = errors.New("asn1: invalid bit string")
	// ErrSetOfMixedTags is returned when the children of a SET OF do not share
	// a tag.
	ErrSetOfMixedTags = errors.New("asn1: SET OF children have different tags")
	// ErrInvalidValue is returned when primitive content cannot be decoded
	// into the requested type.
	ErrInvalidValue = errors.New("asn1: invalid value")
)

// SyntaxError reports a structural error and the byte offset of the TLV in
// which it was found. Offsets are relative to the input passed to Parse.
type SyntaxError struct {
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Err, e.Offset)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// TagMismatchError is returned when an element does not carry the tag the
// caller expected. Callers use it to fall back to an alternative
// interpretation of the same bytes.
type TagMismatchError struct {
	Expected Tag
	Actual   Tag
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("asn1: tag mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrTagMismatch) work.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}

func syntaxError(offset int, err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	return &SyntaxError{Offset: offset, Err: err}
}

func invalidValue(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidValue, format, args...)
}
