package asn1

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	utcTimeLayout         = "060102150405"
	generalizedTimeLayout = "20060102150405.999999999"
)

// NewUTCTime returns a UTCTime. Only years 1950 through 2049 can be
// represented.
func NewUTCTime(t time.Time) (*Primitive, error) {
	t = t.UTC()
	if y := t.Year(); y < 1950 || y >= 2050 {
		return nil, invalidValue("year %d cannot be represented as UTCTime", y)
	}
	return newPrimitive(TagUTCTime, []byte(t.Format("060102150405")+"Z")), nil
}

// NewGeneralizedTime returns a GeneralizedTime in UTC. Fractional seconds
// are kept without trailing zeros.
func NewGeneralizedTime(t time.Time) (*Primitive, error) {
	t = t.UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return nil, invalidValue("year %d cannot be represented as GeneralizedTime", y)
	}
	s := t.Format("20060102150405.999999999")
	return newPrimitive(TagGeneralizedTime, []byte(s+"Z")), nil
}

// NewTime returns a UTCTime for years 1950 through 2049 and a
// GeneralizedTime otherwise, as RFC 5280 requires for certificate validity.
func NewTime(t time.Time) (*Primitive, error) {
	if y := t.UTC().Year(); y >= 1950 && y < 2050 {
		return NewUTCTime(t)
	}
	return NewGeneralizedTime(t)
}

// Time decodes a UTCTime or a GeneralizedTime. Both must be in the DER form:
// UTC with a trailing "Z" and seconds present, and for GeneralizedTime a
// fraction without trailing zeros.
func (p *Primitive) Time() (time.Time, error) {
	s := string(p.content)
	switch {
	case p.tag.Equal(TagUTCTime):
		return parseUTCTime(s)
	case p.tag.Equal(TagGeneralizedTime):
		return parseGeneralizedTime(s)
	default:
		return time.Time{}, &TagMismatchError{Expected: TagUTCTime, Actual: p.tag}
	}
}

// TimeOrNil is like Time but returns nil on error.
func (p *Primitive) TimeOrNil() *time.Time {
	t, err := p.Time()
	if err != nil {
		return nil
	}
	return &t
}

func parseUTCTime(s string) (time.Time, error) {
	body, ok := strings.CutSuffix(s, "Z")
	if !ok || len(body) != len(utcTimeLayout) {
		return time.Time{}, errors.Wrapf(ErrInvalidValue, "invalid UTCTime %q", s)
	}
	t, err := time.Parse(utcTimeLayout, body)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidValue, "invalid UTCTime %q", s)
	}
	if y := t.Year(); y >= 2050 {
		t = t.AddDate(-100, 0, 0)
	}
	return t, nil
}

func parseGeneralizedTime(s string) (time.Time, error) {
	body, ok := strings.CutSuffix(s, "Z")
	if !ok || strings.Contains(body, ",") {
		return time.Time{}, errors.Wrapf(ErrInvalidValue, "invalid GeneralizedTime %q", s)
	}
	if _, frac, found := strings.Cut(body, "."); found && (frac == "" || strings.HasSuffix(frac, "0")) {
		return time.Time{}, errors.Wrapf(ErrInvalidValue, "invalid GeneralizedTime fraction %q", s)
	}
	t, err := time.Parse(generalizedTimeLayout, body)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidValue, "invalid GeneralizedTime %q", s)
	}
	return t, nil
}
