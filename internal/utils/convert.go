package utils

import (
	"math"
)

// MustUint32 converts an int64 to a uint32. It panics if the value does not
// fit.
func MustUint32[T int | int64 | uint64](v T) uint32 {
	if v < 0 || uint64(v) > math.MaxUint32 {
		panic("value cannot be converted to uint32")
	}
	return uint32(v)
}

// MustUint8 converts an int to a uint8. It panics if the value does not fit.
func MustUint8(v int) uint8 {
	if v < 0 || v > math.MaxUint8 {
		panic("value cannot be converted to uint8")
	}
	return uint8(v)
}
