// Package buf holds the overflow-aware integer helpers and byte-slice bounds
// checks shared by the addressing and buffer packages.
//
// Offsets are plain ints that must stay non-negative. Where the arithmetic
// could leave that range the Sat* helpers clamp instead of wrapping.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on overflow.
// Negative operands are rejected.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// SatAdd adds two non-negative ints, saturating at math.MaxInt.
func SatAdd(a, b int) int {
	if s, ok := AddOverflowSafe(a, b); ok {
		return s
	}
	return math.MaxInt
}

// SatSub returns a-b floored at zero.
func SatSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// SatMul multiplies two non-negative ints, saturating at math.MaxInt.
// Negative operands yield 0.
func SatMul(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if p, ok := MulOverflowSafe(a, b); ok {
		return p
	}
	return math.MaxInt
}

// Clamp bounds v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
