// Package numfmt classifies float64 values and renders finite values in
// their exact decimal expansion.
//
// FormatExact is deliberately not shortest-round-trip formatting. Every
// finite float64 is a dyadic rational m/2^k, so its decimal expansion
// terminates, and FormatExact prints all of it. For a value like 1.0/3.0
// the expansion runs to dozens of digits. Shortest-round-trip formatting (what
// strconv.FormatFloat produces by default) would hide the stored binary
// value behind a convenient approximation.
package numfmt

import (
	"math"
	"math/big"
	"strconv"
)

// Textual forms used for non-finite values.
const (
	TextNaN    = "NaN"
	TextPosInf = "Infinity"
	TextNegInf = "-Infinity"
)

// IsNonFinite reports whether v is NaN or ±Infinity.
// NaN is detected through self-inequality, the one comparison NaN is
// guaranteed to fail under IEEE-754 semantics.
func IsNonFinite(v float64) bool {
	return v != v || math.IsInf(v, 0)
}

// FormatExact returns the exact base-10 expansion of the IEEE-754 double v:
// no rounding, no scientific notation, no digits beyond what exactness
// requires. Non-finite values render as "NaN", "Infinity" or "-Infinity".
//
// Parameters:
//   - v: The value to render.
//
// Returns:
//   - string: The exact decimal text of v.
func FormatExact(v float64) string {
	if v != v {
		return TextNaN
	}
	if math.IsInf(v, 1) {
		return TextPosInf
	}
	if math.IsInf(v, -1) {
		return TextNegInf
	}

	r := new(big.Rat).SetFloat64(v)
	// The reduced denominator of a finite float64 is a power of two, so the
	// decimal expansion terminates after exactly bitlen(denom)-1 fractional
	// digits. The final digit of any non-empty fractional part is 5, which
	// means FloatString never needs to round or pad here.
	digits := r.Denom().BitLen() - 1
	if digits == 0 {
		return r.Num().String()
	}
	return r.FloatString(digits)
}

// ParseExact converts text produced by FormatExact back into a float64.
// Because FormatExact emits the exact value of the double, the nearest
// float64 to the parsed decimal is the original value, bit for bit.
//
// Parameters:
//   - s: The decimal text to parse.
//
// Returns:
//   - float64: The parsed value.
//   - error: An error if s is not a valid decimal.
func ParseExact(s string) (float64, error) {
	switch s {
	case TextNaN:
		return math.NaN(), nil
	case TextPosInf:
		return math.Inf(1), nil
	case TextNegInf:
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(s, 64)
}
