// Package somos implements generalized Somos sequence evaluation in IEEE-754
// double precision, together with the scan state machine that drives it.
//
// A Somos-s sequence is defined by the recurrence
//
//	a(n) = (sum for i in 1..s/2 of a(n-i)*a(n-(s-i))) / a(n-s)
//
// seeded with s leading 1 values. Despite the division, many of these
// sequences stay integral for a long stretch (the classic Somos-4
// integrality property). Evaluated in float64, a run ends in one of three
// ways: numeric breakdown (Infinity or NaN), consecutive fraction
// repetition, or exhaustion of the iteration bound.
package somos

// Fraction is the dividend/divisor pair combined to produce one sequence
// term. It is transient state: the scanner keeps only the immediately
// preceding fraction, for cycle detection and step reporting.
type Fraction struct {
	// Dividend is the sum-of-products numerator of the recurrence step.
	Dividend float64
	// Divisor is the lagged term the dividend is divided by.
	Divisor float64
}

// Equal reports whether both components are IEEE-equal. A NaN component
// compares unequal to everything including itself, which is exactly what
// cycle detection needs: a broken fraction never registers as a repeat.
func (f Fraction) Equal(other Fraction) bool {
	return f.Dividend == other.Dividend && f.Divisor == other.Divisor
}

// Evaluate computes buf[n] for the Somos-s recurrence and returns the
// fraction that produced it.
//
// Preconditions, guaranteed by the Scanner by construction: s >= 1, n >= s,
// len(buf) > n, and buf[n-s..n-1] already populated. Violating them is a
// programming fault, not a runtime condition to recover from.
//
// A zero divisor is not an error: the division yields ±Infinity or NaN per
// IEEE-754 rules and the caller classifies the result.
//
// Parameters:
//   - s: The sequence order (lag span and seed count).
//   - n: The index to compute.
//   - buf: The sequence buffer; exactly buf[n] is written.
//
// Returns:
//   - Fraction: The dividend/divisor pair used for buf[n].
func Evaluate(s, n int, buf []float64) Fraction {
	var dividend float64
	for i := 1; i <= s/2; i++ {
		dividend += buf[n-i] * buf[n-(s-i)]
	}
	divisor := buf[n-s]
	buf[n] = dividend / divisor
	return Fraction{Dividend: dividend, Divisor: divisor}
}

// Evaluate4 is the hand-written classic Somos-4 step:
//
//	a(n) = (a(n-1)*a(n-3) + a(n-2)^2) / a(n-4)
//
// It is kept as an independent reference for cross-checking the generalized
// Evaluate in tests.
func Evaluate4(n int, buf []float64) Fraction {
	a1 := buf[n-1]
	a2 := buf[n-2]
	a3 := buf[n-3]
	a4 := buf[n-4]

	dividend := a1*a3 + a2*a2
	divisor := a4
	buf[n] = dividend / divisor
	return Fraction{Dividend: dividend, Divisor: divisor}
}
