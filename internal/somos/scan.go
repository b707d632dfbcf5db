package somos

import (
	"context"
	"fmt"

	"github.com/agbru/somoscan/internal/numfmt"
)

// Default scan parameters. These mirror the reference computation: one
// buffer of 65536 entries per order, orders 1 through 30.
const (
	// DefaultIterations is the default iteration bound (buffer length).
	DefaultIterations = 65536
	// DefaultMinOrder is the first sequence order scanned.
	DefaultMinOrder = 1
	// DefaultMaxOrder is the last sequence order scanned.
	DefaultMaxOrder = 30
)

// cancelCheckInterval controls how often the scan loop polls the context
// and publishes progress. The loop body is a handful of float operations,
// so per-iteration polling would dominate the cost.
const cancelCheckInterval = 1024

// Outcome identifies the terminal state of a single sequence scan.
type Outcome int

const (
	// OutcomeExhausted means the iteration bound was reached with every
	// computed term finite and no fraction repetition.
	OutcomeExhausted Outcome = iota
	// OutcomeBreakdown means a term evaluated to Infinity or NaN. This is
	// the expected end of most orders under fixed-precision arithmetic.
	OutcomeBreakdown
	// OutcomeCycle means two consecutive steps produced component-wise
	// identical fractions, the early-stop heuristic for degenerate orders.
	OutcomeCycle
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeBreakdown:
		return "breakdown"
	case OutcomeCycle:
		return "cycle"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Step records one evaluated index of a sequence scan.
type Step struct {
	// Index is the buffer position that was computed.
	Index int
	// Fraction is the dividend/divisor pair used at this index.
	Fraction Fraction
	// Value is the computed term, Fraction.Dividend / Fraction.Divisor.
	Value float64
}

// SequenceResult is the complete record of one order's scan.
type SequenceResult struct {
	// Order is the sequence order s that was scanned.
	Order int
	// Steps lists every evaluated step, in index order.
	Steps []Step
	// Outcome is the terminal state that ended the scan.
	Outcome Outcome
}

// Options configures a Scanner.
type Options struct {
	// Iterations is the per-order buffer length (iteration bound).
	// Zero or negative selects DefaultIterations.
	Iterations int
	// Observer receives normalized progress updates keyed by order.
	// Nil disables progress reporting.
	Observer ProgressObserver
}

// Scanner runs the per-order state machine: seed the buffer, iterate the
// recurrence, stop on breakdown, cycle, or exhaustion.
//
// A Scanner is safe for concurrent use: each Scan call allocates its own
// buffer and shares no mutable state with other calls.
type Scanner struct {
	iterations int
	observer   ProgressObserver
}

// NewScanner creates a Scanner from the given options.
func NewScanner(opts Options) *Scanner {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	observer := opts.Observer
	if observer == nil {
		observer = NewNoOpObserver()
	}
	return &Scanner{iterations: iterations, observer: observer}
}

// Iterations returns the configured iteration bound.
func (sc *Scanner) Iterations() int { return sc.iterations }

// Scan runs the Somos-order sequence to termination and returns its record.
//
// The error return covers only exceptional conditions: an order the buffer
// cannot accommodate, or context cancellation. Numeric breakdown and cycle
// detection are normal outcomes carried in the result.
//
// Parameters:
//   - ctx: The context for cancellation; polled periodically.
//   - order: The sequence order s, at least 1 and below the iteration bound.
//
// Returns:
//   - *SequenceResult: The scan record, nil on error.
//   - error: An error if the order is invalid or the context ended.
func (sc *Scanner) Scan(ctx context.Context, order int) (*SequenceResult, error) {
	if order < 1 {
		return nil, fmt.Errorf("somos: order must be at least 1, got %d", order)
	}
	if order >= sc.iterations {
		return nil, fmt.Errorf("somos: iteration bound %d leaves no room for order %d", sc.iterations, order)
	}

	buf := make([]float64, sc.iterations)
	for i := 0; i < order; i++ {
		buf[i] = 1.0
	}

	result := &SequenceResult{Order: order, Outcome: OutcomeExhausted}
	var lastFraction Fraction
	haveLast := false

	for n := order; n < len(buf); n++ {
		if (n-order)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sc.observer.Update(order, float64(n-order)/float64(len(buf)-order))
		}

		fraction := Evaluate(order, n, buf)
		result.Steps = append(result.Steps, Step{Index: n, Fraction: fraction, Value: buf[n]})

		if numfmt.IsNonFinite(buf[n]) {
			result.Outcome = OutcomeBreakdown
			break
		}
		if haveLast && fraction.Equal(lastFraction) {
			result.Outcome = OutcomeCycle
			break
		}
		lastFraction, haveLast = fraction, true
	}

	sc.observer.Update(order, 1.0)
	return result, nil
}
