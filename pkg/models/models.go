// Package models defines the shared data structures for somoscan results
// as they appear on external surfaces: the JSON output mode and the HTTP
// API. Numeric fields carry the exact decimal texts of the underlying
// doubles so no precision is lost in transit.
package models

import (
	"time"

	"github.com/agbru/somoscan/internal/numfmt"
	"github.com/agbru/somoscan/internal/somos"
)

// ScanStep is one evaluated recurrence step.
type ScanStep struct {
	// Index is the buffer position that was computed.
	Index int `json:"index"`
	// Dividend is the exact decimal text of the step's dividend.
	Dividend string `json:"dividend"`
	// Divisor is the exact decimal text of the step's divisor.
	Divisor string `json:"divisor"`
	// Value is the exact decimal text of the computed term.
	Value string `json:"value"`
}

// ScanResult is the record of one order's scan.
type ScanResult struct {
	// Order is the sequence order s.
	Order int `json:"order"`
	// Outcome names the terminal state: "breakdown", "cycle" or "exhausted".
	Outcome string `json:"outcome"`
	// Steps lists every evaluated step in index order.
	Steps []ScanStep `json:"steps"`
	// StepCount duplicates len(Steps) for consumers that drop the step list.
	StepCount int `json:"step_count"`
	// Duration is the human-readable scan duration.
	Duration string `json:"duration"`
	// Error reports a failed scan (cancellation, invalid parameters).
	Error string `json:"error,omitempty"`
}

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse is the uniform error payload of the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromSequenceResult converts an internal scan record into its external form.
//
// Parameters:
//   - result: The scan record; may be nil when err is non-nil.
//   - duration: The elapsed scan time.
//   - err: The scan failure, if any.
//
// Returns:
//   - ScanResult: The external representation.
func FromSequenceResult(result *somos.SequenceResult, duration time.Duration, err error) ScanResult {
	out := ScanResult{Duration: duration.String()}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Order = result.Order
	out.Outcome = result.Outcome.String()
	out.Steps = make([]ScanStep, len(result.Steps))
	for i, step := range result.Steps {
		out.Steps[i] = ScanStep{
			Index:    step.Index,
			Dividend: numfmt.FormatExact(step.Fraction.Dividend),
			Divisor:  numfmt.FormatExact(step.Fraction.Divisor),
			Value:    numfmt.FormatExact(step.Value),
		}
	}
	out.StepCount = len(out.Steps)
	return out
}
