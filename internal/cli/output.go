// The cli package provides the console surface of the somoscan application:
// sequence report rendering, the asynchronous progress display, and small
// formatting helpers shared by the orchestration layer.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/internal/numfmt"
	"github.com/agbru/somoscan/internal/somos"
	"github.com/agbru/somoscan/internal/ui"
)

// WriteSequenceReport renders one order's scan in the canonical report form:
// a "Somos-s" header followed by one tab-indented line per step, each line
// showing the exact decimal texts of dividend, divisor and result.
//
// The body is deliberately uncolored so that report output is byte-identical
// across runs and terminals.
//
// Parameters:
//   - out: The io.Writer receiving the report.
//   - result: The scan record to render.
func WriteSequenceReport(out io.Writer, result *somos.SequenceResult) {
	fmt.Fprintf(out, "Somos-%d\n", result.Order)
	for _, step := range result.Steps {
		fmt.Fprintf(out, "\t%s / %s = %s\n",
			numfmt.FormatExact(step.Fraction.Dividend),
			numfmt.FormatExact(step.Fraction.Divisor),
			numfmt.FormatExact(step.Value))
	}
}

// OutcomeText renders a scan outcome with theme colors for summary display.
func OutcomeText(outcome somos.Outcome) string {
	switch outcome {
	case somos.OutcomeBreakdown:
		return fmt.Sprintf("%sbreakdown%s", ui.ColorRed(), ui.ColorReset())
	case somos.OutcomeCycle:
		return fmt.Sprintf("%scycle%s", ui.ColorYellow(), ui.ColorReset())
	default:
		return fmt.Sprintf("%sexhausted%s", ui.ColorGreen(), ui.ColorReset())
	}
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// WriteReportToFile saves the plain-text report to the given path.
//
// Parameters:
//   - path: The destination file path.
//   - data: The rendered report bytes.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WrapError(err, "saving report to %s", path)
	}
	return nil
}

// CLIColorProvider supplies theme colors to the error handler without
// creating an import cycle between apperrors and this package.
type CLIColorProvider struct{}

// Yellow returns the warning color of the active theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset code of the active theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
