// Package orchestration coordinates the execution of sequence scans across
// the configured order range, sequentially or in parallel, and renders the
// combined report. Parallel execution is safe because orders share no
// state; ascending-order output is restored at rendering time.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/somoscan/internal/cli"
	"github.com/agbru/somoscan/internal/config"
	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/internal/somos"
	"github.com/agbru/somoscan/internal/ui"
)

// ScanResult encapsulates the outcome of a single order's scan together
// with its execution metadata.
type ScanResult struct {
	// Order is the sequence order that was scanned.
	Order int
	// Result is the scan record. It is nil if an error occurred.
	Result *somos.SequenceResult
	// Duration is the time taken to complete the scan.
	Duration time.Duration
	// Err contains any error that occurred during the scan.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces dropped updates when the UI is
// slow to consume them.
const ProgressBufferMultiplier = 8

// ExecuteScans runs one scan per order in the configured range and returns
// the results indexed in ascending order.
//
// It manages the scan goroutines (when parallel mode is on), the progress
// display, and the per-order timing. Scans that fail (cancellation, invalid
// parameters) report their error in the corresponding slot; remaining
// orders are still attempted.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - cfg: The application configuration (order range, iteration bound).
//   - progressOut: The io.Writer for the progress display (io.Discard to
//     suppress it).
//
// Returns:
//   - []ScanResult: One result per order, ascending.
func ExecuteScans(ctx context.Context, cfg config.AppConfig, progressOut io.Writer) []ScanResult {
	orders := cfg.OrderCount()
	results := make([]ScanResult, orders)
	progressChan := make(chan somos.ProgressUpdate, orders*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, orders, progressOut)

	opts := cfg.ToScanOptions()
	opts.Observer = somos.NewChannelObserver(progressChan, cfg.MinOrder)
	scanner := somos.NewScanner(opts)

	if cfg.Parallel {
		g := new(errgroup.Group)
		for i := 0; i < orders; i++ {
			idx, order := i, cfg.MinOrder+i
			g.Go(func() error {
				results[idx] = runScan(ctx, scanner, order)
				return nil
			})
		}
		g.Wait()
	} else {
		for i := 0; i < orders; i++ {
			results[i] = runScan(ctx, scanner, cfg.MinOrder+i)
		}
	}

	close(progressChan)
	displayWg.Wait()

	return results
}

// runScan executes one order's scan and captures its timing.
func runScan(ctx context.Context, scanner *somos.Scanner, order int) ScanResult {
	start := time.Now()
	result, err := scanner.Scan(ctx, order)
	if err != nil {
		err = apperrors.NewScanError(order, err)
	}
	return ScanResult{
		Order:    order,
		Result:   result,
		Duration: time.Since(start),
		Err:      err,
	}
}

// RenderScanResults writes the combined sequence report in ascending order
// and, if requested, a per-order summary table. It returns the process exit
// code: success when every order completed (whatever its mathematical
// outcome), or the code matching the first scan failure.
//
// Parameters:
//   - results: The scan results, ascending by order.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func RenderScanResults(results []ScanResult, cfg config.AppConfig, out io.Writer) int {
	var firstErr error
	var firstErrDuration time.Duration

	for _, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
				firstErrDuration = res.Duration
			}
			continue
		}
		cli.WriteSequenceReport(out, res.Result)
	}

	if cfg.Details {
		writeSummaryTable(results, out)
	}

	if firstErr != nil {
		fmt.Fprintln(out)
		return apperrors.HandleScanError(firstErr, firstErrDuration, out, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// writeSummaryTable prints the per-order comparison table shown by the
// details flag.
func writeSummaryTable(results []ScanResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Scan Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sOrder%s\t%sOutcome%s\t%sSteps%s\t%sDuration%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%sSomos-%d%s\t%s✗ %v%s\t-\t-\n",
				ui.ColorBlue(), res.Order, ui.ColorReset(),
				ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%sSomos-%d%s\t%s\t%d\t%s%s%s\n",
			ui.ColorBlue(), res.Order, ui.ColorReset(),
			cli.OutcomeText(res.Result.Outcome),
			len(res.Result.Steps),
			ui.ColorYellow(), duration, ui.ColorReset())
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}
