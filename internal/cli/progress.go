package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/somoscan/internal/somos"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from the spinner library, which makes the
// display routine testable without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to satisfy the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a variable so tests can substitute a fake implementation.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep redraws synchronized.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of the orders being scanned and
// computes the average shown in the consolidated progress bar.
type ProgressState struct {
	progresses []float64
	numOrders  int
}

// NewProgressState creates a ProgressState tracking numOrders orders.
func NewProgressState(numOrders int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numOrders),
		numOrders:  numOrders,
	}
}

// Update records a new progress value for the order at the given range index.
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked orders.
func (ps *ProgressState) CalculateAverage() float64 {
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	if ps.numOrders == 0 {
		return 0.0
	}
	return total / float64(ps.numOrders)
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of a spinner and progress
// bar while scans run. It is designed to run in a dedicated goroutine,
// consuming updates until the progress channel is closed, then printing a
// persistent final line.
//
// The display writes to out, which the application points at stderr: the
// report on stdout stays byte-deterministic while the decoration does not.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numOrders: The number of orders contributing to the progress.
//   - out: The io.Writer to which the progress display is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan somos.ProgressUpdate, numOrders int, out io.Writer) {
	defer wg.Done()
	if numOrders <= 0 {
		for range progressChan { // Drain the channel
		}
		return
	}

	state := NewProgressState(numOrders)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := "Scan progress"
	if numOrders > 1 {
		label = "Avg scan progress"
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				// Stop the spinner first to free the line, then print the
				// final 100% state permanently.
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "%s: %6.2f%% [%s]\n", label, 100.0, bar)
				return
			}
			state.Update(update.OrderIndex, update.Value)
		case <-ticker.C:
			avg := state.CalculateAverage()
			bar := progressBar(avg, ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s]", label, avg*100, bar))
		}
	}
}
