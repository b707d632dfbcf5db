package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/somoscan/internal/somos"
)

// fakeSpinner records spinner interactions without touching a terminal.
type fakeSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
}

func (f *fakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeSpinner) UpdateSuffix(suffix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suffixes = append(f.suffixes, suffix)
}

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = original })
	return fake
}

func TestProgressState(t *testing.T) {
	state := NewProgressState(4)
	state.Update(0, 1.0)
	state.Update(1, 0.5)
	state.Update(2, 0.5)
	// index 3 stays at 0; out-of-range updates are ignored
	state.Update(-1, 1.0)
	state.Update(4, 1.0)

	if got := state.CalculateAverage(); got != 0.5 {
		t.Errorf("CalculateAverage() = %v, want 0.5", got)
	}
}

func TestProgressState_Empty(t *testing.T) {
	if got := NewProgressState(0).CalculateAverage(); got != 0.0 {
		t.Errorf("CalculateAverage() = %v, want 0", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		length   int
		filled   int
	}{
		{0.0, 10, 0},
		{0.5, 10, 5},
		{1.0, 10, 10},
		{1.5, 10, 10}, // clamped
		{-0.5, 10, 0}, // clamped
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, tt.length)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v, %d): %d filled cells, want %d", tt.progress, tt.length, got, tt.filled)
		}
	}
}

func TestDisplayProgress_FinalLine(t *testing.T) {
	fake := withFakeSpinner(t)

	ch := make(chan somos.ProgressUpdate, 8)
	ch <- somos.ProgressUpdate{OrderIndex: 0, Value: 0.5}
	close(ch)

	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, &buf)
	wg.Wait()

	if !fake.started || !fake.stopped {
		t.Errorf("spinner lifecycle incomplete: started=%v stopped=%v", fake.started, fake.stopped)
	}
	out := buf.String()
	if !strings.Contains(out, "100.00%") {
		t.Errorf("final line missing 100%%, got %q", out)
	}
	if !strings.Contains(out, "Avg scan progress") {
		t.Errorf("expected averaged label for multiple orders, got %q", out)
	}
}

func TestDisplayProgress_ZeroOrdersDrains(t *testing.T) {
	ch := make(chan somos.ProgressUpdate, 2)
	ch <- somos.ProgressUpdate{OrderIndex: 0, Value: 0.5}
	close(ch)

	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 0, &buf)
	wg.Wait()

	if buf.Len() != 0 {
		t.Errorf("expected no output for zero orders, got %q", buf.String())
	}
}
