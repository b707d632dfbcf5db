package orchestration

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/somoscan/internal/config"
	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/internal/somos"
	"github.com/agbru/somoscan/internal/testutil"
	"github.com/agbru/somoscan/internal/ui"
)

func testConfig(parallel bool) config.AppConfig {
	return config.AppConfig{
		MinOrder:   1,
		MaxOrder:   6,
		Iterations: 64,
		Timeout:    time.Minute,
		Parallel:   parallel,
	}
}

func TestExecuteScans_AscendingOrder(t *testing.T) {
	results := ExecuteScans(context.Background(), testConfig(false), io.Discard)

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("order %d failed: %v", res.Order, res.Err)
		}
		if res.Order != i+1 {
			t.Errorf("results[%d].Order = %d, want %d", i, res.Order, i+1)
		}
		if res.Result.Order != res.Order {
			t.Errorf("result record order mismatch: %d vs %d", res.Result.Order, res.Order)
		}
	}
}

func TestExecuteScans_ParallelMatchesSequential(t *testing.T) {
	sequential := ExecuteScans(context.Background(), testConfig(false), io.Discard)
	parallel := ExecuteScans(context.Background(), testConfig(true), io.Discard)

	if len(sequential) != len(parallel) {
		t.Fatalf("result counts differ: %d vs %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		s, p := sequential[i], parallel[i]
		if s.Order != p.Order {
			t.Fatalf("order mismatch at %d: %d vs %d", i, s.Order, p.Order)
		}
		if s.Result.Outcome != p.Result.Outcome || len(s.Result.Steps) != len(p.Result.Steps) {
			t.Errorf("order %d diverges between modes", s.Order)
		}
	}
}

func TestExecuteScans_KnownOutcomes(t *testing.T) {
	results := ExecuteScans(context.Background(), testConfig(false), io.Discard)

	want := map[int]somos.Outcome{
		1: somos.OutcomeBreakdown,
		2: somos.OutcomeCycle,
		3: somos.OutcomeCycle,
		// Somos-4 overflows its dividend at index 63, inside a 64-entry
		// bound; Somos-5 grows slowly enough to run out the bound.
		4: somos.OutcomeBreakdown,
		5: somos.OutcomeExhausted,
	}
	for _, res := range results {
		expected, ok := want[res.Order]
		if !ok {
			continue
		}
		if res.Result.Outcome != expected {
			t.Errorf("order %d: outcome = %v, want %v", res.Order, res.Result.Outcome, expected)
		}
	}
}

func TestExecuteScans_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ExecuteScans(ctx, testConfig(false), io.Discard)
	for _, res := range results {
		if res.Err == nil {
			t.Fatalf("order %d: expected an error under a canceled context", res.Order)
		}
		if !apperrors.IsContextError(res.Err) {
			t.Errorf("order %d: err = %v, want a context error", res.Order, res.Err)
		}
	}
}

func TestRenderScanResults_Report(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	cfg := testConfig(false)
	results := ExecuteScans(context.Background(), cfg, io.Discard)

	var buf bytes.Buffer
	code := RenderScanResults(results, cfg, &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want success", code)
	}

	out := buf.String()
	for _, header := range []string{"Somos-1\n", "Somos-2\n", "Somos-6\n"} {
		if !strings.Contains(out, header) {
			t.Errorf("report missing header %q", header)
		}
	}
	// Ascending order of headers.
	if strings.Index(out, "Somos-1\n") > strings.Index(out, "Somos-2\n") {
		t.Error("headers are not in ascending order")
	}
	if strings.Contains(out, "Scan Summary") {
		t.Error("summary table should not appear without the details flag")
	}
}

func TestRenderScanResults_Deterministic(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	cfg := testConfig(false)
	var first, second bytes.Buffer
	RenderScanResults(ExecuteScans(context.Background(), cfg, io.Discard), cfg, &first)
	RenderScanResults(ExecuteScans(context.Background(), cfg, io.Discard), cfg, &second)

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two identical scans rendered differently")
	}
}

func TestRenderScanResults_SummaryTable(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	cfg := testConfig(false)
	cfg.Details = true
	results := ExecuteScans(context.Background(), cfg, io.Discard)

	var buf bytes.Buffer
	RenderScanResults(results, cfg, &buf)
	out := testutil.StripAnsiCodes(buf.String())

	if !strings.Contains(out, "Scan Summary") {
		t.Fatalf("summary table missing:\n%s", out)
	}
	for _, want := range []string{"breakdown", "cycle", "exhausted"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing outcome %q", want)
		}
	}
}

func TestRenderScanResults_ErrorExitCode(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	cfg := testConfig(false)
	results := []ScanResult{
		{Order: 1, Err: apperrors.NewScanError(1, context.Canceled)},
	}

	var buf bytes.Buffer
	code := RenderScanResults(results, cfg, &buf)
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
