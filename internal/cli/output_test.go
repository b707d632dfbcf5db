package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agbru/somoscan/internal/somos"
	"github.com/agbru/somoscan/internal/testutil"
	"github.com/agbru/somoscan/internal/ui"
)

// Golden tests for report output. Expected strings are kept inline to pin
// the exact byte layout of the report.

func scanOrder(t *testing.T, order, iterations int) *somos.SequenceResult {
	t.Helper()
	scanner := somos.NewScanner(somos.Options{Iterations: iterations})
	result, err := scanner.Scan(context.Background(), order)
	if err != nil {
		t.Fatalf("Scan(%d): %v", order, err)
	}
	return result
}

func TestWriteSequenceReport_Golden(t *testing.T) {
	ui.InitTheme(true) // Disable colors for deterministic output
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	tests := []struct {
		name     string
		order    int
		expected string
	}{
		{
			name:  "order 1 breaks down",
			order: 1,
			expected: "Somos-1\n" +
				"\t0 / 1 = 0\n" +
				"\t0 / 0 = NaN\n",
		},
		{
			name:  "order 2 cycles",
			order: 2,
			expected: "Somos-2\n" +
				"\t1 / 1 = 1\n" +
				"\t1 / 1 = 1\n",
		},
		{
			name:  "order 3 cycles",
			order: 3,
			expected: "Somos-3\n" +
				"\t1 / 1 = 1\n" +
				"\t1 / 1 = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteSequenceReport(&buf, scanOrder(t, tt.order, 64))
			if got := buf.String(); got != tt.expected {
				t.Errorf("report mismatch.\nWant:\n%q\nGot:\n%q", tt.expected, got)
			}
		})
	}
}

func TestWriteSequenceReport_ClassicSomos4Prefix(t *testing.T) {
	var buf bytes.Buffer
	WriteSequenceReport(&buf, scanOrder(t, 4, 8))

	expected := "Somos-4\n" +
		"\t2 / 1 = 2\n" +
		"\t3 / 1 = 3\n" +
		"\t7 / 1 = 7\n" +
		"\t23 / 1 = 23\n"
	if got := buf.String(); got != expected {
		t.Errorf("report mismatch.\nWant:\n%q\nGot:\n%q", expected, got)
	}
}

func TestOutcomeText(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetCurrentTheme(ui.DefaultTheme)

	tests := []struct {
		outcome somos.Outcome
		want    string
	}{
		{somos.OutcomeBreakdown, "breakdown"},
		{somos.OutcomeCycle, "cycle"},
		{somos.OutcomeExhausted, "exhausted"},
	}
	for _, tt := range tests {
		if got := testutil.StripAnsiCodes(OutcomeText(tt.outcome)); got != tt.want {
			t.Errorf("OutcomeText(%v) = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{3 * time.Second, "3s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	content := []byte("Somos-2\n\t1 / 1 = 1\n")

	if err := WriteReportToFile(path, content); err != nil {
		t.Fatalf("WriteReportToFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("file content = %q, want %q", got, content)
	}
}

func TestWriteReportToFile_BadPath(t *testing.T) {
	err := WriteReportToFile(filepath.Join(t.TempDir(), "missing", "report.txt"), []byte("x"))
	if err == nil {
		t.Error("expected an error for a nonexistent directory")
	}
}
