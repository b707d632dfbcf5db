package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	apperrors "github.com/agbru/somoscan/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("somoscan", nil, &buf)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.MinOrder != DefaultMinOrder || cfg.MaxOrder != DefaultMaxOrder {
		t.Errorf("order range = %d..%d, want %d..%d", cfg.MinOrder, cfg.MaxOrder, DefaultMinOrder, DefaultMaxOrder)
	}
	if cfg.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", cfg.Iterations, DefaultIterations)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.Parallel || cfg.Quiet || cfg.JSONOutput || cfg.ServerMode || cfg.Details {
		t.Error("boolean modes should default to false")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{
		"-min-order", "2", "-max-order", "8", "-iterations", "512",
		"-parallel", "-q", "-json", "-o", "report.txt", "-timeout", "30s",
	}
	cfg, err := ParseConfig("somoscan", args, &buf)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.MinOrder != 2 || cfg.MaxOrder != 8 || cfg.Iterations != 512 {
		t.Errorf("unexpected scan parameters: %+v", cfg)
	}
	if !cfg.Parallel || !cfg.Quiet || !cfg.JSONOutput {
		t.Errorf("boolean flags not applied: %+v", cfg)
	}
	if cfg.OutputFile != "report.txt" {
		t.Errorf("OutputFile = %q, want report.txt", cfg.OutputFile)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"MAX_ORDER", "12")
	t.Setenv(EnvPrefix+"ITERATIONS", "1024")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	var buf bytes.Buffer
	cfg, err := ParseConfig("somoscan", nil, &buf)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.MaxOrder != 12 || cfg.Iterations != 1024 || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"MAX_ORDER", "12")

	var buf bytes.Buffer
	cfg, err := ParseConfig("somoscan", []string{"-max-order", "5"}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.MaxOrder != 5 {
		t.Errorf("MaxOrder = %d, explicit flag should win over env", cfg.MaxOrder)
	}
}

func TestParseConfig_InvalidFlag(t *testing.T) {
	var buf bytes.Buffer
	if _, err := ParseConfig("somoscan", []string{"-no-such-flag"}, &buf); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestValidate(t *testing.T) {
	valid := AppConfig{
		MinOrder: 1, MaxOrder: 30, Iterations: 65536,
		Timeout: time.Minute, Port: DefaultPort,
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
		wantOK bool
	}{
		{"valid", func(c *AppConfig) {}, true},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, false},
		{"min order below 1", func(c *AppConfig) { c.MinOrder = 0 }, false},
		{"inverted range", func(c *AppConfig) { c.MinOrder, c.MaxOrder = 10, 5 }, false},
		{"iterations too small", func(c *AppConfig) { c.Iterations = 30 }, false},
		{"single order", func(c *AppConfig) { c.MinOrder, c.MaxOrder = 4, 4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("expected a validation error")
				}
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected a ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestOrderCount(t *testing.T) {
	cfg := AppConfig{MinOrder: 1, MaxOrder: 30}
	if got := cfg.OrderCount(); got != 30 {
		t.Errorf("OrderCount() = %d, want 30", got)
	}
}

func TestToScanOptions(t *testing.T) {
	cfg := AppConfig{Iterations: 2048}
	if opts := cfg.ToScanOptions(); opts.Iterations != 2048 {
		t.Errorf("Iterations = %d, want 2048", opts.Iterations)
	}
}
