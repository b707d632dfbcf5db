// Package config provides the configuration management for the somoscan
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/internal/somos"
)

const (
	// EnvPrefix is the prefix for all environment variables used by somoscan.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "SOMOS_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
// The iteration bound and order range default to the reference computation:
// 65536 iterations, orders 1 through 30.
const (
	// DefaultIterations is the default per-order iteration bound.
	DefaultIterations = somos.DefaultIterations
	// DefaultMinOrder is the default first order to scan.
	DefaultMinOrder = somos.DefaultMinOrder
	// DefaultMaxOrder is the default last order to scan.
	DefaultMaxOrder = somos.DefaultMaxOrder
	// DefaultTimeout is the default scan timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the scanned order range to presentation options.
type AppConfig struct {
	// MinOrder is the first sequence order to scan (inclusive).
	MinOrder int
	// MaxOrder is the last sequence order to scan (inclusive).
	MaxOrder int
	// Iterations is the per-order iteration bound (buffer length).
	Iterations int
	// Timeout sets the maximum duration for the whole scan.
	Timeout time.Duration
	// Parallel, if true, scans orders concurrently; output is still emitted
	// in ascending-order form.
	Parallel bool
	// Details, if true, appends a per-order summary table to the report.
	Details bool
	// JSONOutput, if true, outputs the scan results in JSON format.
	JSONOutput bool
	// Quiet suppresses progress display and informational messages,
	// leaving only the report itself. Intended for scripting.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the report to this file path.
	OutputFile string
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
}

// ToScanOptions converts the application configuration into somos.Options
// for use by the scanner. The observer is attached by the caller.
func (c AppConfig) ToScanOptions() somos.Options {
	return somos.Options{Iterations: c.Iterations}
}

// OrderCount returns the number of orders in the configured scan range.
func (c AppConfig) OrderCount() int {
	return c.MaxOrder - c.MinOrder + 1
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that the order range is well-formed and that the iteration
// bound leaves room to compute at least one term for every order.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MinOrder < 1 {
		return apperrors.NewConfigError("minimum order must be at least 1: %d", c.MinOrder)
	}
	if c.MaxOrder < c.MinOrder {
		return apperrors.NewConfigError("maximum order %d is below minimum order %d", c.MaxOrder, c.MinOrder)
	}
	if c.Iterations <= c.MaxOrder {
		return apperrors.NewConfigError(
			"iteration bound %d leaves no room to compute terms for order %d", c.Iterations, c.MaxOrder)
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it applies environment
// variable overrides and validates the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.MinOrder, "min-order", DefaultMinOrder, "First sequence order s to scan (inclusive).")
	fs.IntVar(&config.MaxOrder, "max-order", DefaultMaxOrder, "Last sequence order s to scan (inclusive).")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Per-order iteration bound (sequence buffer length).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the scan.")
	fs.BoolVar(&config.Parallel, "parallel", false, "Scan orders concurrently (output stays in ascending order).")
	fs.BoolVar(&config.Details, "d", false, "Append a per-order summary table to the report.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - no progress display, report only.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message that leads with the scan semantics
// before the generated flag listing.
func setCustomUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(out, "Scans generalized Somos-s sequences in double precision, printing each\n")
		fmt.Fprintf(out, "step's dividend, divisor and result, and stopping per order on numeric\n")
		fmt.Fprintf(out, "breakdown (Infinity/NaN) or repeated fractions.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
	}
}
