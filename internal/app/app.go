package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/somoscan/internal/cli"
	"github.com/agbru/somoscan/internal/config"
	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/internal/orchestration"
	"github.com/agbru/somoscan/internal/server"
	"github.com/agbru/somoscan/internal/ui"
	"github.com/agbru/somoscan/pkg/models"
)

// Application represents the somoscan application instance.
// It encapsulates the configuration and provides methods to run the
// application in its two modes (CLI scan, HTTP server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output and progress decoration
	// (typically os.Stderr). Keeping decoration off stdout preserves the
	// report's byte-determinism.
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "somoscan"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for the report (typically os.Stdout).
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}

	return a.runScan(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runScan orchestrates the execution of the scan over the configured order
// range and renders the report.
func (a *Application) runScan(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Release()

	// Progress decoration goes to the error writer and disappears entirely
	// in quiet or JSON mode.
	progressOut := a.ErrWriter
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteScans(ctx, a.Config, progressOut)

	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	w := bufio.NewWriter(out)
	exitCode := orchestration.RenderScanResults(results, a.Config, w)
	if err := w.Flush(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if a.Config.OutputFile != "" {
		if err := a.saveReport(results); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(a.ErrWriter, "%s✓ Report saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// saveReport renders the plain report (no summary table, no colors) and
// writes it to the configured output file.
func (a *Application) saveReport(results []orchestration.ScanResult) error {
	var buf bytes.Buffer
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		cli.WriteSequenceReport(&buf, res.Result)
	}
	return cli.WriteReportToFile(a.Config.OutputFile, buf.Bytes())
}

// printJSONResults formats the scan results as a JSON array and writes them
// to the output. This is useful for programmatic consumption.
func printJSONResults(results []orchestration.ScanResult, out io.Writer) int {
	output := make([]models.ScanResult, len(results))
	for i, res := range results {
		output[i] = models.FromSequenceResult(res.Result, res.Duration, res.Err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This lets the caller exit with success after displaying help text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
