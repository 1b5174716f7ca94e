package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigbuf/internal/cli"
	"github.com/agbru/bigbuf/internal/config"
	apperrors "github.com/agbru/bigbuf/internal/errors"
	"github.com/agbru/bigbuf/internal/logging"
	"github.com/agbru/bigbuf/internal/server"
	"github.com/agbru/bigbuf/internal/service"
	"github.com/agbru/bigbuf/internal/ui"
)

// Application represents the bigbuf application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (one-shot, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service is the buffer registry all surfaces operate on.
	// Uses the interface type for better testability and dependency injection.
	Service service.Service
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "bigbuf"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Service:   service.NewBufferService(0),
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server, REPL, or one-shot).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Interactive REPL mode
	if a.Config.Interactive {
		return a.runREPL()
	}

	// One-shot mode: build the working buffer, run the script, render
	return a.runOneShot(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Config,
		server.WithService(a.Service),
		server.WithLogger(runLogger(a.Config, a.ErrWriter)),
	)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runLogger selects the server's logger from the output configuration:
// human-readable console lines while colors are enabled, machine-readable
// JSON lines under -no-color, and warnings only under -quiet.
func runLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	logger := logging.NewConsoleLogger(w, "server")
	if cfg.NoColor {
		logger = logging.NewLogger(w, "server")
	}
	if cfg.Quiet {
		logger = logger.WithLevel(zerolog.WarnLevel)
	}
	return logger
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Service, cli.REPLConfig{
		Capacity: a.Config.Capacity,
		From:     a.Config.From,
		Timeout:  a.Config.Timeout,
		Verbose:  a.Config.Verbose,
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// runOneShot executes the one-shot mode: the working buffer is created from
// the -from value, the -e script (if any) runs against it, and the final
// state is rendered according to the output configuration.
func (a *Application) runOneShot(ctx context.Context, out io.Writer) int {
	ctx, stop := oneShotContext(ctx, a.Config.Timeout)
	defer stop()

	start := time.Now()

	if _, err := a.Service.Create(ctx, cli.WorkingBuffer, a.Config.Capacity, a.Config.From); err != nil {
		return a.reportError(err, time.Since(start), out)
	}

	// In quiet mode, suppress intermediate digit output
	scriptOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		scriptOut = io.Discard
	}

	var (
		snap service.Snapshot
		err  error
	)
	if a.Config.Script != "" {
		snap, err = cli.RunScript(ctx, a.Service, cli.WorkingBuffer, a.Config.Script, scriptOut, a.Config.Quiet)
	} else {
		snap, err = a.Service.Snapshot(ctx, cli.WorkingBuffer)
	}
	duration := time.Since(start)
	if err != nil {
		return a.reportError(err, duration, out)
	}

	// Handle JSON output
	if a.Config.JSONOutput {
		return printJSONResult(snap, duration, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, snap, duration, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// oneShotContext bounds a script run by the configured timeout and by
// SIGINT/SIGTERM, so an interrupted run still exits through the normal
// error path with a canceled context. The returned stop function releases
// both the timer and the signal registration.
func oneShotContext(ctx context.Context, timeout time.Duration) (context.Context, func()) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stop()
		cancel()
	}
}

// reportError renders a one-shot failure and converts it to an exit code.
func (a *Application) reportError(err error, duration time.Duration, out io.Writer) int {
	if a.Config.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(jsonResult{Duration: duration.String(), Error: err.Error()})
		return apperrors.ExitErrorGeneric
	}
	return apperrors.HandleRunError(err, a.ErrWriter, ui.ColorProvider{})
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult represents a one-shot result in JSON format.
type jsonResult struct {
	Value    string `json:"value,omitempty"`
	Length   int    `json:"length,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// printJSONResult formats the final buffer state as JSON and writes it to the
// output. This is useful for programmatic consumption of the result.
func printJSONResult(snap service.Snapshot, duration time.Duration, out io.Writer) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonResult{
		Value:    snap.Value,
		Length:   snap.Length,
		Capacity: snap.Capacity,
		Duration: duration.String(),
	}); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
