// Package config provides the configuration management for the bigbuf
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

	"github.com/agbru/bigbuf/internal/bigbuf"
	apperrors "github.com/agbru/bigbuf/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigbuf.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "BIGBUF_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultCapacity is the default number of digit slots per buffer.
	DefaultCapacity = bigbuf.DefaultCapacity
	// MaxCapacity bounds per-buffer capacity so that a single request cannot
	// allocate unreasonable storage.
	MaxCapacity = 4096
	// DefaultTimeout is the default execution timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from buffer capacity to the surface the application exposes
// (one-shot script, REPL, or HTTP server).
type AppConfig struct {
	// Capacity is the fixed digit capacity used for new buffers.
	Capacity int
	// From is the initial decimal text the working buffer is parsed from.
	From string
	// Script is a semicolon-separated sequence of buffer commands to run in
	// one-shot mode (e.g. "pushlow 5; add 27; show").
	Script string
	// Timeout sets the maximum duration for a run.
	Timeout time.Duration
	// JSONOutput, if true, outputs results in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// Verbose, if true, displays full values regardless of their size.
	Verbose bool
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses banners and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the rendered result to this file path.
	OutputFile string
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// selected modes do not conflict.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Capacity < 1 {
		return apperrors.NewConfigError("buffer capacity must be at least 1: %d", c.Capacity)
	}
	if c.Capacity > MaxCapacity {
		return apperrors.NewConfigError("buffer capacity cannot exceed %d: %d", MaxCapacity, c.Capacity)
	}
	if c.ServerMode && c.Interactive {
		return apperrors.NewConfigError("server mode and interactive mode are mutually exclusive")
	}
	if c.ServerMode && c.Script != "" {
		return apperrors.NewConfigError("server mode does not accept a -e script")
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
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
	fs.IntVar(&config.Capacity, "capacity", DefaultCapacity, "Fixed digit capacity for new buffers.")
	fs.StringVar(&config.From, "from", "", "Initial decimal value for the working buffer (separators '_' and spaces allowed).")
	fs.StringVar(&config.Script, "e", "", "Semicolon-separated buffer commands to execute and exit.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for a run.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Interactive, "i", false, "Interactive REPL mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Display full values regardless of their size.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")

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
