// Package cli output utilities for exporting buffer results.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigbuf/internal/service"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the final value.
	Quiet bool
	// Verbose shows the full value regardless of its size.
	Verbose bool
}

// WriteResultToFile writes the final buffer state to a file.
//
// Parameters:
//   - snap: The buffer state to save.
//   - duration: The total execution duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(snap service.Snapshot, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# BigBuf Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Buffer: %s\n", snap.Name)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Length: %d\n", snap.Length)
	fmt.Fprintf(file, "# Capacity: %d\n", snap.Capacity)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n", snap.Value)

	return nil
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
// It prints a single line containing only the rendered value, suitable for
// scripting.
//
// Parameters:
//   - out: The output writer.
//   - snap: The buffer state.
func DisplayQuietResult(out io.Writer, snap service.Snapshot) {
	fmt.Fprintln(out, snap.Value)
}

// DisplayResultWithConfig displays a final buffer state with the given
// output configuration. This is a unified function that handles all output
// modes.
//
// Parameters:
//   - out: The output writer.
//   - snap: The buffer state.
//   - duration: The total execution duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, snap service.Snapshot, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, snap)
	} else {
		DisplaySnapshot(out, snap, config.Verbose)
		fmt.Fprintf(out, "  Time:     %s%s%s\n", ColorGreen(), FormatExecutionDuration(duration), ColorReset())
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(snap, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ColorGreen(), ColorBlue(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
