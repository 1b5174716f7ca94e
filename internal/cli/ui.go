// The cli package provides the command-line surfaces of the bigbuf
// application: the interactive REPL, the one-shot script runner, and the
// result formatting they share.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/bigbuf/internal/service"
	"github.com/agbru/bigbuf/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// TruncationLimit is the digit threshold from which a rendered value is
// truncated in standard output to avoid cluttering the terminal.
const TruncationLimit = 100

// DisplayEdges specifies the number of digits to display at the beginning
// and end of a truncated value.
const DisplayEdges = 25

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.ColorBlue() }

// ColorGrey returns the secondary color from the current theme.
func ColorGrey() string { return ui.ColorGrey() }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.ColorBold() }

// DisplaySnapshot prints the state of a buffer: its rendered value, active
// length and fixed capacity. Values longer than TruncationLimit digits are
// truncated unless verbose is set.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - snap: The buffer state to display.
//   - verbose: If true, prints the full value regardless of size.
func DisplaySnapshot(out io.Writer, snap service.Snapshot, verbose bool) {
	value := snap.Value
	numDigits := len(value)

	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
			ColorYellow(), snap.Name, ColorReset(),
			ColorGreen(), formatNumberString(value), ColorReset())
	} else {
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s...%s%s\n",
			ColorYellow(), snap.Name, ColorReset(),
			ColorGreen(), value[:DisplayEdges], value[numDigits-DisplayEdges:], ColorReset())
	}
	fmt.Fprintf(out, "  Length:   %s%d%s digits\n", ColorGrey(), snap.Length, ColorReset())
	fmt.Fprintf(out, "  Capacity: %s%d%s slots\n", ColorGrey(), snap.Capacity, ColorReset())
}

// formatNumberString inserts thousand separators into a numeric string.
// Optimized to reduce memory allocations.
//
// Parameters:
//   - s: The numeric string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	n := len(s)
	if n <= 3 {
		return s
	}

	// Precise calculation of the required capacity to avoid reallocations
	numSeparators := (n - 1) / 3
	var builder strings.Builder
	builder.Grow(n + numSeparators)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])

	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
