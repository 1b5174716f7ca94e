// Package testutil provides shared testing utilities used across the project.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences (ESC [ ... letter) so colored
// terminal output can be compared as plain text.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string, letting tests
// assert on CLI output without color codes interfering.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input string with all ANSI escape codes removed.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
