// Package testutil provides shared testing utilities used across the project.
package testutil

import "regexp"

// ansiRegex matches ANSI CSI escape sequences (ESC [ ... letter) so colored
// output can be compared against plain golden strings.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string, letting tests
// assert on CLI output without color codes interfering.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
