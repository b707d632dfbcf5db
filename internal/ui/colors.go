// Package ui provides theme and color support for the scan report decoration.
package ui

// Color accessors resolve against the active theme at call time, so a
// NO_COLOR or -no-color theme switch takes effect everywhere at once.

// ColorReset returns the escape code that clears any active styling.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the color used for breakdowns and errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the color used for exhausted scans and confirmations.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the color used for cycles and timeouts.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the informational accent color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary accent color, used for file paths.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }
