// Package printer centralizes user-facing output for quarry: colored
// status lines from the CLI and the library's recoverable-condition
// warnings (for example a dataset left empty after label filtering).
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to a TTY.
	// Users can disable with the NO_COLOR environment variable.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)

	// out is swappable so tests can capture warnings.
	out io.Writer = os.Stderr
)

// SetOutput redirects printer output, returning a restore function.
// Intended for tests.
func SetOutput(w io.Writer) func() {
	prev := out
	out = w
	return func() { out = prev }
}

// Success prints a success message in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Fprintf(out, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Fprintf(out, format+"\n", a...)
}

// Warning prints a warning message in yellow. Recoverable library
// conditions (empty datasets, missing cached summaries) report through
// here rather than failing.
func Warning(format string, a ...any) {
	yellow.Fprintf(out, "warning: %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis, for multi-step operations
// such as fetching and extracting archives.
func Step(format string, a ...any) {
	cyan.Fprintf(out, "→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints a failure title in red followed by optional suggestions,
// and returns a plain error for cobra to carry.
func Error(title string, suggestions ...string) error {
	red.Fprintf(out, "%s\n", title)
	for _, s := range suggestions {
		fmt.Fprintf(out, "  %s\n", s)
	}
	return fmt.Errorf("%s", title)
}
