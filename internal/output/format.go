// Package output provides terminal output formatting utilities for the chlog CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSectionHeader prints a bold cyan title followed by a dim rule.
func PrintSectionHeader(out io.Writer, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	width := GetTerminalWidth()
	if width > 60 {
		width = 60
	}
	fmt.Fprintf(out, "%s\n%s\n", cyan(title), dim(strings.Repeat("─", width)))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), message)
}

// PrintFileResult reports whether path was written or already current.
func PrintFileResult(out io.Writer, path string, written bool) {
	if written {
		PrintSuccess(out, "Wrote "+color.New(color.FgCyan).Sprint(path))
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("="), dim(path+" (unchanged)"))
}
