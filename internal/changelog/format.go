package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps lower-cased category labels to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"bug fixes":  {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
	"refactor":   {Color: color.New(color.FgCyan), Icon: "♻"},
}

var defaultCategoryStyle = CategoryStyle{Color: color.New(color.FgWhite), Icon: "•"}

// styleFor returns the style for a category label.
func styleFor(label string) CategoryStyle {
	if style, ok := categoryStyles[strings.ToLower(strings.TrimSpace(label))]; ok {
		return style
	}
	return defaultCategoryStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatReleases writes releases to the writer with terminal styling,
// separated by blank lines.
func FormatReleases(releases []Release, w io.Writer, opts FormatOptions) error {
	for i := range releases {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := FormatRelease(&releases[i], w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", releases[i].Version, err)
		}
	}
	return nil
}

// FormatRelease writes a single release to the writer.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if r.IsEmpty() {
		_, err := fmt.Fprintln(w, "\n  No changes recorded")
		return err
	}

	for i := range r.Categories {
		if err := writeCategorySection(&r.Categories[i], w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeReleaseHeader writes the version header line.
func writeReleaseHeader(r *Release, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%s)", r.Version, r.FormattedDate())

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(c *Category, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(c.Label)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", c.Label); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(c.Label)); err != nil {
			return err
		}
	}

	for _, e := range c.Entries {
		if err := writeEntry(e, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single entry with its short hash and optional wrapping.
func writeEntry(e Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := fmt.Sprintf("%s (%s)", strings.Join(strings.Fields(e.Description), " "), e.CommitHash)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatSummary returns a one-line summary of a release for listings.
func FormatSummary(r *Release, opts FormatOptions) string {
	line := fmt.Sprintf("%-14s %s  %d entries", r.Version, r.FormattedDate(), r.EntryCount())
	if opts.Plain {
		return line
	}
	return color.New(color.FgCyan).Sprint(r.Version) + line[len(r.Version):]
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
