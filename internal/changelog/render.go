package changelog

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Title is the first line of every rendered document.
const Title = "# Changelog"

// DefaultPreamble is the sentence written below the title.
const DefaultPreamble = "All notable changes to this project will be documented in this file."

// HeadingStyle selects how category labels are rendered.
type HeadingStyle string

const (
	// HeadingH2 renders "## <Label>", the layout of the historical files.
	HeadingH2 HeadingStyle = "h2"
	// HeadingH3 renders "### <Label>".
	HeadingH3 HeadingStyle = "h3"
	// HeadingBold renders "**<Label>**".
	HeadingBold HeadingStyle = "bold"
)

// HeadingStyles returns the accepted heading styles.
func HeadingStyles() []HeadingStyle {
	return []HeadingStyle{HeadingH2, HeadingH3, HeadingBold}
}

// RenderOptions controls document layout. The zero value renders the
// default layout.
type RenderOptions struct {
	Preamble        string
	CategoryHeading HeadingStyle
}

func (o RenderOptions) withDefaults() RenderOptions {
	if strings.TrimSpace(o.Preamble) == "" {
		o.Preamble = DefaultPreamble
	}
	if o.CategoryHeading == "" {
		o.CategoryHeading = HeadingH2
	}
	return o
}

func (o RenderOptions) validate() error {
	styles := HeadingStyles()
	if !slices.Contains(styles, o.CategoryHeading) {
		names := make([]string, len(styles))
		for i, s := range styles {
			names[i] = string(s)
		}
		return &ValidationError{
			Field:   "category_heading",
			Message: fmt.Sprintf("unknown heading style %q (expected: %s)", o.CategoryHeading, strings.Join(names, ", ")),
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(o.Preamble), "\n") {
		if strings.TrimSpace(line) == "" {
			return &ValidationError{Field: "preamble", Message: "must not contain blank lines"}
		}
	}
	return nil
}

// Render writes the changelog for releases to w. All records are validated
// before anything is written, so a ValidationError leaves w untouched.
func Render(w io.Writer, releases []Release, opts RenderOptions) error {
	doc, err := RenderString(releases, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}

// RenderString renders the changelog for releases to a string.
//
// The output is deterministic: identical input yields byte-identical output.
func RenderString(releases []Release, opts RenderOptions) (string, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := Validate(releases); err != nil {
		return "", err
	}

	blocks := []string{Title, strings.TrimSpace(opts.Preamble)}
	for i := range releases {
		blocks = append(blocks, releaseBlocks(&releases[i], opts)...)
	}
	if len(releases) > 0 {
		blocks = append(blocks, referenceBlock(releases))
	}

	return joinBlocks(blocks), nil
}

// RenderRelease renders a single release as a standalone document.
func RenderRelease(r Release, opts RenderOptions) (string, error) {
	return RenderString([]Release{r}, opts)
}

// joinBlocks separates blocks with exactly one blank line and terminates the
// document with a single newline. Blocks never carry their own leading or
// trailing newlines.
func joinBlocks(blocks []string) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Trim(block, "\n"))
	}
	b.WriteString("\n")
	return b.String()
}

// releaseBlocks returns the heading block followed by one block per category.
func releaseBlocks(r *Release, opts RenderOptions) []string {
	blocks := make([]string, 0, len(r.Categories)+1)
	blocks = append(blocks, FormatReleaseHeading(r))
	for i := range r.Categories {
		blocks = append(blocks, categoryBlock(&r.Categories[i], opts.CategoryHeading))
	}
	return blocks
}

// FormatReleaseHeading formats "## [<version>] - <YYYY-MM-DD>".
func FormatReleaseHeading(r *Release) string {
	return fmt.Sprintf("## [%s] - %s", r.Version, r.FormattedDate())
}

func categoryBlock(c *Category, style HeadingStyle) string {
	lines := make([]string, 0, len(c.Entries)+1)
	lines = append(lines, formatCategoryHeading(c.Label, style))
	for _, e := range c.Entries {
		lines = append(lines, FormatEntry(e))
	}
	return strings.Join(lines, "\n")
}

func formatCategoryHeading(label string, style HeadingStyle) string {
	label = strings.TrimSpace(label)
	switch style {
	case HeadingH3:
		return "### " + label
	case HeadingBold:
		return "**" + label + "**"
	default:
		return "## " + label
	}
}

// FormatEntry formats "* <description> [<hash>](<url>)". Line breaks inside
// the description are folded into spaces so an entry stays one bullet.
func FormatEntry(e Entry) string {
	desc := strings.Join(strings.Fields(e.Description), " ")
	return fmt.Sprintf("* %s [%s](%s)", desc, e.CommitHash, e.CommitURL)
}

// FormatReference formats "[<version>]: <compareUrl>".
func FormatReference(r *Release) string {
	return fmt.Sprintf("[%s]: %s", r.Label(), r.Compare.CompareURL)
}

func referenceBlock(releases []Release) string {
	lines := make([]string, len(releases))
	for i := range releases {
		lines[i] = FormatReference(&releases[i])
	}
	return strings.Join(lines, "\n")
}
