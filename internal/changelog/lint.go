package changelog

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Issue is a structural problem found in a changelog document.
// Line is 1-based; 0 means the issue has no single location.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: %s", i.Line, i.Message)
	}
	return i.Message
}

var releaseHeadingPattern = regexp.MustCompile(`^\[([^\]]+)\] - (.+)$`)

// Lint parses a markdown changelog and reports structural issues:
// a missing title, blocks not separated by a blank line, malformed release
// dates, duplicate releases, and release headings without a reference
// definition.
func Lint(src []byte) []Issue {
	pc := parser.NewContext()
	doc := goldmark.New().Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	refs := make(map[string]bool)
	for _, ref := range pc.References() {
		refs[normalizeLabel(string(ref.Label()))] = true
	}

	var issues []Issue
	first := doc.FirstChild()
	if h, ok := first.(*ast.Heading); !ok || h.Level != 1 || nodeText(h, src) != "Changelog" {
		issues = append(issues, Issue{Line: 1, Message: "document must start with \"# Changelog\""})
	}

	seen := make(map[string]bool)
	for n := first; n != nil; n = n.NextSibling() {
		line := nodeLine(n, src)

		if n != first && n.Kind() != ast.KindList && !n.HasBlankPreviousLines() {
			issues = append(issues, Issue{Line: line, Message: "block is not preceded by a blank line"})
		}

		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 {
			continue
		}
		m := releaseHeadingPattern.FindStringSubmatch(nodeText(h, src))
		if m == nil {
			continue
		}

		version, date := m[1], m[2]
		if _, err := time.Parse(DateLayout, date); err != nil {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("release %s has malformed date %q", version, date)})
		}
		key := normalizeLabel(version)
		if seen[key] {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("duplicate release %s", version)})
		}
		seen[key] = true
		if !refs[key] {
			issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("release %s has no reference link", version)})
		}
	}

	return issues
}

// ToHTML converts a markdown document to HTML.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// CheckOrder reports releases that are not newest-first by semantic version.
// Versions that are not valid semver are skipped, or reported when
// requireSemver is set.
func CheckOrder(releases []Release, requireSemver bool) []Issue {
	var issues []Issue
	var prev *semver.Version
	var prevLabel string

	for _, r := range releases {
		v, err := semver.NewVersion(r.Version)
		if err != nil {
			if requireSemver {
				issues = append(issues, Issue{Message: fmt.Sprintf("version %q is not a semantic version", r.Version)})
			}
			continue
		}
		if prev != nil && !v.LessThan(prev) {
			issues = append(issues, Issue{
				Message: fmt.Sprintf("release %s is listed after %s but is not older", r.Version, prevLabel),
			})
		}
		prev, prevLabel = v, r.Version
	}

	return issues
}

// nodeText returns the raw inline source of a block node.
func nodeText(n ast.Node, src []byte) string {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}
	var b []byte
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b = append(b, seg.Value(src)...)
	}
	return strings.TrimSpace(string(b))
}

// nodeLine returns the 1-based line of a block node, or 0 when unknown.
func nodeLine(n ast.Node, src []byte) int {
	for c := n; c != nil; c = c.FirstChild() {
		if c.Type() != ast.TypeBlock {
			break
		}
		if lines := c.Lines(); lines != nil && lines.Len() > 0 {
			return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
		}
	}
	return 0
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
