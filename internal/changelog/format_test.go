package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRelease_Plain(t *testing.T) {
	rel := release(t, "21.9.1", "2021-09-23", "21.9.0",
		Category{Label: "Bug Fixes", Entries: []Entry{entry("Fix X", "abc1234")}},
		Category{Label: "Refactor", Entries: []Entry{entry("Tidy", "def5678")}})

	var buf bytes.Buffer
	require.NoError(t, FormatRelease(&rel, &buf, FormatOptions{Plain: true, MaxWidth: 80}))

	want := `## 21.9.1 (2021-09-23)

### Bug Fixes
  - Fix X (abc1234)

### Refactor
  - Tidy (def5678)
`
	assert.Equal(t, want, buf.String())
}

func TestFormatReleases_SeparatesReleases(t *testing.T) {
	releases := []Release{
		release(t, "22.7.0", "2022-07-01", "21.9.1"),
		release(t, "21.9.1", "2021-09-23", "21.9.0"),
	}

	var buf bytes.Buffer
	require.NoError(t, FormatReleases(releases, &buf, FormatOptions{Plain: true}))
	assert.Equal(t,
		"## 22.7.0 (2022-07-01)\n\n  No changes recorded\n\n## 21.9.1 (2021-09-23)\n\n  No changes recorded\n",
		buf.String())
}

func TestFormatRelease_EmptyRelease(t *testing.T) {
	rel := release(t, "22.5.0", "2022-05-02", "22.4.0", Category{Label: "Added"})

	var buf bytes.Buffer
	require.NoError(t, FormatRelease(&rel, &buf, FormatOptions{Plain: true}))
	assert.Equal(t, "## 22.5.0 (2022-05-02)\n\n  No changes recorded\n", buf.String())
}

func TestFormatSummary(t *testing.T) {
	rel := release(t, "21.9.1", "2021-09-23", "21.9.0",
		Category{Label: "Bug Fixes", Entries: []Entry{entry("Fix X", "abc1234"), entry("Fix Y", "def5678")}})

	got := FormatSummary(&rel, FormatOptions{Plain: true})
	assert.Equal(t, "21.9.1         2021-09-23  2 entries", got)
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "⚡", styleFor("Bug Fixes").Icon)
	assert.Equal(t, "⚡", styleFor(" bug fixes ").Icon)
	assert.Equal(t, "✓", styleFor("Added").Icon)
	assert.Equal(t, defaultCategoryStyle.Icon, styleFor("Miscellaneous").Icon)
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short":         {text: "short text", maxWidth: 40, want: "short text"},
		"no width":      {text: "anything goes", maxWidth: 0, want: "anything goes"},
		"wraps at word": {text: "one two three four", maxWidth: 9, want: "one two\n    three\n    four"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}

func TestResolveWidth(t *testing.T) {
	assert.Equal(t, 42, resolveWidth(42))
	assert.Positive(t, resolveWidth(0))
}

func TestFormatRelease_ColoredContainsLabels(t *testing.T) {
	rel := release(t, "21.9.1", "2021-09-23", "21.9.0",
		Category{Label: "Bug Fixes", Entries: []Entry{entry("Fix X", "abc1234")}})

	var buf bytes.Buffer
	require.NoError(t, FormatRelease(&rel, &buf, FormatOptions{MaxWidth: 80}))
	out := buf.String()
	assert.True(t, strings.Contains(out, "Bug Fixes"))
	assert.True(t, strings.Contains(out, "Fix X (abc1234)"))
}
