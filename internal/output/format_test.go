package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintHelpers(t *testing.T) {
	color.NoColor = true

	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"success": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "CHANGELOG.md is up to date") },
			want:  "✓ CHANGELOG.md is up to date\n",
		},
		"warning": {
			print: func(b *bytes.Buffer) { PrintWarning(b, "tag v1.0.0 missing") },
			want:  "Warning: tag v1.0.0 missing\n",
		},
		"written": {
			print: func(b *bytes.Buffer) { PrintFileResult(b, "changelog/v1.0.0.md", true) },
			want:  "✓ Wrote changelog/v1.0.0.md\n",
		},
		"unchanged": {
			print: func(b *bytes.Buffer) { PrintFileResult(b, "changelog/v1.0.0.md", false) },
			want:  "= changelog/v1.0.0.md (unchanged)\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintSectionHeader(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintSectionHeader(&buf, "Releases")
	assert.Contains(t, buf.String(), "Releases\n─")
}

func TestGetTerminalWidth(t *testing.T) {
	assert.Positive(t, GetTerminalWidth())
}
