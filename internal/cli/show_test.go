package cli

import (
	"testing"

	"github.com/ariel-frischer/chlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd(t *testing.T) {
	tests := map[string]struct {
		args         []string
		wantContains []string
		wantMissing  []string
	}{
		"newest release": {
			args:         []string{"show"},
			wantContains: []string{"## 1.1.0 (2024-03-01)", "### Added", "  - Add split command (abc1234)", "(1 of 2 releases shown. Use --last 2 to see all)"},
			wantMissing:  []string{"1.0.0 (2024-01-15)"},
		},
		"specific release with v prefix": {
			args:         []string{"show", "v1.0.0"},
			wantContains: []string{"## 1.0.0 (2024-01-15)", "  - Initial release (0123abc)"},
			wantMissing:  []string{"1.1.0", "releases shown"},
		},
		"last two": {
			args:         []string{"show", "--last", "2"},
			wantContains: []string{"## 1.1.0 (2024-03-01)", "## 1.0.0 (2024-01-15)"},
			wantMissing:  []string{"releases shown"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupProject(t, testConfig, testutil.Records)

			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, out, missing)
			}
		})
	}
}

func TestShowCmd_NotFound(t *testing.T) {
	setupProject(t, testConfig, testutil.Records)

	_, err := executeCommand(t, "show", "2.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `release "2.0.0" not found`)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestListCmd(t *testing.T) {
	setupProject(t, testConfig, testutil.Records)

	out, err := executeCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1.1.0          2024-03-01  2 entries\n")
	assert.Contains(t, out, "1.0.0          2024-01-15  1 entries\n")
	assert.Contains(t, out, "2 releases, 3 entries")
}

func TestListCmd_Empty(t *testing.T) {
	setupProject(t, testConfig, "releases: []\n")

	out, err := executeCommand(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No releases found.")
}
