package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/chlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd(t *testing.T) {
	tests := map[string]struct {
		config       string
		changelog    string
		wantErr      bool
		wantContains []string
	}{
		"in sync": {
			config:       testConfig,
			changelog:    expectedChangelog,
			wantContains: []string{"✓ CHANGELOG.md is up to date with releases.yaml"},
		},
		"out of date": {
			config:       testConfig,
			changelog:    strings.Replace(expectedChangelog, "Initial release", "First release", 1),
			wantErr:      true,
			wantContains: []string{"✗ CHANGELOG.md is out of date with releases.yaml", "chlog render"},
		},
		"structure issues": {
			config:    testConfig,
			changelog: strings.Replace(expectedChangelog, "\n[1.0.0]: https://github.com/acme/widget/releases/tag/v1.0.0", "", 1),
			wantErr:   true,
			wantContains: []string{
				"out of date",
				"CHANGELOG.md:13: release 1.0.0 has no reference link",
			},
		},
		"require_semver with semver versions": {
			config:       testConfig + "require_semver: true\n",
			changelog:    expectedChangelog,
			wantContains: []string{"up to date"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := setupProject(t, tt.config, testutil.Records)
			testutil.WriteFile(t, dir, "CHANGELOG.md", tt.changelog)

			out, err := executeCommand(t, "check")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitValidationFailed, ExitCode(err))
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCheckCmd_OrderIssues(t *testing.T) {
	records := strings.Replace(testutil.Records, `version: "1.0.0"`, `version: "1.2.0"`, 1)
	setupProject(t, testConfig, records)

	_, err := executeCommand(t, "render")
	require.NoError(t, err)

	out, err := executeCommand(t, "check")
	require.Error(t, err)
	assert.Contains(t, out, "releases.yaml: release 1.2.0 is listed after 1.1.0 but is not older")
	assert.NotContains(t, out, "out of date")
}

func TestCheckCmd_MissingChangelog(t *testing.T) {
	setupProject(t, testConfig, testutil.Records)

	_, err := executeCommand(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog not found: CHANGELOG.md")
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
}

func TestCheckCmd_Repository(t *testing.T) {
	dir := setupProject(t, testConfig, "")
	repo := testutil.NewGitRepo(t, dir)
	first := repo.Commit("src/a.txt", "a", "initial").String()[:7]
	second := repo.Commit("src/b.txt", "b", "add split").String()[:7]
	repo.Tag("v1.0.0", repo.Commit("src/c.txt", "c", "release 1.0.0"))

	testutil.WriteFile(t, dir, "releases.yaml", testutil.RecordsWithHashes(second, second, first))
	_, err := executeCommand(t, "render")
	require.NoError(t, err)

	t.Run("commits resolve", func(t *testing.T) {
		out, err := executeCommand(t, "check", "--commits")
		require.NoError(t, err, out)
	})

	t.Run("missing tag", func(t *testing.T) {
		out, err := executeCommand(t, "check", "--tags")
		require.Error(t, err)
		assert.Contains(t, out, "git: release 1.1.0 has no tag v1.1.0")
		assert.NotContains(t, out, "release 1.0.0 has no tag")
	})

	t.Run("unknown commit", func(t *testing.T) {
		testutil.WriteFile(t, dir, "releases.yaml", testutil.RecordsWithHashes(second, "fffffff", first))
		_, err := executeCommand(t, "render")
		require.NoError(t, err)

		out, err := executeCommand(t, "check", "--commits")
		require.Error(t, err)
		assert.Contains(t, out, "git: release 1.1.0: commit fffffff not found")
	})
}

func TestCheckCmd_RepositoryFlagsOutsideRepo(t *testing.T) {
	dir := setupProject(t, testConfig, testutil.Records)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(expectedChangelog), 0o644))

	_, err := executeCommand(t, "check", "--tags")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading git repository")
}
