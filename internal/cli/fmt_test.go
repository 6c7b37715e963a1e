package cli

import (
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/chlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtCmd(t *testing.T) {
	dir := setupProject(t, testConfig, testutil.Records)
	records := filepath.Join(dir, "releases.yaml")

	out, err := executeCommand(t, "fmt", "--check")
	require.Error(t, err)
	assert.Contains(t, out, "releases.yaml is not in canonical form")
	assert.Equal(t, testutil.Records, readFile(t, records))

	out, err = executeCommand(t, "fmt", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "url: https://github.com/acme/widget/commit/abc1234")
	assert.Equal(t, testutil.Records, readFile(t, records))

	out, err = executeCommand(t, "fmt")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote releases.yaml")
	assert.Contains(t, readFile(t, records), "url: https://github.com/acme/widget/compare/v1.0.0...v1.1.0")

	out, err = executeCommand(t, "fmt", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "releases.yaml is in canonical form")

	// the canonical file renders the same document without a repository URL
	setupProject(t, "", readFile(t, records))
	out, err = executeCommand(t, "render", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, expectedChangelog, out)
}

func TestFmtCmd_FlagConflict(t *testing.T) {
	setupProject(t, testConfig, testutil.Records)

	_, err := executeCommand(t, "fmt", "--check", "--stdout")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}
