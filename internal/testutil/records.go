package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Records is a two-release records file without URLs, for use with a
// configured repository_url.
const Records = `releases:
  - version: "1.1.0"
    date: "2024-03-01"
    compare:
      from: "1.0.0"
    categories:
      - label: Added
        entries:
          - description: Add split command
            hash: abc1234
      - label: Bug Fixes
        entries:
          - description: Fix crash on empty input
            hash: def5678
  - version: "1.0.0"
    date: "2024-01-15"
    categories:
      - label: Added
        entries:
          - description: Initial release
            hash: 0123abc
`

// WriteFile writes content below dir, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// RecordsWithHashes returns Records with its three commit hashes replaced.
func RecordsWithHashes(added, fixed, initial string) string {
	return strings.NewReplacer("abc1234", added, "def5678", fixed, "0123abc", initial).Replace(Records)
}
