package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRelease(t *testing.T, version, day, from string) changelog.Release {
	t.Helper()
	d, err := time.Parse(changelog.DateLayout, day)
	require.NoError(t, err)
	return changelog.Release{
		Version: version,
		Date:    d,
		Categories: []changelog.Category{{
			Label:   "Bug Fixes",
			Entries: []changelog.Entry{{Description: "Fix " + version, CommitHash: "abc1234", CommitURL: "https://example.com/commit/abc1234"}},
		}},
		Compare: changelog.CompareLink{
			VersionLabel: version,
			FromRef:      from,
			ToRef:        version,
			CompareURL:   "https://example.com/compare/" + from + "..." + version,
		},
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]struct {
		version string
		prefix  string
		want    string
	}{
		"no prefix":       {version: "22.7.0", want: "22.7.0.md"},
		"prefix":          {version: "22.7.0", prefix: "v", want: "v22.7.0.md"},
		"already present": {version: "v22.7.0", prefix: "v", want: "v22.7.0.md"},
		"path separator":  {version: "release/1.0", want: "release-1.0.md"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.version, tt.prefix))
		})
	}
}

func TestWriteSplit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "changelog")
	releases := []changelog.Release{
		testRelease(t, "22.7.0", "2022-07-01", "22.5.1.dev1"),
		testRelease(t, "22.5.1.dev1", "2022-05-20", "21.9.1"),
		testRelease(t, "21.9.1", "2021-09-23", "21.9.0"),
	}

	results, err := WriteSplit(context.Background(), releases, SplitOptions{Dir: dir, TagPrefix: "v", MaxParallel: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, releases[i].Version, r.Version)
		assert.True(t, r.Written)

		data, err := os.ReadFile(r.Path)
		require.NoError(t, err)
		want, err := changelog.RenderRelease(releases[i], changelog.RenderOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
	assert.Equal(t, filepath.Join(dir, "v21.9.1.md"), results[2].Path)

	again, err := WriteSplit(context.Background(), releases, SplitOptions{Dir: dir, TagPrefix: "v"})
	require.NoError(t, err)
	for _, r := range again {
		assert.False(t, r.Written, "unchanged files are not rewritten")
	}
}

func TestWriteSplit_InvalidReleaseWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "changelog")
	bad := testRelease(t, "21.9.1", "2021-09-23", "21.9.0")
	bad.Categories[0].Entries[0].Description = ""

	_, err := WriteSplit(context.Background(),
		[]changelog.Release{testRelease(t, "22.7.0", "2022-07-01", "21.9.1"), bad},
		SplitOptions{Dir: dir})
	require.Error(t, err)
	assert.True(t, changelog.IsValidationError(err))
	assert.NoDirExists(t, dir)
}

func TestWriteSplit_DuplicateFileNames(t *testing.T) {
	releases := []changelog.Release{
		testRelease(t, "v1.0.0", "2024-01-02", "0.9.0"),
		testRelease(t, "1.0.0", "2024-01-01", "0.9.0"),
	}

	_, err := WriteSplit(context.Background(), releases, SplitOptions{Dir: t.TempDir(), TagPrefix: "v"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "both map to v1.0.0.md"))
}

func TestWriteSplit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := filepath.Join(t.TempDir(), "changelog")
	_, err := WriteSplit(ctx, []changelog.Release{testRelease(t, "1.0.0", "2024-01-01", "0.9.0")}, SplitOptions{Dir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}
