package changelog

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) Release {
		return release(t, "1.0.0", "2024-01-15", "0.9.0",
			Category{Label: "Added", Entries: []Entry{entry("New feature", "abc1234")}})
	}

	tests := map[string]struct {
		mutate    func(r *Release)
		wantField string
		wantMsg   string
	}{
		"valid release": {
			mutate: func(r *Release) {},
		},
		"empty version": {
			mutate:    func(r *Release) { r.Version = " " },
			wantField: "releases[0].version",
			wantMsg:   "required field is empty",
		},
		"zero date": {
			mutate:    func(r *Release) { r.Date = time.Time{} },
			wantField: "releases[0].date",
		},
		"version with line break": {
			mutate:    func(r *Release) { r.Version = "1.0.0\n\n## injected" },
			wantField: "releases[0].version",
			wantMsg:   "invalid version",
		},
		"version with carriage return": {
			mutate:    func(r *Release) { r.Version = "1.0.0\r" },
			wantField: "releases[0].version",
		},
		"version with brackets": {
			mutate:    func(r *Release) { r.Version = "1.0.0]: https://evil.example" },
			wantField: "releases[0].version",
			wantMsg:   "invalid version",
		},
		"label with line breaks": {
			mutate:    func(r *Release) { r.Categories[0].Label = "Bug\n\n\nFixes" },
			wantField: "releases[0].categories[0].label",
			wantMsg:   "must be a single line",
		},
		"empty category label": {
			mutate:    func(r *Release) { r.Categories[0].Label = "" },
			wantField: "releases[0].categories[0].label",
		},
		"empty description": {
			mutate:    func(r *Release) { r.Categories[0].Entries[0].Description = "\n" },
			wantField: "releases[0].categories[0].entries[0].description",
			wantMsg:   "change entry cannot be empty",
		},
		"empty hash": {
			mutate:    func(r *Release) { r.Categories[0].Entries[0].CommitHash = "" },
			wantField: "releases[0].categories[0].entries[0].hash",
		},
		"hash with markdown characters": {
			mutate:    func(r *Release) { r.Categories[0].Entries[0].CommitHash = "abc]1234" },
			wantField: "releases[0].categories[0].entries[0].hash",
			wantMsg:   "invalid commit hash",
		},
		"relative commit url": {
			mutate:    func(r *Release) { r.Categories[0].Entries[0].CommitURL = "/commit/abc1234" },
			wantField: "releases[0].categories[0].entries[0].url",
			wantMsg:   "is not absolute",
		},
		"commit url for other commit": {
			mutate:    func(r *Release) { r.Categories[0].Entries[0].CommitURL = "https://example.com/commit/fff0000" },
			wantField: "releases[0].categories[0].entries[0].url",
			wantMsg:   "does not reference commit abc1234",
		},
		"full hash url with short hash": {
			mutate: func(r *Release) {
				r.Categories[0].Entries[0].CommitURL = "https://example.com/commit/abc1234deadbeef"
			},
		},
		"missing compare url": {
			mutate:    func(r *Release) { r.Compare.CompareURL = "" },
			wantField: "releases[0].compare.url",
			wantMsg:   "required field is empty",
		},
		"compare label mismatch": {
			mutate:    func(r *Release) { r.Compare.VersionLabel = "2.0.0" },
			wantField: "releases[0].compare.version",
		},
		"empty compare label uses version": {
			mutate: func(r *Release) { r.Compare.VersionLabel = "" },
		},
		"release without categories": {
			mutate: func(r *Release) { r.Categories = nil },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := valid(t)
			tt.mutate(&r)

			err := Validate([]Release{r})
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
			if tt.wantMsg != "" {
				assert.Contains(t, ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidate_ReportsFirstFailingRelease(t *testing.T) {
	good := release(t, "1.0.0", "2024-01-15", "0.9.0")
	bad := release(t, "0.9.0", "2023-12-01", "0.8.0")
	bad.Compare.CompareURL = "not a url"

	err := Validate([]Release{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "releases[1].compare.url")
}

func TestValidateRelease(t *testing.T) {
	r := release(t, "1.0.0", "2024-01-15", "0.9.0")
	require.NoError(t, ValidateRelease(&r))

	r.Version = ""
	err := ValidateRelease(&r)
	require.Error(t, err)
	assert.Equal(t, "release.version: required field is empty", err.Error())
}

func TestIsValidationError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"direct":  {err: &ValidationError{Field: "x", Message: "y"}, want: true},
		"wrapped": {err: fmt.Errorf("loading: %w", &ValidationError{Message: "y"}), want: true},
		"other":   {err: errors.New("boom"), want: false},
		"nil":     {err: nil, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "releases[0].date: required field is empty",
		(&ValidationError{Field: "releases[0].date", Message: "required field is empty"}).Error())
	assert.Equal(t, "bad input", (&ValidationError{Message: "bad input"}).Error())
}
