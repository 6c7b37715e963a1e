package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKeyPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    []string
		wantErr error
	}{
		"single key": {path: "tag_prefix", want: []string{"tag_prefix"}},
		"nested key": {path: "a.b", want: []string{"a", "b"}},
		"empty":      {path: "", wantErr: ErrEmptyKeyPath},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKeyPath(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetNestedValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		initialYAML  string
		keyPath      []string
		value        interface{}
		expectedYAML string
	}{
		"set top-level string": {
			keyPath:      []string{"tag_prefix"},
			value:        "v",
			expectedYAML: "tag_prefix: v\n",
		},
		"set top-level int": {
			keyPath:      []string{"max_parallel"},
			value:        8,
			expectedYAML: "max_parallel: 8\n",
		},
		"set top-level bool": {
			keyPath:      []string{"require_semver"},
			value:        true,
			expectedYAML: "require_semver: true\n",
		},
		"set nested value": {
			keyPath:      []string{"links", "prefix"},
			value:        "v",
			expectedYAML: "links:\n    prefix: v\n",
		},
		"update existing value": {
			initialYAML:  "output: OLD.md\n",
			keyPath:      []string{"output"},
			value:        "CHANGELOG.md",
			expectedYAML: "output: CHANGELOG.md\n",
		},
		"add to existing": {
			initialYAML:  "input: releases.yaml\n",
			keyPath:      []string{"output"},
			value:        "docs/CHANGELOG.md",
			expectedYAML: "input: releases.yaml\noutput: docs/CHANGELOG.md\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var root yaml.Node
			if tt.initialYAML != "" {
				require.NoError(t, yaml.Unmarshal([]byte(tt.initialYAML), &root))
			}

			require.NoError(t, SetNestedValue(&root, tt.keyPath, tt.value))

			out, err := yaml.Marshal(&root)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedYAML, string(out))
		})
	}
}

func TestGetNestedValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml    string
		keyPath []string
		want    string
		wantNil bool
	}{
		"top-level":   {yaml: "space: greenbone\n", keyPath: []string{"space"}, want: "greenbone"},
		"nested":      {yaml: "a:\n  b: c\n", keyPath: []string{"a", "b"}, want: "c"},
		"missing key": {yaml: "space: greenbone\n", keyPath: []string{"project"}, wantNil: true},
		"empty path":  {yaml: "space: greenbone\n", keyPath: []string{}, wantNil: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var root yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yaml), &root))

			got := GetNestedValue(&root, tt.keyPath)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		initialContent string
		key            string
		value          string
		wantContains   []string
		errContain     string
	}{
		"set new value": {
			key:          "max_parallel",
			value:        "8",
			wantContains: []string{"max_parallel: 8"},
		},
		"update existing value": {
			initialContent: "# links\ntag_prefix: \"\"\n",
			key:            "tag_prefix",
			value:          "v",
			wantContains:   []string{"tag_prefix: v", "# links"},
		},
		"duration is normalized": {
			key:          "fetch_timeout",
			value:        "1m",
			wantContains: []string{"fetch_timeout: 1m0s"},
		},
		"enum value": {
			key:          "category_heading",
			value:        "bold",
			wantContains: []string{"category_heading: bold"},
		},
		"invalid key": {
			key:        "unknown.key",
			value:      "value",
			errContain: "unknown configuration key",
		},
		"invalid value type": {
			key:        "max_parallel",
			value:      "many",
			errContain: "invalid integer",
		},
		"invalid enum": {
			key:        "category_heading",
			value:      "h4",
			errContain: "valid options: h2, h3, bold",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			configPath := filepath.Join(t.TempDir(), "sub", "config.yml")
			if tt.initialContent != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
				require.NoError(t, os.WriteFile(configPath, []byte(tt.initialContent), 0o644))
			}

			err := SetConfigValue(configPath, tt.key, tt.value)
			if tt.errContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)

			content, err := os.ReadFile(configPath)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(content), want)
			}
		})
	}
}
