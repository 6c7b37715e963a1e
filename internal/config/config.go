// chlog - Changelog renderer
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/chlog

// Package config provides hierarchical configuration for chlog using koanf.
// Configuration is loaded with priority: environment variables (CHLOG_*) > project config
// (.chlog/config.yml) > user config (~/.config/chlog/config.yml) > defaults. Legacy JSON
// files are still read, with a warning pointing at 'chlog config migrate'.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CHLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the chlog configuration
type Configuration struct {
	// Input is the records file path or an http(s) URL.
	Input string `koanf:"input" validate:"required"`
	// Output is the changelog path written by 'chlog render'. "-" means stdout.
	Output string `koanf:"output" validate:"required"`
	// ChangelogDir receives one file per release from 'chlog split'.
	ChangelogDir string `koanf:"changelog_dir" validate:"required"`

	// RepositoryURL is the web URL used to build commit and compare links.
	// Takes precedence over Space/Project and the git remote.
	RepositoryURL string `koanf:"repository_url" validate:"omitempty,url"`
	// Space and Project build https://github.com/<space>/<project> when RepositoryURL is unset.
	Space   string `koanf:"space"`
	Project string `koanf:"project"`
	// GitRemote is consulted when neither RepositoryURL nor Space/Project are set.
	GitRemote string `koanf:"git_remote"`
	TagPrefix string `koanf:"tag_prefix"`

	CategoryHeading string `koanf:"category_heading" validate:"omitempty,oneof=h2 h3 bold"`
	Preamble        string `koanf:"preamble"`

	// RequireSemver makes 'chlog check' report versions that are not semantic versions.
	RequireSemver bool          `koanf:"require_semver"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout" validate:"gte=0"`
	MaxParallel   int           `koanf:"max_parallel" validate:"min=1,max=64"`

	// Sources maps each key to the layer that set it.
	Sources map[string]ConfigSource `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .chlog/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
	// SkipUser ignores the user-level config. Used by tests.
	SkipUser bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
		sources[key] = SourceDefault
	}

	if !opts.SkipUser {
		yamlPath, _ := UserConfigPath()
		legacyPath, _ := LegacyUserConfigPath()
		if err := loadLayer(k, sources, SourceUser, yamlPath, legacyPath, "--user", warningWriter, opts.SkipWarnings); err != nil {
			return nil, err
		}
	}

	projectPath := ProjectConfigPath()
	if opts.ProjectConfigPath != "" {
		projectPath = opts.ProjectConfigPath
	}
	if err := loadLayer(k, sources, SourceProject, projectPath, LegacyProjectConfigPath(), "--project", warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	envLayer := koanf.New(".")
	if err := envLayer.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	mergeLayer(k, envLayer, sources, SourceEnv)

	return finalizeConfig(k, sources)
}

// loadLayer loads one config level into its own koanf instance and merges
// it, recording which keys it set. YAML wins over legacy JSON.
func loadLayer(k *koanf.Koanf, sources map[string]ConfigSource, source ConfigSource, yamlPath, legacyPath, migrateFlag string, w io.Writer, skipWarnings bool) error {
	layer := koanf.New(".")

	switch {
	case fileExists(yamlPath):
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
		}
		if err := layer.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, yamlPath, err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(w, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(w, "  Run 'chlog config migrate %s' to remove the legacy file.\n\n", migrateFlag)
		}
	case fileExists(legacyPath):
		if err := layer.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy %s config %s: %w", source, legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(w, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(w, "  Run 'chlog config migrate %s' to migrate to YAML format.\n\n", migrateFlag)
		}
	default:
		return nil
	}

	mergeLayer(k, layer, sources, source)
	return nil
}

func mergeLayer(k, layer *koanf.Koanf, sources map[string]ConfigSource, source ConfigSource) {
	for _, key := range layer.Keys() {
		sources[key] = source
	}
	_ = k.Merge(layer)
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, sources map[string]ConfigSource) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogDir = expandHomePath(cfg.ChangelogDir)
	cfg.Sources = sources
	return &cfg, nil
}

// RepositoryBaseURL returns the configured repository web URL: repository_url,
// or https://github.com/<space>/<project>. Empty means it must be detected
// from the git remote.
func (c *Configuration) RepositoryBaseURL() string {
	if c.RepositoryURL != "" {
		return strings.TrimRight(c.RepositoryURL, "/")
	}
	if c.Space != "" && c.Project != "" {
		return fmt.Sprintf("https://github.com/%s/%s", c.Space, c.Project)
	}
	return ""
}

// Values returns the effective configuration as key/value pairs sorted by key,
// each with the layer it came from.
func (c *Configuration) Values() []KeyValue {
	values := map[string]string{
		"input":            c.Input,
		"output":           c.Output,
		"changelog_dir":    c.ChangelogDir,
		"repository_url":   c.RepositoryURL,
		"space":            c.Space,
		"project":          c.Project,
		"git_remote":       c.GitRemote,
		"tag_prefix":       c.TagPrefix,
		"category_heading": c.CategoryHeading,
		"preamble":         c.Preamble,
		"require_semver":   fmt.Sprintf("%t", c.RequireSemver),
		"fetch_timeout":    c.FetchTimeout.String(),
		"max_parallel":     fmt.Sprintf("%d", c.MaxParallel),
	}

	result := make([]KeyValue, 0, len(values))
	for key, value := range values {
		source := c.Sources[key]
		if source == "" {
			source = SourceDefault
		}
		result = append(result, KeyValue{Key: key, Value: value, Source: source})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// KeyValue is one effective configuration value.
type KeyValue struct {
	Key    string
	Value  string
	Source ConfigSource
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHLOG_MAX_PARALLEL -> max_parallel
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return homeDir + path[1:]
		}
	}
	return path
}
