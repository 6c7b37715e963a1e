package config

// DefaultTemplate returns a fully commented project config written by
// 'chlog init'.
func DefaultTemplate() string {
	return `# chlog configuration
# See 'chlog config keys' for all options

# Records and output
input: releases.yaml                  # Records file path or http(s) URL
output: CHANGELOG.md                  # Rendered changelog ("-" = stdout)
changelog_dir: changelog              # Per-release files written by 'chlog split'

# Repository links (first match wins: repository_url, space+project, git remote)
repository_url: ""                    # e.g. https://github.com/greenbone/pontos
space: ""                             # GitHub organisation or user
project: ""                           # GitHub repository name
git_remote: origin                    # Remote used for detection
tag_prefix: ""                        # Prefix applied to compare refs, e.g. v

# Layout
category_heading: h2                  # h2 | h3 | bold
preamble: ""                          # Line below the title (empty = default sentence)

# Checks and fetching
require_semver: false                 # Report non-semver versions in 'chlog check'
fetch_timeout: 5s                     # Timeout for http(s) records
max_parallel: 4                       # Concurrent writers for 'chlog split'
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"input":          "releases.yaml",
		"output":         "CHANGELOG.md",
		"changelog_dir":  "changelog",
		"repository_url": "",
		"space":          "",
		"project":        "",
		"git_remote":     "origin",
		"tag_prefix":     "",
		// category_heading: "## <Label>" matches the layout of existing changelogs.
		"category_heading": "h2",
		"preamble":         "",
		"require_semver":   false,
		"fetch_timeout":    "5s",
		"max_parallel":     4,
	}
}
