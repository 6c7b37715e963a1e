package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the chlog CLI.

// MissingRecordsFile creates an error for a records file that does not exist.
func MissingRecordsFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("records file not found: %s", path),
		"Run 'chlog init' to create a starter releases.yaml",
		"Or point to an existing file with --input or the 'input' config key",
	)
}

// InvalidRecords creates an error for records that cannot be rendered.
func InvalidRecords(source string, err error) *CLIError {
	return NewRecordsError(
		fmt.Sprintf("invalid release records in %s: %v", source, err),
		"Every entry needs a description, a commit hash and a commit URL",
		"Dates must use the YYYY-MM-DD format",
		"Set repository_url (or space and project) to derive missing URLs",
	)
}

// RepositoryNotDetected creates an error when no repository URL is configured
// and none can be read from the git remote.
func RepositoryNotDetected(remote string, err error) *CLIError {
	return NewConfigError(
		fmt.Sprintf("could not determine repository URL from remote %q: %v", remote, err),
		"Set repository_url in .chlog/config.yml",
		"Or set space and project for a GitHub repository",
		"Or use 'chlog config set repository_url <url>'",
	)
}

// ReleaseNotFound creates an error for an unknown release version.
func ReleaseNotFound(version string, available []string) *CLIError {
	remediation := []string{"Run 'chlog list' to see all releases"}
	if len(available) > 0 {
		remediation = append(remediation, "Available: "+strings.Join(available, ", "))
	}
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("release %q not found", version),
		"chlog show <version>",
		remediation...,
	)
}

// FileExists creates an error when init would overwrite an existing file.
func FileExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s already exists", path),
		"Use --force to overwrite it",
	)
}

// InvalidFlagCombination creates an error for mutually exclusive flags.
func InvalidFlagCombination(flags ...string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("flags %s cannot be used together", strings.Join(flags, ", ")),
		"Pick one of the flags",
	)
}
