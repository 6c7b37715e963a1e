// Package health provides environment checks for chlog. It validates that
// the configuration loads, the release records parse, and the repository URL
// needed for commit links can be resolved, returning structured reports used
// by the 'chlog doctor' command.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	"github.com/ariel-frischer/chlog/internal/git"
)

// Source values for the repository URL check indicating where the URL was found.
const (
	SourceConfig = "config"
	SourceRemote = "remote"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Source indicates where the repository URL came from.
	// Values: "config", "remote", or empty for other checks.
	Source string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options configures RunHealthChecks.
type Options struct {
	// Config is the loaded configuration. A nil Config with ConfigErr set
	// reports the load failure and skips the checks that need it.
	Config    *config.Configuration
	ConfigErr error
	// Input overrides Config.Input when set.
	Input string
	// Dir is the directory used for repository detection; empty means cwd.
	Dir string
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{Checks: make([]CheckResult, 0, 5), Passed: true}
	add := func(check CheckResult) {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	add(CheckConfig(opts.ConfigErr))
	if opts.Config == nil {
		return report
	}

	add(CheckRepository(opts.Dir))
	urlCheck, links := CheckRepositoryURL(opts.Config, opts.Dir)
	add(urlCheck)

	input := opts.Input
	if input == "" {
		input = opts.Config.Input
	}
	add(CheckRecords(ctx, input, links))
	add(CheckOutputDir(opts.Config.Output))

	return report
}

// CheckConfig reports the outcome of loading the configuration.
func CheckConfig(loadErr error) CheckResult {
	if loadErr != nil {
		return CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: firstLine(loadErr.Error()),
		}
	}
	return CheckResult{Name: "Configuration", Passed: true, Message: "loaded"}
}

// CheckRepository checks if dir is within a git repository.
// A missing repository only matters for link detection and 'check --tags'.
func CheckRepository(dir string) CheckResult {
	if !git.IsGitRepository(dir) {
		return CheckResult{
			Name:    "Git repository",
			Passed:  false,
			Message: "not inside a git repository",
		}
	}

	root, err := git.GetRepositoryRoot(dir)
	if err != nil {
		return CheckResult{Name: "Git repository", Passed: true, Message: "found"}
	}
	return CheckResult{Name: "Git repository", Passed: true, Message: root}
}

// CheckRepositoryURL resolves the base URL used for commit and compare links,
// preferring configuration over the git remote. The link builder is returned
// for reuse when the check passes.
func CheckRepositoryURL(cfg *config.Configuration, dir string) (CheckResult, *changelog.Links) {
	base, source := cfg.RepositoryBaseURL(), SourceConfig
	if base == "" {
		detected, err := git.RepositoryURL(dir, cfg.GitRemote)
		if err != nil {
			return CheckResult{
				Name:    "Repository URL",
				Passed:  false,
				Message: fmt.Sprintf("cannot detect from remote %q - set repository_url or space and project", cfg.GitRemote),
				Source:  SourceRemote,
			}, nil
		}
		base, source = detected, SourceRemote
	}

	links, err := changelog.NewLinks(base, cfg.TagPrefix)
	if err != nil {
		return CheckResult{
			Name:    "Repository URL",
			Passed:  false,
			Message: err.Error(),
			Source:  source,
		}, nil
	}
	return CheckResult{
		Name:    "Repository URL",
		Passed:  true,
		Message: fmt.Sprintf("%s (%s)", base, source),
		Source:  source,
	}, links
}

// CheckRecords loads and validates the release records.
func CheckRecords(ctx context.Context, input string, links *changelog.Links) CheckResult {
	book, err := changelog.LoadSource(ctx, input, changelog.LoadOptions{Links: links})
	if err != nil {
		return CheckResult{
			Name:    "Release records",
			Passed:  false,
			Message: fmt.Sprintf("%s: %s", input, firstLine(err.Error())),
		}
	}
	return CheckResult{
		Name:    "Release records",
		Passed:  true,
		Message: fmt.Sprintf("%s (%d releases, %d entries)", input, book.Len(), book.EntryCount()),
	}
}

// CheckOutputDir checks that the directory holding the changelog exists.
func CheckOutputDir(output string) CheckResult {
	dir := filepath.Dir(output)
	info, err := os.Stat(dir)
	if err != nil {
		return CheckResult{
			Name:    "Output directory",
			Passed:  false,
			Message: fmt.Sprintf("%s does not exist", dir),
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:    "Output directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not a directory", dir),
		}
	}
	return CheckResult{Name: "Output directory", Passed: true, Message: dir}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
