package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	checkInputFlag   string
	checkOutputFlag  string
	checkTagsFlag    bool
	checkCommitsFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the changelog matches the release records",
	Long: `Verify that the changelog on disk is exactly what 'chlog render' would
write, and lint its structure.

Checks:
  - the file content equals the rendered records
  - the document starts with "# Changelog" and blocks are separated by blank lines
  - every release heading has a date and a comparison link
  - releases are ordered newest first by semantic version
  - with --tags, every release has a git tag
  - with --commits, every entry hash resolves to a commit

Returns exit code 0 when everything passes and 1 otherwise.`,
	Example: `  # Check CHANGELOG.md in CI
  chlog check

  # Also verify tags and commit hashes against the local repository
  chlog check --tags --commits`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
	checkCmd.Flags().StringVarP(&checkOutputFlag, "output", "o", "", "Changelog file to check (default from config)")
	checkCmd.Flags().BoolVar(&checkTagsFlag, "tags", false, "Require a git tag for every release")
	checkCmd.Flags().BoolVar(&checkCommitsFlag, "commits", false, "Require every entry hash to exist in the repository")
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input := selectInput(checkInputFlag, cfg)
	mdPath := checkOutputFlag
	if mdPath == "" {
		mdPath = cfg.Output
	}

	book, err := loadBook(cmd.Context(), cfg, input)
	if err != nil {
		return err
	}

	expected, err := changelog.RenderString(book.Releases, renderOptions(cfg))
	if err != nil {
		return clierrors.InvalidRecords(input, err)
	}

	actual, err := os.ReadFile(mdPath)
	if errors.Is(err, fs.ErrNotExist) {
		return clierrors.NewPrerequisiteError(
			fmt.Sprintf("changelog not found: %s", mdPath),
			"Run 'chlog render' to create it",
		)
	}
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+mdPath)
	}

	out := cmd.OutOrStdout()
	failed := false

	if !bytes.Equal([]byte(expected), actual) {
		reportCheckFailure(out, fmt.Sprintf("%s is out of date with %s", mdPath, input))
		failed = true
	}

	if reportIssues(out, mdPath, changelog.Lint(actual)) {
		failed = true
	}
	if reportIssues(out, input, changelog.CheckOrder(book.Releases, cfg.RequireSemver)) {
		failed = true
	}

	if checkTagsFlag || checkCommitsFlag {
		issues, err := checkRepository(cfg, book)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Prerequisite, "reading git repository",
				"Run chlog check inside the repository, or drop --tags and --commits")
		}
		if reportIssues(out, "git", issues) {
			failed = true
		}
	}

	if failed {
		fmt.Fprintf(out, "\nTo fix, edit %s and run:\n  chlog render\n", input)
		return NewExitError(ExitValidationFailed)
	}

	output.PrintSuccess(out, fmt.Sprintf("%s is up to date with %s", mdPath, input))
	return nil
}

// checkRepository verifies release tags and entry commits against the git
// repository in the working directory.
func checkRepository(cfg *config.Configuration, book *changelog.Book) ([]changelog.Issue, error) {
	var issues []changelog.Issue
	tagger := changelog.Links{TagPrefix: cfg.TagPrefix}

	if checkTagsFlag {
		names, err := git.TagNames("")
		if err != nil {
			return nil, err
		}
		tags := make(map[string]bool, len(names))
		for _, name := range names {
			tags[name] = true
		}
		for _, r := range book.Releases {
			if tag := tagger.Tag(r.Version); !tags[tag] {
				issues = append(issues, changelog.Issue{Message: fmt.Sprintf("release %s has no tag %s", r.Version, tag)})
			}
		}
	}

	if checkCommitsFlag {
		checker, err := git.NewCommitChecker("")
		if err != nil {
			return nil, err
		}
		for _, r := range book.Releases {
			for _, c := range r.Categories {
				for _, e := range c.Entries {
					if !checker.Exists(e.CommitHash) {
						issues = append(issues, changelog.Issue{
							Message: fmt.Sprintf("release %s: commit %s not found", r.Version, e.CommitHash),
						})
					}
				}
			}
		}
	}

	return issues, nil
}

func reportCheckFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// reportIssues prints issues prefixed with source and reports whether any exist.
func reportIssues(out io.Writer, source string, issues []changelog.Issue) bool {
	for _, issue := range issues {
		if issue.Line > 0 {
			reportCheckFailure(out, fmt.Sprintf("%s:%d: %s", source, issue.Line, issue.Message))
		} else {
			reportCheckFailure(out, fmt.Sprintf("%s: %s", source, issue.Message))
		}
	}
	return len(issues) > 0
}
