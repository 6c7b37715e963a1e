package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/progress"
	"github.com/ariel-frischer/chlog/internal/sink"
	"github.com/ariel-frischer/chlog/internal/watch"
	"github.com/spf13/cobra"
)

var (
	renderInputFlag   string
	renderOutputFlag  string
	renderReleaseFlag string
	renderHTMLFlag    bool
	renderWatchFlag   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the changelog from release records",
	Long: `Render a Keep a Changelog document from the release records.

The output starts with the title and preamble, lists every release newest
first with its categories and entries, and ends with one comparison link per
release. Nothing is written when any record is incomplete.

Missing commit and compare URLs are derived from repository_url, from
space and project, or from the git remote.`,
	Example: `  # Render CHANGELOG.md from releases.yaml
  chlog render

  # Print to stdout
  chlog render --output -

  # Render a single release, e.g. for GitHub release notes
  chlog render --release 22.7.0 --output -

  # Render records served over HTTP as HTML
  chlog render -i https://example.com/releases.yaml --html -o changelog.html

  # Re-render whenever releases.yaml changes
  chlog render --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	renderCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
	renderCmd.Flags().StringVarP(&renderOutputFlag, "output", "o", "", "Output file, - for stdout (default from config)")
	renderCmd.Flags().StringVarP(&renderReleaseFlag, "release", "r", "", "Render only this release as a standalone document")
	renderCmd.Flags().BoolVar(&renderHTMLFlag, "html", false, "Convert the rendered markdown to HTML")
	renderCmd.Flags().BoolVarP(&renderWatchFlag, "watch", "w", false, "Re-render when the records file changes")
}

func runRender(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input := selectInput(renderInputFlag, cfg)
	outPath := renderOutputFlag
	if outPath == "" {
		outPath = cfg.Output
	}

	if renderWatchFlag {
		if changelog.IsURL(input) {
			return clierrors.NewArgumentError("--watch needs a local records file, got "+input,
				"Download the records first or drop --watch")
		}
		if outPath == "-" {
			return clierrors.InvalidFlagCombination("--watch", "--output -")
		}
		return watchRender(cmd, cfg, input, outPath)
	}

	doc, err := buildDocument(cmd.Context(), cfg, input)
	if err != nil {
		return err
	}

	if outPath == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}

	written, err := sink.WriteIfChanged(outPath, []byte(doc))
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+outPath)
	}
	output.PrintFileResult(cmd.OutOrStdout(), outPath, written)
	return nil
}

// buildDocument loads the records and renders them, honouring --release and --html.
func buildDocument(ctx context.Context, cfg *config.Configuration, input string) (string, error) {
	book, err := loadBook(ctx, cfg, input)
	if err != nil {
		return "", err
	}

	opts := renderOptions(cfg)
	var doc string
	if renderReleaseFlag != "" {
		r, err := book.Get(renderReleaseFlag)
		if err != nil {
			return "", clierrors.ReleaseNotFound(renderReleaseFlag, book.Versions())
		}
		doc, err = changelog.RenderRelease(*r, opts)
		if err != nil {
			return "", clierrors.InvalidRecords(input, err)
		}
	} else {
		doc, err = changelog.RenderString(book.Releases, opts)
		if err != nil {
			return "", clierrors.InvalidRecords(input, err)
		}
	}

	if renderHTMLFlag {
		return changelog.ToHTML(doc)
	}
	return doc, nil
}

// watchRender renders once, then again after every change to input, until
// the command context is cancelled.
func watchRender(cmd *cobra.Command, cfg *config.Configuration, input, outPath string) error {
	w, err := watch.New(input, 0)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Prerequisite, "watching "+input)
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	ind := progress.NewIndicator(out, terminalCaps(out))
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", input)

	ctx := cmd.Context()
	return w.Run(ctx, func() {
		ind.Start("Rendering " + outPath)

		doc, err := buildDocument(ctx, cfg, input)
		if err != nil {
			ind.Fail(firstLine(err.Error()))
			return
		}
		written, err := sink.WriteIfChanged(outPath, []byte(doc))
		switch {
		case err != nil:
			ind.Fail(err.Error())
		case written:
			ind.Succeed("Wrote " + outPath)
		default:
			ind.Succeed(outPath + " unchanged")
		}
	})
}

// terminalCaps detects capabilities for w, treating anything that is not a
// file as a plain pipe.
func terminalCaps(w io.Writer) progress.TerminalCapabilities {
	if f, ok := w.(*os.File); ok {
		return progress.DetectTerminalCapabilities(f)
	}
	return progress.TerminalCapabilities{}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
