package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/sink"
	"github.com/spf13/cobra"
)

var (
	splitInputFlag string
	splitDirFlag   string
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Write one changelog file per release",
	Long: `Write every release as its own standalone changelog into changelog_dir.

Files are named <tag_prefix><version>.md and each holds the title, preamble,
the release and its comparison link. Files whose content did not change are
left untouched. Nothing is written when any record is incomplete.`,
	Example: `  # Write changelog/<version>.md for every release
  chlog split

  # Write into another directory
  chlog split --dir docs/releases`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit(cmd)
	},
}

func init() {
	splitCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
	splitCmd.Flags().StringVarP(&splitDirFlag, "dir", "d", "", "Target directory (default changelog_dir from config)")
}

func runSplit(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input := selectInput(splitInputFlag, cfg)
	dir := splitDirFlag
	if dir == "" {
		dir = cfg.ChangelogDir
	}

	book, err := loadBook(cmd.Context(), cfg, input)
	if err != nil {
		return err
	}
	if book.Len() == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No releases in %s.\n", input)
		return nil
	}

	results, err := sink.WriteSplit(cmd.Context(), book.Releases, sink.SplitOptions{
		Dir:         dir,
		TagPrefix:   cfg.TagPrefix,
		Render:      renderOptions(cfg),
		MaxParallel: cfg.MaxParallel,
	})
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "splitting changelog")
	}

	written := 0
	for _, r := range results {
		output.PrintFileResult(cmd.OutOrStdout(), r.Path, r.Written)
		if r.Written {
			written++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d written, %d unchanged\n", written, len(results)-written)
	return nil
}
