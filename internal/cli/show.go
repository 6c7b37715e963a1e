package cli

import (
	"fmt"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	showInputFlag string
	showLastFlag  int
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show releases in the terminal",
	Long: `Show releases from the records with terminal styling.

By default the newest release is shown. Pass a version to see that release
(the v prefix is optional), or use --last to show more releases.`,
	Example: `  chlog show              # Newest release
  chlog show 21.9.1       # A specific release
  chlog show v21.9.1      # Same (v prefix optional)
  chlog show --last 3     # Three newest releases
  chlog show --plain      # No colors or icons`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

var listInputFlag string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List releases with dates and entry counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

func init() {
	showCmd.GroupID = GroupInspection
	listCmd.GroupID = GroupInspection
	rootCmd.AddCommand(showCmd, listCmd)

	showCmd.Flags().StringVarP(&showInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
	showCmd.Flags().IntVar(&showLastFlag, "last", 1, "Number of releases to show")
	listCmd.Flags().StringVarP(&listInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
}

func formatOptions() changelog.FormatOptions {
	return changelog.FormatOptions{Plain: plainFlag || color.NoColor}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	book, err := loadBook(cmd.Context(), cfg, selectInput(showInputFlag, cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := formatOptions()

	if len(args) == 1 {
		r, err := book.Get(args[0])
		if err != nil {
			return clierrors.ReleaseNotFound(args[0], book.Versions())
		}
		return changelog.FormatRelease(r, out, opts)
	}

	releases := book.Latest(showLastFlag)
	if len(releases) == 0 {
		fmt.Fprintln(out, "No releases found.")
		return nil
	}
	if err := changelog.FormatReleases(releases, out, opts); err != nil {
		return fmt.Errorf("formatting releases: %w", err)
	}

	if total := book.Len(); total > len(releases) {
		fmt.Fprintf(out, "\n(%d of %d releases shown. Use --last %d to see all)\n", len(releases), total, total)
	}
	return nil
}

func runList(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	book, err := loadBook(cmd.Context(), cfg, selectInput(listInputFlag, cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if book.Len() == 0 {
		fmt.Fprintln(out, "No releases found.")
		return nil
	}

	opts := formatOptions()
	for i := range book.Releases {
		fmt.Fprintln(out, changelog.FormatSummary(&book.Releases[i], opts))
	}
	fmt.Fprintf(out, "\n%d releases, %d entries\n", book.Len(), book.EntryCount())
	return nil
}
