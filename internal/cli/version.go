package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/chlog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/chlog"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for chlog",
	Example: `  # Show version info
  chlog version

  # Plain output (for scripts)
  chlog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(versionCmd)
}

type versionRow struct {
	label string
	value string
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	info := []versionRow{
		{"commit", truncateCommit(build.Commit)},
		{"built", build.BuildDate},
		{"go", runtime.Version()},
		{"platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
		{"source", SourceURL},
	}
	if build.IsDevBuild() {
		info = append(info, versionRow{"build", "development"})
	}

	if plainFlag {
		fmt.Fprintf(out, "chlog %s\n", build.Version)
		for _, row := range info {
			fmt.Fprintf(out, "%s: %s\n", row.label, row.value)
		}
		return
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan("chlog"), build.Version)
	for _, row := range info {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("%-9s", row.label)), row.value)
	}
}

// truncateCommit shortens a full commit hash to 7 characters.
func truncateCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
