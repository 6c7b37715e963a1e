package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs for help output
const (
	GroupGettingStarted = "getting-started"
	GroupChangelog      = "changelog"
	GroupInspection     = "inspection"
	GroupConfiguration  = "configuration"
)

var (
	configPathFlag string
	debugFlag      bool
	plainFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Render Keep a Changelog markdown from release records",
	Long: `chlog turns structured release records into a CHANGELOG.md.

Each release lists its categories and entries with commit links, and the
document ends with one comparison link per release. The records live in a
YAML (or JSON) file, or behind an http(s) URL.

Configuration precedence (highest to lowest):
  1. Environment variables (CHLOG_*)
  2. Project config (.chlog/config.yml)
  3. User config (~/.config/chlog/config.yml)
  4. Built-in defaults`,
	Example: `  # Create a config and a starter releases.yaml
  chlog init

  # Render CHANGELOG.md
  chlog render

  # Fail in CI when CHANGELOG.md is stale
  chlog check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if plainFlag {
			color.NoColor = true
		}
		if debugFlag {
			debug := func(format string, args ...any) {
				log.Printf("debug: "+format, args...)
			}
			git.SetDebugLogger(debug)
			watch.SetDebugLogger(debug)
		} else {
			git.SetDebugLogger(nil)
			watch.SetDebugLogger(nil)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupChangelog, Title: "Changelog:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupGettingStarted)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Project config file (default .chlog/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output without colors")
}

// Execute runs the root command. Errors are printed before returning;
// use ExitCode to map the result to a process exit status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
