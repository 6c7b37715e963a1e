package cli

import (
	"fmt"

	"github.com/ariel-frischer/chlog/internal/config"
	"github.com/ariel-frischer/chlog/internal/health"
	"github.com/spf13/cobra"
)

var doctorInputFlag string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project setup",
	Long: `Run health checks for the chlog setup in the current directory:

  - the configuration loads and validates
  - the directory is inside a git repository
  - the repository URL for links is configured or detectable
  - the release records load and validate
  - the changelog output directory exists`,
	Example: `  chlog doctor`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd)
	},
}

func init() {
	doctorCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
}

func runDoctor(cmd *cobra.Command) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPathFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})

	report := health.RunHealthChecks(cmd.Context(), health.Options{
		Config:    cfg,
		ConfigErr: err,
		Input:     doctorInputFlag,
	})

	out := cmd.OutOrStdout()
	fmt.Fprint(out, health.FormatReport(report))
	if !report.Passed {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}
