package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/sink"
	"github.com/spf13/cobra"
)

var (
	initForceFlag bool
	initInputFlag string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project config and starter release records",
	Long: `Create .chlog/config.yml with every key documented, and a starter
releases.yaml showing the records format.

Existing files are never overwritten unless --force is given.`,
	Example: `  chlog init
  chlog init --input docs/releases.yaml
  chlog init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	initCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().StringVarP(&initInputFlag, "input", "i", "", "Path of the starter records file (default from config)")
}

func runInit(cmd *cobra.Command) error {
	configPath := config.ProjectConfigPath()
	if configPathFlag != "" {
		configPath = configPathFlag
	}

	recordsPath := initInputFlag
	if recordsPath == "" {
		recordsPath = config.GetDefaults()["input"].(string)
	}
	if changelog.IsURL(recordsPath) {
		return clierrors.NewArgumentError("init writes a local records file, got "+recordsPath,
			"Pass a file path to --input")
	}

	files := []struct {
		path string
		data []byte
	}{
		{configPath, []byte(config.DefaultTemplate())},
		{recordsPath, changelog.StarterRecords()},
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}
		if !initForceFlag {
			return clierrors.FileExists(f.path)
		}
		output.PrintWarning(out, "overwriting "+f.path)
	}

	for _, f := range files {
		if err := sink.WriteFile(f.path, f.data); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+f.path)
		}
		output.PrintFileResult(out, f.path, true)
	}

	fmt.Fprintf(out, "\nNext steps:\n")
	fmt.Fprintf(out, "  1. Set repository_url in %s (or rely on the git remote)\n", configPath)
	fmt.Fprintf(out, "  2. Replace the example releases in %s\n", recordsPath)
	fmt.Fprintf(out, "  3. Run 'chlog render'\n")
	return nil
}
