package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chlog configuration",
	Long: `Manage chlog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHLOG_*)
  2. Project config (.chlog/config.yml)
  3. User config (~/.config/chlog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  chlog config show

  # List every key
  chlog config keys

  # Set a value in the project config
  chlog config set tag_prefix v`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where each value comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigKeys(cmd)
	},
}

var (
	configSetUserFlag bool
	configMigrateUser bool
	configMigrateDry  bool
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config (default) or the user
config (--user). The value is checked against the key's type first.`,
	Example: `  chlog config set repository_url https://github.com/greenbone/pontos
  chlog config set category_heading h3
  chlog config set fetch_timeout 30s --user`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, args[0], args[1])
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy JSON config to YAML",
	Long: `Convert .chlog/config.json (or ~/.chlog/config.json with --user) to
YAML. The JSON file is kept as <name>.bak.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMigrate(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configMigrateCmd)

	configSetCmd.Flags().BoolVar(&configSetUserFlag, "user", false, "Write to the user config instead of the project config")
	configMigrateCmd.Flags().BoolVar(&configMigrateUser, "user", false, "Migrate the user config instead of the project config")
	configMigrateCmd.Flags().BoolVar(&configMigrateDry, "dry-run", false, "Show what would be migrated")
	// "--project" is accepted for symmetry with the migration hint in warnings
	configMigrateCmd.Flags().Bool("project", false, "Migrate the project config (default)")
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dim := color.New(color.Faint).SprintFunc()
	output.PrintSectionHeader(out, "Configuration")
	for _, kv := range cfg.Values() {
		value := kv.Value
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(out, "%-18s %-40s %s\n", kv.Key, value, dim("("+string(kv.Source)+")"))
	}
	return nil
}

func runConfigKeys(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	for _, key := range config.SortedKeys() {
		typ := key.Type.String()
		if len(key.AllowedValues) > 0 {
			typ = strings.Join(key.AllowedValues, "|")
		}
		fmt.Fprintf(out, "%-18s %-10s %s\n", key.Path, typ, key.Description)
	}
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	scope := "project"
	path := config.ProjectConfigPath()
	if configPathFlag != "" {
		path = configPathFlag
	}
	if configSetUserFlag {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config")
		}
		scope, path = "user", userPath
	}

	if err := config.SetConfigValue(path, key, value); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Argument, "setting "+key,
			"Run 'chlog config keys' to list valid keys and types")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s = %s in %s config (%s)", key, value, scope, path))
	return nil
}

func runConfigMigrate(cmd *cobra.Command) error {
	migrate := config.MigrateProjectConfig
	if configMigrateUser {
		migrate = config.MigrateUserConfig
	}

	result, err := migrate(configMigrateDry)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating config")
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)

	if result.Success {
		if err := config.RemoveLegacyConfig(result.SourcePath, configMigrateDry); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "backing up legacy config")
		}
	}
	return nil
}
