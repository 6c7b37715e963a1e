package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/spf13/cobra"
)

// loadConfig loads the layered configuration, honouring --config.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	if configPathFlag != "" {
		if _, err := os.Stat(configPathFlag); err != nil {
			return nil, clierrors.NewArgumentError(
				fmt.Sprintf("config file not found: %s", configPathFlag),
				"Check the path passed to --config",
			)
		}
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPathFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration,
			"loading configuration",
			"Run 'chlog config show' to see the effective values",
			"Run 'chlog config keys' to list valid keys")
	}
	return cfg, nil
}

// resolveLinks builds the link builder from configuration, falling back to
// the git remote. A detection failure is returned alongside nil links so
// records with explicit URLs still load.
func resolveLinks(cfg *config.Configuration) (*changelog.Links, error) {
	base := cfg.RepositoryBaseURL()
	if base == "" {
		detected, err := git.RepositoryURL("", cfg.GitRemote)
		if err != nil {
			return nil, err
		}
		base = detected
	}
	return changelog.NewLinks(base, cfg.TagPrefix)
}

// renderOptions maps configuration onto changelog.RenderOptions.
func renderOptions(cfg *config.Configuration) changelog.RenderOptions {
	return changelog.RenderOptions{
		Preamble:        cfg.Preamble,
		CategoryHeading: changelog.HeadingStyle(cfg.CategoryHeading),
	}
}

// loadBook loads the records named by input (a path or URL) and converts
// failures into CLIErrors with remediation.
func loadBook(ctx context.Context, cfg *config.Configuration, input string) (*changelog.Book, error) {
	links, linkErr := resolveLinks(cfg)

	if changelog.IsURL(input) && cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}

	book, err := changelog.LoadSource(ctx, input, changelog.LoadOptions{Links: links})
	if err == nil {
		return book, nil
	}

	switch {
	case !changelog.IsURL(input) && errors.Is(err, fs.ErrNotExist):
		return nil, clierrors.MissingRecordsFile(input)
	case changelog.IsValidationError(err) && linkErr != nil:
		return nil, clierrors.RepositoryNotDetected(cfg.GitRemote, linkErr)
	case errors.Is(err, context.DeadlineExceeded):
		return nil, clierrors.WrapWithMessage(err, clierrors.Runtime,
			"fetching "+input,
			"Increase fetch_timeout with 'chlog config set fetch_timeout 30s'")
	default:
		return nil, clierrors.InvalidRecords(input, err)
	}
}

// selectInput returns the flag value when set, otherwise the configured input.
func selectInput(flagValue string, cfg *config.Configuration) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Input
}
