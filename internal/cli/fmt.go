package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/sink"
	"github.com/spf13/cobra"
)

var (
	fmtInputFlag  string
	fmtCheckFlag  bool
	fmtStdoutFlag bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the records file in canonical form",
	Long: `Rewrite the records file in canonical form with every derived commit and
compare URL written out.

With --check nothing is written; the command fails when the file is not in
canonical form. Records loaded from a URL are always printed to stdout.`,
	Example: `  chlog fmt
  chlog fmt --check
  chlog fmt --stdout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFmt(cmd)
	},
}

func init() {
	fmtCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().StringVarP(&fmtInputFlag, "input", "i", "", "Records file or http(s) URL (default from config)")
	fmtCmd.Flags().BoolVar(&fmtCheckFlag, "check", false, "Fail if the file is not in canonical form")
	fmtCmd.Flags().BoolVar(&fmtStdoutFlag, "stdout", false, "Print instead of rewriting the file")
}

func runFmt(cmd *cobra.Command) error {
	if fmtCheckFlag && fmtStdoutFlag {
		return clierrors.InvalidFlagCombination("--check", "--stdout")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input := selectInput(fmtInputFlag, cfg)

	book, err := loadBook(cmd.Context(), cfg, input)
	if err != nil {
		return err
	}
	formatted, err := changelog.Marshal(book.Releases)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "formatting "+input)
	}

	out := cmd.OutOrStdout()
	if fmtStdoutFlag || changelog.IsURL(input) {
		_, err := out.Write(formatted)
		return err
	}

	if fmtCheckFlag {
		current, err := os.ReadFile(input)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+input)
		}
		if !bytes.Equal(current, formatted) {
			reportCheckFailure(out, fmt.Sprintf("%s is not in canonical form", input))
			fmt.Fprintf(out, "\nTo fix, run:\n  chlog fmt\n")
			return NewExitError(ExitValidationFailed)
		}
		output.PrintSuccess(out, input+" is in canonical form")
		return nil
	}

	written, err := sink.WriteIfChanged(input, formatted)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+input)
	}
	output.PrintFileResult(out, input, written)
	return nil
}
