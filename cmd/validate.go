// =============================================================================
// Transcript Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a transcript
// document without transforming it.
//
// COMMAND USAGE:
//   converter validate <file>
//
// Exit status is non-zero when the document has errors. Warnings are
// printed but do not fail the command.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transcript-converter/internal/source"
	"github.com/ginjaninja78/transcript-converter/internal/transcript"
	"github.com/ginjaninja78/transcript-converter/internal/validation"
	"github.com/ginjaninja78/transcript-converter/pkg/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a transcript document for data problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir,
			mainConfig.InputArchiveDir, mainConfig.OutputArchiveDir)
		path, err := files.ResolveInput(args[0])
		if err != nil {
			return err
		}

		doc, err := source.File{Path: path}.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		loc, err := mainConfig.Location()
		if err != nil {
			return err
		}
		result := validation.NewValidator(transcript.NewDateParser(loc)).ValidateDocument(doc)

		out := cmd.OutOrStdout()
		fmt.Fprint(out, validation.FormatErrors(result.Errors))
		if len(result.Errors) == 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Records: %d, errors: %d, warnings: %d\n",
			result.RecordsValidated, result.ErrorCount, result.WarningCount)

		if !result.IsValid {
			return fmt.Errorf("%s: %d validation error(s)", path, result.ErrorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
