// =============================================================================
// Transcript Converter - Render Command
// =============================================================================
//
// This file defines the 'render' command, which converts one transcript
// document into a report.
//
// COMMAND USAGE:
//   converter render <file> [flags]
//
// FLAGS:
//   --format   : Output formats, overriding output_formats (repeatable or comma separated)
//   --dry-run  : Transform and report, but write no files
//   --stdout   : Print the JSON report to stdout instead of writing files
//
// A bare file name that does not exist in the working directory is looked
// up in input_dir.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transcript-converter/internal/config"
	"github.com/ginjaninja78/transcript-converter/internal/converter"
	"github.com/ginjaninja78/transcript-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	formats  []string
	dryRun   bool
	toStdout bool
)

// =============================================================================
// RENDER COMMAND DEFINITION
// =============================================================================

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a transcript document as a report",
	Long: `The render command reads a transcript document, checks it, transforms it
into a report and writes the report in every configured output format.

On success:
  - The reports are placed in the output directory
  - With archive_input, the document is moved to the input archive and the
    reports are copied to the output archive

On failure:
  - An error log is created in the output directory
  - The document remains where it is`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringSliceVar(&formats, "format", nil,
		"Output formats to write (json, xml, xlsx, csv)")
	renderCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Transform without writing output files")
	renderCmd.Flags().BoolVar(&toStdout, "stdout", false,
		"Print the JSON report to stdout instead of writing files")
}

// runRender executes the conversion for one document.
func runRender(cmd *cobra.Command, name string) error {
	files := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir,
		mainConfig.InputArchiveDir, mainConfig.OutputArchiveDir)
	path, err := files.ResolveInput(name)
	if err != nil {
		return err
	}

	opts := converter.Options{Formats: formats, DryRun: dryRun || toStdout}
	conv, err := converter.New(path, mainConfig, opts, logger)
	if err != nil {
		return err
	}

	result := conv.Run(cmd.Context())
	if !result.Success {
		if result.ErrorLog != "" {
			return fmt.Errorf("%w (details in %s)", result.Error, result.ErrorLog)
		}
		return result.Error
	}

	if toStdout {
		data, err := converter.Render(result.Report, config.FormatJSON, mainConfig)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Disabled:
		fmt.Fprintf(out, "School has disabled access: %s\n", result.Report.Disabled.Title)
	default:
		fmt.Fprintf(out, "Sections: %d, assignments: %d, attendance entries: %d\n",
			result.Stats.Sections, result.Stats.Assignments, result.Stats.Attendances)
	}
	if result.Stats.Warnings > 0 {
		fmt.Fprintf(out, "Warnings: %d (see log)\n", result.Stats.Warnings)
	}
	for _, p := range result.OutputFiles {
		fmt.Fprintf(out, "Wrote %s\n", p)
	}
	if dryRun {
		fmt.Fprintln(out, "Dry run: no files written")
	}
	return nil
}
