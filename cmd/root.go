// =============================================================================
// Transcript Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── renderCmd   (converter render <file>)
//   ├── validateCmd (converter validate <file>)
//   └── versionCmd  (converter version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the main configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transcript-converter/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// mainConfig and logger are set by the root command's PersistentPreRunE.
var (
	mainConfig *config.MainConfig
	logger     *slog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Transcript Converter - Turn student information service documents into reports",
	Long: `Transcript Converter reads the loosely structured transcript document a
student information service returns and turns it into a report: ordered
course sections with assignments, grades, teachers and citizenship, plus an
attendance ledger. A school that has disabled access yields a notice instead.

Reports are written as JSON, XML, XLSX and/or CSV.

Example Usage:
  converter render student.json                  # Render with config.yaml settings
  converter render student.json --format xlsx    # Override the output formats
  converter render student.json --stdout         # Print the JSON report
  converter validate student.json                # Report data problems only`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMainConfig(cfgFile)
		if err != nil {
			return err
		}
		mainConfig = cfg
		logger = newLogger(cmd.ErrOrStderr(), cfg)
		slog.SetDefault(logger)
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// newLogger builds the slog handler selected by the configuration.
func newLogger(w io.Writer, cfg *config.MainConfig) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (a missing file means defaults)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
