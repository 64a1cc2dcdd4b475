// =============================================================================
// Transcript Converter - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   converter version [--short]
//
// OUTPUT:
//   Transcript Converter 1.0.0
//   Build Date: 2024-01-01
//   Revision:   3f2c1a9 (modified)
//   Go Version: go1.24.11
//
// With --short only the version string is printed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time:
//
//	go build -ldflags "-X 'github.com/ginjaninja78/transcript-converter/cmd.Version=1.0.0'"
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

var shortVersion bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if shortVersion {
			fmt.Fprintln(out, Version)
			return
		}

		fmt.Fprintf(out, "Transcript Converter %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		if rev := revision(); rev != "" {
			fmt.Fprintf(out, "Revision:   %s\n", rev)
		}
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

// revision reports the VCS revision stamped into the binary, if any.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var rev string
	modified := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && modified {
		rev += " (modified)"
	}
	return rev
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "Print only the version")
}
