// Package main provides the typescan command-line interface: on-demand
// mypy scans of a Python project with editor-grade diagnostics output.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/typescan/internal/logger"
)

var (
	flagVerbose bool
	flagLogFile string
	flagColor   string
)

var rootCmd = &cobra.Command{
	Use:   "typescan",
	Short: "Run mypy over a Python project and report diagnostics",
	Long: `typescan discovers the Python files of a project, runs mypy once
over the whole batch and prints per-file diagnostics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch flagColor {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			// fatih/color already detects TTYs.
		default:
			return fmt.Errorf("invalid --color value %q (want auto, on or off)", flagColor)
		}
		return logger.SetupLogging(flagVerbose, flagLogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "mirror log records to a file")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(scanCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}
	os.Exit(exitCode)
}
