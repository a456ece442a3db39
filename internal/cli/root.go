// Package cli provides the Cobra command structure for fmtwriter.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtwriter/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root fmtwriter command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "fmtwriter",
		Short: "Replay layout scripts through an indentation-aware code writer",
		Long: `fmtwriter renders layout scripts into source text.

A layout script is a YAML list of writer instructions (write, newline, indent,
choice, ...). fmtwriter replays each script through a persistent writer that
tracks indentation, defers newlines and can rewind to an earlier state when a
layout choice overflows the line width. The rendered text can be printed,
compared against the script's target, or written in place.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newTraceCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
