// Package cli provides the command-line interface for moaitime.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/moaitime/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moaitime",
		Short: "More accurate print time estimates for SLA gcode",
		Long: `moaitime estimates how long a stereolithography (laser or DLP) print
really takes.

Slicers estimate the laser time only. Every layer also costs a fixed
layer change (peel, platform lift and settle), which moaitime adds.

Configure the layer change time, feedrate unit and webhooks in a printer
profile and check it with 'moaitime validate'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", commands.DefaultLogLevel, "Diagnostic log level (debug|info|warn|error)")

	rootCmd.AddCommand(commands.NewEstimateCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
