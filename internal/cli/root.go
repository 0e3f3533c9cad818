// Package cli provides the command-line interface for ruler.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kieroneil/ruler/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ruler",
		Short: "Ruler - Tabular Dataset Validation",
		Long: `Ruler validates tabular datasets against rule packs and reports every
violation in one canonical, row-traceable report.

Packs are declared in ruler.yaml: builtin packs by name, or ad-hoc rule
sets written as Starlark expressions.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ruler.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewCheckCommand(),
		commands.NewPacksCommand(),
		commands.NewVersionCommand(Version, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
