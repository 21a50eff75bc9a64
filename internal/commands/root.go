// Package commands wires the amortizer CLI together.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/iwvelando/amortizer/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "amortizer",
		Short:   "Loan amortization schedules with lump sums and equity tracking",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScheduleCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
