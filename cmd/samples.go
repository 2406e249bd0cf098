package cmd

import (
	"github.com/spf13/cobra"

	"solvency-engine/loader"
)

func newSamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Print the built-in sample companies as YAML",
		Args:  cobra.NoArgs,
		// Needs neither config nor logging.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return loader.EncodeYAML(cmd.OutOrStdout(), loader.Samples())
		},
	}
}
