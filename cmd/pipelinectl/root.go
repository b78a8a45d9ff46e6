package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	pretty  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "pipelinectl",
		Short:         "pipelinectl runs declarative data pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.pretty, "pretty", false, "Human-readable log output")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newNodesCmd())

	return cmd
}
