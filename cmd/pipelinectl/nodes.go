package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowforge/pipeline/nodes"
)

func newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List the registered node types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, typeName := range nodes.Default().List() {
				fmt.Fprintln(cmd.OutOrStdout(), typeName)
			}
			return nil
		},
	}
}
