package main

import (
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/dsl"
	"github.com/TM9657/flowdoc/graph"
	"github.com/TM9657/flowdoc/utils"
)

// newGraphCmd creates the 'graph' subcommand.
func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [file]",
		Short: "Export a document's node references as a Mermaid graph",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := dsl.Load(args[0])
			if err != nil {
				utils.Error("Failed to load document: %v", err)
				exit(1)
			}
			out, err := graph.ExportMermaid(doc)
			if err != nil {
				utils.Error("Graph export failed: %v", err)
				exit(1)
			}
			utils.User("%s", out)
		},
	}
}
